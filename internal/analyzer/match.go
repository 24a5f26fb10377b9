package analyzer

import (
	"regexp"
	"strings"
)

// Abbreviation expansions applied before comparing descriptions. Order
// matters: "ft." must be rewritten before the bare "ft".
var descriptionReplacements = []struct{ abbr, full string }{
	{"ft.", "feet"},
	{"ft", "feet"},
	{"n.", "north"},
	{"s.", "south"},
	{"e.", "east"},
	{"w.", "west"},
	{"st.", "street"},
	{"ave.", "avenue"},
	{"rd.", "road"},
	{"blvd.", "boulevard"},
}

var (
	whitespace        = regexp.MustCompile(`\s+`)
	lotIdentifier     = regexp.MustCompile(`(?i)lot\s*(?:no\.?\s*)?(\d+)`)
	blockIdentifier   = regexp.MustCompile(`(?i)block\s*(?:no\.?\s*)?(\d+)`)
	parcelIdentifier  = regexp.MustCompile(`(?i)(?:parcel|tax\s*map)\s*(?:no\.?\s*)?([0-9.\-]+)`)
	jaccardThreshold  = 0.85
	substringMinChars = 50
)

// DescriptionsMatch applies the lightweight cross-check used when marking a
// document's legal description as "same as prior". It is deliberately simpler
// than the full parser: normalized equality, substring containment for
// substantial descriptions, identical lot/block/parcel identifiers, or a high
// character-set similarity all count as a match.
func DescriptionsMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}

	na := normalizeDescription(a)
	nb := normalizeDescription(b)

	if na == nb {
		return true
	}

	if len(na) > substringMinChars && len(nb) > substringMinChars {
		if strings.Contains(na, nb) || strings.Contains(nb, na) {
			return true
		}
	}

	idA := extractIdentifiers(a)
	idB := extractIdentifiers(b)
	if len(idA) > 0 && len(idB) > 0 && identifiersEqual(idA, idB) {
		return true
	}

	return charSetJaccard(na, nb) > jaccardThreshold
}

func normalizeDescription(desc string) string {
	desc = strings.ToLower(desc)
	desc = whitespace.ReplaceAllString(desc, " ")
	for _, r := range descriptionReplacements {
		desc = strings.ReplaceAll(desc, r.abbr, r.full)
	}
	return strings.TrimSpace(desc)
}

func extractIdentifiers(desc string) map[string]string {
	ids := map[string]string{}
	if m := lotIdentifier.FindStringSubmatch(desc); m != nil {
		ids["lot"] = m[1]
	}
	if m := blockIdentifier.FindStringSubmatch(desc); m != nil {
		ids["block"] = m[1]
	}
	if m := parcelIdentifier.FindStringSubmatch(desc); m != nil {
		ids["parcel"] = m[1]
	}
	return ids
}

func identifiersEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

// charSetJaccard compares the sets of characters used by two strings. Crude,
// but cheap and order-insensitive; only used as the last-resort fuzzy check.
func charSetJaccard(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	setA := map[rune]bool{}
	for _, r := range a {
		setA[r] = true
	}
	setB := map[rune]bool{}
	for _, r := range b {
		setB[r] = true
	}
	intersection := 0
	for r := range setA {
		if setB[r] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
