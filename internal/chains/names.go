package chains

import (
	"regexp"
	"strings"
)

var nameSuffixes = []string{" jr.", " jr", " sr.", " sr", " ii", " iii", " iv"}

// Applied in order; earlier rewrites can shadow later ones, matching the
// established comparison behavior.
var corporateReplacements = []struct{ full, abbr string }{
	{"corporation", "corp"},
	{"incorporated", "inc"},
	{"company", "co"},
	{"limited", "ltd"},
	{"limited liability company", "llc"},
	{"l.l.c.", "llc"},
}

var corporateMarkers = []string{"corp", "inc", "llc", "company", "co"}

var insignificantWords = map[string]bool{
	"corp": true, "inc": true, "llc": true, "co": true, "company": true, "ltd": true,
}

var (
	namePunctuation = regexp.MustCompile(`[,.']`)
	nameWhitespace  = regexp.MustCompile(`\s+`)
)

// NormalizeName lowercases a party name, strips generational suffixes,
// abbreviates corporate designators, and removes punctuation so that
// recording variations of the same party compare equal.
func NormalizeName(name string) string {
	if name == "" {
		return ""
	}
	name = strings.TrimSpace(strings.ToLower(name))

	for _, suffix := range nameSuffixes {
		if strings.HasSuffix(name, suffix) {
			name = strings.TrimSpace(strings.TrimSuffix(name, suffix))
		}
	}

	for _, r := range corporateReplacements {
		name = strings.ReplaceAll(name, r.full, r.abbr)
	}

	name = namePunctuation.ReplaceAllString(name, "")
	name = nameWhitespace.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// NamesMatch reports whether two normalized names plausibly refer to the same
// party. It tolerates initials standing in for first names, missing middle
// names, and corporate designator variations.
func NamesMatch(a, b string) bool {
	if a == b {
		return true
	}

	partsA := strings.Fields(a)
	partsB := strings.Fields(b)
	if len(partsA) == 0 || len(partsB) == 0 {
		return false
	}

	if looksCorporate(a) || looksCorporate(b) {
		wordsA := significantWords(partsA)
		wordsB := significantWords(partsB)
		shared := 0
		for _, w := range wordsA {
			if containsWord(wordsB, w) {
				shared++
			}
		}
		need := 2
		if len(wordsA) < need {
			need = len(wordsA)
		}
		if len(wordsB) < need {
			need = len(wordsB)
		}
		if shared >= need {
			return true
		}
	}

	lastA := partsA[len(partsA)-1]
	lastB := partsB[len(partsB)-1]
	if lastA != lastB {
		return false
	}

	// Bare surname on either side matches; when both carry first tokens they
	// must agree, allowing a single initial to stand in for a full name.
	if len(partsA) < 2 || len(partsB) < 2 {
		return true
	}
	firstA := partsA[0]
	firstB := partsB[0]
	if firstA == firstB {
		return true
	}
	if len(firstA) == 1 && strings.HasPrefix(firstB, firstA) {
		return true
	}
	if len(firstB) == 1 && strings.HasPrefix(firstA, firstB) {
		return true
	}
	return false
}

func looksCorporate(name string) bool {
	for _, marker := range corporateMarkers {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}

func significantWords(parts []string) []string {
	var out []string
	for _, w := range parts {
		if !insignificantWords[w] {
			out = append(out, w)
		}
	}
	return out
}

func containsWord(words []string, w string) bool {
	for _, v := range words {
		if v == w {
			return true
		}
	}
	return false
}
