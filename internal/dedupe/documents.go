package dedupe

import (
	"fmt"
	"strings"

	"github.com/joelkehle/title-abstractor/internal/titledoc"
)

// MergeThreshold is the minimum weighted similarity score at which two
// extracted records are treated as the same instrument and merged.
const MergeThreshold = 0.85

// Documents merges near-duplicate extracted records. Each document is scored
// against every already-accepted document; a score at or above MergeThreshold
// merges it into the earlier record instead of dropping it, so page locations
// and discharge notes survive. The input slice is not modified.
func Documents(docs []titledoc.Document, progress titledoc.ProgressFn) []titledoc.Document {
	if len(docs) <= 1 {
		return docs
	}

	var unique []titledoc.Document
	for i := range docs {
		merged := false
		for j := range unique {
			score := Similarity(&docs[i], &unique[j])
			if score >= MergeThreshold {
				progress.Emit("dedupe_documents", fmt.Sprintf("document %d is %.0f%% similar to document %d - merging", i+1, score*100, j+1))
				mergeDocuments(&unique[j], &docs[i], progress)
				merged = true
				break
			}
		}
		if !merged {
			unique = append(unique, docs[i])
		}
	}

	if removed := len(docs) - len(unique); removed > 0 {
		progress.Emit("dedupe_documents", fmt.Sprintf("removed %d duplicate document(s)", removed))
	}
	return unique
}

// Similarity scores two extracted records in [0,1] from the fields present on
// both sides. Each contributing field has a fixed weight; the raw score is
// renormalized by the sum of applicable weights, so absent fields are excluded
// rather than penalized.
func Similarity(a, b *titledoc.Document) float64 {
	score := 0.0
	totalWeight := 0.0

	recA := normalizeSpace(a.Recording.LocationInstrumentNumber)
	recB := normalizeSpace(b.Recording.LocationInstrumentNumber)
	if recA != "" && recB != "" {
		if recA == recB {
			score += 0.4
		}
		totalWeight += 0.4
	}

	typeA := normalizeSpace(a.DocumentType)
	typeB := normalizeSpace(b.DocumentType)
	if typeA != "" && typeB != "" {
		if typeA == typeB {
			score += 0.2
		} else if sameCoarseKind(a.DocumentType, b.DocumentType) {
			score += 0.15
		}
		totalWeight += 0.2
	}

	dateA := normalizeSpace(a.Dates.RecordDate)
	dateB := normalizeSpace(b.Dates.RecordDate)
	if dateA != "" && dateB != "" {
		if dateA == dateB {
			score += 0.15
		}
		totalWeight += 0.15
	}

	fromA, toA := nameSet(a.Parties.From), nameSet(a.Parties.To)
	fromB, toB := nameSet(b.Parties.From), nameSet(b.Parties.To)
	if len(fromA) > 0 && len(fromB) > 0 && len(toA) > 0 && len(toB) > 0 {
		fromMatch := overlapRatio(fromA, fromB)
		toMatch := overlapRatio(toA, toB)
		score += 0.15 * (fromMatch + toMatch) / 2
		totalWeight += 0.15
	}

	legalA := strings.TrimSpace(a.Property.LegalDescription)
	legalB := strings.TrimSpace(b.Property.LegalDescription)
	if legalA != "" && legalB != "" {
		score += 0.1 * sequenceRatio(truncate(legalA, 500), truncate(legalB, 500))
		totalWeight += 0.1
	}

	if totalWeight == 0 {
		return 0
	}
	return score / totalWeight
}

// sameCoarseKind reports whether two type strings land in the same closed
// category. KindOther never coarse-matches: two unrelated unknown types must
// not score as the same kind of instrument.
func sameCoarseKind(a, b string) bool {
	ka, kb := titledoc.Classify(a), titledoc.Classify(b)
	return ka == kb && ka != titledoc.KindOther
}

func mergeDocuments(existing, duplicate *titledoc.Document, progress titledoc.ProgressFn) {
	if len(existing.AllPageLocations) == 0 {
		existing.AllPageLocations = []titledoc.PageRange{existing.PageLocation}
	}
	if duplicate.PageLocation != (titledoc.PageRange{}) {
		existing.AllPageLocations = append(existing.AllPageLocations, duplicate.PageLocation)
	}

	minStart, maxEnd := 0, 0
	var ranges []string
	for _, p := range existing.AllPageLocations {
		if p.Start > 0 && (minStart == 0 || p.Start < minStart) {
			minStart = p.Start
		}
		if p.End > maxEnd {
			maxEnd = p.End
		}
		ranges = append(ranges, fmt.Sprintf("%d-%d", p.Start, p.End))
	}
	if minStart > 0 && maxEnd > 0 {
		existing.PageLocation.Start = minStart
		existing.PageLocation.End = maxEnd
		existing.PageLocation.Note = "Document appears on multiple pages: " + strings.Join(ranges, ", ")
	}

	// Discharge information must never be silently lost in a merge.
	switch {
	case hasDischargeInfo(duplicate.Notes) && !hasDischargeInfo(existing.Notes):
		progress.Emit("dedupe_documents", "preserving discharge info from duplicate document")
		existing.Notes = duplicate.Notes
	case hasDischargeInfo(existing.Notes):
		// Keep existing notes unchanged.
	case duplicate.Notes != "" && duplicate.Notes != existing.Notes:
		if existing.Notes != "" {
			existing.Notes = existing.Notes + " | " + duplicate.Notes
		} else {
			existing.Notes = duplicate.Notes
		}
	}
}

var dischargeKeywords = []string{
	"discharged",
	"satisfied",
	"released",
	"paid in full",
	"cancelled",
	"terminated",
}

func hasDischargeInfo(notes string) bool {
	if notes == "" {
		return false
	}
	lower := strings.ToLower(notes)
	for _, kw := range dischargeKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func nameSet(names []string) map[string]bool {
	set := map[string]bool{}
	for _, n := range names {
		if v := normalizeSpace(n); v != "" {
			set[v] = true
		}
	}
	return set
}

func overlapRatio(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	common := 0
	for v := range a {
		if b[v] {
			common++
		}
	}
	return float64(common) / float64(max(len(a), len(b)))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
