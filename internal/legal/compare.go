package legal

import "strings"

// Relation classifies how two parsed descriptions relate.
type Relation string

const (
	RelationSame           Relation = "SAME"
	RelationSubset         Relation = "SUBSET"
	RelationSuperset       Relation = "SUPERSET"
	RelationPartialOverlap Relation = "PARTIAL_OVERLAP"
	RelationDifferent      Relation = "DIFFERENT"
)

// Compare evaluates identifier classes in strict priority order: metes and
// bounds, deed reference, tax parcel ID, lot numbers, street address,
// subdivision. The first class populated on both sides decides the result
// (deed references that disagree fall through, since two instruments may cite
// different prior deeds for the same land). Absence of comparable data is
// never reported as a match.
func Compare(a, b *ParsedDescription) Relation {
	if a.MetesBounds != nil && b.MetesBounds != nil {
		startA := strings.ToLower(strings.TrimSpace(a.MetesBounds.StartingPoint))
		startB := strings.ToLower(strings.TrimSpace(b.MetesBounds.StartingPoint))
		if startA != "" && startB != "" && startA == startB {
			return RelationSame
		}
		return RelationDifferent
	}

	if a.DeedReference != nil && b.DeedReference != nil {
		if a.DeedReference.Book == b.DeedReference.Book && a.DeedReference.Page == b.DeedReference.Page {
			return RelationSame
		}
	}

	if a.TaxParcelID != "" && b.TaxParcelID != "" {
		if a.TaxParcelID == b.TaxParcelID {
			return RelationSame
		}
		return RelationDifferent
	}

	if len(a.LotNumbers) > 0 && len(b.LotNumbers) > 0 {
		return compareLotSets(a.LotNumbers, b.LotNumbers)
	}

	if a.StreetAddress != "" && b.StreetAddress != "" {
		if strings.EqualFold(strings.TrimSpace(a.StreetAddress), strings.TrimSpace(b.StreetAddress)) {
			return RelationSame
		}
		return RelationDifferent
	}

	if a.Subdivision != "" && b.Subdivision != "" {
		// Same subdivision without lot-level confirmation still counts.
		if strings.EqualFold(strings.TrimSpace(a.Subdivision), strings.TrimSpace(b.Subdivision)) {
			return RelationSame
		}
		return RelationDifferent
	}

	return RelationDifferent
}

func compareLotSets(a, b []int) Relation {
	setA := intSet(a)
	setB := intSet(b)

	inBoth := 0
	for n := range setA {
		if setB[n] {
			inBoth++
		}
	}

	switch {
	case inBoth == len(setA) && inBoth == len(setB):
		return RelationSame
	case inBoth == len(setA):
		return RelationSubset
	case inBoth == len(setB):
		return RelationSuperset
	case inBoth > 0:
		return RelationPartialOverlap
	default:
		return RelationDifferent
	}
}

func intSet(values []int) map[int]bool {
	set := make(map[int]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
