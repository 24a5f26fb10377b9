package legal

import "testing"

func lots(nums ...int) *ParsedDescription {
	return &ParsedDescription{LotNumbers: nums}
}

func TestCompareMetesBoundsStartingPoint(t *testing.T) {
	a := &ParsedDescription{MetesBounds: &MetesBounds{StartingPoint: "an iron pipe at the corner"}}
	b := &ParsedDescription{MetesBounds: &MetesBounds{StartingPoint: "  AN IRON PIPE AT THE CORNER "}}
	if got := Compare(a, b); got != RelationSame {
		t.Fatalf("matching starting points: got %s", got)
	}
	c := &ParsedDescription{MetesBounds: &MetesBounds{StartingPoint: "a stone monument"}}
	if got := Compare(a, c); got != RelationDifferent {
		t.Fatalf("different starting points: got %s", got)
	}
}

func TestCompareMetesBoundsOutranksLots(t *testing.T) {
	a := &ParsedDescription{MetesBounds: &MetesBounds{StartingPoint: "point A"}, LotNumbers: []int{1}}
	b := &ParsedDescription{MetesBounds: &MetesBounds{StartingPoint: "point B"}, LotNumbers: []int{1}}
	if got := Compare(a, b); got != RelationDifferent {
		t.Fatalf("metes and bounds must decide before lot numbers: got %s", got)
	}
}

func TestCompareDeedReference(t *testing.T) {
	a := &ParsedDescription{DeedReference: &DeedReference{Book: "1234", Page: "567"}}
	b := &ParsedDescription{DeedReference: &DeedReference{Book: "1234", Page: "567"}}
	if got := Compare(a, b); got != RelationSame {
		t.Fatalf("matching deed refs: got %s", got)
	}
}

func TestCompareDeedReferenceMismatchFallsThrough(t *testing.T) {
	// Two instruments citing different prior deeds can still describe the
	// same parcel; a mismatched reference defers to the next identifier.
	a := &ParsedDescription{DeedReference: &DeedReference{Book: "1", Page: "2"}, TaxParcelID: "123-45-6"}
	b := &ParsedDescription{DeedReference: &DeedReference{Book: "3", Page: "4"}, TaxParcelID: "123-45-6"}
	if got := Compare(a, b); got != RelationSame {
		t.Fatalf("expected fall-through to tax parcel, got %s", got)
	}
}

func TestCompareTaxParcelOutranksLots(t *testing.T) {
	a := &ParsedDescription{TaxParcelID: "123-45-6", LotNumbers: []int{1, 2}}
	b := &ParsedDescription{TaxParcelID: "123-45-6", LotNumbers: []int{7, 8}}
	if got := Compare(a, b); got != RelationSame {
		t.Fatalf("tax parcel ID outranks lot numbers: got %s", got)
	}
}

func TestCompareLotSets(t *testing.T) {
	cases := []struct {
		a, b *ParsedDescription
		want Relation
	}{
		{lots(1, 2, 3), lots(1, 2, 3), RelationSame},
		{lots(1, 2), lots(1, 2, 3), RelationSubset},
		{lots(1, 2, 3), lots(2, 3), RelationSuperset},
		{lots(1, 2), lots(2, 3), RelationPartialOverlap},
		{lots(1, 2), lots(3, 4), RelationDifferent},
	}
	for _, c := range cases {
		if got := Compare(c.a, c.b); got != c.want {
			t.Errorf("Compare(%v, %v) = %s, want %s", c.a.LotNumbers, c.b.LotNumbers, got, c.want)
		}
	}
}

func TestCompareStreetAddress(t *testing.T) {
	a := &ParsedDescription{StreetAddress: "123 Main Street"}
	b := &ParsedDescription{StreetAddress: "123 MAIN STREET"}
	if got := Compare(a, b); got != RelationSame {
		t.Fatalf("case-insensitive address match: got %s", got)
	}
	c := &ParsedDescription{StreetAddress: "456 Oak Avenue"}
	if got := Compare(a, c); got != RelationDifferent {
		t.Fatalf("different addresses: got %s", got)
	}
}

func TestCompareSubdivision(t *testing.T) {
	a := &ParsedDescription{Subdivision: "Oak Hill Estates"}
	b := &ParsedDescription{Subdivision: "oak hill estates"}
	if got := Compare(a, b); got != RelationSame {
		t.Fatalf("subdivision match: got %s", got)
	}
}

func TestCompareConservativeDefault(t *testing.T) {
	// No identifier class is populated on both sides: never a match.
	a := &ParsedDescription{LotNumbers: []int{5}}
	b := &ParsedDescription{StreetAddress: "123 Main Street"}
	if got := Compare(a, b); got != RelationDifferent {
		t.Fatalf("mismatched identifier classes: got %s", got)
	}
	if got := Compare(&ParsedDescription{}, &ParsedDescription{}); got != RelationDifferent {
		t.Fatalf("empty descriptions: got %s", got)
	}
}
