package analyzer

import "testing"

func TestDescriptionsMatchExact(t *testing.T) {
	a := "Lot 5, Block 2, Genesee Manor"
	b := "lot 5,  block 2, genesee manor"
	if !DescriptionsMatch(a, b) {
		t.Fatalf("expected normalized equality to match")
	}
}

func TestDescriptionsMatchEmpty(t *testing.T) {
	if DescriptionsMatch("", "Lot 5") {
		t.Fatalf("empty description must not match")
	}
	if DescriptionsMatch("Lot 5", "") {
		t.Fatalf("empty description must not match")
	}
}

func TestDescriptionsMatchAbbreviations(t *testing.T) {
	a := "100 ft. along Main St. running N. to the corner"
	b := "100 feet along Main Street running North to the corner"
	if !DescriptionsMatch(a, b) {
		t.Fatalf("abbreviation expansion should reconcile the two forms")
	}
}

func TestDescriptionsMatchSubstring(t *testing.T) {
	long := "Beginning at a point on the east side of Main Street, thence running north 100 feet to a stake, thence east 50 feet"
	short := "Beginning at a point on the east side of Main Street, thence running north 100 feet"
	if !DescriptionsMatch(long, short) {
		t.Fatalf("substantial substring containment should match")
	}
}

func TestDescriptionsMatchDissimilar(t *testing.T) {
	if DescriptionsMatch("Lot 5", "qwerty 99 zx") {
		t.Fatalf("dissimilar descriptions must not match")
	}
}

func TestDescriptionsMatchIdentifiers(t *testing.T) {
	a := "All that lot known as Lot No. 12 in Block 3 of the subdivision"
	b := "Lot 12, Block 3, as shown on the recorded map"
	if !DescriptionsMatch(a, b) {
		t.Fatalf("matching lot and block identifiers should match")
	}
}

func TestDescriptionsMatchIdentifierMismatch(t *testing.T) {
	a := "Lot 12 Hillcrest subdivision"
	b := "Lot 47 on the map of Greenfield Estates"
	if DescriptionsMatch(a, b) {
		t.Fatalf("different lot numbers must not match")
	}
}

func TestDescriptionsMatchParcel(t *testing.T) {
	a := "Tax Map No. 45.17-2-10 in the Town of Amherst"
	b := "Parcel 45.17-2-10, Town of Amherst, Erie County"
	if !DescriptionsMatch(a, b) {
		t.Fatalf("matching parcel identifiers should match")
	}
}

func TestCharSetJaccard(t *testing.T) {
	if got := charSetJaccard("abc", "abc"); got != 1.0 {
		t.Fatalf("identical strings: got %v, want 1.0", got)
	}
	if got := charSetJaccard("abc", "xyz"); got != 0 {
		t.Fatalf("disjoint strings: got %v, want 0", got)
	}
}
