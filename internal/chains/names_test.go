package chains

import "testing"

func TestNormalizeName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"John Smith", "john smith"},
		{"John Smith Jr.", "john smith"},
		{"John Smith III", "john smith"},
		{"Henry H. Rouse", "henry h rouse"},
		{"Acme Corporation", "acme corp"},
		{"Acme Incorporated", "acme inc"},
		{"Smith  and   Sons Company", "smith and sons co"},
		{"O'Brien, Mary", "obrien mary"},
	}
	for _, tc := range cases {
		if got := NormalizeName(tc.in); got != tc.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNamesMatchIdentical(t *testing.T) {
	if !NamesMatch("john smith", "john smith") {
		t.Fatal("identical names must match")
	}
}

func TestNamesMatchInitial(t *testing.T) {
	if !NamesMatch(NormalizeName("John Smith"), NormalizeName("J. Smith")) {
		t.Fatal("single initial should expand to the full first name")
	}
	if !NamesMatch(NormalizeName("J. Smith"), NormalizeName("John Smith")) {
		t.Fatal("initial match must be symmetric")
	}
}

func TestNamesMatchCorporate(t *testing.T) {
	if !NamesMatch(NormalizeName("Acme Corporation"), NormalizeName("ACME CORP.")) {
		t.Fatal("corporate designator variations must match")
	}
}

func TestNamesMatchLastNameOnly(t *testing.T) {
	if !NamesMatch("smith", "john smith") {
		t.Fatal("bare surname should match a full name sharing it")
	}
}

func TestNamesMatchDifferentFirstNames(t *testing.T) {
	if NamesMatch("john smith", "mary smith") {
		t.Fatal("conflicting first names must not match")
	}
}

func TestNamesMatchDifferentLastNames(t *testing.T) {
	if NamesMatch("john smith", "john jones") {
		t.Fatal("different surnames must not match")
	}
}

func TestNamesMatchEmpty(t *testing.T) {
	if NamesMatch("", "john smith") {
		t.Fatal("empty name must not match")
	}
}
