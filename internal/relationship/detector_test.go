package relationship

import (
	"reflect"
	"testing"

	"github.com/joelkehle/title-abstractor/internal/legal"
	"github.com/joelkehle/title-abstractor/internal/titledoc"
)

func doc(id int, docType, recordDate, legal string, from ...string) titledoc.Document {
	return titledoc.Document{
		ID:           id,
		DocumentType: docType,
		Dates:        titledoc.Dates{RecordDate: recordDate},
		Property:     titledoc.Property{LegalDescription: legal},
		Parties:      titledoc.Parties{From: from},
	}
}

func TestAnalyzeAllPairCount(t *testing.T) {
	docs := []titledoc.Document{
		doc(1, "Deed", "January 1, 2000", "Lot 5, Block 2"),
		doc(2, "Deed", "January 1, 2001", "Lot 5, Block 2"),
		doc(3, "Mortgage", "January 1, 2002", "Lot 9"),
	}
	res := AnalyzeAll(docs, nil)
	if len(res.Relationships) != 3 {
		t.Fatalf("expected 3 pairs, got %d", len(res.Relationships))
	}
	for _, rel := range res.Relationships {
		if rel.DocA >= rel.DocB {
			t.Fatalf("pair not ordered: %d >= %d", rel.DocA, rel.DocB)
		}
	}
	if len(res.Parsed) != 3 {
		t.Fatalf("expected 3 parsed descriptions, got %d", len(res.Parsed))
	}
}

func TestAnalyzeAllGroupsSameIntoChain(t *testing.T) {
	legalDesc := "Lot 5, Block 2 of the Hillcrest Subdivision"
	docs := []titledoc.Document{
		doc(1, "Warranty Deed", "January 1, 2000", legalDesc, "Alice Adams"),
		doc(2, "Mortgage", "March 1, 2001", legalDesc, "Bob Baker"),
		doc(3, "Warranty Deed", "June 1, 2002", legalDesc, "Bob Baker"),
	}
	res := AnalyzeAll(docs, nil)
	if len(res.Chains) != 1 {
		t.Fatalf("expected one chain, got %d", len(res.Chains))
	}
	c := res.Chains[0]
	if !reflect.DeepEqual(c.DocumentIDs, []int{1, 2, 3}) {
		t.Fatalf("chain members: %v", c.DocumentIDs)
	}
	if c.FirstOwner != "Alice Adams" {
		t.Fatalf("first owner: %q", c.FirstOwner)
	}
	if c.EarliestDate != "January 1, 2000" {
		t.Fatalf("earliest date: %q", c.EarliestDate)
	}
}

func TestAnalyzeAllDeedSingleton(t *testing.T) {
	docs := []titledoc.Document{
		doc(1, "Quitclaim Deed", "January 1, 2000", "Lot 5"),
		doc(2, "Mortgage", "January 1, 2001", "Lot 77"),
	}
	res := AnalyzeAll(docs, nil)
	if len(res.Chains) != 1 {
		t.Fatalf("expected one chain, got %d", len(res.Chains))
	}
	if !reflect.DeepEqual(res.Chains[0].DocumentIDs, []int{1}) {
		t.Fatalf("chain members: %v", res.Chains[0].DocumentIDs)
	}
}

func TestAnalyzeAllNonDeedOrphanNotChained(t *testing.T) {
	docs := []titledoc.Document{
		doc(1, "Mortgage", "January 1, 2000", "Lot 5"),
	}
	res := AnalyzeAll(docs, nil)
	if len(res.Chains) != 0 {
		t.Fatalf("expected no chains, got %d", len(res.Chains))
	}
}

func TestAnalyzeAllChainsSortedByEarliestDate(t *testing.T) {
	docs := []titledoc.Document{
		doc(1, "Deed", "January 1, 2010", "Lot 5"),
		doc(2, "Deed", "January 1, 1990", "Lot 77"),
	}
	res := AnalyzeAll(docs, nil)
	if len(res.Chains) != 2 {
		t.Fatalf("expected two chains, got %d", len(res.Chains))
	}
	if res.Chains[0].EarliestDate != "January 1, 1990" {
		t.Fatalf("oldest chain should sort first, got %q", res.Chains[0].EarliestDate)
	}
}

func TestAnalyzeAllEarliestDateIgnoresUnparseable(t *testing.T) {
	docs := []titledoc.Document{
		doc(1, "Deed", "not a date at all", "Lot 5"),
		doc(2, "Deed", "January 1, 2001", "Lot 5"),
	}
	res := AnalyzeAll(docs, nil)
	if len(res.Chains) != 1 {
		t.Fatalf("expected one chain, got %d", len(res.Chains))
	}
	if res.Chains[0].EarliestDate != "January 1, 2001" {
		t.Fatalf("earliest date should skip unparseable values, got %q", res.Chains[0].EarliestDate)
	}

	undated := []titledoc.Document{
		doc(1, "Deed", "illegible stamp", "Lot 5"),
	}
	res = AnalyzeAll(undated, nil)
	if res.Chains[0].EarliestDate != "Unknown" {
		t.Fatalf("chain with no parseable dates should report Unknown, got %q", res.Chains[0].EarliestDate)
	}
}

func TestAnalyzeAllSplitDetection(t *testing.T) {
	docs := []titledoc.Document{
		doc(1, "Deed", "January 1, 2000", "Lots 1, 2, 3 and 4 of the Hillcrest tract"),
		doc(2, "Deed", "January 1, 2005", "Lot 2 of the Hillcrest tract"),
	}
	res := AnalyzeAll(docs, nil)
	if len(res.Chains) != 2 {
		t.Fatalf("expected two chains, got %d", len(res.Chains))
	}
	parent := res.Chains[0]
	child := res.Chains[1]
	if !reflect.DeepEqual(parent.DocumentIDs, []int{1}) || !reflect.DeepEqual(child.DocumentIDs, []int{2}) {
		t.Fatalf("unexpected chain membership: %v / %v", parent.DocumentIDs, child.DocumentIDs)
	}
	if child.Parent != parent.ChainID {
		t.Fatalf("child parent: %q, want %q", child.Parent, parent.ChainID)
	}
	if len(parent.Children) != 1 || parent.Children[0] != child.ChainID {
		t.Fatalf("parent children: %v", parent.Children)
	}
}

func TestDescribeProperty(t *testing.T) {
	cases := []struct {
		name   string
		parsed legal.ParsedDescription
		want   string
	}{
		{"single lot", legal.ParsedDescription{LotNumbers: []int{5}}, "Lot 5"},
		{"few lots", legal.ParsedDescription{LotNumbers: []int{1, 2, 3}}, "Lots 1, 2, 3"},
		{"many lots", legal.ParsedDescription{LotNumbers: []int{1, 2, 3, 4, 5}}, "Lots 1-5 and others"},
		{"lot and subdivision", legal.ParsedDescription{LotNumbers: []int{5}, Subdivision: `Genesee Manor Section "D"`}, "Lot 5, Genesee Manor Section D"},
		{"block", legal.ParsedDescription{LotNumbers: []int{5}, BlockNumbers: []int{2}}, "Lot 5, Block 2"},
		{"address fallback", legal.ParsedDescription{StreetAddress: "123 Main Street"}, "123 Main Street"},
		{"tax fallback", legal.ParsedDescription{TaxParcelID: "45.17-2-10"}, "Tax Parcel 45.17-2-10"},
		{"empty", legal.ParsedDescription{}, "Property description unavailable"},
	}
	for _, tc := range cases {
		if got := describeProperty(&tc.parsed); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}
