package analyzer

import (
	"strings"
	"testing"

	"github.com/joelkehle/title-abstractor/internal/titledoc"
)

func doc(docType, recordDate, legal string) titledoc.Document {
	return titledoc.Document{
		DocumentType: docType,
		Dates:        titledoc.Dates{RecordDate: recordDate},
		Property:     titledoc.Property{LegalDescription: legal},
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	res := Analyze(nil, nil)
	if len(res.Documents) != 0 {
		t.Fatalf("expected no documents, got %d", len(res.Documents))
	}
	if len(res.Warnings) != 1 || res.Warnings[0] != "No documents to analyze" {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}
}

func TestAnalyzeSortsByRecordDate(t *testing.T) {
	docs := []titledoc.Document{
		doc("Mortgage", "March 15, 1962", ""),
		doc("Deed", "January 5, 1950", ""),
		doc("Deed", "7/1/1955", ""),
	}
	res := Analyze(docs, nil)
	got := []string{res.Documents[0].Dates.RecordDate, res.Documents[1].Dates.RecordDate, res.Documents[2].Dates.RecordDate}
	want := []string{"January 5, 1950", "7/1/1955", "March 15, 1962"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAnalyzeAssignsStableIDs(t *testing.T) {
	docs := []titledoc.Document{
		doc("Deed", "March 15, 1962", ""),
		doc("Deed", "January 5, 1950", ""),
	}
	res := Analyze(docs, nil)
	for i, d := range res.Documents {
		if d.ID != i+1 {
			t.Fatalf("document %d: got ID %d", i, d.ID)
		}
	}
	// Input must not be mutated.
	if docs[0].ID != 0 || docs[1].ID != 0 {
		t.Fatalf("input slice was mutated: %d %d", docs[0].ID, docs[1].ID)
	}
}

func TestAnalyzeUndatedKeepInputOrderAtEnd(t *testing.T) {
	docs := []titledoc.Document{
		doc("Mortgage", "", ""),
		doc("Deed", "January 5, 1950", ""),
		doc("Lien", "None", ""),
		doc("Easement", "not a date", ""),
	}
	res := Analyze(docs, nil)
	if res.Documents[0].DocumentType != "Deed" {
		t.Fatalf("dated document should come first, got %s", res.Documents[0].DocumentType)
	}
	tail := []string{res.Documents[1].DocumentType, res.Documents[2].DocumentType, res.Documents[3].DocumentType}
	want := []string{"Mortgage", "Lien", "Easement"}
	for i := range want {
		if tail[i] != want[i] {
			t.Fatalf("undated order position %d: got %s, want %s", i, tail[i], want[i])
		}
	}
}

func TestAnalyzeMissingDateWarnings(t *testing.T) {
	docs := []titledoc.Document{
		doc("Mortgage", "", ""),
		doc("", "None", ""),
		doc("Deed", "garbage", ""),
	}
	res := Analyze(docs, nil)
	if len(res.Warnings) != 3 {
		t.Fatalf("expected 3 warnings, got %v", res.Warnings)
	}
	if res.Warnings[0] != "Document 1 (Mortgage): missing record date" {
		t.Fatalf("warning 0: %q", res.Warnings[0])
	}
	if res.Warnings[1] != "Document 2 (Unknown): missing record date" {
		t.Fatalf("warning 1: %q", res.Warnings[1])
	}
	if res.Warnings[2] != `Document 3: could not parse record date "garbage"` {
		t.Fatalf("warning 2: %q", res.Warnings[2])
	}
}

func TestAnalyzeSameAsPrior(t *testing.T) {
	legal := "Lot 5, Block 2, Genesee Manor Subdivision, Town of Amherst"
	docs := []titledoc.Document{
		doc("Deed", "January 5, 1950", legal),
		doc("Mortgage", "March 1, 1951", "Lot 9, Block 4, a different parcel entirely"),
		doc("Deed", "June 2, 1952", legal),
	}
	res := Analyze(docs, nil)

	first := res.Documents[0].Comparison
	if first.IsSameAsPrior || first.DifferenceSummary != "" {
		t.Fatalf("first document should have empty comparison, got %+v", first)
	}
	second := res.Documents[1].Comparison
	if second.IsSameAsPrior || second.DifferenceSummary != "Different parcel or first occurrence" {
		t.Fatalf("second comparison: %+v", second)
	}
	third := res.Documents[2].Comparison
	if !third.IsSameAsPrior || third.SameAsEntryNumber != 1 || third.DifferenceSummary != "Same as entry #1" {
		t.Fatalf("third comparison: %+v", third)
	}
}

func TestAnalyzeFirstPriorMatchWins(t *testing.T) {
	legal := "Lot 5, Block 2, Genesee Manor Subdivision, Town of Amherst"
	docs := []titledoc.Document{
		doc("Deed", "January 5, 1950", legal),
		doc("Deed", "March 1, 1951", legal),
		doc("Deed", "June 2, 1952", legal),
	}
	res := Analyze(docs, nil)
	if res.Documents[2].Comparison.SameAsEntryNumber != 1 {
		t.Fatalf("expected earliest matching entry, got #%d", res.Documents[2].Comparison.SameAsEntryNumber)
	}
}

func TestAnalyzeGapWarning(t *testing.T) {
	docs := []titledoc.Document{
		doc("Deed", "January 5, 1950", ""),
		doc("Deed", "January 5, 1957", ""),
		doc("Mortgage", "March 1, 1958", ""),
	}
	res := Analyze(docs, nil)

	var gaps []string
	for _, w := range res.Warnings {
		if strings.HasPrefix(w, "Large time gap") {
			gaps = append(gaps, w)
		}
	}
	if len(gaps) != 1 {
		t.Fatalf("expected exactly one gap warning, got %v", gaps)
	}
	if gaps[0] != "Large time gap (7 years) between documents 1 and 2" {
		t.Fatalf("gap warning: %q", gaps[0])
	}
}

func TestAnalyzeNoGapWarningWithinThreshold(t *testing.T) {
	docs := []titledoc.Document{
		doc("Deed", "January 5, 1950", ""),
		doc("Deed", "January 5, 1955", ""),
	}
	res := Analyze(docs, nil)
	for _, w := range res.Warnings {
		if strings.HasPrefix(w, "Large time gap") {
			t.Fatalf("unexpected gap warning: %q", w)
		}
	}
}

func TestAnalyzeProgressCallback(t *testing.T) {
	var stages []string
	progress := func(stage, message string) { stages = append(stages, stage) }
	Analyze([]titledoc.Document{doc("Deed", "January 5, 1950", "")}, progress)
	if len(stages) != 1 || stages[0] != "analyze" {
		t.Fatalf("progress stages: %v", stages)
	}
}
