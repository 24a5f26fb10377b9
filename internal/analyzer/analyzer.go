// Package analyzer normalizes the extracted document sequence: it parses the
// free-text record dates, orders documents chronologically, cross-references
// repeated legal descriptions, and reports timeline anomalies as warnings.
package analyzer

import (
	"fmt"
	"sort"
	"time"

	"github.com/joelkehle/title-abstractor/internal/titledoc"
)

// GapWarningYears is the timeline gap between consecutive dated documents
// beyond which a warning is emitted.
const GapWarningYears = 5

// Result is the immutable output of Analyze. Documents are copies of the
// input in final chronological order with Comparison computed and a stable ID
// assigned; the input slice is never modified.
type Result struct {
	Documents []titledoc.Document
	Warnings  []string
}

// Analyze sorts documents by parsed record date (documents without a
// parseable date keep their relative input order at the end), computes the
// same-as-prior cross references, and collects warnings for missing dates,
// ordering anomalies and timeline gaps. It is the single point where each
// document's stable ID is assigned for the run.
func Analyze(docs []titledoc.Document, progress titledoc.ProgressFn) Result {
	if len(docs) == 0 {
		return Result{Warnings: []string{"No documents to analyze"}}
	}

	var warnings []string

	type datedDoc struct {
		doc    titledoc.Document
		parsed time.Time
	}
	var dated []datedDoc
	var undated []titledoc.Document

	for i := range docs {
		doc := docs[i]
		raw := doc.Dates.RecordDate
		if raw == "" || raw == "None" {
			warnings = append(warnings, fmt.Sprintf("Document %d (%s): missing record date", i+1, typeOrUnknown(doc.DocumentType)))
			undated = append(undated, doc)
			continue
		}
		parsed, ok := titledoc.ParseRecordDate(raw)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("Document %d: could not parse record date %q", i+1, raw))
			undated = append(undated, doc)
			continue
		}
		dated = append(dated, datedDoc{doc: doc, parsed: parsed})
	}

	// Stable sort so equal dates keep extraction order.
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].parsed.Before(dated[j].parsed)
	})

	sorted := make([]titledoc.Document, 0, len(docs))
	for _, d := range dated {
		sorted = append(sorted, d.doc)
	}
	sorted = append(sorted, undated...)

	// Guard against inversions surviving the sort (equal-date ties resolved
	// unexpectedly would show up here).
	for i := 0; i+1 < len(dated); i++ {
		if dated[i].parsed.After(dated[i+1].parsed) {
			warnings = append(warnings, fmt.Sprintf("date order issue between documents %d and %d", i+1, i+2))
		}
	}

	// Cross-reference each description against every prior document; the
	// first prior match wins.
	for i := range sorted {
		current := sorted[i].Property.LegalDescription
		if current == "" {
			continue
		}
		sameAs := 0
		for j := 0; j < i; j++ {
			if DescriptionsMatch(current, sorted[j].Property.LegalDescription) {
				sameAs = j + 1
				break
			}
		}
		if sameAs > 0 {
			sorted[i].Comparison = titledoc.Comparison{
				IsSameAsPrior:     true,
				SameAsEntryNumber: sameAs,
				DifferenceSummary: fmt.Sprintf("Same as entry #%d", sameAs),
			}
		} else {
			cmp := titledoc.Comparison{IsSameAsPrior: false}
			if i > 0 {
				cmp.DifferenceSummary = "Different parcel or first occurrence"
			}
			sorted[i].Comparison = cmp
		}
	}

	for i := range sorted {
		cmp := sorted[i].Comparison
		if cmp.IsSameAsPrior && cmp.SameAsEntryNumber > i+1 {
			warnings = append(warnings, fmt.Sprintf("Document %d: references entry #%d which comes after it", i+1, cmp.SameAsEntryNumber))
		}
	}

	for i := 0; i+1 < len(dated); i++ {
		gapYears := dated[i+1].parsed.Sub(dated[i].parsed).Hours() / 24 / 365.25
		if gapYears > GapWarningYears {
			warnings = append(warnings, fmt.Sprintf("Large time gap (%d years) between documents %d and %d", int(gapYears), i+1, i+2))
		}
	}

	// The stable document ID for the run is fixed here, once, on the final
	// sequence; later stages never recompute it from list position.
	for i := range sorted {
		sorted[i].ID = i + 1
	}

	progress.Emit("analyze", fmt.Sprintf("%d document(s) ordered, %d warning(s)", len(sorted), len(warnings)))
	return Result{Documents: sorted, Warnings: warnings}
}

func typeOrUnknown(documentType string) string {
	if documentType == "" {
		return "Unknown"
	}
	return documentType
}

