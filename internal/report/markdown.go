// Package report renders a finished abstract as a markdown document and,
// through headless Chromium, as a PDF.
package report

import (
	"fmt"
	"strings"

	"github.com/joelkehle/title-abstractor/internal/abstractor"
	"github.com/joelkehle/title-abstractor/internal/titledoc"
)

// RenderMarkdown produces the full abstract report: a cover summary followed
// by one numbered entry per document in final chronological order.
func RenderMarkdown(abs abstractor.Abstract) string {
	if len(abs.Documents) == 0 {
		return "No documents found in the processed file."
	}

	var sections []string
	sections = append(sections, renderCover(abs))
	for i, doc := range abs.Documents {
		sections = append(sections, renderEntry(doc, i+1))
	}

	footer := fmt.Sprintf("\n---\n\n**Total pages processed:** %d", abs.Review.TotalPagesProcessed)
	return strings.Join(sections, "\n---\n\n") + footer
}

func renderCover(abs abstractor.Abstract) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Abstract of Title: %s\n\n", abs.Source.FileName)
	fmt.Fprintf(&b, "**Documents extracted:** %d  \n", abs.Review.DocumentsExtracted)
	fmt.Fprintf(&b, "**Chains:** %d (%d verified)  \n", abs.Chains.Summary.TotalChains, abs.Chains.Summary.VerifiedChains)
	fmt.Fprintf(&b, "**Issues:** %d\n\n", abs.Chains.Summary.TotalIssues)

	if len(abs.Review.ChainWarnings) > 0 {
		b.WriteString("### Warnings\n\n")
		for _, w := range abs.Review.ChainWarnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		b.WriteString("\n")
	}
	for _, issue := range abs.Chains.Issues {
		fmt.Fprintf(&b, "> **%s (%s):** %s\n\n", issue.Type, issue.Severity, issue.Message)
	}
	return b.String()
}

// renderEntry writes one numbered abstract entry: parties, the key-details
// table, the verbatim property description (or its cross reference), clauses
// and the extraction confidence.
func renderEntry(doc titledoc.Document, n int) string {
	var b strings.Builder

	docType := doc.DocumentType
	if docType == "" {
		docType = "DOCUMENT"
	}
	fmt.Fprintf(&b, "## %d. %s\n\n", n, docType)

	fromLabel := orDefault(doc.Parties.FromLabel, "From")
	toLabel := orDefault(doc.Parties.ToLabel, "To")
	fmt.Fprintf(&b, "**%s:** %s  \n", fromLabel, formatNames(doc.Parties.From, doc.Parties.AKA))
	fmt.Fprintf(&b, "**%s:** %s\n\n", toLabel, formatNames(doc.Parties.To, nil))

	b.WriteString("| Field | Value |\n")
	b.WriteString("|:------|:------|\n")
	fmt.Fprintf(&b, "| **Instrument Date** | %s |\n", orDefault(doc.Dates.InstrumentDate, "N/A"))
	fmt.Fprintf(&b, "| **Acknowledged Date** | %s |\n", orDefault(doc.Dates.AcknowledgedDate, "N/A"))
	fmt.Fprintf(&b, "| **Record Date** | %s |\n", orDefault(doc.Dates.RecordDate, "N/A"))
	fmt.Fprintf(&b, "| **Instrument Location** | %s |\n", orDefault(doc.Recording.LocationInstrumentNumber, "N/A"))
	fmt.Fprintf(&b, "| **County** | %s |\n", orDefault(doc.Recording.County, "N/A"))
	if doc.Monetary.Consideration != "" {
		fmt.Fprintf(&b, "| **Consideration** | %s |\n", doc.Monetary.Consideration)
	}
	if doc.Monetary.MortgageAmount != "" {
		fmt.Fprintf(&b, "| **Mortgage Amount** | %s |\n", doc.Monetary.MortgageAmount)
	}
	if doc.Monetary.TransferTax != "" {
		fmt.Fprintf(&b, "| **Transfer Taxes** | %s |\n", doc.Monetary.TransferTax)
	}
	b.WriteString("\n")

	subject := doc.Property.LegalDescription
	if doc.Comparison.IsSameAsPrior && doc.Comparison.SameAsEntryNumber > 0 {
		subject = fmt.Sprintf("Same premises as described in entry #%d", doc.Comparison.SameAsEntryNumber)
	}
	if subject == "" {
		subject = "N/A"
	}
	fmt.Fprintf(&b, "### Property Description\n%s\n\n", subject)

	if doc.Property.TaxParcel != "" {
		fmt.Fprintf(&b, "**Tax Parcel ID:** %s\n\n", doc.Property.TaxParcel)
	}

	writeClause(&b, "Being Same Premises", doc.Clauses.BeingSamePremises)
	writeClause(&b, "Subject To", doc.Clauses.SubjectTo)
	writeClause(&b, "Together With", doc.Clauses.TogetherWith)
	writeClause(&b, "Excepting and Reserving", doc.Clauses.ExceptingReserving)

	if doc.Notes != "" {
		fmt.Fprintf(&b, "**Notes:**  \n%s\n\n", doc.Notes)
	}

	confidence := 0
	if doc.Quality != nil {
		confidence = doc.Quality.Confidence
	}
	fmt.Fprintf(&b, "**Confidence:** %d%%\n\n", confidence)

	return b.String()
}

// formatNames joins party names with "; ", appending a/k/a aliases by
// position where present.
func formatNames(names, aka []string) string {
	if len(names) == 0 {
		return "N/A"
	}
	out := make([]string, 0, len(names))
	for i, n := range names {
		if n == "" {
			continue
		}
		if i < len(aka) && strings.TrimSpace(aka[i]) != "" {
			n = fmt.Sprintf("%s (a/k/a %s)", n, strings.TrimSpace(aka[i]))
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return "N/A"
	}
	return strings.Join(out, "; ")
}

func writeClause(b *strings.Builder, label, text string) {
	if text == "" {
		return
	}
	fmt.Fprintf(b, "**%s:**  \n%s\n\n", label, text)
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
