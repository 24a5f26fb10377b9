// Package titledoc defines the document records shared by every stage of the
// title abstraction pipeline: the lightweight inventory entries produced by
// the first extraction pass, the fully extracted instruments produced by the
// second, and the issue records emitted by chain verification.
package titledoc

// Parties holds the ordered party names of an instrument. From is the
// conveying side (grantor, mortgagor), To the receiving side (grantee,
// mortgagee). Either may be empty.
type Parties struct {
	FromLabel string   `json:"fromLabel,omitempty"`
	ToLabel   string   `json:"toLabel,omitempty"`
	From      []string `json:"from"`
	To        []string `json:"to"`
	AKA       []string `json:"aka,omitempty"`
}

// Dates carries free-text date strings exactly as extracted. No format is
// guaranteed; ParseRecordDate is the only sanctioned way to interpret them.
type Dates struct {
	RecordDate       string `json:"recordDate,omitempty"`
	InstrumentDate   string `json:"instrumentDate,omitempty"`
	AcknowledgedDate string `json:"acknowledgedDate,omitempty"`
}

// Recording identifies where the instrument was officially filed, e.g.
// "Book 1131 Page 140" or an instrument number.
type Recording struct {
	LocationInstrumentNumber string `json:"locationInstrumentNumber,omitempty"`
	County                   string `json:"county,omitempty"`
}

type Property struct {
	LegalDescription string `json:"legalDescription,omitempty"`
	TaxParcel        string `json:"taxParcel,omitempty"`
	Municipality     string `json:"municipality,omitempty"`
}

type Monetary struct {
	Consideration  string `json:"consideration,omitempty"`
	MortgageAmount string `json:"mortgageAmount,omitempty"`
	TransferTax    string `json:"transferTax,omitempty"`
}

// Clauses holds verbatim clause text captured during detail extraction.
type Clauses struct {
	BeingSamePremises  string `json:"beingSamePremises,omitempty"`
	SubjectTo          string `json:"subjectTo,omitempty"`
	TogetherWith       string `json:"togetherWith,omitempty"`
	ExceptingReserving string `json:"exceptingReserving,omitempty"`
}

type PageRange struct {
	Start int    `json:"start,omitempty"`
	End   int    `json:"end,omitempty"`
	Note  string `json:"note,omitempty"`
}

// Comparison is computed by the analyzer, never extracted. SameAsEntryNumber
// is the 1-based position of the first earlier document in the final sequence
// whose legal description matches this one.
type Comparison struct {
	IsSameAsPrior     bool   `json:"isSameAsPrior"`
	SameAsEntryNumber int    `json:"sameAsEntryNumber,omitempty"`
	DifferenceSummary string `json:"differenceSummary,omitempty"`
}

type Quality struct {
	Confidence int      `json:"confidence"`
	Flags      []string `json:"flags,omitempty"`
	Comments   string   `json:"comments,omitempty"`
}

// Document is one extracted legal instrument. ID is a stable identifier
// assigned exactly once per pipeline run, after deduplication and
// chronological normalization fix the run's document sequence; it is never
// recomputed from list position afterward, so issues and relationships can
// reference it safely across re-sorts.
type Document struct {
	ID               int         `json:"docId,omitempty"`
	DocumentType     string      `json:"documentType"`
	Category         string      `json:"category,omitempty"`
	Parties          Parties     `json:"parties"`
	Dates            Dates       `json:"dates"`
	Recording        Recording   `json:"recording"`
	Monetary         Monetary    `json:"monetary,omitempty"`
	Property         Property    `json:"property"`
	Clauses          Clauses     `json:"clauses,omitempty"`
	Comparison       Comparison  `json:"legalDescriptionComparison"`
	PageLocation     PageRange   `json:"pageLocation,omitempty"`
	AllPageLocations []PageRange `json:"allPageLocations,omitempty"`
	Notes            string      `json:"notes,omitempty"`
	Quality          *Quality    `json:"quality,omitempty"`
}

// InventoryEntry is the pass-1 forecast of a Document: enough to plan the
// detailed extraction calls, nothing more.
type InventoryEntry struct {
	ID         int       `json:"id,omitempty"`
	Type       string    `json:"type"`
	From       []string  `json:"from,omitempty"`
	To         []string  `json:"to,omitempty"`
	RecordDate string    `json:"recordDate,omitempty"`
	Pages      PageRange `json:"pages"`
}

type IssueType string

const (
	IssueBrokenChain IssueType = "BROKEN_CHAIN"
	IssueOverlap     IssueType = "OVERLAP"
)

type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityWarning  Severity = "WARNING"
	SeverityInfo     Severity = "INFO"
)

// Issue is a structural finding surfaced for human review. Every issue names
// a concrete document pair so the finding is independently verifiable.
type Issue struct {
	Type     IssueType `json:"type"`
	Severity Severity  `json:"severity"`
	DocA     int       `json:"doc_a"`
	DocB     int       `json:"doc_b"`
	ChainID  string    `json:"chain_id,omitempty"`
	ChainA   string    `json:"chain_a,omitempty"`
	ChainB   string    `json:"chain_b,omitempty"`
	Message  string    `json:"message"`
}

// ProgressFn receives stage progress messages from pipeline code. A nil
// ProgressFn is always safe; the pipeline itself never prints.
type ProgressFn func(stage, message string)

// Emit calls fn if it is non-nil.
func (fn ProgressFn) Emit(stage, message string) {
	if fn != nil {
		fn(stage, message)
	}
}
