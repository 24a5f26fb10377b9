package titledoc

import "strings"

// Kind is the closed classification of an instrument. Free-text document
// types from extraction are mapped through Classify exactly once; everything
// downstream switches on Kind instead of substring-matching type strings.
type Kind string

const (
	KindDeed         Kind = "DEED"
	KindMortgage     Kind = "MORTGAGE"
	KindSatisfaction Kind = "SATISFACTION"
	KindJudgment     Kind = "JUDGMENT"
	KindLien         Kind = "LIEN"
	KindEasement     Kind = "EASEMENT"
	KindUCC          Kind = "UCC"
	KindOther        Kind = "OTHER"
)

// Classify maps a free-text document type to its Kind. Satisfaction and
// discharge instruments are checked before mortgages so that "Satisfaction of
// Mortgage" lands in KindSatisfaction rather than KindMortgage.
func Classify(documentType string) Kind {
	t := strings.ToLower(strings.TrimSpace(documentType))
	switch {
	case t == "":
		return KindOther
	case strings.Contains(t, "satisfaction") || strings.Contains(t, "discharge"):
		return KindSatisfaction
	case strings.Contains(t, "deed"):
		return KindDeed
	case strings.Contains(t, "mortgage"):
		return KindMortgage
	case strings.Contains(t, "judgment") || strings.Contains(t, "judgement"):
		return KindJudgment
	case strings.Contains(t, "lien"):
		return KindLien
	case strings.Contains(t, "easement") || strings.Contains(t, "right of way"):
		return KindEasement
	case strings.Contains(t, "ucc"):
		return KindUCC
	default:
		return KindOther
	}
}

// Kind returns the classified kind of the document's type string.
func (d *Document) Kind() Kind {
	return Classify(d.DocumentType)
}

// IsDeed reports whether the document conveys title (chain continuity is
// verified on deeds only).
func (d *Document) IsDeed() bool {
	return d.Kind() == KindDeed
}
