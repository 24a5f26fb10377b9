// Package legal parses free-text legal descriptions into structured parcel
// identifiers and compares them. Parsing is pure and total: malformed or
// empty input yields an empty ParsedDescription, never an error.
package legal

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

type MetesBounds struct {
	StartingPoint   string `json:"starting_point,omitempty"`
	FullDescription string `json:"full_description,omitempty"`
}

type DeedReference struct {
	Book          string `json:"book"`
	Page          string `json:"page"`
	FullReference string `json:"full_reference,omitempty"`
}

// ParsedDescription is the structured view of one legal description,
// immutable once computed from a given description string.
type ParsedDescription struct {
	MetesBounds   *MetesBounds   `json:"metes_bounds,omitempty"`
	DeedReference *DeedReference `json:"deed_reference,omitempty"`
	TaxParcelID   string         `json:"tax_parcel_id,omitempty"`
	LotNumbers    []int          `json:"lot_numbers,omitempty"`
	BlockNumbers  []int          `json:"block_numbers,omitempty"`
	StreetAddress string         `json:"street_address,omitempty"`
	Subdivision   string         `json:"subdivision,omitempty"`
	MapReference  string         `json:"map_reference,omitempty"`
	RawText       string         `json:"raw_text"`
}

var (
	metesIndicators = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bBEGINNING\b`),
		regexp.MustCompile(`(?i)\bCOMMENCING\b`),
		regexp.MustCompile(`(?i)\bthence\b`),
		regexp.MustCompile(`(?i)North \d+°`),
		regexp.MustCompile(`(?i)South \d+°`),
		regexp.MustCompile(`(?i)East \d+°`),
		regexp.MustCompile(`(?i)West \d+°`),
		regexp.MustCompile(`(?i)\d+\s*feet`),
		regexp.MustCompile(`(?i)\d+\s*chains`),
	}
	metesStart = regexp.MustCompile(`(?i)(BEGINNING|COMMENCING)\s+at\s+([^;.]+)`)

	deedRefPatterns = []*regexp.Regexp{
		regexp.MustCompile(`[Bb]eing\s+(?:the\s+)?same\s+premises.*?[Bb]ook\s+(\d+).*?[Pp]age\s+(\d+)`),
		regexp.MustCompile(`[Bb]eing\s+(?:the\s+)?same\s+premises.*?[Ll]iber\s+(\d+).*?[Pp]age\s+(\d+)`),
		regexp.MustCompile(`[Rr]ecorded\s+in.*?[Bb]ook\s+(\d+).*?[Pp]age\s+(\d+)`),
		regexp.MustCompile(`[Rr]ecorded\s+in.*?[Ll]iber\s+(\d+).*?[Pp]age\s+(\d+)`),
	}

	taxParcelPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(\d{2,3}[.-]\d{2}[.-]\d{1,3}[.-]\d{1,3})\b`),
		regexp.MustCompile(`\b(\d{2,3}[.-]\d{2}[.-]\d{1,3})\b`),
		regexp.MustCompile(`[Tt]ax\s+[Pp]arcel\s*:?\s*([0-9.-]+)`),
	}

	lotSingle  = regexp.MustCompile(`(?i)\bLots?\s+(?:Number\s+)?(\d{1,4})`)
	lotList    = regexp.MustCompile(`(?i)\bLots\s+((?:\d+\s*(?:,|and|&)\s*)+\d+)`)
	lotSpelled = regexp.MustCompile(`(?i)\bLots?\s+[A-Za-z][A-Za-z\s\-]*\((\d+)\)`)
	// Suffixes that disqualify a numeric "Lot N" match: a decimal fraction or
	// a unit of measure means the number is a distance, not a lot number.
	lotMeasurement = regexp.MustCompile(`(?i)^(?:\d|\s*\.\d|\s*(?:feet|foot|ft)\b)`)
	digits         = regexp.MustCompile(`\d+`)

	blockPattern = regexp.MustCompile(`(?i)\bBlocks?\s+(\d+(?:\s*(?:,|and|&)\s*\d+)*)`)

	streetAddress = regexp.MustCompile(`(?i)\b(\d+\s+[A-Za-z\s]+(?:Street|St|Avenue|Ave|Road|Rd|Drive|Dr|Lane|Ln|Boulevard|Blvd|Way|Court|Ct))\b`)

	subdivisionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`([A-Z][A-Za-z\s]+(?:Manor|Estates|Heights|Hills|Park|Gardens|Acres|Subdivision)(?:\s+Section\s+["']?[A-Z0-9]["']?)?)`),
		regexp.MustCompile(`map\s+of\s+(?:the\s+)?([A-Z][A-Za-z\s]+(?:Manor|Estates)(?:\s+Section\s+["']?[A-Z0-9]["']?)?)`),
	}

	mapReference = regexp.MustCompile(`(?i)filed\s+(?:in\s+)?[^.]*?(?:Clerk|County|Office)[^.]*?\d{4}`)
)

// Parse extracts every identifiable component from a legal description.
// Blank input returns the zero ParsedDescription.
func Parse(text string) ParsedDescription {
	desc := strings.TrimSpace(text)
	if desc == "" {
		return ParsedDescription{}
	}
	return ParsedDescription{
		MetesBounds:   extractMetesBounds(desc),
		DeedReference: extractDeedReference(desc),
		TaxParcelID:   extractTaxParcel(desc),
		LotNumbers:    extractLotNumbers(desc),
		BlockNumbers:  extractBlockNumbers(desc),
		StreetAddress: extractStreetAddress(desc),
		Subdivision:   extractSubdivision(desc),
		MapReference:  extractMapReference(desc),
		RawText:       desc,
	}
}

// extractMetesBounds treats a description as metes and bounds when at least
// three indicator patterns appear, and captures the surveyed starting point.
func extractMetesBounds(desc string) *MetesBounds {
	matches := 0
	for _, p := range metesIndicators {
		if p.MatchString(desc) {
			matches++
		}
	}
	if matches < 3 {
		return nil
	}
	mb := &MetesBounds{FullDescription: desc}
	if m := metesStart.FindStringSubmatch(desc); m != nil {
		mb.StartingPoint = m[2]
	}
	return mb
}

func extractDeedReference(desc string) *DeedReference {
	for _, p := range deedRefPatterns {
		if m := p.FindStringSubmatch(desc); m != nil {
			return &DeedReference{Book: m[1], Page: m[2], FullReference: m[0]}
		}
	}
	return nil
}

func extractTaxParcel(desc string) string {
	for _, p := range taxParcelPatterns {
		if m := p.FindStringSubmatch(desc); m != nil {
			return m[1]
		}
	}
	return ""
}

func extractLotNumbers(desc string) []int {
	set := map[int]bool{}

	// Bare "Lot 152" or "Lot Number 152". Measurement contexts such as
	// "lot 20.06 feet" are rejected by inspecting what follows the number.
	for _, m := range lotSingle.FindAllStringSubmatchIndex(desc, -1) {
		numStart, numEnd := m[2], m[3]
		if lotMeasurement.MatchString(desc[numEnd:]) {
			continue
		}
		addLot(set, desc[numStart:numEnd])
	}

	// "Lots 10, 11 and 12" style lists.
	for _, m := range lotList.FindAllStringSubmatchIndex(desc, -1) {
		groupStart, groupEnd := m[2], m[3]
		if lotMeasurement.MatchString(desc[groupEnd:]) {
			continue
		}
		for _, n := range digits.FindAllString(desc[groupStart:groupEnd], -1) {
			addLot(set, n)
		}
	}

	// Spelled-out numbers with a parenthesized numeral: "Lot One Hundred
	// Fifty-Two (152)".
	for _, m := range lotSpelled.FindAllStringSubmatch(desc, -1) {
		addLot(set, m[1])
	}

	return sortedKeys(set)
}

func addLot(set map[int]bool, raw string) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return
	}
	if n >= 1 && n < 10000 {
		set[n] = true
	}
}

func extractBlockNumbers(desc string) []int {
	set := map[int]bool{}
	for _, m := range blockPattern.FindAllStringSubmatch(desc, -1) {
		for _, n := range digits.FindAllString(m[1], -1) {
			v, err := strconv.Atoi(n)
			if err != nil {
				continue
			}
			set[v] = true
		}
	}
	return sortedKeys(set)
}

func extractStreetAddress(desc string) string {
	if m := streetAddress.FindStringSubmatch(desc); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func extractSubdivision(desc string) string {
	for _, p := range subdivisionPatterns {
		if m := p.FindStringSubmatch(desc); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

func extractMapReference(desc string) string {
	if m := mapReference.FindString(desc); m != "" {
		return strings.TrimSpace(m)
	}
	return ""
}

func sortedKeys(set map[int]bool) []int {
	if len(set) == 0 {
		return nil
	}
	out := make([]int, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}
