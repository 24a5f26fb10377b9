// Package relationship pairwise-compares the parsed legal description of
// every document and groups documents that describe the same parcel into
// candidate ownership chains.
package relationship

import (
	"fmt"
	"sort"
	"strings"

	"github.com/joelkehle/title-abstractor/internal/legal"
	"github.com/joelkehle/title-abstractor/internal/titledoc"
)

// Relationship records the comparison outcome for one unordered document
// pair. DocA is always the lower document ID.
type Relationship struct {
	DocA     int            `json:"docA"`
	DocB     int            `json:"docB"`
	Relation legal.Relation `json:"relationship"`
}

// Chain groups document IDs believed to concern one parcel lineage. Parent
// and Children hold chain IDs, never embedded chains, so the structure stays
// serializable without cycles.
type Chain struct {
	ChainID             string   `json:"chainId"`
	DocumentIDs         []int    `json:"documentIds"`
	PropertyDescription string   `json:"propertyDescription"`
	FirstOwner          string   `json:"firstOwner"`
	EarliestDate        string   `json:"earliestDate"`
	Parent              string   `json:"parent,omitempty"`
	Children            []string `json:"children,omitempty"`
}

// Result holds the full pairwise relationship matrix plus the chain grouping
// derived from it. Parsed keeps each document's parsed description keyed by
// document ID so later stages do not re-parse.
type Result struct {
	Relationships []Relationship
	Chains        []*Chain
	Parsed        map[int]legal.ParsedDescription
}

// AnalyzeAll parses every document's legal description once, compares every
// unordered pair, and builds chains from the outcome. Documents must already
// carry their run-stable IDs.
func AnalyzeAll(docs []titledoc.Document, progress titledoc.ProgressFn) Result {
	parsed := make(map[int]legal.ParsedDescription, len(docs))
	byID := make(map[int]titledoc.Document, len(docs))
	ids := make([]int, 0, len(docs))
	for i := range docs {
		id := docs[i].ID
		parsed[id] = legal.Parse(docs[i].Property.LegalDescription)
		byID[id] = docs[i]
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var relationships []Relationship
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a := parsed[ids[i]]
			b := parsed[ids[j]]
			relationships = append(relationships, Relationship{
				DocA:     ids[i],
				DocB:     ids[j],
				Relation: legal.Compare(&a, &b),
			})
		}
	}

	chains := buildChains(ids, byID, parsed, relationships)

	progress.Emit("relationships", fmt.Sprintf("%d pair(s) compared, %d chain(s)", len(relationships), len(chains)))
	return Result{Relationships: relationships, Chains: chains, Parsed: parsed}
}

func buildChains(ids []int, byID map[int]titledoc.Document, parsed map[int]legal.ParsedDescription, relationships []Relationship) []*Chain {
	// Union documents connected by SAME relationships. Membership extends an
	// existing chain when either side already belongs to one.
	var groups [][]int
	memberOf := map[int]int{}
	processed := map[int]bool{}

	for _, rel := range relationships {
		if rel.Relation != legal.RelationSame {
			continue
		}
		gi, okA := memberOf[rel.DocA]
		gj, okB := memberOf[rel.DocB]
		switch {
		case okA && okB:
			if gi != gj {
				// Merge the later group into the earlier one.
				for _, id := range groups[gj] {
					memberOf[id] = gi
				}
				groups[gi] = append(groups[gi], groups[gj]...)
				groups[gj] = nil
			}
		case okA:
			groups[gi] = append(groups[gi], rel.DocB)
			memberOf[rel.DocB] = gi
		case okB:
			groups[gj] = append(groups[gj], rel.DocA)
			memberOf[rel.DocA] = gj
		default:
			groups = append(groups, []int{rel.DocA, rel.DocB})
			memberOf[rel.DocA] = len(groups) - 1
			memberOf[rel.DocB] = len(groups) - 1
		}
		processed[rel.DocA] = true
		processed[rel.DocB] = true
	}

	// Unchained deeds become singleton chains. Non-deed orphans stay out.
	for _, id := range ids {
		if processed[id] {
			continue
		}
		doc := byID[id]
		if doc.IsDeed() {
			groups = append(groups, []int{id})
		}
	}

	var chains []*Chain
	for _, members := range groups {
		if len(members) == 0 {
			continue
		}
		sort.Ints(members)
		desc := parsed[members[0]]
		chains = append(chains, &Chain{
			ChainID:             fmt.Sprintf("chain_%d", len(chains)+1),
			DocumentIDs:         members,
			PropertyDescription: describeProperty(&desc),
			FirstOwner:          firstOwner(members, byID),
			EarliestDate:        earliestDate(members, byID),
		})
	}

	detectSplits(chains, relationships)

	sort.SliceStable(chains, func(i, j int) bool {
		return titledoc.DateSortKey(chains[i].EarliestDate).Before(titledoc.DateSortKey(chains[j].EarliestDate))
	})
	return chains
}

// describeProperty summarizes a parsed description in priority order: lots,
// then subdivision, then block, with street address and tax parcel only as
// fallbacks when nothing better parsed.
func describeProperty(parsed *legal.ParsedDescription) string {
	var parts []string

	if lots := parsed.LotNumbers; len(lots) > 0 {
		switch {
		case len(lots) == 1:
			parts = append(parts, fmt.Sprintf("Lot %d", lots[0]))
		case len(lots) <= 3:
			strs := make([]string, len(lots))
			for i, n := range lots {
				strs[i] = fmt.Sprintf("%d", n)
			}
			parts = append(parts, "Lots "+strings.Join(strs, ", "))
		default:
			parts = append(parts, fmt.Sprintf("Lots %d-%d and others", lots[0], lots[len(lots)-1]))
		}
	}

	if parsed.Subdivision != "" {
		sub := strings.NewReplacer(`"`, "", "'", "").Replace(parsed.Subdivision)
		parts = append(parts, sub)
	}

	if len(parsed.BlockNumbers) == 1 {
		parts = append(parts, fmt.Sprintf("Block %d", parsed.BlockNumbers[0]))
	}

	if len(parts) == 0 && parsed.StreetAddress != "" {
		parts = append(parts, parsed.StreetAddress)
	}
	if len(parts) == 0 && parsed.TaxParcelID != "" {
		parts = append(parts, "Tax Parcel "+parsed.TaxParcelID)
	}

	if len(parts) == 0 {
		return "Property description unavailable"
	}
	return strings.Join(parts, ", ")
}

// firstOwner returns the from-party of the chronologically earliest document
// in the chain. Ties fall back to document ID order.
func firstOwner(members []int, byID map[int]titledoc.Document) string {
	ordered := append([]int(nil), members...)
	sort.SliceStable(ordered, func(i, j int) bool {
		ki := titledoc.DateSortKey(byID[ordered[i]].Dates.RecordDate)
		kj := titledoc.DateSortKey(byID[ordered[j]].Dates.RecordDate)
		return ki.Before(kj)
	})
	if len(ordered) > 0 {
		if from := byID[ordered[0]].Parties.From; len(from) > 0 {
			return from[0]
		}
	}
	return "Unknown"
}

// earliestDate returns the raw record-date string of the earliest dated
// document, or "Unknown" when the chain has no dated documents.
func earliestDate(members []int, byID map[int]titledoc.Document) string {
	best := ""
	for _, id := range members {
		date := byID[id].Dates.RecordDate
		if !titledoc.KnownDate(titledoc.DateSortKey(date)) {
			continue
		}
		if best == "" || titledoc.DateSortKey(date).Before(titledoc.DateSortKey(best)) {
			best = date
		}
	}
	if best == "" {
		return "Unknown"
	}
	return best
}

// detectSplits marks parent/child edges between chains linked by a
// SUBSET/SUPERSET document pair. The superset side becomes the parent.
func detectSplits(chains []*Chain, relationships []Relationship) {
	for _, rel := range relationships {
		var subsetDoc, supersetDoc int
		switch rel.Relation {
		case legal.RelationSubset:
			subsetDoc, supersetDoc = rel.DocA, rel.DocB
		case legal.RelationSuperset:
			subsetDoc, supersetDoc = rel.DocB, rel.DocA
		default:
			continue
		}

		subsetChain := chainContaining(chains, subsetDoc)
		supersetChain := chainContaining(chains, supersetDoc)
		if subsetChain == nil || supersetChain == nil || subsetChain == supersetChain {
			continue
		}
		subsetChain.Parent = supersetChain.ChainID
		if !containsString(supersetChain.Children, subsetChain.ChainID) {
			supersetChain.Children = append(supersetChain.Children, subsetChain.ChainID)
		}
	}
}

func chainContaining(chains []*Chain, docID int) *Chain {
	for _, c := range chains {
		for _, id := range c.DocumentIDs {
			if id == docID {
				return c
			}
		}
	}
	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
