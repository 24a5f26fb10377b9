// Package chains builds the verified chain-of-title structure: it enriches
// the relationship detector's chain grouping with full document data, checks
// grantor to grantee continuity across consecutive deeds, flags cross-chain
// overlaps, and assembles the parent/child hierarchy with summary statistics.
package chains

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/joelkehle/title-abstractor/internal/legal"
	"github.com/joelkehle/title-abstractor/internal/relationship"
	"github.com/joelkehle/title-abstractor/internal/titledoc"
)

// Chain is an enriched ownership chain. Documents holds the full records in
// within-chain order; Issues holds only this chain's findings.
type Chain struct {
	ChainID             string              `json:"chainId"`
	DocumentIDs         []int               `json:"documentIds"`
	PropertyDescription string              `json:"propertyDescription"`
	FirstOwner          string              `json:"firstOwner"`
	EarliestDate        string              `json:"earliestDate"`
	Parent              string              `json:"parent,omitempty"`
	Children            []string            `json:"children,omitempty"`
	Documents           []titledoc.Document `json:"documents"`
	Verified            bool                `json:"verified"`
	Issues              []titledoc.Issue    `json:"issues"`
}

// HierarchyNode is the presentation tree built from parent/child chain edges.
type HierarchyNode struct {
	ChainID     string           `json:"chainId"`
	Property    string           `json:"property"`
	FirstOwner  string           `json:"firstOwner"`
	DocumentIDs []int            `json:"documentIds"`
	Verified    bool             `json:"verified"`
	Issues      []titledoc.Issue `json:"issues"`
	Children    []*HierarchyNode `json:"children"`
}

// Summary aggregates counts over the built chains and issues.
type Summary struct {
	TotalChains      int                       `json:"totalChains"`
	VerifiedChains   int                       `json:"verifiedChains"`
	TotalDocuments   int                       `json:"totalDocuments"`
	TotalIssues      int                       `json:"totalIssues"`
	IssuesBySeverity map[titledoc.Severity]int `json:"issuesBySeverity"`
}

// Result is the complete chain-of-title output for a run.
type Result struct {
	Chains    []*Chain         `json:"chains"`
	Hierarchy []*HierarchyNode `json:"hierarchy"`
	Issues    []titledoc.Issue `json:"issues"`
	Summary   Summary          `json:"summary"`
}

var (
	bookNumber = regexp.MustCompile(`[Bb][Oo][Oo][Kk]\s*(\d+)`)
	pageNumber = regexp.MustCompile(`[Pp][Aa][Gg][Ee]\s*(\d+)`)
)

const missingLocator = 99999

// Build enriches the detected chains with full document data, verifies each
// chain's deed continuity, and collects cross-chain overlap issues.
func Build(rel relationship.Result, docs []titledoc.Document, progress titledoc.ProgressFn) Result {
	byID := make(map[int]titledoc.Document, len(docs))
	for i := range docs {
		byID[docs[i].ID] = docs[i]
	}

	var chains []*Chain
	var issues []titledoc.Issue

	for _, c := range rel.Chains {
		chain := &Chain{
			ChainID:             c.ChainID,
			DocumentIDs:         append([]int(nil), c.DocumentIDs...),
			PropertyDescription: c.PropertyDescription,
			FirstOwner:          c.FirstOwner,
			EarliestDate:        c.EarliestDate,
			Parent:              c.Parent,
			Children:            append([]string(nil), c.Children...),
		}
		for _, id := range c.DocumentIDs {
			if doc, ok := byID[id]; ok {
				chain.Documents = append(chain.Documents, doc)
			}
		}
		sortChainDocuments(chain.Documents)
		issues = append(issues, verifyPartyConnections(chain)...)
		chains = append(chains, chain)
	}

	issues = append(issues, detectOverlaps(chains, rel.Relationships)...)

	result := Result{
		Chains:    chains,
		Hierarchy: buildHierarchy(chains),
		Issues:    issues,
		Summary:   buildSummary(chains, issues),
	}
	progress.Emit("chains", fmt.Sprintf("%d chain(s), %d verified, %d issue(s)",
		result.Summary.TotalChains, result.Summary.VerifiedChains, result.Summary.TotalIssues))
	return result
}

// sortChainDocuments orders a chain's documents by parsed record date, then
// by recording book and page. Missing values sort last.
func sortChainDocuments(docs []titledoc.Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		di := titledoc.DateSortKey(docs[i].Dates.RecordDate)
		dj := titledoc.DateSortKey(docs[j].Dates.RecordDate)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		bi, pi := recordingSortKey(docs[i].Recording.LocationInstrumentNumber)
		bj, pj := recordingSortKey(docs[j].Recording.LocationInstrumentNumber)
		if bi != bj {
			return bi < bj
		}
		return pi < pj
	})
}

// recordingSortKey extracts the book and page numbers from a recording
// locator such as "BOOK1131 PAGE 140".
func recordingSortKey(locator string) (book, page int) {
	book, page = missingLocator, missingLocator
	if locator == "" {
		return
	}
	if m := bookNumber.FindStringSubmatch(locator); m != nil {
		book = atoiOr(m[1], missingLocator)
	}
	if m := pageNumber.FindStringSubmatch(locator); m != nil {
		page = atoiOr(m[1], missingLocator)
	}
	return
}

func atoiOr(s string, fallback int) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return fallback
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// verifyPartyConnections checks that the grantee of each deed appears as the
// grantor of the next deed in the chain. Non-deed documents are ignored and
// duplicate deeds are collapsed before comparison. Chains with fewer than two
// deeds are trivially verified.
func verifyPartyConnections(chain *Chain) []titledoc.Issue {
	var deeds []titledoc.Document
	for _, d := range chain.Documents {
		if d.IsDeed() {
			deeds = append(deeds, d)
		}
	}

	if len(deeds) < 2 {
		chain.Verified = true
		return nil
	}

	var issues []titledoc.Issue
	broken := false
	for i := 0; i+1 < len(deeds); i++ {
		current := deeds[i]
		next := deeds[i+1]

		if isDuplicateDeed(current, next) {
			continue
		}

		currentTo := current.Parties.To
		nextFrom := next.Parties.From
		if len(currentTo) == 0 || len(nextFrom) == 0 {
			continue
		}

		matched := false
		for _, grantee := range currentTo {
			for _, grantor := range nextFrom {
				if NamesMatch(NormalizeName(grantee), NormalizeName(grantor)) {
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}

		if !matched {
			broken = true
			issue := titledoc.Issue{
				Type:     titledoc.IssueBrokenChain,
				Severity: titledoc.SeverityCritical,
				ChainID:  chain.ChainID,
				DocA:     current.ID,
				DocB:     next.ID,
				Message: fmt.Sprintf(
					"Document #%d: %s conveys property but was never a grantee in this chain. Last valid owner: %s (Doc #%d)",
					next.ID, nextFrom[0], currentTo[0], current.ID),
			}
			chain.Issues = append(chain.Issues, issue)
			issues = append(issues, issue)
		}
	}

	chain.Verified = !broken
	return issues
}

// isDuplicateDeed reports whether two deeds record the same conveyance: the
// same recording locator, or the same date with identical party sets.
func isDuplicateDeed(a, b titledoc.Document) bool {
	recA := a.Recording.LocationInstrumentNumber
	recB := b.Recording.LocationInstrumentNumber
	if recA != "" && recA == recB {
		return true
	}

	if a.Dates.RecordDate == b.Dates.RecordDate {
		if sameNameSet(a.Parties.From, b.Parties.From) && sameNameSet(a.Parties.To, b.Parties.To) {
			return true
		}
	}
	return false
}

func sameNameSet(a, b []string) bool {
	setA := normalizedNameSet(a)
	setB := normalizedNameSet(b)
	if len(setA) != len(setB) {
		return false
	}
	for name := range setA {
		if !setB[name] {
			return false
		}
	}
	return true
}

func normalizedNameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[NormalizeName(n)] = true
	}
	return set
}

// detectOverlaps emits an OVERLAP issue for every PARTIAL_OVERLAP document
// pair whose members landed in two different chains.
func detectOverlaps(chains []*Chain, relationships []relationship.Relationship) []titledoc.Issue {
	var issues []titledoc.Issue
	for _, rel := range relationships {
		if rel.Relation != legal.RelationPartialOverlap {
			continue
		}
		chainA := chainWithDoc(chains, rel.DocA)
		chainB := chainWithDoc(chains, rel.DocB)
		if chainA == nil || chainB == nil || chainA == chainB {
			continue
		}
		issues = append(issues, titledoc.Issue{
			Type:     titledoc.IssueOverlap,
			Severity: titledoc.SeverityCritical,
			DocA:     rel.DocA,
			DocB:     rel.DocB,
			ChainA:   chainA.ChainID,
			ChainB:   chainB.ChainID,
			Message: fmt.Sprintf(
				"Documents #%d and #%d have overlapping property descriptions. Potential double conveyance.",
				rel.DocA, rel.DocB),
		})
	}
	return issues
}

func chainWithDoc(chains []*Chain, docID int) *Chain {
	for _, c := range chains {
		for _, id := range c.DocumentIDs {
			if id == docID {
				return c
			}
		}
	}
	return nil
}

// buildHierarchy nests child chains beneath their parents. Chains without a
// parent become roots.
func buildHierarchy(chains []*Chain) []*HierarchyNode {
	byID := make(map[string]*Chain, len(chains))
	for _, c := range chains {
		byID[c.ChainID] = c
	}

	var roots []*HierarchyNode
	for _, c := range chains {
		if c.Parent == "" {
			roots = append(roots, hierarchyNode(c, byID))
		}
	}
	return roots
}

func hierarchyNode(chain *Chain, byID map[string]*Chain) *HierarchyNode {
	node := &HierarchyNode{
		ChainID:     chain.ChainID,
		Property:    chain.PropertyDescription,
		FirstOwner:  chain.FirstOwner,
		DocumentIDs: chain.DocumentIDs,
		Verified:    chain.Verified,
		Issues:      chain.Issues,
		Children:    []*HierarchyNode{},
	}
	for _, childID := range chain.Children {
		if child, ok := byID[childID]; ok {
			node.Children = append(node.Children, hierarchyNode(child, byID))
		}
	}
	return node
}

func buildSummary(chains []*Chain, issues []titledoc.Issue) Summary {
	s := Summary{
		TotalChains: len(chains),
		IssuesBySeverity: map[titledoc.Severity]int{
			titledoc.SeverityCritical: 0,
			titledoc.SeverityWarning:  0,
			titledoc.SeverityInfo:     0,
		},
	}
	for _, c := range chains {
		if c.Verified {
			s.VerifiedChains++
		}
		s.TotalDocuments += len(c.DocumentIDs)
	}
	s.TotalIssues = len(issues)
	for _, issue := range issues {
		s.IssuesBySeverity[issue.Severity]++
	}
	return s
}
