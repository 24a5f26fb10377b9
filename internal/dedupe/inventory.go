// Package dedupe collapses duplicate document entries between extraction
// passes: pass-1 inventory entries that forecast the same instrument twice,
// and pass-2 extracted records that describe the same instrument.
package dedupe

import (
	"fmt"
	"strings"

	"github.com/joelkehle/title-abstractor/internal/titledoc"
)

// Inventory removes duplicate inventory entries before detailed extraction is
// run on each, keeping the first occurrence of every group. An entry is a
// duplicate when its exact (type, start, end) signature was already seen, or
// when it shares a type with a kept entry and their page ranges overlap by
// more than half of either range. Entries missing a start or end page cannot
// be evaluated safely and are always kept.
func Inventory(entries []titledoc.InventoryEntry, progress titledoc.ProgressFn) []titledoc.InventoryEntry {
	if len(entries) == 0 {
		return entries
	}

	var unique []titledoc.InventoryEntry
	seen := map[string]bool{}

	for _, entry := range entries {
		entryType := strings.ToLower(strings.TrimSpace(entry.Type))
		start, end := entry.Pages.Start, entry.Pages.End

		if start == 0 || end == 0 {
			unique = append(unique, entry)
			continue
		}

		signature := fmt.Sprintf("%s|%d|%d", entryType, start, end)
		if seen[signature] {
			progress.Emit("dedupe_inventory", fmt.Sprintf("skipping duplicate: %s (pages %d-%d)", entryType, start, end))
			continue
		}

		duplicate := false
		for i := range unique {
			if likelySameInventoryEntry(entry, unique[i]) {
				progress.Emit("dedupe_inventory", fmt.Sprintf("skipping likely duplicate: %s (pages %d-%d)", entryType, start, end))
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}

		seen[signature] = true
		unique = append(unique, entry)
	}

	if removed := len(entries) - len(unique); removed > 0 {
		progress.Emit("dedupe_inventory", fmt.Sprintf("removed %d duplicate(s) from inventory", removed))
	}
	return unique
}

func likelySameInventoryEntry(a, b titledoc.InventoryEntry) bool {
	typeA := strings.ToLower(strings.TrimSpace(a.Type))
	typeB := strings.ToLower(strings.TrimSpace(b.Type))
	if typeA != typeB {
		return false
	}

	startA, endA := a.Pages.Start, a.Pages.End
	startB, endB := b.Pages.Start, b.Pages.End
	if startA == 0 || endA == 0 || startB == 0 || endB == 0 {
		return false
	}

	if endA < startB || endB < startA {
		return false
	}

	overlapStart := max(startA, startB)
	overlapEnd := min(endA, endB)
	overlapPages := overlapEnd - overlapStart + 1

	rangeA := endA - startA + 1
	rangeB := endB - startB + 1

	pctA := float64(overlapPages) / float64(rangeA)
	pctB := float64(overlapPages) / float64(rangeB)

	return pctA > 0.5 || pctB > 0.5
}
