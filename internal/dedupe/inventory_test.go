package dedupe

import (
	"testing"

	"github.com/joelkehle/title-abstractor/internal/titledoc"
)

func inv(docType string, start, end int) titledoc.InventoryEntry {
	return titledoc.InventoryEntry{Type: docType, Pages: titledoc.PageRange{Start: start, End: end}}
}

func TestInventoryDropsOverlappingRange(t *testing.T) {
	entries := []titledoc.InventoryEntry{
		inv("Deed", 1, 3),
		inv("Deed", 2, 3),
	}
	out := Inventory(entries, nil)
	if len(out) != 1 {
		t.Fatalf("expected 1 entry after dedup, got %d", len(out))
	}
	if out[0].Pages.Start != 1 || out[0].Pages.End != 3 {
		t.Fatalf("expected first occurrence kept, got pages %d-%d", out[0].Pages.Start, out[0].Pages.End)
	}
}

func TestInventoryExactSignature(t *testing.T) {
	entries := []titledoc.InventoryEntry{
		inv("Mortgage", 4, 6),
		inv("  MORTGAGE ", 4, 6),
	}
	out := Inventory(entries, nil)
	if len(out) != 1 {
		t.Fatalf("expected exact-signature duplicate dropped, got %d entries", len(out))
	}
}

func TestInventoryDifferentTypesKept(t *testing.T) {
	entries := []titledoc.InventoryEntry{
		inv("Deed", 1, 3),
		inv("Mortgage", 1, 3),
	}
	out := Inventory(entries, nil)
	if len(out) != 2 {
		t.Fatalf("different types must both be kept, got %d", len(out))
	}
}

func TestInventorySmallOverlapKept(t *testing.T) {
	// One shared page out of ranges of 5 and 4: 20% and 25%, below threshold.
	entries := []titledoc.InventoryEntry{
		inv("Deed", 1, 5),
		inv("Deed", 5, 8),
	}
	out := Inventory(entries, nil)
	if len(out) != 2 {
		t.Fatalf("expected both kept on minor overlap, got %d", len(out))
	}
}

func TestInventoryMissingPagesAlwaysKept(t *testing.T) {
	entries := []titledoc.InventoryEntry{
		inv("Deed", 0, 0),
		inv("Deed", 0, 0),
		inv("Deed", 1, 3),
	}
	out := Inventory(entries, nil)
	if len(out) != 3 {
		t.Fatalf("entries without page ranges must bypass dedup, got %d", len(out))
	}
}

func TestInventoryOrderPreserved(t *testing.T) {
	entries := []titledoc.InventoryEntry{
		inv("Deed", 1, 3),
		inv("Mortgage", 4, 6),
		inv("Deed", 1, 3),
		inv("Satisfaction", 7, 7),
	}
	out := Inventory(entries, nil)
	if len(out) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(out))
	}
	want := []string{"Deed", "Mortgage", "Satisfaction"}
	for i, w := range want {
		if out[i].Type != w {
			t.Fatalf("position %d: got %s, want %s", i, out[i].Type, w)
		}
	}
}

func TestInventoryEmpty(t *testing.T) {
	if out := Inventory(nil, nil); len(out) != 0 {
		t.Fatalf("expected empty output, got %d", len(out))
	}
}
