package titledoc

import (
	"testing"
	"time"
)

func TestParseRecordDateFormats(t *testing.T) {
	want := time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC)
	inputs := []string{
		"March 11, 2025",
		"Mar 11, 2025",
		"03/11/2025",
		"3/11/2025",
		"2025-03-11",
		"03-11-2025",
		"March 11 2025",
	}
	for _, in := range inputs {
		got, ok := ParseRecordDate(in)
		if !ok {
			t.Errorf("ParseRecordDate(%q): no layout matched", in)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseRecordDate(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseRecordDateRejects(t *testing.T) {
	for _, in := range []string{"", "None", "sometime in spring", "13/45/2025"} {
		if _, ok := ParseRecordDate(in); ok {
			t.Errorf("ParseRecordDate(%q): expected failure", in)
		}
	}
}

func TestDateSortKeyFallsBackToYear(t *testing.T) {
	key := DateSortKey("recorded sometime in 1925")
	if !KnownDate(key) {
		t.Fatal("expected year fallback to produce a known date")
	}
	if key.Year() != 1925 {
		t.Fatalf("expected year 1925, got %d", key.Year())
	}
}

func TestDateSortKeyUnknownSortsLast(t *testing.T) {
	unknown := DateSortKey("")
	if KnownDate(unknown) {
		t.Fatal("empty date should be unknown")
	}
	dated := DateSortKey("January 1, 2000")
	if !dated.Before(unknown) {
		t.Fatal("known dates must sort before unknown dates")
	}
	if KnownDate(DateSortKey("Unknown")) {
		t.Fatal("literal Unknown should be unknown")
	}
}
