package service

import (
	"errors"
	"testing"
	"time"

	"github.com/Williamfew09/youtube-dashboard/internal/model"
)

var fixedNow = time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)

func recordsWithTimestamps(ts ...string) []model.Record {
	out := make([]model.Record, len(ts))
	for i, s := range ts {
		out[i] = model.Record{Timestamp: s, ItemID: "id"}
	}
	return out
}

func TestCountWindows(t *testing.T) {
	recs := recordsWithTimestamps(
		"2026-10-18 09:00:00", // today, week, month
		"2026-10-11",          // exactly 7 days ago: week, month
		"2026-10-10 23:59:59", // month only
		"2026-09-30 23:59:59", // previous month
		"",                    // no timestamp: excluded
		"2026-10-18",          // today again
		"2026-10-1 08:00:00",  // unpadded day: month only
	)

	wc, skipped, err := countWindows(recs, fixedNow, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(skipped) != 0 {
		t.Errorf("skipped = %v, want none", skipped)
	}
	want := windowCounts{Today: 2, Week: 3, Month: 5}
	if wc != want {
		t.Errorf("windows = %+v, want %+v", wc, want)
	}
}

func TestCountWindows_MonthStartsOnFirst(t *testing.T) {
	now := time.Date(2026, time.November, 2, 8, 0, 0, 0, time.UTC)
	recs := recordsWithTimestamps("2026-11-01", "2026-10-31", "2026-10-27")

	wc, _, err := countWindows(recs, now, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wc.Month != 1 {
		t.Errorf("month = %d, want 1", wc.Month)
	}
	if wc.Week != 3 {
		t.Errorf("week = %d, want 3 (window crosses the month boundary)", wc.Week)
	}
}

func TestCountWindows_StrictRejectsMalformedDate(t *testing.T) {
	for _, ts := range []string{"18/10/2026 09:00", "yesterday", "   ", "2026-13-01"} {
		_, _, err := countWindows(recordsWithTimestamps("2026-10-18", ts), fixedNow, true)
		if !errors.Is(err, ErrMalformedTimestamp) {
			t.Errorf("timestamp %q: err = %v, want ErrMalformedTimestamp", ts, err)
		}
	}
}

func TestCountWindows_LenientSkipsMalformedDate(t *testing.T) {
	recs := []model.Record{
		{Timestamp: "2026-10-18", ItemID: "ok"},
		{Timestamp: "18/10/2026", ItemID: "bad"},
	}

	wc, skipped, err := countWindows(recs, fixedNow, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wc != (windowCounts{Today: 1, Week: 1, Month: 1}) {
		t.Errorf("windows = %+v", wc)
	}
	if len(skipped) != 1 || skipped[0] != "bad" {
		t.Errorf("skipped = %v, want [bad]", skipped)
	}
}

func TestTopCreators_RankingAndTies(t *testing.T) {
	var recs []model.Record
	for _, c := range []string{"B", "A", "B", "A", "C", "", "D", "E", "F"} {
		recs = append(recs, model.Record{Creator: c, ItemID: "x"})
	}

	got := topCreators(recs)
	want := []model.CreatorCount{
		{Name: "B", Count: 2},
		{Name: "A", Count: 2},
		{Name: "C", Count: 1},
		{Name: "Unknown", Count: 1},
		{Name: "D", Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("rank %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestTopCreators_SortedDescending(t *testing.T) {
	var recs []model.Record
	for _, c := range []string{"x", "y", "y", "z", "z", "z"} {
		recs = append(recs, model.Record{Creator: c, ItemID: "id"})
	}
	got := topCreators(recs)
	for i := 1; i < len(got); i++ {
		if got[i].Count > got[i-1].Count {
			t.Fatalf("not descending at %d: %+v", i, got)
		}
	}
	if got[0].Name != "z" {
		t.Errorf("top = %s, want z", got[0].Name)
	}
}

func TestTopCreators_Empty(t *testing.T) {
	got := topCreators(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("topCreators(nil) = %#v, want empty non-nil slice", got)
	}
}

func TestAverageViews(t *testing.T) {
	tests := []struct {
		total int64
		count int
		want  float64
	}{
		{0, 0, 0},
		{100, 0, 0},
		{15, 3, 5.0},
		{10, 3, 3.3},
		{20, 3, 6.7},
		{7, 2, 3.5},
		{1000001, 7, 142857.3},
	}
	for _, tt := range tests {
		if got := averageViews(tt.total, tt.count); got != tt.want {
			t.Errorf("averageViews(%d, %d) = %v, want %v", tt.total, tt.count, got, tt.want)
		}
	}
}

func TestRecentRecords(t *testing.T) {
	var recs []model.Record
	for i := 0; i < 25; i++ {
		recs = append(recs, model.Record{ItemID: string(rune('a' + i))})
	}

	got := recentRecords(recs)
	if len(got) != recentVideosLimit {
		t.Fatalf("len = %d, want %d", len(got), recentVideosLimit)
	}
	if got[0].ItemID != "f" || got[19].ItemID != "y" {
		t.Errorf("window = %s..%s, want f..y", got[0].ItemID, got[19].ItemID)
	}

	got[0].ItemID = "mutated"
	if recs[5].ItemID != "f" {
		t.Error("recentRecords must not alias its input")
	}

	if short := recentRecords(recs[:3]); len(short) != 3 {
		t.Errorf("short input len = %d, want 3", len(short))
	}
}
