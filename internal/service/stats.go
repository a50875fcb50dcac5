package service

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Williamfew09/youtube-dashboard/internal/model"
)

const (
	recentVideosLimit = 20
	topCreatorsLimit  = 5
	unknownCreator    = "Unknown"

	// dayLayout accepts both padded and unpadded month/day.
	dayLayout         = "2006-1-2"
	todayLayout       = "2006-01-02"
	lastUpdatedLayout = "2006-01-02 15:04:05"
)

// ErrMalformedTimestamp is returned when a record carries a timestamp whose
// leading date segment is not YYYY-MM-DD.
var ErrMalformedTimestamp = errors.New("malformed record timestamp")

// windowCounts holds the number of records logged in each calendar window.
type windowCounts struct {
	Today, Week, Month int
}

// countWindows buckets records by their logged date relative to now's
// calendar day. Records with an empty timestamp only miss the week and month
// windows. A present but unparseable date segment is an error when strict is
// set, otherwise the record is left out of the week and month windows and
// reported in skipped.
func countWindows(records []model.Record, now time.Time, strict bool) (wc windowCounts, skipped []string, err error) {
	loc := now.Location()
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)
	weekAgo := today.AddDate(0, 0, -7)
	monthStart := time.Date(y, m, 1, 0, 0, 0, 0, loc)
	todayPrefix := today.Format(todayLayout)

	for _, rec := range records {
		if strings.HasPrefix(rec.Timestamp, todayPrefix) {
			wc.Today++
		}
		if rec.Timestamp == "" {
			continue
		}

		day, perr := parseRecordDay(rec.Timestamp, loc)
		if perr != nil {
			if strict {
				return windowCounts{}, nil, perr
			}
			skipped = append(skipped, rec.ItemID)
			continue
		}
		if !day.Before(weekAgo) {
			wc.Week++
		}
		if !day.Before(monthStart) {
			wc.Month++
		}
	}
	return wc, skipped, nil
}

// parseRecordDay reads the first whitespace-delimited token of ts as a date.
func parseRecordDay(ts string, loc *time.Location) (time.Time, error) {
	fields := strings.Fields(ts)
	if len(fields) == 0 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, ts)
	}
	day, err := time.ParseInLocation(dayLayout, fields[0], loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, ts)
	}
	return day, nil
}

// topCreators ranks creators by record count, highest first. Equal counts
// keep the order in which the creators were first seen.
func topCreators(records []model.Record) []model.CreatorCount {
	index := make(map[string]int)
	ranked := []model.CreatorCount{}
	for _, rec := range records {
		name := rec.Creator
		if name == "" {
			name = unknownCreator
		}
		if i, ok := index[name]; ok {
			ranked[i].Count++
			continue
		}
		index[name] = len(ranked)
		ranked = append(ranked, model.CreatorCount{Name: name, Count: 1})
	}

	slices.SortStableFunc(ranked, func(a, b model.CreatorCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if len(ranked) > topCreatorsLimit {
		ranked = ranked[:topCreatorsLimit]
	}
	return ranked
}

// averageViews returns total/count to one decimal place, or 0 for no videos.
func averageViews(total int64, count int) float64 {
	if count == 0 {
		return 0
	}
	// Decimal formatting rounds half to even on the exact binary value.
	avg, _ := strconv.ParseFloat(strconv.FormatFloat(float64(total)/float64(count), 'f', 1, 64), 64)
	return avg
}

// recentRecords returns a copy of the last recentVideosLimit records, in order.
func recentRecords(records []model.Record) []model.Record {
	start := max(len(records)-recentVideosLimit, 0)
	return append([]model.Record{}, records[start:]...)
}
