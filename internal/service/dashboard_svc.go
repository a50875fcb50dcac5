package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Williamfew09/youtube-dashboard/internal/metrics"
	"github.com/Williamfew09/youtube-dashboard/internal/model"
	"github.com/Williamfew09/youtube-dashboard/internal/repository"
)

// SheetReader yields the parsed content log.
type SheetReader interface {
	Rows(ctx context.Context) repository.Result[[]model.Record]
}

// YouTubeReader yields channel totals and per-video view counts.
type YouTubeReader interface {
	ChannelStats(ctx context.Context) repository.Result[model.ChannelStats]
	VideoViews(ctx context.Context, ids []string) repository.Result[map[string]int64]
}

// DashboardService builds dashboard snapshots from the sheet and YouTube.
type DashboardService struct {
	sheet       SheetReader
	youtube     YouTubeReader
	strictDates bool
	now         func() time.Time
	log         zerolog.Logger
}

func NewDashboardService(sheet SheetReader, youtube YouTubeReader, strictDates bool, log zerolog.Logger) *DashboardService {
	return &DashboardService{
		sheet:       sheet,
		youtube:     youtube,
		strictDates: strictDates,
		now:         time.Now,
		log:         log,
	}
}

// ComputeSnapshot fetches all upstream data and derives a fresh snapshot.
// Upstream failures degrade to empty or zero inputs; the only error path is
// a malformed record timestamp while strict date parsing is enabled.
func (s *DashboardService) ComputeSnapshot(ctx context.Context) (*model.DashboardSnapshot, error) {
	start := time.Now()
	defer func() {
		metrics.Metrics.SnapshotDuration.Observe(time.Since(start).Seconds())
	}()

	rows := s.sheet.Rows(ctx)
	channel := s.youtube.ChannelStats(ctx)
	records := rows.Value

	views := s.youtube.VideoViews(ctx, videoIDs(records))

	var totalViews int64
	for i := range records {
		records[i].Views = views.Value[strings.TrimSpace(records[i].ItemID)]
		totalViews += records[i].Views
	}

	now := s.now()
	windows, skipped, err := countWindows(records, now, s.strictDates)
	if err != nil {
		s.log.Error().Err(err).Msg("dashboard: date window count failed")
		return nil, err
	}
	if len(skipped) > 0 {
		s.log.Warn().Strs("item_ids", skipped).Msg("dashboard: records with malformed timestamps left out of week/month counts")
	}

	snap := &model.DashboardSnapshot{
		Stats: model.DashboardStats{
			TotalVideos:       len(records),
			VideosToday:       windows.Today,
			VideosThisWeek:    windows.Week,
			VideosThisMonth:   windows.Month,
			Subscribers:       channel.Value.Subscribers,
			TotalViews:        totalViews,
			AvgViewsPerVideo:  averageViews(totalViews, len(records)),
			ChannelTotalViews: channel.Value.TotalViews,
		},
		Videos:      recentRecords(records),
		TopCreators: topCreators(records),
		LastUpdated: now.Format(lastUpdatedLayout),
	}
	if rows.Degraded() {
		snap.Degraded = append(snap.Degraded, "sheet")
	}
	if channel.Degraded() {
		snap.Degraded = append(snap.Degraded, "channel")
	}
	if views.Degraded() {
		snap.Degraded = append(snap.Degraded, "videos")
	}

	s.log.Info().
		Int("records", len(records)).
		Int64("total_views", totalViews).
		Strs("degraded", snap.Degraded).
		Dur("duration_ms", time.Since(start)).
		Msg("dashboard: snapshot computed")

	return snap, nil
}

// videoIDs returns the distinct, well-formed video ids of records in
// first-seen order. Malformed ids are never sent upstream and read as 0 views.
func videoIDs(records []model.Record) []string {
	seen := make(map[string]struct{}, len(records))
	ids := make([]string, 0, len(records))
	for _, rec := range records {
		id, errMsg := repository.ValidateVideoID(rec.ItemID)
		if errMsg != "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
