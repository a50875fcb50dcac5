package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Williamfew09/youtube-dashboard/internal/model"
)

// MaxBatchSize is the YouTube Data API ceiling for ids per videos.list call.
const MaxBatchSize = 50

const (
	sourceChannel = "channel"
	sourceVideos  = "videos"
)

// ErrChannelNotFound is returned when channels.list yields no items.
var ErrChannelNotFound = errors.New("channel not found")

// YouTubeRepo reads channel and per-video statistics from the YouTube Data API v3.
type YouTubeRepo struct {
	up        upstream
	baseURL   string
	apiKey    string
	channelID string
}

func NewYouTubeRepo(baseURL, apiKey, channelID string, timeout time.Duration, log zerolog.Logger) *YouTubeRepo {
	return &YouTubeRepo{
		up:        newUpstream(timeout, log),
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		channelID: channelID,
	}
}

type ytStatistics struct {
	ViewCount       string `json:"viewCount"`
	SubscriberCount string `json:"subscriberCount"`
	VideoCount      string `json:"videoCount"`
}

type ytListResponse struct {
	Items []struct {
		ID         string       `json:"id"`
		Statistics ytStatistics `json:"statistics"`
	} `json:"items"`
}

// ChannelStats fetches subscriber, view and video totals for the configured
// channel. On any failure the value is all zeros and the result is degraded.
func (r *YouTubeRepo) ChannelStats(ctx context.Context) Result[model.ChannelStats] {
	stats, err := r.fetchChannelStats(ctx)
	if err != nil {
		r.up.fail(sourceChannel, err, "youtube: channel stats failed, using zeros")
		return Result[model.ChannelStats]{Err: err}
	}
	return Result[model.ChannelStats]{Value: stats}
}

func (r *YouTubeRepo) fetchChannelStats(ctx context.Context) (model.ChannelStats, error) {
	body, err := r.up.get(ctx, sourceChannel, r.baseURL+"/channels", map[string]string{
		"part": "statistics,snippet",
		"id":   r.channelID,
		"key":  r.apiKey,
	})
	if err != nil {
		return model.ChannelStats{}, err
	}

	var resp ytListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return model.ChannelStats{}, fmt.Errorf("channels: %w: %v", ErrMalformedResponse, err)
	}
	if len(resp.Items) == 0 {
		return model.ChannelStats{}, fmt.Errorf("channels %q: %w", r.channelID, ErrChannelNotFound)
	}

	st := resp.Items[0].Statistics
	var out model.ChannelStats
	if out.Subscribers, err = parseCount(st.SubscriberCount); err != nil {
		return model.ChannelStats{}, err
	}
	if out.TotalViews, err = parseCount(st.ViewCount); err != nil {
		return model.ChannelStats{}, err
	}
	if out.TotalVideos, err = parseCount(st.VideoCount); err != nil {
		return model.ChannelStats{}, err
	}
	return out, nil
}

// VideoViews returns view counts keyed by video id. Ids are requested in
// consecutive chunks of MaxBatchSize, one call per chunk. A failed chunk is
// logged and its ids are left out; the other chunks still merge. Callers
// should treat a missing id as zero views.
func (r *YouTubeRepo) VideoViews(ctx context.Context, ids []string) Result[map[string]int64] {
	views := make(map[string]int64, len(ids))
	var errs []error

	for start := 0; start < len(ids); start += MaxBatchSize {
		end := min(start+MaxBatchSize, len(ids))
		chunk, err := r.fetchChunk(ctx, ids[start:end])
		if err != nil {
			r.up.fail(sourceVideos, err, "youtube: video views chunk failed")
			errs = append(errs, err)
			continue
		}
		for id, n := range chunk {
			views[id] = n
		}
	}

	return Result[map[string]int64]{Value: views, Err: errors.Join(errs...)}
}

func (r *YouTubeRepo) fetchChunk(ctx context.Context, ids []string) (map[string]int64, error) {
	body, err := r.up.get(ctx, sourceVideos, r.baseURL+"/videos", map[string]string{
		"part": "statistics",
		"id":   strings.Join(ids, ","),
		"key":  r.apiKey,
	})
	if err != nil {
		return nil, err
	}

	var resp ytListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("videos: %w: %v", ErrMalformedResponse, err)
	}

	out := make(map[string]int64, len(resp.Items))
	for _, item := range resp.Items {
		n, err := parseCount(item.Statistics.ViewCount)
		if err != nil {
			return nil, err
		}
		out[item.ID] = n
	}
	return out, nil
}

// parseCount parses the API's string-encoded counters. Absent counts are 0.
func parseCount(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: bad count %q", ErrMalformedResponse, s)
	}
	return n, nil
}
