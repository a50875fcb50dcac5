package model

// ChannelStats holds the aggregate counters YouTube reports for a channel.
type ChannelStats struct {
	Subscribers int64 `json:"subscribers"`
	TotalViews  int64 `json:"total_views"`
	TotalVideos int64 `json:"total_videos"`
}
