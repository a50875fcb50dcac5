package model

// DashboardStats are the derived counters shown on the dashboard header.
type DashboardStats struct {
	TotalVideos       int     `json:"total_videos"`
	VideosToday       int     `json:"videos_today"`
	VideosThisWeek    int     `json:"videos_this_week"`
	VideosThisMonth   int     `json:"videos_this_month"`
	Subscribers       int64   `json:"subscribers"`
	TotalViews        int64   `json:"total_views"`
	AvgViewsPerVideo  float64 `json:"avg_views_per_video"`
	ChannelTotalViews int64   `json:"channel_total_views"`
}

// CreatorCount is one entry of the top-creators ranking.
type CreatorCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DashboardSnapshot is the cacheable result of one aggregation run.
// Once stored in the cache it must be treated as read-only.
type DashboardSnapshot struct {
	Stats       DashboardStats `json:"stats"`
	Videos      []Record       `json:"videos"`
	TopCreators []CreatorCount `json:"top_creators"`
	LastUpdated string         `json:"last_updated"`

	// Degraded names the upstream sources that failed during this run.
	// Kept out of the API payload.
	Degraded []string `json:"-"`
}
