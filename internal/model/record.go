package model

// Record is one logged upload from the content sheet, enriched with its
// YouTube view count once statistics have been fetched.
type Record struct {
	Timestamp   string `json:"timestamp,omitempty"`
	Title       string `json:"title,omitempty"`
	Creator     string `json:"creator,omitempty"`
	SourceTitle string `json:"source_title,omitempty"`
	ItemID      string `json:"item_id"`
	SourceURL   string `json:"source_url,omitempty"`
	Views       int64  `json:"views"`
}
