package repository

import (
	"regexp"
	"strings"
)

// Length limits for YouTube identifiers.
const (
	MaxVideoIDLen   = 16
	MaxChannelIDLen = 32
)

var (
	// videoIDRe matches YouTube video IDs: alphanumeric, dash, underscore.
	videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	// channelIDRe matches YouTube channel IDs.
	channelIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// ValidateVideoID checks that a video ID is well-formed enough to send to
// videos.list. Returns the trimmed id, or an error message.
func ValidateVideoID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "videoId is required"
	}
	if len(id) > MaxVideoIDLen {
		return "", "videoId must be at most 16 characters"
	}
	if !videoIDRe.MatchString(id) {
		return "", "videoId contains invalid characters"
	}
	return id, ""
}

// ValidateChannelID checks that a channel ID is well-formed.
func ValidateChannelID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "channelId is required"
	}
	if len(id) > MaxChannelIDLen {
		return "", "channelId must be at most 32 characters"
	}
	if !channelIDRe.MatchString(id) {
		return "", "channelId contains invalid characters"
	}
	return id, ""
}
