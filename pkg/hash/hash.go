package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// ShortHash returns the first n hex characters of SHA256(input).
func ShortHash(input string, n int) string {
	full := SHA256Hex(input)
	if n <= 0 || n > len(full) {
		return full
	}
	return full[:n]
}

// CacheKey builds a deterministic cache key: prefix followed by a 16-char
// hash of the parts, so keys stay short and never leak the raw inputs.
func CacheKey(prefix string, parts ...string) string {
	return prefix + ":" + ShortHash(strings.Join(parts, "|"), 16)
}
