package hash

import (
	"strings"
	"testing"
)

func TestSHA256Hex_KnownVector(t *testing.T) {
	// echo -n "abc" | sha256sum
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got := SHA256Hex("abc"); got != want {
		t.Errorf("SHA256Hex(abc) = %s, want %s", got, want)
	}
}

func TestSHA256Hex_Empty(t *testing.T) {
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := SHA256Hex(""); got != want {
		t.Errorf("SHA256Hex('') = %s, want %s", got, want)
	}
}

func TestShortHash(t *testing.T) {
	full := SHA256Hex("203.0.113.9")
	tests := []struct {
		n    int
		want string
	}{
		{12, full[:12]},
		{1, full[:1]},
		{64, full},
		{0, full},
		{100, full},
	}
	for _, tt := range tests {
		if got := ShortHash("203.0.113.9", tt.n); got != tt.want {
			t.Errorf("ShortHash(n=%d) = %s, want %s", tt.n, got, tt.want)
		}
	}
}

func TestCacheKey(t *testing.T) {
	a := CacheKey("dashboard:snapshot", "sheet-1", "UCabc")
	b := CacheKey("dashboard:snapshot", "sheet-1", "UCabc")
	c := CacheKey("dashboard:snapshot", "sheet-2", "UCabc")

	if a != b {
		t.Errorf("same inputs produced different keys: %s vs %s", a, b)
	}
	if a == c {
		t.Errorf("different inputs produced the same key: %s", a)
	}
	if !strings.HasPrefix(a, "dashboard:snapshot:") {
		t.Errorf("key %q missing prefix", a)
	}
	if len(a) != len("dashboard:snapshot:")+16 {
		t.Errorf("key %q has unexpected length %d", a, len(a))
	}
	if strings.Contains(a, "UCabc") {
		t.Errorf("key %q leaks raw input", a)
	}
}
