package repository

import "testing"

func TestValidateVideoID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantID  string
		wantErr bool
	}{
		{"valid short", "dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"valid with dash", "abc-def_123", "abc-def_123", false},
		{"trims whitespace", "  abc  ", "abc", false},
		{"empty", "", "", true},
		{"too long", "12345678901234567", "", true},
		{"exactly 16", "1234567890123456", "1234567890123456", false},
		{"comma would split a batch", "abc,def", "", true},
		{"url fragment", "https://youtu.be/x", "", true},
		{"unicode", "abcédef", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateVideoID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.wantID {
				t.Errorf("got %q, want %q", got, tt.wantID)
			}
		})
	}
}

func TestValidateChannelID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "UC1cpa_85aqDkSmVQBpzGdkA", "UC1cpa_85aqDkSmVQBpzGdkA", false},
		{"empty", "", "", true},
		{"too long 33", "123456789012345678901234567890123", "", true},
		{"exactly 32", "12345678901234567890123456789012", "12345678901234567890123456789012", false},
		{"invalid chars", "UC test!", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateChannelID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
