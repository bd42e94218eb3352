package utils

import (
	"strings"
	"testing"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{
			name:   "shorter than limit",
			input:  "hello",
			maxLen: 10,
			want:   "hello",
		},
		{
			name:   "exactly at limit",
			input:  "hello",
			maxLen: 5,
			want:   "hello",
		},
		{
			name:   "longer than limit",
			input:  "hello world",
			maxLen: 5,
			want:   "hello... (truncated, total: 11 chars)",
		},
		{
			name:   "empty string",
			input:  "",
			maxLen: 5,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateString(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestTruncateString_ZeroMaxUsesDefault(t *testing.T) {
	long := strings.Repeat("a", DefaultMaxStringLength+100)
	got := TruncateString(long, 0)
	if !strings.HasPrefix(got, strings.Repeat("a", DefaultMaxStringLength)) {
		t.Error("expected default-length prefix")
	}
	if !strings.Contains(got, "truncated") {
		t.Errorf("got %q, want truncation suffix", got[:50])
	}
}
