package period

import (
	"testing"
	"time"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		in   int
		want bool
	}{
		{in: 202506, want: true},
		{in: 202412, want: true},
		{in: 200001, want: true},
		{in: 999912, want: true},
		{in: 202500, want: false},
		{in: 202513, want: false},
		{in: 199912, want: false},
		{in: 20250, want: false},
		{in: 2025061, want: false},
		{in: 0, want: false},
		{in: -202506, want: false},
	}

	for _, tt := range tests {
		if got := IsValid(tt.in); got != tt.want {
			t.Fatalf("IsValid(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCurrentMatchesClock(t *testing.T) {
	now := time.Now().UTC()
	want := now.Year()*100 + int(now.Month())
	if got := Current(); got != want {
		t.Fatalf("Current() = %d, want %d", got, want)
	}
	if !IsValid(Current()) {
		t.Fatalf("Current() produced an invalid period")
	}
}
