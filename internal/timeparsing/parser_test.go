package timeparsing

import (
	"testing"
	"time"
)

func TestParseCompactDuration(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{"+6h", now.Add(6 * time.Hour), false},
		{"-1d", now.AddDate(0, 0, -1), false},
		{"+2w", now.AddDate(0, 0, 14), false},
		{"3m", now.AddDate(0, 3, 0), false},
		{"1y", now.AddDate(1, 0, 0), false},
		{"tomorrow", time.Time{}, true},
		{"6", time.Time{}, true},
		{"+h", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCompactDuration(tt.input, now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCompactDuration(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParseCompactDuration(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTimeLayers(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	// Compact layer.
	got, err := ParseTime("-1d", now)
	if err != nil {
		t.Fatal(err)
	}
	if got.Day() != 14 {
		t.Errorf("ParseTime(-1d).Day() = %d, want 14", got.Day())
	}

	// Absolute layers.
	got, err = ParseTime("2025-03-01T09:30:00Z", now)
	if err != nil {
		t.Fatal(err)
	}
	if got.Month() != time.March || got.Hour() != 9 {
		t.Errorf("RFC3339 parse = %v", got)
	}

	got, err = ParseTime("2025-03-01", now)
	if err != nil {
		t.Fatal(err)
	}
	if got.Day() != 1 || got.Month() != time.March {
		t.Errorf("date-only parse = %v", got)
	}

	// Natural language layer.
	got, err = ParseTime("tomorrow", now)
	if err != nil {
		t.Fatal(err)
	}
	if got.Day() != 16 {
		t.Errorf("ParseTime(tomorrow).Day() = %d, want 16", got.Day())
	}

	if _, err := ParseTime("gibberish input", now); err == nil {
		t.Error("ParseTime should reject unparseable input")
	}
}

func TestJiraTimestamp(t *testing.T) {
	ts := time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)
	got := JiraTimestamp(ts)
	want := "2025-01-15T09:30:00.000+0000"
	if got != want {
		t.Errorf("JiraTimestamp = %q, want %q", got, want)
	}
}
