package timeparsing

import "testing"

func TestParseWorkDuration(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"30m", 1800, false},
		{"2h", 7200, false},
		{"2h 30m", 9000, false},
		{"1d", 28800, false},
		{"1w", 144000, false},
		{"1w 2d 3h", 212400, false},
		{"30m 2h", 9000, false}, // order doesn't matter
		{"", 0, true},
		{"2x", 0, true},
		{"2h 3h", 0, true}, // duplicate unit
		{"0m", 0, true},
		{"2.5h", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWorkDuration(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWorkDuration(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseWorkDuration(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatWorkDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0m"},
		{59, "0m"},
		{1800, "30m"},
		{9000, "2h 30m"},
		{28800, "1d"},
		{212400, "1w 2d 3h"},
		{144000 + 60, "1w 1m"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatWorkDuration(tt.seconds); got != tt.want {
				t.Errorf("FormatWorkDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}
