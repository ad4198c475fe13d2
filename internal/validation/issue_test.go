package validation

import "testing"

func TestNormalizeIssueKey(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"DEMO-123", "DEMO-123", false},
		{"demo-123", "DEMO-123", false},
		{"Demo-123", "DEMO-123", false},
		{" demo-123 ", "DEMO-123", false},
		{"AB_C1-9", "AB_C1-9", false},

		{"DEMO", "", true},
		{"DEMO-", "", true},
		{"DEMO-0", "", true},
		{"-123", "", true},
		{"123-DEMO", "", true},
		{"DEMO-12a", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeIssueKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeIssueKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NormalizeIssueKey(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIssueKeys(t *testing.T) {
	got, err := NormalizeIssueKeys([]string{"demo-1", "DEMO-2"})
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != "DEMO-1" || got[1] != "DEMO-2" {
		t.Errorf("NormalizeIssueKeys = %v", got)
	}

	if _, err := NormalizeIssueKeys([]string{"demo-1", "bad"}); err == nil {
		t.Error("NormalizeIssueKeys should fail on the invalid element")
	}
}

func TestNormalizeProjectKey(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"DEMO", "DEMO", false},
		{"demo", "DEMO", false},
		{"AB", "AB", false},
		{"AB_C9", "AB_C9", false},

		{"1DEMO", "", true},
		{"TOOLONGPROJECT", "", true},
		{"DE MO", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeProjectKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeProjectKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NormalizeProjectKey(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestProjectKeyOf(t *testing.T) {
	if got := ProjectKeyOf("DEMO-123"); got != "DEMO" {
		t.Errorf("ProjectKeyOf(DEMO-123) = %q", got)
	}
}

func TestValidateAccountID(t *testing.T) {
	if err := ValidateAccountID("abc123"); err != nil {
		t.Errorf("valid id rejected: %v", err)
	}
	if err := ValidateAccountID("5b10ac8d82e05b22cc7d4ef5:1234"); err != nil {
		t.Errorf("legacy id rejected: %v", err)
	}
	if err := ValidateAccountID(""); err == nil {
		t.Error("empty id accepted")
	}
	if err := ValidateAccountID("has spaces"); err == nil {
		t.Error("id with spaces accepted")
	}
}
