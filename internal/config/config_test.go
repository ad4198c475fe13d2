package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// pointConfigAt sends FilePath to a temp file for the duration of a test.
func pointConfigAt(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	t.Setenv("JIRA_AS_CONFIG", path)
	return path
}

func TestInitializeDefaults(t *testing.T) {
	pointConfigAt(t, t.TempDir())

	if err := Initialize(); err != nil {
		t.Fatalf("Initialize() returned error: %v", err)
	}

	tests := []struct {
		key      string
		expected interface{}
		getter   func(string) interface{}
	}{
		{"mock", false, func(k string) interface{} { return GetBool(k) }},
		{"url", "", func(k string) interface{} { return GetString(k) }},
		{"output", "table", func(k string) interface{} { return GetString(k) }},
		{"cache-ttl", 5 * time.Minute, func(k string) interface{} { return GetDuration(k) }},
		{"timeout", 2 * time.Minute, func(k string) interface{} { return GetDuration(k) }},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := tt.getter(tt.key)
			if got != tt.expected {
				t.Errorf("get(%q) = %v, want %v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestEnvironmentBinding(t *testing.T) {
	pointConfigAt(t, t.TempDir())

	tests := []struct {
		envVar   string
		key      string
		value    string
		expected interface{}
		getter   func(string) interface{}
	}{
		{"JIRA_URL", "url", "https://test.atlassian.net", "https://test.atlassian.net", func(k string) interface{} { return GetString(k) }},
		{"JIRA_EMAIL", "email", "me@example.com", "me@example.com", func(k string) interface{} { return GetString(k) }},
		{"JIRA_MOCK_MODE", "mock", "true", true, func(k string) interface{} { return GetBool(k) }},
		{"JIRA_AS_CACHE_TTL", "cache-ttl", "30s", 30 * time.Second, func(k string) interface{} { return GetDuration(k) }},
	}

	for _, tt := range tests {
		t.Run(tt.envVar, func(t *testing.T) {
			t.Setenv(tt.envVar, tt.value)
			if err := Initialize(); err != nil {
				t.Fatalf("Initialize() returned error: %v", err)
			}
			got := tt.getter(tt.key)
			if got != tt.expected {
				t.Errorf("get(%q) = %v, want %v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestConfigFileAndOverride(t *testing.T) {
	path := pointConfigAt(t, t.TempDir())
	content := "url: https://file.atlassian.net\nemail: file@example.com\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	if err := Initialize(); err != nil {
		t.Fatalf("Initialize() returned error: %v", err)
	}
	if got := GetString(KeyURL); got != "https://file.atlassian.net" {
		t.Errorf("url from file = %q", got)
	}

	// Environment wins over the file.
	t.Setenv("JIRA_URL", "https://env.atlassian.net")
	if err := Initialize(); err != nil {
		t.Fatal(err)
	}
	if got := GetString(KeyURL); got != "https://env.atlassian.net" {
		t.Errorf("url with env override = %q", got)
	}
}

func TestLoadCredentials(t *testing.T) {
	pointConfigAt(t, t.TempDir())
	t.Setenv("JIRA_URL", "https://test.atlassian.net/")
	t.Setenv("JIRA_EMAIL", "me@example.com")
	t.Setenv("JIRA_API_TOKEN", "secret")
	if err := Initialize(); err != nil {
		t.Fatal(err)
	}

	creds, err := LoadCredentials()
	if err != nil {
		t.Fatalf("LoadCredentials() returned error: %v", err)
	}
	if creds.URL != "https://test.atlassian.net" {
		t.Errorf("URL = %q, trailing slash not stripped", creds.URL)
	}

	t.Setenv("JIRA_API_TOKEN", "")
	if err := Initialize(); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCredentials(); err == nil {
		t.Error("LoadCredentials() with missing token should fail")
	}
}

func TestSetYamlConfig(t *testing.T) {
	path := pointConfigAt(t, t.TempDir())
	if err := Initialize(); err != nil {
		t.Fatal(err)
	}

	if err := SetYamlConfig("default-project", "DEMO"); err != nil {
		t.Fatalf("SetYamlConfig() returned error: %v", err)
	}
	if got := GetString(KeyDefaultProject); got != "DEMO" {
		t.Errorf("default-project = %q, want DEMO", got)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config file mode = %v, want 0600", info.Mode().Perm())
	}

	if err := SetYamlConfig("not-a-key", "x"); err == nil {
		t.Error("SetYamlConfig() with unknown key should fail")
	}

	if err := UnsetYamlConfig("default-project"); err != nil {
		t.Fatalf("UnsetYamlConfig() returned error: %v", err)
	}
	if got := GetString(KeyDefaultProject); got != "" {
		t.Errorf("default-project after unset = %q, want empty", got)
	}
}

func TestValidate(t *testing.T) {
	pointConfigAt(t, t.TempDir())
	t.Setenv("JIRA_URL", "not-a-url")
	t.Setenv("JIRA_EMAIL", "not-an-email")
	t.Setenv("JIRA_AS_OUTPUT", "xml")
	if err := Initialize(); err != nil {
		t.Fatal(err)
	}

	issues := Validate()
	if len(issues) != 3 {
		t.Errorf("Validate() returned %d issues, want 3: %v", len(issues), issues)
	}
}
