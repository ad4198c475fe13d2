// Package config manages jira-as settings: a YAML config file under the
// user's config directory, overridden by environment variables. All access
// goes through a viper singleton initialized once at startup.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// v is the viper singleton. Initialize() must run before any getter.
var v *viper.Viper

// Keys understood by the config file and the `jira-as config` command.
const (
	KeyURL            = "url"
	KeyEmail          = "email"
	KeyAPIToken       = "api-token"
	KeyDefaultProject = "default-project"
	KeyCacheTTL       = "cache-ttl"
	KeyMock           = "mock"
	KeyTimeout        = "timeout"
	KeyOutput         = "output"
)

// knownKeys gates what `config set` will accept.
var knownKeys = map[string]bool{
	KeyURL:            true,
	KeyEmail:          true,
	KeyAPIToken:       true,
	KeyDefaultProject: true,
	KeyCacheTTL:       true,
	KeyMock:           true,
	KeyTimeout:        true,
	KeyOutput:         true,
}

// IsKnownKey reports whether key is a recognized configuration key.
func IsKnownKey(key string) bool {
	return knownKeys[key]
}

// Keys returns the recognized configuration keys in sorted order.
func Keys() []string {
	out := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Initialize sets up the viper singleton: defaults, the config file (if one
// exists), and environment variable bindings. Environment variables win over
// the file.
func Initialize() error {
	nv := viper.New()
	nv.SetConfigType("yaml")

	nv.SetDefault(KeyCacheTTL, 5*time.Minute)
	nv.SetDefault(KeyTimeout, 2*time.Minute)
	nv.SetDefault(KeyMock, false)
	nv.SetDefault(KeyOutput, "table")

	// A missing config file is fine; a malformed one is not.
	path := FilePath()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			nv.SetConfigFile(path)
			if err := nv.ReadInConfig(); err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
		}
	}

	// The credential variables follow the names Atlassian tooling uses;
	// the rest are prefixed with JIRA_AS.
	bindings := map[string]string{
		KeyURL:            "JIRA_URL",
		KeyEmail:          "JIRA_EMAIL",
		KeyAPIToken:       "JIRA_API_TOKEN",
		KeyDefaultProject: "JIRA_DEFAULT_PROJECT",
		KeyMock:           "JIRA_MOCK_MODE",
		KeyCacheTTL:       "JIRA_AS_CACHE_TTL",
		KeyTimeout:        "JIRA_AS_TIMEOUT",
		KeyOutput:         "JIRA_AS_OUTPUT",
	}
	for key, envVar := range bindings {
		if err := nv.BindEnv(key, envVar); err != nil {
			return err
		}
	}

	v = nv
	return nil
}

// FilePath returns the config file location: $JIRA_AS_CONFIG if set,
// otherwise <user config dir>/jira-as/config.yaml. Empty when no home
// directory can be determined.
func FilePath() string {
	if path := os.Getenv("JIRA_AS_CONFIG"); path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "jira-as", "config.yaml")
}

// GetString returns a string config value.
func GetString(key string) string {
	if v == nil {
		return ""
	}
	return v.GetString(key)
}

// GetBool returns a boolean config value.
func GetBool(key string) bool {
	if v == nil {
		return false
	}
	return v.GetBool(key)
}

// GetDuration returns a duration config value.
func GetDuration(key string) time.Duration {
	if v == nil {
		return 0
	}
	return v.GetDuration(key)
}

// Credentials is the connection info the HTTP client needs.
type Credentials struct {
	URL      string
	Email    string
	APIToken string
}

// LoadCredentials collects and validates the connection settings. Mock mode
// never calls this.
func LoadCredentials() (*Credentials, error) {
	creds := &Credentials{
		URL:      strings.TrimRight(GetString(KeyURL), "/"),
		Email:    GetString(KeyEmail),
		APIToken: GetString(KeyAPIToken),
	}

	var missing []string
	if creds.URL == "" {
		missing = append(missing, "url (JIRA_URL)")
	}
	if creds.Email == "" {
		missing = append(missing, "email (JIRA_EMAIL)")
	}
	if creds.APIToken == "" {
		missing = append(missing, "api-token (JIRA_API_TOKEN)")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing configuration: %s", strings.Join(missing, ", "))
	}

	if !strings.HasPrefix(creds.URL, "https://") && !strings.HasPrefix(creds.URL, "http://") {
		return nil, fmt.Errorf("url %q must start with https:// or http://", creds.URL)
	}

	return creds, nil
}

// MockMode reports whether the in-memory client should be used instead of
// the live API.
func MockMode() bool {
	return GetBool(KeyMock)
}

// Validate checks the current configuration and returns a list of problems,
// empty when everything looks fine.
func Validate() []string {
	var issues []string

	url := GetString(KeyURL)
	if url != "" && !strings.HasPrefix(url, "https://") && !strings.HasPrefix(url, "http://") {
		issues = append(issues, fmt.Sprintf("url: %q must start with https:// or http://", url))
	}

	email := GetString(KeyEmail)
	if email != "" && !strings.Contains(email, "@") {
		issues = append(issues, fmt.Sprintf("email: %q does not look like an email address", email))
	}

	if output := GetString(KeyOutput); output != "" && output != "table" && output != "json" {
		issues = append(issues, fmt.Sprintf("output: %q is invalid (valid values: table, json)", output))
	}

	if ttl := GetString(KeyCacheTTL); ttl != "" {
		if _, err := time.ParseDuration(ttl); err != nil {
			if GetDuration(KeyCacheTTL) == 0 {
				issues = append(issues, fmt.Sprintf("cache-ttl: %q is not a valid duration", ttl))
			}
		}
	}

	return issues
}
