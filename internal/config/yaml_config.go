package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SetYamlConfig writes a key into the config file, creating the file and its
// directory on first use. The viper singleton is re-initialized afterwards so
// the change takes effect immediately.
func SetYamlConfig(key, value string) error {
	if !IsKnownKey(key) {
		return fmt.Errorf("unknown configuration key %q", key)
	}

	path := FilePath()
	if path == "" {
		return fmt.Errorf("cannot determine config file location")
	}

	settings := map[string]any{}
	if data, err := os.ReadFile(path); err == nil { // #nosec G304 - path from FilePath
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	settings[key] = value

	data, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	// 0600: the file may hold an API token.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return Initialize()
}

// UnsetYamlConfig removes a key from the config file. Removing an absent key
// is a no-op.
func UnsetYamlConfig(key string) error {
	path := FilePath()
	if path == "" {
		return fmt.Errorf("cannot determine config file location")
	}

	data, err := os.ReadFile(path) // #nosec G304 - path from FilePath
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	settings := map[string]any{}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if _, ok := settings[key]; !ok {
		return nil
	}
	delete(settings, key)

	out, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return Initialize()
}
