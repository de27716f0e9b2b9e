package configs

import (
	"fmt"
	"os"
	"path/filepath"

	mcerrors "github.com/mattercrypt/mattercrypt/internal/errors"
)

const settingsFileName = "settings.toml"

// Settings is the persisted non-secret configuration. The account password
// is never stored here; it lives in the OS keyring.
type Settings struct {
	Server ServerConfig `toml:"server"`
}

// ServerConfig identifies the Mattermost server and account.
type ServerConfig struct {
	URL           string `toml:"url"`
	Username      string `toml:"username"`
	SignByDefault bool   `toml:"sign_by_default"`
}

// SettingsPath returns the full path of the persisted settings file.
func SettingsPath() string {
	return filepath.Join(UserMattercryptSettings.UserConfigPath, settingsFileName)
}

// LoadSettings reads the persisted settings.
//
// Returns ErrConfigNotFound when no settings file exists, and
// ErrConfigCorrupt when the file is present but unparsable or missing a
// required field. Both conditions are recovered by re-running setup.
func LoadSettings() (*Settings, error) {
	settingsPath := SettingsPath()

	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		return nil, mcerrors.ErrConfigNotFound
	}

	settings := &Settings{}
	if err := LoadTOML(settingsPath, settings); err != nil {
		return nil, fmt.Errorf("%w: %v", mcerrors.ErrConfigCorrupt, err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", mcerrors.ErrConfigCorrupt, err)
	}

	return settings, nil
}

// SaveSettings atomically replaces the persisted settings. A partial
// configuration is rejected before anything touches the disk.
func SaveSettings(settings *Settings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("refusing to save incomplete settings: %w", err)
	}

	if err := SaveTOML(SettingsPath(), settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return nil
}

// Validate checks that all required fields are present.
func (s *Settings) Validate() error {
	if s.Server.URL == "" {
		return fmt.Errorf("server URL is empty")
	}
	if s.Server.Username == "" {
		return fmt.Errorf("username is empty")
	}
	return nil
}
