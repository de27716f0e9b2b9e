package setup

import (
	"fmt"
	"net/url"

	"github.com/mattercrypt/mattercrypt/internal/configs"
	"github.com/mattercrypt/mattercrypt/internal/credentials"
	mcerrors "github.com/mattercrypt/mattercrypt/internal/errors"
	logger "github.com/mattercrypt/mattercrypt/internal/logging"
)

// maxAttempts bounds how often a single field is re-prompted before the
// wizard gives up with ErrSetupAborted.
const maxAttempts = 3

// Session bundles the resolved configuration and secret, ready for use by
// the message-sending logic. It lives only for one invocation.
type Session struct {
	Settings *configs.Settings
	Password string
}

// Wizard interactively collects the server URL, username, and password and
// persists them via the configs package and the secret store.
type Wizard struct {
	Prompter Prompter
	Secrets  credentials.Store
	Logger   logger.Logger
}

// Run executes the full setup flow: prompt for every field, save the
// settings, then store the password in the keyring.
//
// Settings are saved before the secret. If storing the secret fails after
// the settings were written, the half-state is recovered on the next run by
// RunSecretOnly, so already-entered fields are not lost.
func (w *Wizard) Run() (*Session, error) {
	w.Logger.Infof("Starting full setup")

	serverURL, err := w.promptServerURL()
	if err != nil {
		return nil, err
	}

	username, err := w.promptUsername()
	if err != nil {
		return nil, err
	}

	password, err := w.promptPassword()
	if err != nil {
		return nil, err
	}

	settings := &configs.Settings{
		Server: configs.ServerConfig{
			URL:      serverURL,
			Username: username,
		},
	}

	if err := configs.SaveSettings(settings); err != nil {
		return nil, fmt.Errorf("failed to persist settings: %w", err)
	}
	w.Logger.Infof("Settings saved to %s", configs.SettingsPath())

	if err := w.Secrets.Set(username, password); err != nil {
		// The settings file is already written. The next invocation detects
		// config-present/secret-absent and re-runs the secret step only.
		return nil, fmt.Errorf("settings were saved, but storing the password failed: %w", err)
	}
	w.Logger.Infof("Password stored in keyring for %s", username)

	return &Session{Settings: settings, Password: password}, nil
}

// RunSecretOnly recovers from a half-completed setup: the settings file
// exists, but the keyring has no entry for the configured username. Only the
// password is prompted; the existing settings fields are reused as-is.
func (w *Wizard) RunSecretOnly(settings *configs.Settings) (*Session, error) {
	w.Logger.Infof("Settings found for %s, collecting password only", settings.Server.Username)

	password, err := w.promptPassword()
	if err != nil {
		return nil, err
	}

	if err := w.Secrets.Set(settings.Server.Username, password); err != nil {
		return nil, fmt.Errorf("failed to store password: %w", err)
	}
	w.Logger.Infof("Password stored in keyring for %s", settings.Server.Username)

	return &Session{Settings: settings, Password: password}, nil
}

func (w *Wizard) promptServerURL() (string, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		value, err := w.Prompter.Prompt("API URL (e.g. https://my-mattermost-server.com/api/v4)")
		if err != nil {
			return "", fmt.Errorf("%w: %v", mcerrors.ErrSetupAborted, err)
		}

		if err := validateServerURL(value); err != nil {
			w.Logger.Warnf("Invalid server URL: %v", err)
			continue
		}

		return value, nil
	}

	return "", fmt.Errorf("%w: no valid server URL after %d attempts", mcerrors.ErrSetupAborted, maxAttempts)
}

func (w *Wizard) promptUsername() (string, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		value, err := w.Prompter.Prompt("Login username")
		if err != nil {
			return "", fmt.Errorf("%w: %v", mcerrors.ErrSetupAborted, err)
		}

		if value == "" {
			w.Logger.Warnf("Username must not be empty")
			continue
		}

		return value, nil
	}

	return "", fmt.Errorf("%w: no username after %d attempts", mcerrors.ErrSetupAborted, maxAttempts)
}

func (w *Wizard) promptPassword() (string, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		password, err := w.Prompter.PromptSecret("Login password (will be securely stored in the OS keyring)")
		if err != nil {
			return "", fmt.Errorf("%w: %v", mcerrors.ErrSetupAborted, err)
		}

		if password == "" {
			w.Logger.Warnf("Password must not be empty")
			continue
		}

		confirmation, err := w.Prompter.PromptSecret("Repeat password")
		if err != nil {
			return "", fmt.Errorf("%w: %v", mcerrors.ErrSetupAborted, err)
		}

		if password != confirmation {
			w.Logger.Warnf("The passwords don't match")
			continue
		}

		return password, nil
	}

	return "", fmt.Errorf("%w: no matching password after %d attempts", mcerrors.ErrSetupAborted, maxAttempts)
}

// validateServerURL accepts absolute http(s) URLs with a host.
func validateServerURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("URL is empty")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("not a valid URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", parsed.Scheme)
	}

	if parsed.Host == "" {
		return fmt.Errorf("URL has no host")
	}

	return nil
}
