package setup

import (
	"errors"
	"fmt"

	"github.com/mattercrypt/mattercrypt/internal/configs"
	"github.com/mattercrypt/mattercrypt/internal/credentials"
	mcerrors "github.com/mattercrypt/mattercrypt/internal/errors"
	logger "github.com/mattercrypt/mattercrypt/internal/logging"
)

// Bootstrap resolves a usable Session at the start of every invocation,
// triggering the setup wizard when persisted state is absent, corrupt, or
// half-complete. First-run state is derived fresh from the stores each time;
// nothing is cached across invocations.
type Bootstrap struct {
	Secrets  credentials.Store
	Prompter Prompter
	Logger   logger.Logger
}

// Resolve loads the persisted configuration and secret, running the setup
// wizard as needed.
//
//   - reinit true: full wizard, unconditionally overwriting both stores.
//   - settings missing or corrupt: full wizard.
//   - settings present, secret missing: secret-only wizard, reusing the
//     persisted fields.
//   - secure storage unavailable on a normal run: the password is prompted
//     for this invocation only, without persisting.
//
// Returns ErrSetupAborted when the operator cancels or exhausts retries.
func (b *Bootstrap) Resolve(reinit bool) (*Session, error) {
	wizard := &Wizard{Prompter: b.Prompter, Secrets: b.Secrets, Logger: b.Logger}

	if reinit {
		b.Logger.Infof("Reinit requested, running full setup")
		return wizard.Run()
	}

	settings, err := configs.LoadSettings()
	switch {
	case errors.Is(err, mcerrors.ErrConfigNotFound):
		b.Logger.Infof("No settings found, running first-time setup")
		return wizard.Run()
	case errors.Is(err, mcerrors.ErrConfigCorrupt):
		b.Logger.Warnf("Settings are unreadable (%v), running setup again", err)
		return wizard.Run()
	case err != nil:
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	password, err := b.Secrets.Get(settings.Server.Username)
	switch {
	case errors.Is(err, mcerrors.ErrSecretNotFound):
		// Half-completed setup: settings exist but the keyring entry does
		// not. Recover the secret without re-prompting the other fields.
		return wizard.RunSecretOnly(settings)
	case errors.Is(err, mcerrors.ErrStoreUnavailable):
		b.Logger.Warnf("Secure storage is unavailable (%v); the password will not be persisted", err)
		return b.promptEphemeralPassword(settings)
	case err != nil:
		return nil, fmt.Errorf("failed to read password from keyring: %w", err)
	}

	return &Session{Settings: settings, Password: password}, nil
}

// promptEphemeralPassword asks for the password for this invocation only.
// Used when the keyring backend cannot be opened outside of setup.
func (b *Bootstrap) promptEphemeralPassword(settings *configs.Settings) (*Session, error) {
	password, err := b.Prompter.PromptSecret("Login password for " + settings.Server.Username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mcerrors.ErrSetupAborted, err)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: empty password", mcerrors.ErrSetupAborted)
	}

	return &Session{Settings: settings, Password: password}, nil
}
