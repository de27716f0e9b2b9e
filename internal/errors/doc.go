// Package errors provides typed error values for the mattercrypt application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Configuration errors: settings file state (ErrConfigNotFound, ErrConfigCorrupt)
//   - Secret storage errors: OS keyring state (ErrSecretNotFound, ErrStoreUnavailable)
//   - Setup errors: interactive setup outcome (ErrSetupAborted)
//   - API errors: Mattermost server failures (ErrTokenMissing, ErrAuthFailed)
//   - Message errors: outgoing message preparation (ErrRecipientKeyNotFound, ErrNoMessage)
//
// # Usage
//
// Return errors from internal packages:
//
//	if os.IsNotExist(err) {
//	    return nil, errors.ErrConfigNotFound
//	}
//
// Handle errors in the CLI layer:
//
//	session, err := bootstrap.Resolve(reinit)
//	if errors.Is(err, mcerrors.ErrSetupAborted) {
//	    // Exit non-zero with a short message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("loading key for %s: %w", email, errors.ErrRecipientKeyNotFound)
package errors
