package errors

import "errors"

// Configuration errors indicate problems with the persisted settings file.
var (
	// ErrConfigNotFound indicates no settings file has been written yet.
	ErrConfigNotFound = errors.New("configuration not found")

	// ErrConfigCorrupt indicates the settings file exists but could not be
	// parsed or is missing required fields.
	ErrConfigCorrupt = errors.New("configuration is corrupt")
)

// Secret storage errors indicate problems with the OS keyring.
var (
	// ErrSecretNotFound indicates the keyring holds no entry for the account.
	ErrSecretNotFound = errors.New("secret not found in keyring")

	// ErrStoreUnavailable indicates no secure-storage backend could be opened
	// on this host.
	ErrStoreUnavailable = errors.New("secure storage is unavailable")
)

// Setup errors indicate the interactive first-run flow did not complete.
var (
	// ErrSetupAborted indicates the user cancelled setup or exhausted the
	// allowed number of attempts for a field.
	ErrSetupAborted = errors.New("setup aborted")
)

// API errors indicate failures talking to the Mattermost server.
var (
	// ErrTokenMissing indicates the login response did not carry a session token.
	ErrTokenMissing = errors.New("token was not returned as expected from server")

	// ErrAuthFailed indicates the server rejected the stored credentials.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrUserNotFound indicates no account exists for the given email address.
	ErrUserNotFound = errors.New("user not found")
)

// Message errors indicate problems preparing the outgoing message.
var (
	// ErrRecipientKeyNotFound indicates no imported public key exists for the recipient.
	ErrRecipientKeyNotFound = errors.New("recipient public key not found")

	// ErrSigningKeyNotFound indicates no signing key has been imported.
	ErrSigningKeyNotFound = errors.New("signing key not found")

	// ErrNoMessage indicates no message content was provided on any input source.
	ErrNoMessage = errors.New("no message provided")

	// ErrConflictingInput indicates a message was given both as an argument and a file.
	ErrConflictingInput = errors.New("message provided by both argument and file")
)
