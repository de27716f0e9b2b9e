// Package credentials stores the account password in the OS keyring.
//
// The password is never written to the settings file. It is stored under
// the service name "mattercrypt" keyed by the login username, using
// whichever secure-storage backend the host provides (Keychain on macOS,
// Secret Service on Linux, Credential Manager on Windows).
//
// # Headless hosts
//
// Hosts without a desktop keyring can select the encrypted file backend:
//
//	MATTERCRYPT_KEYRING_BACKEND=file
//	MATTERCRYPT_KEYRING_PASSWORD=...   # optional, for non-interactive use
//
// The file backend stores entries under the user data directory.
//
// # Error mapping
//
// Absent entries surface as errors.ErrSecretNotFound; a backend that cannot
// be opened surfaces as errors.ErrStoreUnavailable. The setup flow treats
// the latter as fatal, while normal runs fall back to prompting for the
// password without persisting it.
package credentials
