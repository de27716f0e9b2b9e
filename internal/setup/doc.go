// Package setup implements the first-run wizard and per-invocation session
// bootstrap.
//
// Every invocation starts with Bootstrap.Resolve, which derives the current
// state from the settings file and the OS keyring:
//
//	settings   keyring    action
//	absent     -          full wizard
//	corrupt    -          full wizard
//	present    absent     secret-only wizard (fields reused)
//	present    present    session returned directly
//
// Passing --reinit forces the full wizard regardless of prior state and
// overwrites both stores.
//
// The wizard prompts in fixed order (server URL, username, password),
// validates the URL syntactically, confirms the password by double entry,
// and allows three attempts per field before aborting with ErrSetupAborted.
// Settings are saved before the secret so a keyring failure leaves a
// recoverable half-state rather than losing the entered fields.
package setup
