// Package configs manages persisted settings for mattercrypt.
//
// Settings are stored in TOML format in the user config directory:
//
//	~/.config/mattercrypt/settings.toml
//
// The file holds the Mattermost server URL, the login username, and the
// default-signing preference. The account password is never written here;
// it is stored in the OS keyring (see the credentials package).
//
// # Atomic writes
//
// Settings are always replaced atomically: the new content is written to a
// temporary file in the same directory and renamed into place. A reader
// never observes a partially written file, and a crash mid-write leaves the
// previous settings intact.
//
// # Settings paths
//
// Global paths are initialized at startup in UserMattercryptSettings:
//   - UserConfigPath: directory of settings.toml
//   - UserKeysPath: armored recipient public keys
//   - UserSigningKeyPath: armored signing key, if imported
//   - UserKeyringPath: file-backend keyring directory for headless hosts
package configs
