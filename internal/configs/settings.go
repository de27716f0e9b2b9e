package configs

import (
	"log"
	"os"
	"path/filepath"
)

// UserSettings holds the resolved filesystem locations for everything
// mattercrypt persists for the current user.
type UserSettings struct {
	// UserConfigPath is the directory holding settings.toml.
	UserConfigPath string

	// UserKeysPath is the directory holding armored recipient public keys.
	UserKeysPath string

	// UserSigningKeyPath is the armored private key used for signing, if imported.
	UserSigningKeyPath string

	// UserKeyringPath is the directory used by the file keyring backend.
	UserKeyringPath string
}

var UserMattercryptSettings *UserSettings

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("error getting home directory: %s", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")

	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	// This is independent of any project context, so it is ok to init here
	UserMattercryptSettings = &UserSettings{
		UserConfigPath:     filepath.Join(configDir, "mattercrypt"),
		UserKeysPath:       filepath.Join(dataDir, "mattercrypt", "keys"),
		UserSigningKeyPath: filepath.Join(dataDir, "mattercrypt", "signing_key.asc"),
		UserKeyringPath:    filepath.Join(dataDir, "mattercrypt", "keyring"),
	}
}
