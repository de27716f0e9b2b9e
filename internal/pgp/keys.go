package pgp

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ProtonMail/gopenpgp/v2/crypto"

	"github.com/mattercrypt/mattercrypt/internal/configs"
	mcerrors "github.com/mattercrypt/mattercrypt/internal/errors"
)

// KeyInfo describes an imported key.
type KeyInfo struct {
	Recipient   string
	Fingerprint string
}

// RecipientKeyPath returns where the armored public key for the given
// recipient email lives on disk.
func RecipientKeyPath(recipient string) string {
	return filepath.Join(configs.UserMattercryptSettings.UserKeysPath, keyFileName(recipient))
}

// ImportRecipientKey validates the armored key and stores its public part
// under the recipient's email. An existing key for the same recipient is
// overwritten.
func ImportRecipientKey(recipient string, armored []byte) (*KeyInfo, error) {
	if err := validateRecipient(recipient); err != nil {
		return nil, err
	}

	key, err := crypto.NewKeyFromArmored(string(armored))
	if err != nil {
		return nil, fmt.Errorf("failed to parse armored key: %w", err)
	}

	// Always store the public part, even if a private key was supplied.
	publicArmored, err := key.GetArmoredPublicKey()
	if err != nil {
		return nil, fmt.Errorf("failed to extract public key: %w", err)
	}

	keyPath := RecipientKeyPath(recipient)
	if err := os.MkdirAll(filepath.Dir(keyPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create keys directory: %w", err)
	}
	if err := os.WriteFile(keyPath, []byte(publicArmored), 0600); err != nil {
		return nil, fmt.Errorf("failed to write key file: %w", err)
	}

	return &KeyInfo{Recipient: recipient, Fingerprint: key.GetFingerprint()}, nil
}

// LoadRecipientKey loads the imported public key for the given recipient.
// Returns ErrRecipientKeyNotFound when no key has been imported.
func LoadRecipientKey(recipient string) (*crypto.Key, error) {
	if err := validateRecipient(recipient); err != nil {
		return nil, err
	}

	armored, err := os.ReadFile(RecipientKeyPath(recipient))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", mcerrors.ErrRecipientKeyNotFound, recipient)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	key, err := crypto.NewKeyFromArmored(string(armored))
	if err != nil {
		return nil, fmt.Errorf("failed to parse key for %s: %w", recipient, err)
	}

	return key, nil
}

// ListRecipientKeys returns all imported recipient keys, sorted by recipient.
func ListRecipientKeys() ([]KeyInfo, error) {
	entries, err := os.ReadDir(configs.UserMattercryptSettings.UserKeysPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read keys directory: %w", err)
	}

	var keys []KeyInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".asc") {
			continue
		}
		recipient := strings.TrimSuffix(entry.Name(), ".asc")

		key, err := LoadRecipientKey(recipient)
		if err != nil {
			return nil, err
		}
		keys = append(keys, KeyInfo{Recipient: recipient, Fingerprint: key.GetFingerprint()})
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i].Recipient < keys[j].Recipient })
	return keys, nil
}

// ImportSigningKey stores the armored private key used to sign outgoing
// messages. The key must contain private key material; it may be
// passphrase-locked.
func ImportSigningKey(armored []byte) (*KeyInfo, error) {
	key, err := crypto.NewKeyFromArmored(string(armored))
	if err != nil {
		return nil, fmt.Errorf("failed to parse armored key: %w", err)
	}
	if !key.IsPrivate() {
		return nil, fmt.Errorf("signing key must be a private key")
	}

	keyPath := configs.UserMattercryptSettings.UserSigningKeyPath
	if err := os.MkdirAll(filepath.Dir(keyPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(keyPath, armored, 0600); err != nil {
		return nil, fmt.Errorf("failed to write signing key: %w", err)
	}

	return &KeyInfo{Recipient: "", Fingerprint: key.GetFingerprint()}, nil
}

// LoadSigningKey loads the imported signing key.
// Returns ErrSigningKeyNotFound when none has been imported.
func LoadSigningKey() (*crypto.Key, error) {
	armored, err := os.ReadFile(configs.UserMattercryptSettings.UserSigningKeyPath)
	if os.IsNotExist(err) {
		return nil, mcerrors.ErrSigningKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read signing key: %w", err)
	}

	key, err := crypto.NewKeyFromArmored(string(armored))
	if err != nil {
		return nil, fmt.Errorf("failed to parse signing key: %w", err)
	}

	return key, nil
}

func keyFileName(recipient string) string {
	return strings.ToLower(recipient) + ".asc"
}

// validateRecipient rejects identifiers that would escape the keys
// directory or collide after lowercasing to a file name.
func validateRecipient(recipient string) error {
	if recipient == "" {
		return fmt.Errorf("recipient is empty")
	}
	if strings.ContainsAny(recipient, "/\\") || recipient == "." || recipient == ".." {
		return fmt.Errorf("invalid recipient %q", recipient)
	}
	return nil
}
