package pgp

import (
	"fmt"

	"github.com/ProtonMail/gopenpgp/v2/crypto"
)

// Encrypt encrypts the message for the recipient's public key and returns
// armored ciphertext.
func Encrypt(message string, recipient *crypto.Key) (string, error) {
	recipientRing, err := crypto.NewKeyRing(recipient)
	if err != nil {
		return "", fmt.Errorf("failed to build recipient keyring: %w", err)
	}

	encrypted, err := recipientRing.Encrypt(crypto.NewPlainMessageFromString(message), nil)
	if err != nil {
		return "", fmt.Errorf("encryption failed: %w", err)
	}

	armored, err := encrypted.GetArmored()
	if err != nil {
		return "", fmt.Errorf("failed to armor ciphertext: %w", err)
	}

	return armored, nil
}

// EncryptAndSign encrypts the message for the recipient and signs it with
// the given private key. A locked signer is unlocked with the passphrase.
func EncryptAndSign(message string, recipient, signer *crypto.Key, passphrase []byte) (string, error) {
	locked, err := signer.IsLocked()
	if err != nil {
		return "", fmt.Errorf("failed to inspect signing key: %w", err)
	}
	if locked {
		unlocked, err := signer.Unlock(passphrase)
		if err != nil {
			return "", fmt.Errorf("failed to unlock signing key: %w", err)
		}
		signer = unlocked
	}

	recipientRing, err := crypto.NewKeyRing(recipient)
	if err != nil {
		return "", fmt.Errorf("failed to build recipient keyring: %w", err)
	}
	signingRing, err := crypto.NewKeyRing(signer)
	if err != nil {
		return "", fmt.Errorf("failed to build signing keyring: %w", err)
	}

	encrypted, err := recipientRing.Encrypt(crypto.NewPlainMessageFromString(message), signingRing)
	if err != nil {
		return "", fmt.Errorf("sign-and-encrypt failed: %w", err)
	}

	armored, err := encrypted.GetArmored()
	if err != nil {
		return "", fmt.Errorf("failed to armor ciphertext: %w", err)
	}

	return armored, nil
}

// DecryptFence wraps armored ciphertext in the code-fenced decrypt snippet
// that gets posted, so the recipient can paste it straight into a shell.
func DecryptFence(armored string) string {
	return fmt.Sprintf("```\necho \"\n%s\" | gpg --decrypt\n```", armored)
}
