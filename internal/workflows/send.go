package workflows

import (
	"context"
	"fmt"

	"github.com/ProtonMail/gopenpgp/v2/crypto"

	logger "github.com/mattercrypt/mattercrypt/internal/logging"
	"github.com/mattercrypt/mattercrypt/internal/mattermost"
	"github.com/mattercrypt/mattercrypt/internal/pgp"
	"github.com/mattercrypt/mattercrypt/internal/setup"
)

// SendOptions configures the send workflow.
type SendOptions struct {
	// Recipients are the email addresses to deliver the message to. Each
	// recipient must have an imported public key.
	Recipients []string

	// Sign requests signing the message with the imported signing key.
	// The settings-level default can also turn this on.
	Sign bool

	// MessageArg is the message given as a positional argument, if any.
	MessageArg string

	// FilePath is the message file given with --file, if any.
	FilePath string

	// PassphraseFunc is called once if the signing key is locked.
	PassphraseFunc func(prompt string) (string, error)

	// Logger receives verbose progress output.
	Logger logger.Logger
}

// Delivery records one successfully delivered recipient.
type Delivery struct {
	Email       string
	ChannelID   string
	Fingerprint string
}

// SendResult contains the outcome of a send operation.
type SendResult struct {
	// From is the sender's email as reported by the server.
	From string

	// Delivered lists each recipient the message reached, in order.
	Delivered []Delivery
}

// Send encrypts the message per recipient and posts it as a direct message
// to each of them.
//
// The message is encrypted separately for every recipient with their
// imported public key; with signing enabled it is also signed with the
// imported signing key. Delivery stops at the first failure, and the
// returned error reports which recipient failed.
func Send(ctx context.Context, session *setup.Session, opts SendOptions) (*SendResult, error) {
	if len(opts.Recipients) == 0 {
		return nil, fmt.Errorf("no recipients given")
	}

	message, err := ResolveMessage(opts.MessageArg, opts.FilePath)
	if err != nil {
		return nil, err
	}

	sign := opts.Sign || session.Settings.Server.SignByDefault

	var signer *crypto.Key
	var passphrase []byte
	if sign {
		signer, err = pgp.LoadSigningKey()
		if err != nil {
			return nil, err
		}

		locked, err := signer.IsLocked()
		if err != nil {
			return nil, fmt.Errorf("failed to inspect signing key: %w", err)
		}
		if locked {
			if opts.PassphraseFunc == nil {
				return nil, fmt.Errorf("signing key is locked and no passphrase prompt is available")
			}
			entered, err := opts.PassphraseFunc("Signing key passphrase")
			if err != nil {
				return nil, fmt.Errorf("failed to read signing key passphrase: %w", err)
			}
			passphrase = []byte(entered)
		}
		opts.Logger.Infof("Signing with key %s", signer.GetFingerprint())
	}

	client := mattermost.NewClient(session.Settings.Server.URL)

	token, self, err := client.Login(ctx, session.Settings.Server.Username, session.Password)
	if err != nil {
		return nil, fmt.Errorf("login as %s: %w", session.Settings.Server.Username, err)
	}
	opts.Logger.Infof("Logged in as %s", self.Email)

	result := &SendResult{From: self.Email}

	for _, recipient := range opts.Recipients {
		recipientKey, err := pgp.LoadRecipientKey(recipient)
		if err != nil {
			return result, err
		}

		var armored string
		if sign {
			armored, err = pgp.EncryptAndSign(message, recipientKey, signer, passphrase)
		} else {
			armored, err = pgp.Encrypt(message, recipientKey)
		}
		if err != nil {
			return result, fmt.Errorf("encrypting for %s: %w", recipient, err)
		}

		recipientUser, err := client.UserByEmail(ctx, token, recipient)
		if err != nil {
			return result, err
		}

		channelID, err := client.CreateDirectChannel(ctx, token, self.ID, recipientUser.ID)
		if err != nil {
			return result, fmt.Errorf("opening direct channel to %s: %w", recipient, err)
		}

		if err := client.CreatePost(ctx, token, channelID, pgp.DecryptFence(armored)); err != nil {
			return result, fmt.Errorf("posting to %s: %w", recipient, err)
		}
		opts.Logger.Infof("Delivered to %s in channel %s", recipient, channelID)

		result.Delivered = append(result.Delivered, Delivery{
			Email:       recipient,
			ChannelID:   channelID,
			Fingerprint: recipientKey.GetFingerprint(),
		})
	}

	return result, nil
}
