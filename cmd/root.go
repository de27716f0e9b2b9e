package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mattercrypt/mattercrypt/internal/credentials"
	mcerrors "github.com/mattercrypt/mattercrypt/internal/errors"
	logger "github.com/mattercrypt/mattercrypt/internal/logging"
	"github.com/mattercrypt/mattercrypt/internal/setup"
	"github.com/mattercrypt/mattercrypt/internal/ui"
	"github.com/mattercrypt/mattercrypt/internal/utils"
	"github.com/mattercrypt/mattercrypt/internal/workflows"
)

var (
	verbose    bool
	debug      bool
	reinit     bool
	sign       bool
	filePath   string
	recipients []string

	Logger logger.Logger

	rootCmd = &cobra.Command{
		Use:   "mattercrypt [message]",
		Short: "Send PGP-encrypted direct messages over Mattermost",
		Long: `Mattercrypt encrypts a message per recipient with their imported PGP
public key and posts it as a Mattermost direct message.

The message is read from a positional argument, a file (--file), or stdin.
On the first run an interactive setup collects the server URL, username,
and password; the password is stored in the OS keyring, never on disk.

Examples:
  echo "the eagle has landed" | mattercrypt --to bob@example.com
  mattercrypt --to bob@example.com --sign "the eagle has landed"
  mattercrypt --reinit

Run 'mattercrypt keys import' to add recipient public keys.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.New(verbose, debug)
			Logger.Debugf("Initializing with verbose=%t, debug=%t", verbose, debug)
		},
		RunE: runSend,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	rootCmd.Flags().StringSliceVarP(&recipients, "to", "t", nil, "recipient email address (repeatable)")
	rootCmd.Flags().BoolVarP(&sign, "sign", "s", false, "sign the message with the imported signing key")
	rootCmd.Flags().StringVarP(&filePath, "file", "f", "", "read the message from a file")
	rootCmd.Flags().BoolVar(&reinit, "reinit", false, "run setup again, overwriting stored settings and password")

	rootCmd.AddCommand(keysCmd)
}

// Execute runs the root command. Any surfaced error exits non-zero.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSend(cmd *cobra.Command, args []string) error {
	boot := &setup.Bootstrap{
		Secrets:  credentials.NewKeyringStore(),
		Prompter: setup.NewTerminalPrompter(),
		Logger:   Logger,
	}

	session, err := boot.Resolve(reinit)
	if err != nil {
		switch {
		case errors.Is(err, mcerrors.ErrSetupAborted):
			printError("Setup was aborted", err)
		case errors.Is(err, mcerrors.ErrStoreUnavailable):
			printError("Secure storage is unavailable", err)
			fmt.Println(ui.Info.Sprint("→") + " Set " + ui.Code.Sprint(credentials.BackendEnvVar+"=file") +
				" to use an encrypted file keyring instead")
		default:
			printError("Failed to resolve session", err)
		}
		return err
	}

	messageArg := ""
	if len(args) == 1 {
		messageArg = args[0]
	}

	// A bare --reinit with nothing to send is a complete operation.
	if reinit && len(recipients) == 0 && messageArg == "" && filePath == "" && utils.IsTerminal() {
		fmt.Println(ui.Success.Sprint("✓") + " Setup complete for " +
			ui.Highlight.Sprint(session.Settings.Server.Username) + " at " +
			ui.Highlight.Sprint(session.Settings.Server.URL))
		return nil
	}

	if len(recipients) == 0 {
		err := fmt.Errorf("at least one recipient is required")
		printError("Cannot send", err)
		fmt.Println(ui.Info.Sprint("→") + " Pass " + ui.Code.Sprint("--to user@example.com") + " for each recipient")
		return err
	}

	spin, cleanup := startSpinner("Encrypting and sending message...")
	defer cleanup()

	result, err := workflows.Send(cmd.Context(), session, workflows.SendOptions{
		Recipients: recipients,
		Sign:       sign,
		MessageArg: messageArg,
		FilePath:   filePath,
		Logger:     Logger,
		PassphraseFunc: func(prompt string) (string, error) {
			// Stdin may carry the piped message, so the passphrase is read
			// from the controlling terminal instead.
			return pauseSpinner(spin, func() (string, error) {
				return utils.ReadPasswordFromTTY(prompt + ": ")
			})
		},
	})
	if err != nil {
		spin.FinalMSG = sendFailureMessage(err, result)
		return err
	}

	spin.FinalMSG = sendSuccessMessage(result)
	return nil
}

func sendSuccessMessage(result *workflows.SendResult) string {
	var b strings.Builder
	b.WriteString(ui.Success.Sprint("✓") + " Successfully sent message\n")
	b.WriteString(ui.Info.Sprint("→") + " From: " + ui.Highlight.Sprint(result.From) + "\n")
	for _, delivery := range result.Delivered {
		b.WriteString(ui.Info.Sprint("→") + " To: " + ui.Highlight.Sprint(delivery.Email) +
			" (fingerprint " + delivery.Fingerprint + ")\n")
	}
	return b.String()
}

func sendFailureMessage(err error, result *workflows.SendResult) string {
	var b strings.Builder
	b.WriteString(ui.Error.Sprint("✗") + " Failed to send message: " + err.Error() + "\n")
	if errors.Is(err, mcerrors.ErrRecipientKeyNotFound) {
		b.WriteString(ui.Info.Sprint("→") + " Import the recipient's public key with " +
			ui.Code.Sprint("mattercrypt keys import <email> <keyfile>") + "\n")
	}
	if errors.Is(err, mcerrors.ErrSigningKeyNotFound) {
		b.WriteString(ui.Info.Sprint("→") + " Import a signing key with " +
			ui.Code.Sprint("mattercrypt keys import --signing <keyfile>") + "\n")
	}
	if errors.Is(err, mcerrors.ErrAuthFailed) {
		b.WriteString(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("mattercrypt --reinit") +
			" if your password has changed\n")
	}
	if result != nil && len(result.Delivered) > 0 {
		b.WriteString(ui.Info.Sprint("→") + fmt.Sprintf(" Delivered to %d recipient(s) before the failure\n",
			len(result.Delivered)))
	}
	return b.String()
}
