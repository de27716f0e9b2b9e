package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mattercrypt/mattercrypt/internal/pgp"
	"github.com/mattercrypt/mattercrypt/internal/ui"
	"github.com/mattercrypt/mattercrypt/internal/utils"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage imported PGP keys",
	Long:  `Imports and lists the armored PGP keys used to encrypt and sign messages.`,
}

var importSigning bool

var keysImportCmd = &cobra.Command{
	Use:   "import [recipient] [keyfile]",
	Short: "Import an armored PGP key",
	Long: `Imports an armored PGP public key for a recipient, or with --signing an
armored private key used to sign outgoing messages.

The key is read from the given file, or from stdin when no file is given:

  mattercrypt keys import bob@example.com bob.asc
  gpg --export --armor bob@example.com | mattercrypt keys import bob@example.com
  gpg --export-secret-keys --armor me@example.com | mattercrypt keys import --signing`,
	Args:          cobra.RangeArgs(0, 2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runKeysImport,
}

var keysListCmd = &cobra.Command{
	Use:           "list",
	Short:         "List imported keys",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runKeysList,
}

func init() {
	keysImportCmd.Flags().BoolVar(&importSigning, "signing", false, "import a private key for signing instead of a recipient key")

	keysCmd.AddCommand(keysImportCmd)
	keysCmd.AddCommand(keysListCmd)
}

func runKeysImport(cmd *cobra.Command, args []string) error {
	if importSigning {
		if len(args) > 1 {
			err := fmt.Errorf("--signing takes at most a key file")
			printError("Invalid arguments", err)
			return err
		}

		armored, err := readKeyInput(args, 0)
		if err != nil {
			printError("Failed to read key", err)
			return err
		}

		info, err := pgp.ImportSigningKey(armored)
		if err != nil {
			printError("Failed to import signing key", err)
			return err
		}

		fmt.Println(ui.Success.Sprint("✓") + " Signing key imported (fingerprint " + info.Fingerprint + ")")
		return nil
	}

	if len(args) < 1 {
		err := fmt.Errorf("recipient email is required")
		printError("Invalid arguments", err)
		return err
	}

	armored, err := readKeyInput(args, 1)
	if err != nil {
		printError("Failed to read key", err)
		return err
	}

	info, err := pgp.ImportRecipientKey(args[0], armored)
	if err != nil {
		printError("Failed to import recipient key", err)
		return err
	}

	fmt.Println(ui.Success.Sprint("✓") + " Key imported for " + ui.Highlight.Sprint(info.Recipient) +
		" (fingerprint " + info.Fingerprint + ")")
	return nil
}

func runKeysList(cmd *cobra.Command, args []string) error {
	keys, err := pgp.ListRecipientKeys()
	if err != nil {
		printError("Failed to list keys", err)
		return err
	}

	if len(keys) == 0 {
		fmt.Println("No recipient keys imported")
		fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("mattercrypt keys import <email> <keyfile>") + " to add one")
	} else {
		for _, key := range keys {
			fmt.Println(ui.Highlight.Sprint(key.Recipient) + "  " + key.Fingerprint)
		}
	}

	if signingKey, err := pgp.LoadSigningKey(); err == nil {
		fmt.Println("Signing key: " + signingKey.GetFingerprint())
	}

	return nil
}

// readKeyInput reads the armored key from args[index] if present, otherwise
// from piped stdin.
func readKeyInput(args []string, index int) ([]byte, error) {
	if len(args) > index {
		return os.ReadFile(args[index])
	}
	return utils.ReadStdin()
}
