package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/nhle/mailgen/internal/credential"
)

var secretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Manage account passwords in the system keyring",
	Long: `Secrets live in the system keyring under the "mailgen" service.
Accounts that declare a keyring_key get a generated password command of
the form "mailgen secret get <key>", so the CLI reads the password back
through this command at runtime.`,
}

func init() {
	secretCmd.AddCommand(secretGetCmd)
	secretCmd.AddCommand(secretSetCmd)
	secretCmd.AddCommand(secretDeleteCmd)
}

// openSecretStore connects to the default mailgen keyring service.
func openSecretStore() (*credential.Store, error) {
	return credential.Open(credential.Config{})
}

var secretGetCmd = &cobra.Command{
	Use:   "get NAME",
	Short: "Print a secret to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openSecretStore()
		if err != nil {
			return err
		}
		value, err := store.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

var secretSetCmd = &cobra.Command{
	Use:   "set NAME [VALUE]",
	Short: "Store a secret, prompting when no value is given",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var value string
		if len(args) == 2 {
			value = args[1]
		} else {
			prompt := huh.NewInput().
				Title(fmt.Sprintf("Secret value for %q", args[0])).
				EchoMode(huh.EchoModePassword).
				Value(&value)
			if err := prompt.Run(); err != nil {
				return fmt.Errorf("reading secret: %w", err)
			}
		}

		store, err := openSecretStore()
		if err != nil {
			return err
		}
		return store.Set(args[0], value)
	},
}

var secretDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Remove a secret from the keyring",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openSecretStore()
		if err != nil {
			return err
		}
		return store.Delete(args[0])
	},
}
