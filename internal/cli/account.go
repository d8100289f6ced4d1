package cli

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/nhle/mailgen/internal/himalaya"
	"github.com/nhle/mailgen/internal/model"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Inspect and edit declared accounts",
}

func init() {
	accountCmd.AddCommand(accountListCmd)
	accountCmd.AddCommand(accountAddCmd)
}

var (
	accountNameStyle = lipgloss.NewStyle().Bold(true).
				Foreground(lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"})
	accountDisabledStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"})
)

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List declared accounts and their resolved backends",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadDeclaration()
		if err != nil {
			return err
		}

		names := make([]string, 0, len(cfg.Accounts))
		for name := range cfg.Accounts {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			a := cfg.Accounts[name]
			if a == nil {
				continue
			}

			label := accountNameStyle.Render(name)
			if !a.Enable {
				label = accountDisabledStyle.Render(name + " (disabled)")
			}

			primary := ""
			if a.Primary {
				primary = " *"
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s%s\t%s\tretrieval=%s send=%s\n",
				label, primary, a.Address,
				himalaya.ResolveRetrieval(a), himalaya.ResolveSend(a))
		}
		return nil
	},
}

// wizardAnswers collects the raw form input before it is turned into
// an Account.
type wizardAnswers struct {
	name        string
	address     string
	displayName string
	primary     bool

	retrieval  string
	send       string
	host       string
	port       string
	login      string
	keyringKey string
	encryption string

	smtpHost       string
	smtpPort       string
	smtpLogin      string
	smtpKeyringKey string
	smtpEncryption string

	maildirPath string
}

var accountAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an account through an interactive wizard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadDeclaration()
		if err != nil {
			return err
		}

		var ans wizardAnswers
		if err := runIdentityForm(cfg, &ans); err != nil {
			return err
		}
		if err := runBackendForms(&ans); err != nil {
			return err
		}

		acct, err := ans.toAccount()
		if err != nil {
			return err
		}

		if cfg.Accounts == nil {
			cfg.Accounts = map[string]*model.Account{}
		}
		cfg.Accounts[ans.name] = acct

		if err := model.Save(flagConfigFile, cfg); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "added account %q to %s\n", ans.name, flagConfigFile)
		if ans.keyringKey != "" || ans.smtpKeyringKey != "" {
			fmt.Fprintln(cmd.OutOrStdout(), "store the password with: mailgen secret set <key>")
		}
		return nil
	},
}

// runIdentityForm asks for the account identity.
func runIdentityForm(cfg *model.Config, ans *wizardAnswers) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Account name").
				Description("Key used in the generated config, e.g. personal").
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("name is required")
					}
					if _, exists := cfg.Accounts[s]; exists {
						return fmt.Errorf("account %q already exists", s)
					}
					return nil
				}).
				Value(&ans.name),
			huh.NewInput().
				Title("Email address").
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("address is required")
					}
					return nil
				}).
				Value(&ans.address),
			huh.NewInput().
				Title("Display name").
				Value(&ans.displayName),
			huh.NewConfirm().
				Title("Primary account?").
				Value(&ans.primary),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("identity form: %w", err)
	}
	return nil
}

// runBackendForms asks for the retrieval and send backends, then the
// details of whichever backends were chosen.
func runBackendForms(ans *wizardAnswers) error {
	choice := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Retrieval backend").
				Options(
					huh.NewOption("IMAP - remote mailbox", "imap"),
					huh.NewOption("Maildir - local mail store", "maildir"),
					huh.NewOption("notmuch - shared local index", "notmuch"),
					huh.NewOption("none", "none"),
				).
				Value(&ans.retrieval),
			huh.NewSelect[string]().
				Title("Send backend").
				Options(
					huh.NewOption("SMTP - remote submission", "smtp"),
					huh.NewOption("sendmail - local binary", "sendmail"),
					huh.NewOption("none", "none"),
				).
				Value(&ans.send),
		),
	)
	if err := choice.Run(); err != nil {
		return fmt.Errorf("backend selection: %w", err)
	}

	switch ans.retrieval {
	case "imap":
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("IMAP host").Value(&ans.host),
				huh.NewInput().Title("IMAP port").
					Validate(validatePort).
					Value(&ans.port),
				huh.NewSelect[string]().
					Title("IMAP encryption").
					Options(
						huh.NewOption("TLS", himalaya.EncryptionTLS),
						huh.NewOption("STARTTLS", himalaya.EncryptionStartTLS),
						huh.NewOption("none", himalaya.EncryptionNone),
					).
					Value(&ans.encryption),
				huh.NewInput().Title("IMAP login").Value(&ans.login),
				huh.NewInput().
					Title("Keyring key").
					Description("Password is read back via: mailgen secret get <key>").
					Value(&ans.keyringKey),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("imap form: %w", err)
		}
	case "maildir":
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Maildir root path").Value(&ans.maildirPath),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("maildir form: %w", err)
		}
	}

	if ans.send == "smtp" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("SMTP host").Value(&ans.smtpHost),
				huh.NewInput().Title("SMTP port").
					Validate(validatePort).
					Value(&ans.smtpPort),
				huh.NewSelect[string]().
					Title("SMTP encryption").
					Options(
						huh.NewOption("TLS", himalaya.EncryptionTLS),
						huh.NewOption("STARTTLS", himalaya.EncryptionStartTLS),
						huh.NewOption("none", himalaya.EncryptionNone),
					).
					Value(&ans.smtpEncryption),
				huh.NewInput().Title("SMTP login").Value(&ans.smtpLogin),
				huh.NewInput().
					Title("Keyring key").
					Description("Password is read back via: mailgen secret get <key>").
					Value(&ans.smtpKeyringKey),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("smtp form: %w", err)
		}
	}

	return nil
}

// toAccount converts wizard answers into a declaration entry.
func (ans *wizardAnswers) toAccount() (*model.Account, error) {
	acct := &model.Account{
		Enable:      true,
		Primary:     ans.primary,
		Address:     ans.address,
		DisplayName: ans.displayName,
		Signature: model.SignatureConfig{
			Delimiter: model.DefaultSignatureDelimiter,
			Show:      model.SignatureShowNever,
		},
	}

	switch ans.retrieval {
	case "imap":
		port, err := strconv.Atoi(ans.port)
		if err != nil {
			return nil, fmt.Errorf("invalid IMAP port %q", ans.port)
		}
		acct.IMAP = &model.IMAPConfig{
			Host:       ans.host,
			Port:       port,
			TLS:        tlsFromEncryption(ans.encryption),
			Login:      ans.login,
			KeyringKey: ans.keyringKey,
		}
	case "maildir":
		acct.Maildir = &model.MaildirConfig{Path: ans.maildirPath}
	case "notmuch":
		acct.Notmuch.Enable = true
	}

	switch ans.send {
	case "smtp":
		port, err := strconv.Atoi(ans.smtpPort)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP port %q", ans.smtpPort)
		}
		acct.SMTP = &model.SMTPConfig{
			Host:       ans.smtpHost,
			Port:       port,
			TLS:        tlsFromEncryption(ans.smtpEncryption),
			Login:      ans.smtpLogin,
			KeyringKey: ans.smtpKeyringKey,
		}
	case "sendmail":
		acct.Sendmail.Enable = true
	}

	return acct, nil
}

// tlsFromEncryption inverts the encryption tag back into the flag pair
// used by the declaration schema.
func tlsFromEncryption(mode string) model.TLSConfig {
	switch mode {
	case himalaya.EncryptionStartTLS:
		return model.TLSConfig{Enable: true, StartTLS: true}
	case himalaya.EncryptionTLS:
		return model.TLSConfig{Enable: true}
	default:
		return model.TLSConfig{}
	}
}

func validatePort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("port must be a number between 1 and 65535")
	}
	return nil
}
