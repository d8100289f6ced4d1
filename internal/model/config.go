package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// TLSConfig controls transport encryption for a protocol endpoint.
// StartTLS takes precedence over Enable when both are set.
type TLSConfig struct {
	Enable   bool `mapstructure:"enable" yaml:"enable"`
	StartTLS bool `mapstructure:"starttls" yaml:"starttls"`
}

// IMAPConfig describes an IMAP retrieval endpoint for one account.
type IMAPConfig struct {
	Host string    `mapstructure:"host" yaml:"host"`
	Port int       `mapstructure:"port" yaml:"port"`
	TLS  TLSConfig `mapstructure:"tls" yaml:"tls"`

	Login string `mapstructure:"login" yaml:"login"`

	// PasswordCommand is a command line (one token per element) that
	// prints the account password on stdout. Tokens are joined with
	// single spaces and emitted verbatim, without shell escaping.
	PasswordCommand []string `mapstructure:"password_command" yaml:"password_command"`

	// KeyringKey names an entry in the system keyring. When set and
	// PasswordCommand is empty, the generated password command invokes
	// `mailgen secret get <key>`.
	KeyringKey string `mapstructure:"keyring_key" yaml:"keyring_key"`
}

// SMTPConfig describes an SMTP submission endpoint for one account.
type SMTPConfig struct {
	Host            string    `mapstructure:"host" yaml:"host"`
	Port            int       `mapstructure:"port" yaml:"port"`
	TLS             TLSConfig `mapstructure:"tls" yaml:"tls"`
	Login           string    `mapstructure:"login" yaml:"login"`
	PasswordCommand []string  `mapstructure:"password_command" yaml:"password_command"`
	KeyringKey      string    `mapstructure:"keyring_key" yaml:"keyring_key"`
}

// MaildirConfig points at a local maildir root for one account.
type MaildirConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// NotmuchConfig opts an account into the shared notmuch index. The
// database path is process-wide (Config.Notmuch), not per account.
type NotmuchConfig struct {
	Enable bool `mapstructure:"enable" yaml:"enable"`
}

// SendmailConfig opts an account into sending via the local
// sendmail-compatible binary.
type SendmailConfig struct {
	Enable bool `mapstructure:"enable" yaml:"enable"`
}

// Signature display modes.
const (
	SignatureShowNever  = "never"
	SignatureShowAppend = "append"
)

// SignatureConfig holds the free-text signature for one account.
type SignatureConfig struct {
	Text      string `mapstructure:"text" yaml:"text"`
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`

	// Show is one of "never" or "append". The signature block is only
	// generated in append mode.
	Show string `mapstructure:"show" yaml:"show"`
}

// FolderConfig names the well-known folders of one account.
type FolderConfig struct {
	Inbox  string `mapstructure:"inbox" yaml:"inbox"`
	Sent   string `mapstructure:"sent" yaml:"sent"`
	Drafts string `mapstructure:"drafts" yaml:"drafts"`
	Trash  string `mapstructure:"trash" yaml:"trash"`
}

// Account is one user-declared email identity. Retrieval and send
// capabilities are all optional; the generator resolves at most one of
// each and silently omits the rest.
type Account struct {
	// Enable opts the account into config generation.
	Enable bool `mapstructure:"enable" yaml:"enable"`

	// Primary marks the account as the CLI's default account.
	Primary bool `mapstructure:"primary" yaml:"primary"`

	Address     string       `mapstructure:"address" yaml:"address"`
	DisplayName string       `mapstructure:"display_name" yaml:"display_name"`
	Folders     FolderConfig `mapstructure:"folders" yaml:"folders"`

	IMAP     *IMAPConfig    `mapstructure:"imap" yaml:"imap"`
	Maildir  *MaildirConfig `mapstructure:"maildir" yaml:"maildir"`
	Notmuch  NotmuchConfig  `mapstructure:"notmuch" yaml:"notmuch"`
	SMTP     *SMTPConfig    `mapstructure:"smtp" yaml:"smtp"`
	Sendmail SendmailConfig `mapstructure:"sendmail" yaml:"sendmail"`

	Signature SignatureConfig `mapstructure:"signature" yaml:"signature"`

	// Settings is a freeform override merged on top of the generated
	// account table, winning field by field.
	Settings map[string]any `mapstructure:"settings" yaml:"settings"`
}

// WatcherConfig controls the generated watch service unit.
type WatcherConfig struct {
	Enable bool `mapstructure:"enable" yaml:"enable"`

	// Account restricts the watcher to a single account when non-empty.
	Account string `mapstructure:"account" yaml:"account"`

	// Environment entries are passed through to the unit verbatim.
	Environment map[string]string `mapstructure:"environment" yaml:"environment"`

	// Path lists directories emitted as the unit's PATH entry.
	Path []string `mapstructure:"path" yaml:"path"`
}

// NotmuchGlobal holds the shared notmuch database location used by
// every notmuch-enabled account.
type NotmuchGlobal struct {
	DatabasePath string `mapstructure:"database_path" yaml:"database_path"`
}

// Config is the top-level account declaration read from the user's
// mailgen.yaml.
type Config struct {
	// Binary is the email CLI executable invoked by the generated unit.
	Binary string `mapstructure:"binary" yaml:"binary"`

	Notmuch NotmuchGlobal `mapstructure:"notmuch" yaml:"notmuch"`

	// Settings is a freeform mapping of CLI-wide settings emitted at
	// the document root. Null values are pruned before emission.
	Settings map[string]any `mapstructure:"settings" yaml:"settings"`

	Accounts map[string]*Account `mapstructure:"accounts" yaml:"accounts"`

	Watcher WatcherConfig `mapstructure:"watcher" yaml:"watcher"`
}

// Default values applied when the declaration leaves them unset.
const (
	DefaultBinary             = "himalaya"
	DefaultSignatureDelimiter = "-- \n"
)

// DefaultConfigPath returns the default path for the declaration file,
// located at ~/.config/mailgen/mailgen.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "mailgen.yaml")
	}
	return filepath.Join(home, ".config", "mailgen", "mailgen.yaml")
}

// defaultConfig returns the configuration used when no declaration
// file exists yet.
func defaultConfig() *Config {
	return &Config{
		Binary:   DefaultBinary,
		Accounts: map[string]*Account{},
	}
}

// Load reads the declaration from the given YAML file path using
// Viper. If the file does not exist, it returns a default declaration.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("binary", DefaultBinary)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	for _, acct := range cfg.Accounts {
		if acct == nil {
			continue
		}
		if acct.Signature.Delimiter == "" {
			acct.Signature.Delimiter = DefaultSignatureDelimiter
		}
		if acct.Signature.Show == "" {
			acct.Signature.Show = SignatureShowNever
		}
	}

	if err := restoreEnvironmentCase(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// restoreEnvironmentCase re-reads the watcher environment straight from
// the YAML file. Viper lowercases every mapping key, but environment
// variable names are case sensitive.
func restoreEnvironmentCase(path string, cfg *Config) error {
	if len(cfg.Watcher.Environment) == 0 {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("re-reading config %s: %w", path, err)
	}

	var raw struct {
		Watcher struct {
			Environment map[string]string `yaml:"environment"`
		} `yaml:"watcher"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	if len(raw.Watcher.Environment) > 0 {
		cfg.Watcher.Environment = raw.Watcher.Environment
	}

	return nil
}

// Save writes the declaration to a YAML file at path, creating parent
// directories if needed.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("binary", cfg.Binary)
	v.Set("notmuch", cfg.Notmuch)
	v.Set("settings", cfg.Settings)
	v.Set("accounts", cfg.Accounts)
	v.Set("watcher", cfg.Watcher)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
