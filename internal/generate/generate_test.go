package generate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/mailgen/internal/model"
)

func declaration() *model.Config {
	return &model.Config{
		Binary: "himalaya",
		Settings: map[string]any{
			"downloads-dir": "/tmp",
		},
		Accounts: map[string]*model.Account{
			"personal": {
				Enable:  true,
				Primary: true,
				Address: "me@example.org",
				IMAP: &model.IMAPConfig{
					Host:            "imap.example.org",
					Port:            993,
					TLS:             model.TLSConfig{Enable: true},
					Login:           "me@example.org",
					PasswordCommand: []string{"pass", "show", "mail/me"},
				},
				SMTP: &model.SMTPConfig{
					Host:            "smtp.example.org",
					Port:            587,
					TLS:             model.TLSConfig{Enable: true, StartTLS: true},
					Login:           "me@example.org",
					PasswordCommand: []string{"pass", "show", "mail/me"},
				},
			},
			"archive": {
				Enable:  true,
				Address: "archive@example.org",
				Maildir: &model.MaildirConfig{Path: "/mail/archive"},
			},
		},
		Watcher: model.WatcherConfig{
			Enable:  true,
			Account: "personal",
		},
	}
}

func TestRunDeterministic(t *testing.T) {
	cfg := declaration()

	first, err := Run(cfg)
	require.NoError(t, err)
	second, err := Run(cfg)
	require.NoError(t, err)

	assert.Equal(t, first.Config, second.Config)
	assert.Equal(t, first.Unit, second.Unit)
}

func TestRunContents(t *testing.T) {
	artifacts, err := Run(declaration())
	require.NoError(t, err)

	config := string(artifacts.Config)
	assert.Contains(t, config, "[personal]")
	assert.Contains(t, config, "[archive]")
	assert.Contains(t, config, "downloads-dir = '/tmp'")

	require.NotNil(t, artifacts.Unit)
	assert.Equal(t, "himalaya-watch.service", artifacts.UnitName)
	assert.Contains(t, string(artifacts.Unit),
		"ExecStart=himalaya envelopes watch --account personal\n")
}

func TestRunWithoutWatcher(t *testing.T) {
	cfg := declaration()
	cfg.Watcher = model.WatcherConfig{}

	artifacts, err := Run(cfg)
	require.NoError(t, err)

	assert.Nil(t, artifacts.Unit)
	assert.Empty(t, artifacts.UnitName)
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()

	artifacts, err := Run(declaration())
	require.NoError(t, err)
	require.NoError(t, WriteFiles(artifacts, dir))

	configPath := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, artifacts.Config, data)

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	unitData, err := os.ReadFile(filepath.Join(dir, artifacts.UnitName))
	require.NoError(t, err)
	assert.Equal(t, artifacts.Unit, unitData)
}

func TestWriteFilesSkipsAbsentUnit(t *testing.T) {
	dir := t.TempDir()

	cfg := declaration()
	cfg.Watcher = model.WatcherConfig{}

	artifacts, err := Run(cfg)
	require.NoError(t, err)
	require.NoError(t, WriteFiles(artifacts, dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ConfigFileName, entries[0].Name())
}
