package systemd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/mailgen/internal/model"
)

func watchedConfig() *model.Config {
	return &model.Config{
		Binary: "himalaya",
		Watcher: model.WatcherConfig{
			Enable: true,
		},
	}
}

func TestBuildWatchUnitDisabled(t *testing.T) {
	cfg := watchedConfig()
	cfg.Watcher.Enable = false

	// Nothing is produced at all, not a disabled unit.
	assert.Nil(t, BuildWatchUnit(cfg))
}

func TestBuildWatchUnitCommandLine(t *testing.T) {
	cfg := watchedConfig()

	unit := BuildWatchUnit(cfg)
	require.NotNil(t, unit)
	assert.Equal(t, []string{"himalaya", "envelopes", "watch"}, unit.ExecStart)

	cfg.Watcher.Account = "personal"
	unit = BuildWatchUnit(cfg)
	require.NotNil(t, unit)
	assert.Equal(t,
		[]string{"himalaya", "envelopes", "watch", "--account", "personal"},
		unit.ExecStart)
}

func TestBuildWatchUnitFixedRestartPolicy(t *testing.T) {
	unit := BuildWatchUnit(watchedConfig())

	require.NotNil(t, unit)
	assert.Equal(t, "always", unit.Restart)
	assert.Equal(t, 10, unit.RestartSec)
	assert.Equal(t, []string{"network.target"}, unit.After)
	assert.Equal(t, "default.target", unit.WantedBy)
}

func TestBuildWatchUnitEnvironment(t *testing.T) {
	cfg := watchedConfig()
	cfg.Watcher.Environment = map[string]string{"NOTMUCH_CONFIG": "/home/me/.notmuch-config"}
	cfg.Watcher.Path = []string{"/usr/bin", "/usr/local/bin"}

	unit := BuildWatchUnit(cfg)

	require.NotNil(t, unit)
	assert.Equal(t, "/home/me/.notmuch-config", unit.Environment["NOTMUCH_CONFIG"])
	assert.Equal(t, "/usr/bin:/usr/local/bin", unit.Environment["PATH"])
}

func TestRender(t *testing.T) {
	unit := &Unit{
		Description: "himalaya envelope watcher",
		After:       []string{"network.target"},
		ExecStart:   []string{"himalaya", "envelopes", "watch"},
		Environment: map[string]string{
			"B_VAR": "2",
			"A_VAR": "1",
		},
		Restart:    "always",
		RestartSec: 10,
		WantedBy:   "default.target",
	}

	out := string(unit.Render())

	assert.Contains(t, out, "[Unit]\nDescription=himalaya envelope watcher\nAfter=network.target\n")
	assert.Contains(t, out, "ExecStart=himalaya envelopes watch\n")
	assert.Contains(t, out, "Restart=always\nRestartSec=10\n")
	assert.Contains(t, out, "[Install]\nWantedBy=default.target\n")

	// Environment lines are sorted by variable name.
	a := strings.Index(out, `Environment="A_VAR=1"`)
	b := strings.Index(out, `Environment="B_VAR=2"`)
	require.NotEqual(t, -1, a)
	require.NotEqual(t, -1, b)
	assert.Less(t, a, b)
}

func TestRenderEnvironmentQuoting(t *testing.T) {
	unit := &Unit{
		Description: "himalaya envelope watcher",
		ExecStart:   []string{"himalaya", "envelopes", "watch"},
		Environment: map[string]string{
			"WINPATH":  `C:\mail\store`,
			"GREETING": `say "hello" ünïcode`,
		},
	}

	out := string(unit.Render())

	// systemd escaping: backslashes and quotes escaped, non-ASCII
	// text kept literal.
	assert.Contains(t, out, `Environment="WINPATH=C:\\mail\\store"`)
	assert.Contains(t, out, `Environment="GREETING=say \"hello\" ünïcode"`)
}

func TestRenderDeterministic(t *testing.T) {
	unit := BuildWatchUnit(watchedConfig())
	require.NotNil(t, unit)

	assert.Equal(t, unit.Render(), unit.Render())
}
