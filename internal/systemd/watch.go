package systemd

import (
	"strings"

	"github.com/nhle/mailgen/internal/model"
)

// WatchUnitName is the file name of the generated watcher unit.
const WatchUnitName = "himalaya-watch.service"

// Restart policy for the watcher. Fixed, not configurable.
const (
	watchRestart    = "always"
	watchRestartSec = 10
)

// BuildWatchUnit constructs the service unit that runs the CLI's watch
// subcommand. It returns nil when the watcher is disabled: no unit is
// produced at all, not a disabled one.
func BuildWatchUnit(cfg *model.Config) *Unit {
	if !cfg.Watcher.Enable {
		return nil
	}

	cmd := []string{cfg.Binary, "envelopes", "watch"}
	if cfg.Watcher.Account != "" {
		cmd = append(cmd, "--account", cfg.Watcher.Account)
	}

	env := make(map[string]string, len(cfg.Watcher.Environment)+1)
	for name, value := range cfg.Watcher.Environment {
		env[name] = value
	}
	if len(cfg.Watcher.Path) > 0 {
		env["PATH"] = strings.Join(cfg.Watcher.Path, ":")
	}

	return &Unit{
		Description: "himalaya envelope watcher",
		After:       []string{"network.target"},
		ExecStart:   cmd,
		Environment: env,
		Restart:     watchRestart,
		RestartSec:  watchRestartSec,
		WantedBy:    "default.target",
	}
}
