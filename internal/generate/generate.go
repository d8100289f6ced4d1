// Package generate orchestrates the evaluation of an account
// declaration into its output artifacts.
package generate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nhle/mailgen/internal/himalaya"
	"github.com/nhle/mailgen/internal/model"
	"github.com/nhle/mailgen/internal/systemd"
)

// ConfigFileName is the file name of the generated CLI configuration.
const ConfigFileName = "config.toml"

// Artifacts holds the rendered output documents of one evaluation.
type Artifacts struct {
	// Config is the TOML configuration document for the email CLI.
	Config []byte

	// Unit is the rendered watcher service unit, nil when the watcher
	// is disabled.
	Unit []byte

	// UnitName is the file name the unit should be installed under.
	UnitName string
}

// Run evaluates the declaration once and renders both artifacts. The
// evaluation is a pure function of cfg: identical input yields
// byte-identical artifacts.
func Run(cfg *model.Config) (*Artifacts, error) {
	doc := himalaya.BuildDocument(cfg)
	data, err := himalaya.Marshal(doc)
	if err != nil {
		return nil, err
	}

	a := &Artifacts{Config: data}
	if unit := systemd.BuildWatchUnit(cfg); unit != nil {
		a.Unit = unit.Render()
		a.UnitName = systemd.WatchUnitName
	}

	return a, nil
}

// WriteFiles materializes the artifacts under dir. The config file is
// written 0600 since it may embed credential commands; the unit file
// is world-readable. Nothing is written for an absent unit.
func WriteFiles(a *Artifacts, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	configPath := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(configPath, a.Config, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}

	if a.Unit == nil {
		return nil
	}

	unitPath := filepath.Join(dir, a.UnitName)
	if err := os.WriteFile(unitPath, a.Unit, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", unitPath, err)
	}

	return nil
}
