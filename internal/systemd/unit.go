// Package systemd renders service unit files for a process supervisor.
package systemd

import (
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/coreos/go-systemd/v22/unit"
)

// Unit describes a systemd service unit. Only the fields the generated
// watcher needs are modeled.
type Unit struct {
	Description string
	After       []string

	// ExecStart holds the command line, one token per element. Tokens
	// are joined with single spaces, without shell escaping.
	ExecStart []string

	Environment map[string]string
	Restart     string
	RestartSec  int
	WantedBy    string
}

// Render serializes the unit. Options come in fixed order and
// Environment lines are sorted by variable name, so rendering is
// deterministic for identical input.
func (u *Unit) Render() []byte {
	opts := []*unit.UnitOption{
		unit.NewUnitOption("Unit", "Description", u.Description),
	}
	for _, after := range u.After {
		opts = append(opts, unit.NewUnitOption("Unit", "After", after))
	}

	opts = append(opts, unit.NewUnitOption("Service", "ExecStart", strings.Join(u.ExecStart, " ")))
	for _, name := range sortedKeys(u.Environment) {
		opts = append(opts, unit.NewUnitOption("Service", "Environment", quoteAssignment(name, u.Environment[name])))
	}
	if u.Restart != "" {
		opts = append(opts, unit.NewUnitOption("Service", "Restart", u.Restart))
	}
	if u.RestartSec > 0 {
		opts = append(opts, unit.NewUnitOption("Service", "RestartSec", strconv.Itoa(u.RestartSec)))
	}

	if u.WantedBy != "" {
		opts = append(opts, unit.NewUnitOption("Install", "WantedBy", u.WantedBy))
	}

	out, _ := io.ReadAll(unit.Serialize(opts))
	return out
}

// quoteAssignment wraps NAME=VALUE in double quotes using systemd's
// escaping rules: backslashes and double quotes get a leading
// backslash, everything else stays literal (no C-style escapes for
// non-ASCII text).
func quoteAssignment(name, value string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(name+"="+value) + `"`
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
