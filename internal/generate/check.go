package generate

import (
	"fmt"
	"sort"

	"github.com/nhle/mailgen/internal/himalaya"
	"github.com/nhle/mailgen/internal/model"
)

// Finding is an advisory diagnostic about a declaration. Findings
// never block generation; the CLI is expected to surface real
// misconfiguration at its own runtime.
type Finding struct {
	// Account names the affected account, empty for global findings.
	Account string

	Message string
}

func (f Finding) String() string {
	if f.Account == "" {
		return f.Message
	}
	return fmt.Sprintf("account %q: %s", f.Account, f.Message)
}

// Check inspects the declaration for likely mistakes. The returned
// findings are ordered deterministically: global findings first, then
// per-account findings sorted by account name.
func Check(cfg *model.Config) []Finding {
	var findings []Finding

	selected := himalaya.SelectAccounts(cfg.Accounts)

	names := make([]string, 0, len(selected))
	for name := range selected {
		names = append(names, name)
	}
	sort.Strings(names)

	var primaries []string
	needsNotmuchDB := false
	for _, name := range names {
		if selected[name].Primary {
			primaries = append(primaries, name)
		}
		if selected[name].Notmuch.Enable {
			needsNotmuchDB = true
		}
	}

	if len(primaries) > 1 {
		findings = append(findings, Finding{
			Message: fmt.Sprintf("multiple accounts marked primary: %v", primaries),
		})
	}

	if cfg.Watcher.Enable && cfg.Watcher.Account != "" {
		if _, ok := selected[cfg.Watcher.Account]; !ok {
			findings = append(findings, Finding{
				Message: fmt.Sprintf("watcher targets account %q, which is not enabled for generation", cfg.Watcher.Account),
			})
		}
	}

	if needsNotmuchDB && cfg.Notmuch.DatabasePath == "" {
		findings = append(findings, Finding{
			Message: "an account enables notmuch but no notmuch database path is set",
		})
	}

	for _, name := range names {
		a := selected[name]

		// Accounts configured entirely through the freeform override
		// are intentional; only flag accounts that declare nothing.
		if len(a.Settings) > 0 {
			continue
		}
		if himalaya.ResolveRetrieval(a) == himalaya.RetrievalNone {
			findings = append(findings, Finding{Account: name, Message: "no retrieval backend configured"})
		}
		if himalaya.ResolveSend(a) == himalaya.SendNone {
			findings = append(findings, Finding{Account: name, Message: "no send backend configured"})
		}
	}

	return findings
}
