package himalaya

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/nhle/mailgen/internal/attrs"
	"github.com/nhle/mailgen/internal/model"
)

// SelectAccounts returns the subset of declared accounts that opted
// into config generation. Accounts without the enable flag are simply
// excluded, never an error.
func SelectAccounts(accounts map[string]*model.Account) map[string]*model.Account {
	selected := make(map[string]*model.Account)
	for name, a := range accounts {
		if a != nil && a.Enable {
			selected[name] = a
		}
	}
	return selected
}

// BuildDocument assembles the top-level configuration document:
// null-pruned global settings at the root, plus one table per selected
// account keyed by account name. The two halves occupy disjoint key
// namespaces, so the union cannot conflict.
func BuildDocument(cfg *model.Config) attrs.Tree {
	doc := attrs.Tree{}
	if len(cfg.Settings) > 0 {
		doc = attrs.Prune(attrs.Normalize(attrs.Tree(cfg.Settings)).(attrs.Tree))
	}

	for name, a := range SelectAccounts(cfg.Accounts) {
		doc[name] = BuildAccount(a, cfg.Notmuch.DatabasePath)
	}

	return doc
}

// Marshal renders the document as TOML. Map keys are emitted in sorted
// order, so identical input always yields byte-identical output.
func Marshal(doc attrs.Tree) ([]byte, error) {
	out, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshalling config document: %w", err)
	}
	return out, nil
}
