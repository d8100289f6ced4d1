// Package attrs provides a generic key-value tree used to assemble
// configuration documents from optional fragments before serialization.
package attrs

// Tree is a nested string-keyed mapping. Values are scalars, slices,
// or further Trees.
type Tree map[string]any

// Normalize recursively converts plain map values (as produced by YAML
// decoding) into Trees so that Merge and Prune treat them uniformly.
// Non-mapping values are returned unchanged.
func Normalize(v any) any {
	switch m := v.(type) {
	case Tree:
		out := make(Tree, len(m))
		for k, val := range m {
			out[k] = Normalize(val)
		}
		return out
	case map[string]any:
		out := make(Tree, len(m))
		for k, val := range m {
			out[k] = Normalize(val)
		}
		return out
	default:
		return v
	}
}

// Merge combines two trees into a new tree. On key collision, nested
// trees merge recursively; otherwise the override value replaces the
// base value. Neither input is mutated.
func Merge(base, override Tree) Tree {
	out := make(Tree, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, ov := range override {
		bt, baseIsTree := treeValue(out[k])
		ot, overrideIsTree := treeValue(ov)
		if baseIsTree && overrideIsTree {
			out[k] = Merge(bt, ot)
			continue
		}
		out[k] = ov
	}
	return out
}

// Prune returns a copy of t with nil-valued entries removed at every
// depth. Empty subtrees left over after pruning are dropped as well, so
// the result never contains a key whose value carries no information.
func Prune(t Tree) Tree {
	out := make(Tree, len(t))
	for k, v := range t {
		if v == nil {
			continue
		}
		if sub, ok := treeValue(v); ok {
			pruned := Prune(sub)
			if len(pruned) == 0 {
				continue
			}
			out[k] = pruned
			continue
		}
		out[k] = v
	}
	return out
}

// treeValue reports whether v is a mapping, converting map[string]any
// as needed.
func treeValue(v any) (Tree, bool) {
	switch m := v.(type) {
	case Tree:
		return m, true
	case map[string]any:
		return Tree(m), true
	default:
		return nil, false
	}
}
