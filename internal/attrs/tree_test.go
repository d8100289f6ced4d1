package attrs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name     string
		base     Tree
		override Tree
		want     Tree
	}{
		{
			name:     "empty override keeps base",
			base:     Tree{"a": 1},
			override: Tree{},
			want:     Tree{"a": 1},
		},
		{
			name:     "scalar conflict: override wins",
			base:     Tree{"a": 1},
			override: Tree{"a": 2},
			want:     Tree{"a": 2},
		},
		{
			name:     "nested maps merge recursively",
			base:     Tree{"a": 1, "b": Tree{"c": 2}},
			override: Tree{"b": Tree{"c": 99, "d": 3}},
			want:     Tree{"a": 1, "b": Tree{"c": 99, "d": 3}},
		},
		{
			name:     "override scalar replaces base map",
			base:     Tree{"b": Tree{"c": 2}},
			override: Tree{"b": "flat"},
			want:     Tree{"b": "flat"},
		},
		{
			name:     "override map replaces base scalar",
			base:     Tree{"b": "flat"},
			override: Tree{"b": Tree{"c": 2}},
			want:     Tree{"b": Tree{"c": 2}},
		},
		{
			name:     "plain map values merge like trees",
			base:     Tree{"b": map[string]any{"c": 2}},
			override: Tree{"b": map[string]any{"d": 3}},
			want:     Tree{"b": Tree{"c": 2, "d": 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.base, tt.override)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	base := Tree{"a": 1, "b": Tree{"c": 2}}
	override := Tree{"b": Tree{"c": 99}}

	_ = Merge(base, override)

	require.Equal(t, Tree{"a": 1, "b": Tree{"c": 2}}, base)
	require.Equal(t, Tree{"b": Tree{"c": 99}}, override)
}

func TestPrune(t *testing.T) {
	tests := []struct {
		name string
		in   Tree
		want Tree
	}{
		{
			name: "top-level nil removed",
			in:   Tree{"a": 1, "b": nil},
			want: Tree{"a": 1},
		},
		{
			name: "nested nil removed",
			in:   Tree{"a": Tree{"b": nil, "c": 2}},
			want: Tree{"a": Tree{"c": 2}},
		},
		{
			name: "subtree emptied by pruning is dropped",
			in:   Tree{"a": Tree{"b": nil}, "c": 3},
			want: Tree{"c": 3},
		},
		{
			name: "empty strings and zeros survive",
			in:   Tree{"a": "", "b": 0, "c": false},
			want: Tree{"a": "", "b": 0, "c": false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Prune(tt.in))
		})
	}
}

func TestNormalize(t *testing.T) {
	in := map[string]any{
		"a": 1,
		"b": map[string]any{"c": "x"},
	}

	got := Normalize(Tree(in))

	require.IsType(t, Tree{}, got)
	tree := got.(Tree)
	require.IsType(t, Tree{}, tree["b"])
}
