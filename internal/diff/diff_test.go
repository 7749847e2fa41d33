// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package diff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/vpuhoff/stateman/internal/state"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name    string
		source  state.State
		target  state.State
		added   []string
		removed []string
		changed []string
	}{
		{
			name:    "both empty",
			source:  state.State{},
			target:  state.State{},
			added:   []string{},
			removed: []string{},
			changed: []string{},
		},
		{
			name:    "identical states",
			source:  state.State{"a.txt": "d1", "b/c.txt": "d2"},
			target:  state.State{"a.txt": "d1", "b/c.txt": "d2"},
			added:   []string{},
			removed: []string{},
			changed: []string{},
		},
		{
			name:    "everything added",
			source:  state.State{},
			target:  state.State{"a.txt": "d1", "b/c.txt": "d2"},
			added:   []string{"a.txt", "b/c.txt"},
			removed: []string{},
			changed: []string{},
		},
		{
			name:    "everything removed",
			source:  state.State{"a.txt": "d1", "b/c.txt": "d2"},
			target:  state.State{},
			added:   []string{},
			removed: []string{"a.txt", "b/c.txt"},
			changed: []string{},
		},
		{
			name:    "mixed mutation",
			source:  state.State{"a.txt": "d1", "b/c.txt": "d2"},
			target:  state.State{"a.txt": "d3", "d.txt": "d4"},
			added:   []string{"d.txt"},
			removed: []string{"b/c.txt"},
			changed: []string{"a.txt"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Compute(tt.source, tt.target)

			if diff := cmp.Diff(tt.added, d.Added); diff != "" {
				t.Errorf("added mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.removed, d.Removed); diff != "" {
				t.Errorf("removed mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.changed, d.Changed); diff != "" {
				t.Errorf("changed mismatch (-want +got):\n%s", diff)
			}

			assert.Equal(t, tt.source.Aggregate(), d.SourceState)
			assert.Equal(t, tt.target.Aggregate(), d.TargetState)

			// Buckets must be pairwise disjoint.
			seen := map[string]int{}
			for _, p := range d.Added {
				seen[p]++
			}
			for _, p := range d.Removed {
				seen[p]++
			}
			for _, p := range d.Changed {
				seen[p]++
			}
			for p, n := range seen {
				assert.Equalf(t, 1, n, "path %s classified %d times", p, n)
			}

			// Digests cover exactly added and changed, with target values.
			assert.Len(t, d.Digests, len(d.Added)+len(d.Changed))
			for p, digest := range d.Digests {
				assert.Equal(t, tt.target[p], digest)
			}
		})
	}
}

func TestComputeEmptyDiff(t *testing.T) {
	s := state.State{"a.txt": "d1"}
	d := Compute(s, s)
	assert.True(t, d.Empty())
	assert.Equal(t, d.SourceState, d.TargetState)
}

func TestPayloadSortedUnion(t *testing.T) {
	d := Diff{
		Added:   []string{"z.txt", "a.txt"},
		Changed: []string{"m.txt"},
	}
	assert.Equal(t, []string{"a.txt", "m.txt", "z.txt"}, d.Payload())
}
