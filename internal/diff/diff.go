// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package diff classifies the difference between two directory states into
// added, removed and changed path sets. The computation is pure set algebra
// over in-memory states; it never touches the filesystem.
package diff

import (
	"sort"

	"github.com/vpuhoff/stateman/internal/state"
)

// Diff is the classified difference between a source and a target state.
// Every path appears in at most one bucket; paths with equal digests in both
// states appear nowhere. Digests carries the target-state digest for every
// added or changed path so that a patch payload can be verified after
// extraction. SourceState and TargetState are the aggregate digests of the
// two input states.
type Diff struct {
	Added   []string                `json:"added"`
	Removed []string                `json:"removed"`
	Changed []string                `json:"changed"`
	Digests map[string]state.Digest `json:"digests"`

	SourceState string `json:"source_state"`
	TargetState string `json:"target_state"`
}

// Compute classifies every path of the two states. Present only in target is
// added, present only in source is removed, present in both with differing
// digests is changed. The returned slices are sorted.
func Compute(source, target state.State) Diff {
	d := Diff{
		Added:   []string{},
		Removed: []string{},
		Changed: []string{},
		Digests: map[string]state.Digest{},

		SourceState: source.Aggregate(),
		TargetState: target.Aggregate(),
	}

	for p, sd := range source {
		td, ok := target[p]
		if !ok {
			d.Removed = append(d.Removed, p)
			continue
		}
		if sd != td {
			d.Changed = append(d.Changed, p)
			d.Digests[p] = td
		}
	}
	for p, td := range target {
		if _, ok := source[p]; !ok {
			d.Added = append(d.Added, p)
			d.Digests[p] = td
		}
	}

	sort.Strings(d.Added)
	sort.Strings(d.Removed)
	sort.Strings(d.Changed)
	return d
}

// Empty reports whether the diff carries no additions, removals or changes.
func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// Payload returns the sorted union of added and changed paths, i.e. every
// path whose bytes a patch archive must carry.
func (d Diff) Payload() []string {
	paths := make([]string, 0, len(d.Added)+len(d.Changed))
	paths = append(paths, d.Added...)
	paths = append(paths, d.Changed...)
	sort.Strings(paths)
	return paths
}
