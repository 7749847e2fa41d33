// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateOrderIndependence(t *testing.T) {
	a := State{}
	a["a.txt"] = "0cc175b9c0f1b6a831c399e269772661"
	a["b/c.txt"] = "415290769594460e2e485922904f345d"
	a["d.txt"] = "f1290186a5d0b1ceab27f4e77c0c5d68"

	b := State{}
	b["d.txt"] = "f1290186a5d0b1ceab27f4e77c0c5d68"
	b["a.txt"] = "0cc175b9c0f1b6a831c399e269772661"
	b["b/c.txt"] = "415290769594460e2e485922904f345d"

	assert.Equal(t, a.Aggregate(), b.Aggregate())
}

func TestAggregateSensitivity(t *testing.T) {
	base := State{"a.txt": "0cc175b9c0f1b6a831c399e269772661"}

	tests := []struct {
		name  string
		other State
	}{
		{
			name:  "different digest",
			other: State{"a.txt": "92eb5ffee6ae2fec3ad71c777531578f"},
		},
		{
			name:  "different path",
			other: State{"b.txt": "0cc175b9c0f1b6a831c399e269772661"},
		},
		{
			name: "extra entry",
			other: State{
				"a.txt": "0cc175b9c0f1b6a831c399e269772661",
				"b.txt": "92eb5ffee6ae2fec3ad71c777531578f",
			},
		},
		{
			name:  "empty",
			other: State{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, base.Aggregate(), tt.other.Aggregate())
		})
	}
}

func TestAggregateEmptyIsStable(t *testing.T) {
	assert.Equal(t, State{}.Aggregate(), State{}.Aggregate())
	assert.NotEmpty(t, State{}.Aggregate())
}

func TestPathsSorted(t *testing.T) {
	s := State{"z": "1", "a": "2", "m/x": "3"}
	assert.Equal(t, []string{"a", "m/x", "z"}, s.Paths())
}

func TestHashFileMatchesHashBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("test1"), 0o644))

	got, err := HashFile(path)
	require.NoError(t, err)
	assert.Equal(t, HashBytes([]byte("test1")), got)
}

func TestHashFileMissing(t *testing.T) {
	_, err := HashFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "nope.txt")
}
