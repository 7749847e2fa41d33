// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpuhoff/stateman/internal/config"
)

func TestInitApp(t *testing.T) {
	app, err := InitApp(context.Background(), []string{"stateman", "snapshot", "."})
	require.NoError(t, err)

	names := make([]string, 0, len(app.Commands))
	for _, cmd := range app.Commands {
		names = append(names, cmd.Name)
	}
	assert.Equal(t, []string{"snapshot", "diff", "create", "apply", "info"}, names)

	for _, cmd := range app.Commands {
		for i := 1; i < len(cmd.Flags); i++ {
			assert.LessOrEqual(t, cmd.Flags[i-1].Names()[0], cmd.Flags[i].Names()[0],
				"flags of %s not sorted", cmd.Name)
		}
	}
}

func TestNewExcludeFlagConfigDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stateman.yaml")
	require.NoError(t, os.WriteFile(path, []byte("exclude: \".git/\"\napply:\n  exclude: \"tmp/\"\n"), 0o644))
	t.Setenv("STATEMAN_CFG_FILE", path)
	_, err := config.Load()
	require.NoError(t, err)
	t.Cleanup(func() { config.Config = config.Type{} })

	assert.Equal(t, "tmp/", NewExcludeFlag("apply").Value)
	assert.Equal(t, ".git/", NewExcludeFlag("diff").Value)
}
