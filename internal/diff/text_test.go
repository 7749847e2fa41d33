// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package diff

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnifiedTextChangedFile(t *testing.T) {
	oldRoot, newRoot := t.TempDir(), t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(oldRoot, "a.txt"), []byte("one\ntwo\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(newRoot, "a.txt"), []byte("one\nthree\n"), 0o644))

	text, err := UnifiedText(oldRoot, newRoot, "a.txt")
	require.NoError(t, err)

	assert.Contains(t, text, "--- a/a.txt")
	assert.Contains(t, text, "+++ b/a.txt")
	assert.Contains(t, text, "-two")
	assert.Contains(t, text, "+three")
}

func TestUnifiedTextAddedFile(t *testing.T) {
	oldRoot, newRoot := t.TempDir(), t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(newRoot, "new.txt"), []byte("fresh\n"), 0o644))

	text, err := UnifiedText(oldRoot, newRoot, "new.txt")
	require.NoError(t, err)

	assert.Contains(t, text, "--- /dev/null")
	assert.Contains(t, text, "+fresh")
}

func TestUnifiedTextIdenticalIsEmpty(t *testing.T) {
	oldRoot, newRoot := t.TempDir(), t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(oldRoot, "a.txt"), []byte("same\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(newRoot, "a.txt"), []byte("same\n"), 0o644))

	text, err := UnifiedText(oldRoot, newRoot, "a.txt")
	require.NoError(t, err)
	assert.Empty(t, text)
}
