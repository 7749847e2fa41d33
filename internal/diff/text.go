// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package diff

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"
)

// unifiedContext is the number of context lines emitted around hunks.
const unifiedContext = 3

// UnifiedText renders a classic unified patch (---/+++ headers, @@ hunks) for
// one relative path between two directory roots. The old side may be absent
// (added file) in which case the from-side is /dev/null; same for a removed
// file on the new side.
func UnifiedText(oldRoot, newRoot, rel string) (string, error) {
	a, aName, err := readSide(oldRoot, rel, "a/")
	if err != nil {
		return "", err
	}
	b, bName, err := readSide(newRoot, rel, "b/")
	if err != nil {
		return "", err
	}

	u := difflib.UnifiedDiff{
		A:        splitLinesKeepNL(string(a)),
		B:        splitLinesKeepNL(string(b)),
		FromFile: aName,
		ToFile:   bName,
		Context:  unifiedContext,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return "", fmt.Errorf("failed to diff %s: %w", rel, err)
	}
	return s, nil
}

// readSide loads one side of a diff, mapping a missing file to /dev/null.
func readSide(root, rel, prefix string) ([]byte, string, error) {
	path := filepath.Join(root, filepath.FromSlash(rel))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "/dev/null", nil
		}
		return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, prefix + rel, nil
}

// splitLinesKeepNL splits into lines keeping newline characters, which
// produces better unified hunks.
func splitLinesKeepNL(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.SplitAfter(s, "\n")
}
