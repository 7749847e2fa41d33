// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package state

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/vpuhoff/stateman/internal/log"
)

// Scan walks the tree rooted at root and returns its State. Paths are
// root-relative with forward slashes. Only regular files are captured;
// symlinks are always skipped, on every platform, whether they point at files
// or directories. When exclude is non-empty, any relative path with that
// literal prefix is pruned along with its entire subtree.
//
// A file that vanishes or becomes unreadable between enumeration and hashing
// aborts the scan. A partial State is never returned.
func Scan(root string, exclude string) (State, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %s: %w", root, err)
	}
	root = abs

	result := State{}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk %s: %w", path, err)
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to relativize %s: %w", path, err)
		}
		rel = filepath.ToSlash(rel)

		if excluded(rel, d.IsDir(), exclude) {
			log.Tracef("excluded: %s", rel)
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			// Symlinks (and any other non-regular entries) are never
			// captured. Following links would make the state depend on
			// content outside the tree.
			log.Tracef("skipped non-regular: %s", rel)
			return nil
		}

		digest, err := HashFile(path)
		if err != nil {
			return err
		}
		result[rel] = digest
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debugf("scanned %s: files=%d exclude=%q", root, len(result), exclude)
	return result, nil
}

// excluded reports whether the relative path falls under the exclusion
// prefix. Matching is a literal prefix test against the slash-normalized
// relative path. A directory also matches when the prefix names it with a
// trailing slash, so "tmp/" prunes the "tmp" subtree.
func excluded(rel string, isDir bool, exclude string) bool {
	if exclude == "" {
		return false
	}
	if strings.HasPrefix(rel, exclude) {
		return true
	}
	if isDir && strings.HasPrefix(rel+"/", exclude) {
		return true
	}
	return false
}
