// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package state captures the content state of a directory tree as a mapping
// from relative file path to content digest, and folds such a mapping into a
// single aggregate digest that identifies the whole tree.
package state

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sort"
)

// Digest is the lowercase hex form of a file's 128-bit MD5 content digest.
// MD5 is used as a content fingerprint, not for security.
type Digest string

// State maps root-relative, slash-separated file paths to content digests.
// Directories and excluded paths never appear as keys. A State is a value
// snapshot; producers never mutate one after returning it.
type State map[string]Digest

// Paths returns the state's paths sorted byte-wise ascending.
func (s State) Paths() []string {
	paths := make([]string, 0, len(s))
	for p := range s {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Aggregate folds the state into a single digest over the sorted sequence of
// (path, digest) pairs. Two states with the same entries always produce the
// same aggregate regardless of how they were built; any differing entry
// changes it. The empty state has a well-defined aggregate.
func (s State) Aggregate() string {
	h := md5.New()
	for _, p := range s.Paths() {
		_, _ = io.WriteString(h, p)
		_, _ = io.WriteString(h, string(s[p]))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// HashFile computes the content digest of the file at path by streaming its
// bytes. The caller owns the decision of what a read failure aborts.
func HashFile(path string) (Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return Digest(hex.EncodeToString(h.Sum(nil))), nil
}

// HashBytes computes the content digest of an in-memory byte slice.
func HashBytes(data []byte) Digest {
	sum := md5.Sum(data)
	return Digest(hex.EncodeToString(sum[:]))
}
