// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package ziputil provides deterministic zip entry helpers: fixed
// timestamps, sanitized entry names and JSON/stream writers. Archives built
// through this package are byte-for-byte reproducible for identical input.
package ziputil

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// FixedTime pins every entry's modification time to the zip epoch
// (1980-01-01 UTC) so identical content yields identical archives.
var FixedTime = time.Unix(315532800, 0).UTC()

// SafeName normalizes a zip entry name: forward slashes, no drive letter, no
// leading slash, and no "." or ".." segments escaping the root.
func SafeName(p string) string {
	s := filepath.ToSlash(p)
	if len(s) > 1 && s[1] == ':' {
		s = s[2:]
	}
	s = strings.TrimLeft(s, "/")
	parts := strings.Split(s, "/")
	stack := make([]string, 0, len(parts))
	for _, part := range parts {
		switch part {
		case "", ".":
			continue
		case "..":
			if n := len(stack); n > 0 {
				stack = stack[:n-1]
			}
		default:
			stack = append(stack, part)
		}
	}
	s = strings.Join(stack, "/")
	if s == "" {
		return "entry"
	}
	return s
}

// WriteJSON writes v as an indented JSON entry.
func WriteJSON(zw *zip.Writer, name string, v any) error {
	w, err := create(zw, name)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// WriteReader streams r into an entry without buffering the whole content.
func WriteReader(zw *zip.Writer, name string, r io.Reader) error {
	w, err := create(zw, name)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func create(zw *zip.Writer, name string) (io.Writer, error) {
	h := &zip.FileHeader{Name: SafeName(name), Method: zip.Deflate}
	h.SetMode(0o644)
	h.Modified = FixedTime
	w, err := zw.CreateHeader(h)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", name, err)
	}
	return w, nil
}
