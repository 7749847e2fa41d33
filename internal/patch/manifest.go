// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package patch builds and applies binary patch archives. A patch is a zip
// file carrying a metadata.json manifest (the classified diff plus both
// aggregate state digests) and one raw-bytes entry per added or changed file,
// keyed by the file's relative path.
package patch

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/vpuhoff/stateman/internal/diff"
	"github.com/vpuhoff/stateman/internal/state"
)

// ManifestName is the archive entry holding the patch manifest.
const ManifestName = "metadata.json"

// Manifest is the self-describing metadata stored as the archive's first
// entry. It can be read without extracting any payload.
type Manifest struct {
	ID      string    `json:"id"`
	Created time.Time `json:"created"`

	SourceState string `json:"source_state"`
	TargetState string `json:"target_state"`

	Added   []string `json:"added"`
	Removed []string `json:"removed"`
	Changed []string `json:"changed"`

	// Digests maps every added/changed path to its target content digest,
	// checked after each payload is staged during apply.
	Digests map[string]state.Digest `json:"digests"`
}

// Diff returns the manifest's change sets as a diff value.
func (m Manifest) Diff() diff.Diff {
	return diff.Diff{
		Added:       m.Added,
		Removed:     m.Removed,
		Changed:     m.Changed,
		Digests:     m.Digests,
		SourceState: m.SourceState,
		TargetState: m.TargetState,
	}
}

// Payload returns the sorted union of added and changed paths.
func (m Manifest) Payload() []string {
	paths := make([]string, 0, len(m.Added)+len(m.Changed))
	paths = append(paths, m.Added...)
	paths = append(paths, m.Changed...)
	sort.Strings(paths)
	return paths
}

// ReadManifest opens the archive at path and decodes only its manifest entry.
func ReadManifest(path string) (Manifest, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("failed to open patch %s: %w", path, err)
	}
	defer zr.Close()
	return readManifest(&zr.Reader, path)
}

func readManifest(zr *zip.Reader, path string) (Manifest, error) {
	for _, f := range zr.File {
		if f.Name != ManifestName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return Manifest{}, fmt.Errorf("%w: cannot open %s in %s: %v",
				ErrMalformedArchive, ManifestName, path, err)
		}
		defer rc.Close()

		var m Manifest
		if err := json.NewDecoder(rc).Decode(&m); err != nil {
			return Manifest{}, fmt.Errorf("%w: cannot parse %s in %s: %v",
				ErrMalformedArchive, ManifestName, path, err)
		}
		if m.Digests == nil {
			m.Digests = map[string]state.Digest{}
		}
		return m, nil
	}
	return Manifest{}, fmt.Errorf("%w: %s has no %s entry", ErrMalformedArchive, path, ManifestName)
}
