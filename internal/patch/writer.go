// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package patch

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/vpuhoff/stateman/internal/diff"
	"github.com/vpuhoff/stateman/internal/log"
	"github.com/vpuhoff/stateman/internal/ziputil"
)

// Write serializes the diff and the current bytes of every added or changed
// file under sourceRoot into a patch archive at patchPath. Removed paths
// appear only in the manifest. The manifest is written first so a reader can
// validate the patch without touching payloads.
//
// Every payload file must still be readable under sourceRoot; the diff was
// computed from a state captured there, so a missing or unreadable file means
// the diff is stale and the write fails with ErrStaleDiff. A partial archive
// is removed on any failure.
func Write(sourceRoot, patchPath string, d diff.Diff) (err error) {
	if mkErr := os.MkdirAll(filepath.Dir(patchPath), 0o755); mkErr != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(patchPath), mkErr)
	}

	f, err := os.Create(patchPath)
	if err != nil {
		return fmt.Errorf("failed to create patch %s: %w", patchPath, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close patch %s: %w", patchPath, cerr)
		}
		if err != nil {
			_ = os.Remove(patchPath)
		}
	}()

	zw := zip.NewWriter(f)

	m := Manifest{
		ID:          uuid.NewString(),
		Created:     time.Now().UTC(),
		SourceState: d.SourceState,
		TargetState: d.TargetState,
		Added:       d.Added,
		Removed:     d.Removed,
		Changed:     d.Changed,
		Digests:     d.Digests,
	}
	if err = ziputil.WriteJSON(zw, ManifestName, m); err != nil {
		return err
	}

	for _, rel := range d.Payload() {
		if err = writePayload(zw, sourceRoot, rel); err != nil {
			return err
		}
	}

	if err = zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize patch %s: %w", patchPath, err)
	}

	log.Debugf("wrote patch %s: id=%s added=%d removed=%d changed=%d",
		patchPath, m.ID, len(m.Added), len(m.Removed), len(m.Changed))
	return nil
}

func writePayload(zw *zip.Writer, sourceRoot, rel string) error {
	src := filepath.Join(sourceRoot, filepath.FromSlash(rel))
	r, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%w: cannot read %s: %v", ErrStaleDiff, src, err)
	}
	defer r.Close()
	return ziputil.WriteReader(zw, rel, r)
}
