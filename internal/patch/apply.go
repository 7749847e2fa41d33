// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package patch

import (
	"archive/zip"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/vpuhoff/stateman/internal/log"
	"github.com/vpuhoff/stateman/internal/state"
	"github.com/vpuhoff/stateman/internal/ziputil"
)

// stagedFile is a payload written to a temporary path, waiting for the commit
// rename into its final location.
type stagedFile struct {
	tmp   string
	final string
}

// Apply transforms targetRoot from the patch's source state into its target
// state. The exclude prefix must match the one used when both snapshots were
// taken, otherwise the source-state check legitimately fails.
//
// Order of operations:
//  1. read the manifest and verify every payload entry exists
//  2. scan targetRoot; a scan equal to the target state is a no-op, anything
//     other than the source state is ErrStateMismatch before any write
//  3. stage all payloads into temp files, verifying each against its
//     manifest digest
//  4. rename staged files into place, then delete removed paths
//  5. re-scan and compare against the target state (ErrPostcondition)
//
// Steps 1-3 leave the directory untouched on failure. Interruption during
// step 4 leaves an intermediate state; staging keeps that window as small as
// the filesystem allows.
func Apply(targetRoot, patchPath, exclude string) error {
	zr, err := zip.OpenReader(patchPath)
	if err != nil {
		return fmt.Errorf("failed to open patch %s: %w", patchPath, err)
	}
	defer zr.Close()

	m, err := readManifest(&zr.Reader, patchPath)
	if err != nil {
		return err
	}
	log.Infof("patch %s: added=%d removed=%d changed=%d",
		m.ID, len(m.Added), len(m.Removed), len(m.Changed))

	entries := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		entries[f.Name] = f
	}
	payload := m.Payload()
	for _, rel := range payload {
		if _, ok := entries[ziputil.SafeName(rel)]; !ok {
			return fmt.Errorf("%w: missing payload entry %s", ErrMalformedArchive, rel)
		}
	}

	current, err := state.Scan(targetRoot, exclude)
	if err != nil {
		return err
	}
	aggregate := current.Aggregate()
	log.Debugf("current=%s source=%s target=%s", aggregate, m.SourceState, m.TargetState)

	if aggregate == m.TargetState {
		log.Infof("target already at %s, nothing to apply", m.TargetState)
		return nil
	}
	if aggregate != m.SourceState {
		return fmt.Errorf("%w: current %s, expected %s", ErrStateMismatch, aggregate, m.SourceState)
	}

	staged, written, err := stagePayloads(targetRoot, entries, m, payload)
	if err != nil {
		discardStaged(staged)
		return err
	}

	for _, s := range staged {
		if err := os.Rename(s.tmp, s.final); err != nil {
			discardStaged(staged)
			return fmt.Errorf("failed to move %s into place: %w", s.final, err)
		}
		log.Tracef("wrote: %s", s.final)
	}

	for _, rel := range m.Removed {
		path := filepath.Join(targetRoot, filepath.FromSlash(ziputil.SafeName(rel)))
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				// Goal state is "absent", already satisfied.
				continue
			}
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
		log.Tracef("removed: %s", path)
	}

	result, err := state.Scan(targetRoot, exclude)
	if err != nil {
		return fmt.Errorf("%w: post-apply scan failed: %v", ErrPostcondition, err)
	}
	if got := result.Aggregate(); got != m.TargetState {
		return fmt.Errorf("%w: got %s, expected %s", ErrPostcondition, got, m.TargetState)
	}

	log.Infof("applied %s to %s (%s written)", m.ID, targetRoot, humanize.Bytes(uint64(written)))
	return nil
}

// stagePayloads extracts every payload into a temp file beside its final
// destination, verifying bytes against the manifest digest as they stream.
// Nothing is renamed here, so a failure leaves the tree unmodified apart from
// the temp files the caller discards.
func stagePayloads(targetRoot string, entries map[string]*zip.File, m Manifest, payload []string) ([]stagedFile, int64, error) {
	staged := make([]stagedFile, 0, len(payload))
	var written int64
	for _, rel := range payload {
		entry := entries[ziputil.SafeName(rel)]
		final := filepath.Join(targetRoot, filepath.FromSlash(ziputil.SafeName(rel)))

		if err := os.MkdirAll(filepath.Dir(final), 0o755); err != nil {
			return staged, written, fmt.Errorf("failed to create %s: %w", filepath.Dir(final), err)
		}
		tmp, n, err := stageOne(entry, final, m.Digests[rel], rel)
		if err != nil {
			return staged, written, err
		}
		staged = append(staged, stagedFile{tmp: tmp, final: final})
		written += n
	}
	return staged, written, nil
}

func stageOne(entry *zip.File, final string, want state.Digest, rel string) (string, int64, error) {
	rc, err := entry.Open()
	if err != nil {
		return "", 0, fmt.Errorf("%w: cannot open payload %s: %v", ErrMalformedArchive, rel, err)
	}
	defer rc.Close()

	f, err := os.CreateTemp(filepath.Dir(final), ".tmp-"+filepath.Base(final)+"-")
	if err != nil {
		return "", 0, fmt.Errorf("failed to create temp file for %s: %w", final, err)
	}
	tmp := f.Name()

	h := md5.New()
	n, err := io.Copy(io.MultiWriter(f, h), rc)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", 0, fmt.Errorf("failed to extract %s: %w", rel, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", 0, fmt.Errorf("failed to close %s: %w", tmp, err)
	}

	if got := state.Digest(hex.EncodeToString(h.Sum(nil))); want != "" && got != want {
		_ = os.Remove(tmp)
		return "", 0, fmt.Errorf("%w: payload %s hashes to %s, manifest declares %s",
			ErrMalformedArchive, rel, got, want)
	}
	return tmp, n, nil
}

func discardStaged(staged []stagedFile) {
	for _, s := range staged {
		_ = os.Remove(s.tmp)
	}
}
