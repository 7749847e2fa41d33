// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package patch

import "errors"

// Sentinel errors for the patch failure modes. Wrapped occurrences carry the
// offending path or digest pair; match with errors.Is.
var (
	// ErrStateMismatch means the target directory's current aggregate digest
	// does not equal the patch's declared source digest. Apply aborts before
	// touching the filesystem.
	ErrStateMismatch = errors.New("current state does not match the patch source state")

	// ErrPostcondition means the directory was mutated but its resulting
	// aggregate digest does not equal the declared target digest. The
	// mutation cannot be rolled back automatically.
	ErrPostcondition = errors.New("applied state does not match the patch target state")

	// ErrMalformedArchive means the manifest is missing or unparsable, a
	// payload entry named by the manifest is absent, or a payload's bytes do
	// not hash to the digest the manifest declares.
	ErrMalformedArchive = errors.New("malformed patch archive")

	// ErrStaleDiff means a file named added or changed by the diff cannot be
	// read under the source root while building the archive.
	ErrStaleDiff = errors.New("diff is stale for the source directory")
)
