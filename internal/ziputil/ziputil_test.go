// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package ziputil

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain relative", in: "a/b.txt", want: "a/b.txt"},
		{name: "backslashes normalized", in: `a\b.txt`, want: "a/b.txt"},
		{name: "leading slash stripped", in: "/etc/passwd", want: "etc/passwd"},
		{name: "drive letter stripped", in: `C:\evil.txt`, want: "evil.txt"},
		{name: "dotdot cannot escape", in: "../../evil.txt", want: "evil.txt"},
		{name: "inner dotdot resolved", in: "a/../b.txt", want: "b.txt"},
		{name: "dot segments dropped", in: "./a/./b.txt", want: "a/b.txt"},
		{name: "empty falls back", in: "", want: "entry"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeName(tt.in))
		})
	}
}

func TestWritersProduceReadableEntries(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	require.NoError(t, WriteJSON(zw, "meta.json", map[string]string{"k": "v"}))
	require.NoError(t, WriteReader(zw, "payload.bin", bytes.NewReader([]byte("raw bytes"))))
	require.NoError(t, zw.Close())

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)

	for _, f := range zr.File {
		assert.Equal(t, FixedTime, f.Modified.UTC())
	}

	rc, err := zr.File[1].Open()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "raw bytes", string(data))
}

func TestDeterministicOutput(t *testing.T) {
	build := func() []byte {
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		require.NoError(t, WriteJSON(zw, "meta.json", map[string]string{"k": "v"}))
		require.NoError(t, WriteReader(zw, "a.txt", bytes.NewReader([]byte("x"))))
		require.NoError(t, zw.Close())
		return buf.Bytes()
	}
	assert.Equal(t, build(), build())
}
