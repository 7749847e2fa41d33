// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/vpuhoff/stateman/internal/config"
	"github.com/vpuhoff/stateman/internal/log"
	"github.com/vpuhoff/stateman/internal/meta"
	"github.com/vpuhoff/stateman/internal/patch"
)

// applyCommandAction applies a patch archive to a directory.
func applyCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := cmd.Metadata["meta"].(meta.Meta)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "apply"

	if cmd.Args().Len() != 2 {
		return fmt.Errorf("expected <dir> and <patch-file> arguments")
	}
	root, patchPath := cmd.Args().Get(0), cmd.Args().Get(1)

	return patch.Apply(root, patchPath, cmd.String("exclude"))
}

// applyCommandBuilder constructs the "apply" subcommand.
func applyCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "apply",
		Usage:     "apply a patch to a directory",
		UsageText: "stateman apply <dir> <patch-file>",
		Metadata:  map[string]any{"meta": m},
		Flags: []cli.Flag{
			NewExcludeFlag("apply"),
		},
		Action: applyCommandAction,
	}
}
