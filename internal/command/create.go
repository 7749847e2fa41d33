// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/vpuhoff/stateman/internal/config"
	"github.com/vpuhoff/stateman/internal/diff"
	"github.com/vpuhoff/stateman/internal/log"
	"github.com/vpuhoff/stateman/internal/meta"
	"github.com/vpuhoff/stateman/internal/patch"
	"github.com/vpuhoff/stateman/internal/state"
)

// createCommandAction scans the source directory, diffs it against a base
// state captured earlier, and packages the difference as a patch archive.
func createCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := cmd.Metadata["meta"].(meta.Meta)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "create"

	if cmd.Args().Len() != 2 {
		return fmt.Errorf("expected <dir> and <patch-file> arguments")
	}
	root, patchPath := cmd.Args().Get(0), cmd.Args().Get(1)

	base := cmd.String("base")
	if base == "" {
		return fmt.Errorf("missing --base state file")
	}
	source, err := state.Load(base)
	if err != nil {
		return err
	}

	target, err := state.Scan(root, cmd.String("exclude"))
	if err != nil {
		return err
	}

	d := diff.Compute(source, target)
	if d.Empty() {
		log.Warnf("no changes between %s and %s", base, root)
	}
	if err := patch.Write(root, patchPath, d); err != nil {
		return err
	}

	info, err := os.Stat(patchPath)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", patchPath, err)
	}
	fmt.Printf("%s: +%d -%d *%d (%s)\n", patchPath,
		len(d.Added), len(d.Removed), len(d.Changed), humanize.Bytes(uint64(info.Size())))
	return nil
}

// createCommandBuilder constructs the "create" subcommand.
func createCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "build a patch from a base state to a directory's current state",
		UsageText: "stateman create <dir> <patch-file> --base old-state.json",
		Metadata:  map[string]any{"meta": m},
		Flags: []cli.Flag{
			NewExcludeFlag("create"),
			&cli.StringFlag{
				Name:    "base",
				Aliases: []string{"b"},
				Usage:   "state JSON captured before the changes",
			},
		},
		Action: createCommandAction,
	}
}
