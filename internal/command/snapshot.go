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
	"github.com/vpuhoff/stateman/internal/state"
)

// snapshotCommandAction scans a directory, prints its aggregate digest and
// optionally persists the full state for later diffing.
func snapshotCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := cmd.Metadata["meta"].(meta.Meta)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "snapshot"

	root := cmd.Args().First()
	if root == "" {
		return fmt.Errorf("missing directory argument")
	}

	s, err := state.Scan(root, cmd.String("exclude"))
	if err != nil {
		return err
	}

	if out := cmd.String("out"); out != "" {
		if err := state.Save(out, s); err != nil {
			return err
		}
		log.Infof("saved state of %d files to %s", len(s), out)
	}

	fmt.Printf("%s  %d files\n", s.Aggregate(), len(s))
	return nil
}

// snapshotCommandBuilder constructs the "snapshot" subcommand.
func snapshotCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "snapshot",
		Usage:     "capture a directory's content state",
		UsageText: "stateman snapshot <dir> [-o state.json]",
		Metadata:  map[string]any{"meta": m},
		Flags: []cli.Flag{
			NewExcludeFlag("snapshot"),
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "write the full state as JSON to this file",
			},
		},
		Action: snapshotCommandAction,
	}
}
