// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/vpuhoff/stateman/internal/config"
	"github.com/vpuhoff/stateman/internal/diff"
	"github.com/vpuhoff/stateman/internal/log"
	"github.com/vpuhoff/stateman/internal/meta"
	"github.com/vpuhoff/stateman/internal/state"
)

// diffCommandAction compares two captured states. Each positional argument is
// either a directory (scanned on the spot) or a state JSON file produced by
// "snapshot -o".
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := cmd.Metadata["meta"].(meta.Meta)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "diff"

	if cmd.Args().Len() != 2 {
		return fmt.Errorf("expected two arguments (state file or directory each)")
	}
	oldArg, newArg := cmd.Args().Get(0), cmd.Args().Get(1)
	exclude := cmd.String("exclude")

	source, oldIsDir, err := loadSide(oldArg, exclude)
	if err != nil {
		return err
	}
	target, newIsDir, err := loadSide(newArg, exclude)
	if err != nil {
		return err
	}

	d := diff.Compute(source, target)
	for _, p := range d.Removed {
		fmt.Printf("- %s\n", p)
	}
	for _, p := range d.Added {
		fmt.Printf("+ %s\n", p)
	}
	for _, p := range d.Changed {
		fmt.Printf("* %s\n", p)
	}
	fmt.Printf("source %s\ntarget %s\n", d.SourceState, d.TargetState)

	if cmd.Bool("unified") {
		if !oldIsDir || !newIsDir {
			return fmt.Errorf("--unified needs two directories, not state files")
		}
		for _, p := range d.Payload() {
			text, err := diff.UnifiedText(oldArg, newArg, p)
			if err != nil {
				return err
			}
			fmt.Print(text)
		}
	}

	return nil
}

// loadSide resolves one diff operand to a state and reports whether the
// operand was a live directory.
func loadSide(arg, exclude string) (state.State, bool, error) {
	info, err := os.Stat(arg)
	if err != nil {
		return nil, false, fmt.Errorf("failed to stat %s: %w", arg, err)
	}
	if info.IsDir() {
		s, err := state.Scan(arg, exclude)
		return s, true, err
	}
	s, err := state.Load(arg)
	return s, false, err
}

// diffCommandBuilder constructs the "diff" subcommand.
func diffCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "classify changes between two states",
		UsageText: "stateman diff <old-state.json|dir> <new-state.json|dir>",
		Metadata:  map[string]any{"meta": m},
		Flags: []cli.Flag{
			NewExcludeFlag("diff"),
			&cli.BoolFlag{
				Name:    "unified",
				Aliases: []string{"u"},
				Usage:   "print unified text diffs (directories only)",
				Value:   false,
			},
		},
		Action: diffCommandAction,
	}
}
