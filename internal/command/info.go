// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"

	"github.com/vpuhoff/stateman/internal/config"
	"github.com/vpuhoff/stateman/internal/log"
	"github.com/vpuhoff/stateman/internal/meta"
	"github.com/vpuhoff/stateman/internal/patch"
)

// infoCommandAction prints a patch archive's manifest without extracting any
// payload. With --query, a gjson path is evaluated against the manifest JSON
// instead (e.g. 'added.#' or 'source_state').
func infoCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := cmd.Metadata["meta"].(meta.Meta)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "info"

	patchPath := cmd.Args().First()
	if patchPath == "" {
		return fmt.Errorf("missing patch-file argument")
	}

	manifest, err := patch.ReadManifest(patchPath)
	if err != nil {
		return err
	}

	doc, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if q := cmd.String("query"); q != "" {
		res := gjson.GetBytes(doc, q)
		if !res.Exists() {
			return fmt.Errorf("query matched nothing: %s", q)
		}
		fmt.Println(res.String())
		return nil
	}

	fmt.Println(string(doc))
	return nil
}

// infoCommandBuilder constructs the "info" subcommand.
func infoCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "show a patch archive's manifest",
		UsageText: "stateman info <patch-file> [--query path]",
		Metadata:  map[string]any{"meta": m},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "gjson path evaluated against the manifest",
			},
		},
		Action: infoCommandAction,
	}
}
