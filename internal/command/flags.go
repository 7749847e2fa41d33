// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"github.com/urfave/cli/v3"

	"github.com/vpuhoff/stateman/internal/config"
)

// NewExcludeFlag constructs the shared --exclude flag. The default comes from
// the config file, preferring the "<ns>.exclude" key over plain "exclude", so
// a patch workflow can pin one exclusion prefix for every command.
func NewExcludeFlag(ns string) *cli.StringFlag {
	def, _ := config.GetString(ns+".exclude", "")
	if def == "" {
		def, _ = config.GetString("exclude", "")
	}
	return &cli.StringFlag{
		Name:    "exclude",
		Aliases: []string{"x"},
		Usage:   "literal path prefix to omit from scanning and patching",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("STATEMAN_EXCLUDE"),
		),
		Value: def,
	}
}
