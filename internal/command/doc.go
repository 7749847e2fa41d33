// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the CLI command set for stateman. It wires flags
// and actions for the snapshot, diff, create, apply and info subcommands.
package command
