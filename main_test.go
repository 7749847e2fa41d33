// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"reflect"
	"testing"
)

func TestHandleNakedCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "binary only gets help",
			args:     []string{"stateman"},
			expected: []string{"stateman", "--help"},
		},
		{
			name:     "command present is untouched",
			args:     []string{"stateman", "snapshot", "."},
			expected: []string{"stateman", "snapshot", "."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := handleNakedCommand(tt.args)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("handleNakedCommand(%v) = %v, want %v", tt.args, got, tt.expected)
			}
		})
	}
}

func TestHandleVersion(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{name: "long flag", args: []string{"stateman", "--version"}, want: true},
		{name: "short flag", args: []string{"stateman", "-v"}, want: true},
		{name: "no flag", args: []string{"stateman", "snapshot", "."}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := handleVersion(tt.args); got != tt.want {
				t.Errorf("handleVersion(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}
