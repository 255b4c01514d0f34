// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"bytes"
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	savedDirty, savedCommit := GitDirty, GitCommit
	t.Cleanup(func() { GitDirty, GitCommit = savedDirty, savedCommit })

	GitCommit = "abc1234"
	GitDirty = "false"
	if got := Info(); !strings.Contains(got, "(abc1234, ") {
		t.Errorf("Info() = %q, want commit without dirty marker", got)
	}

	GitDirty = "true"
	if got := Info(); !strings.Contains(got, "abc1234-dirty") {
		t.Errorf("Info() = %q, want dirty marker", got)
	}
}

func TestFull(t *testing.T) {
	if got := Full(); !strings.Contains(got, "Go: ") || !strings.HasPrefix(got, Info()) {
		t.Errorf("Full() = %q", got)
	}
}

func TestFprint(t *testing.T) {
	var buffer bytes.Buffer
	Fprint(&buffer, "smith-address")
	if got, want := buffer.String(), "smith-address "+Info()+"\n"; got != want {
		t.Errorf("Fprint wrote %q, want %q", got, want)
	}
}
