// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/spf13/cobra"
)

// SampleCorpus holds two cards that parse and one that does not.
const SampleCorpus = `- name: Grizzly Bears
  text: When Grizzly Bears enters, draw a card.
- name: Test Charm
  text: |-
    Choose one —
    • Draw a card.
    • You gain 3 life.
- name: Test Oddity
  text: |-
    Blorp the flumph.
    Flying
`

// CleanCorpus holds only cards that parse.
const CleanCorpus = `- name: Test Drake
  text: Flying
- name: Test Scholar
  text: Draw two cards.
`

// WriteCorpus writes content to cards.yaml in a fresh temporary directory
// and returns its path.
func WriteCorpus(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cards.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write corpus: %v", err)
	}
	return path
}

// Execute runs cmd with args under ctx and captures both output streams.
// Usage and error printing are silenced as on the root command, so stdout
// holds only what the command wrote.
func Execute(ctx context.Context, cmd *cobra.Command, args ...string) (stdout, stderr string, err error) {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}
