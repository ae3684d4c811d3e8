package cmd

import (
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

func TestRunExtension(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extensions are shell scripts in this test")
	}
	tempDir := t.TempDir()
	script := `#!/bin/sh
echo "$PERF_LEDGER $PERF_VERBOSE $1" > "$2"
exit 3
`
	if err := os.WriteFile(filepath.Join(tempDir, "perf-hello"), []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", tempDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	useLedger(t, "family.jsonl")

	out := filepath.Join(tempDir, "out.txt")
	found, code := RunExtension("hello", []string{"world", out})
	if !found {
		t.Fatal("RunExtension() did not find perf-hello")
	}
	if code != 3 {
		t.Errorf("RunExtension() exit code = %d, want 3", code)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if want := "family.jsonl false world"; strings.TrimSpace(string(got)) != want {
		t.Errorf("extension saw %q, want %q", strings.TrimSpace(string(got)), want)
	}

	if found, _ := RunExtension("missing-extension", nil); found {
		t.Error("RunExtension() found a missing extension")
	}
}

func TestIsRegistered(t *testing.T) {
	c := subcommands.NewCommander(flag.NewFlagSet("perf", flag.ContinueOnError), "perf")
	Register(c)
	for _, name := range []string{"performance", "holding", "check", "format-ledger", "topic"} {
		if !IsRegistered(c, name) {
			t.Errorf("IsRegistered(%q) = false", name)
		}
	}
	if IsRegistered(c, "hello") {
		t.Error("IsRegistered(hello) = true")
	}
}
