package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/idelchi/gosplit/internal/commands"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	root := commands.NewRootCommand("v1.2.3")
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

func TestSplitAndJoinCommands(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.txt")

	if err := os.WriteFile(input, []byte("split me from the command line"), 0o600); err != nil {
		t.Fatalf("writing input: %v", err)
	}

	if _, err := execute(t, "split", "-q", "-n", "3", "--scheme", "xchacha20", "--archive", input); err != nil {
		t.Fatalf("split: %v", err)
	}

	archive := input + ".zip"

	if _, err := execute(t, "verify", "-q", archive); err != nil {
		t.Fatalf("verify: %v", err)
	}

	restored := filepath.Join(dir, "restored")

	if _, err := execute(t, "join", "-q", "-o", restored, archive); err != nil {
		t.Fatalf("join: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(restored, "input.txt"))
	if err != nil {
		t.Fatalf("reading restored file: %v", err)
	}

	if string(got) != "split me from the command line" {
		t.Errorf("restored %q", got)
	}
}

func TestSplitValidation(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.txt")

	if err := os.WriteFile(input, []byte("x"), 0o600); err != nil {
		t.Fatalf("writing input: %v", err)
	}

	if _, err := execute(t, "split", input); err == nil {
		t.Error("split without --pieces succeeded")
	}

	if _, err := execute(t, "split", "-n", "2", "--scheme", "rot13", input); err == nil {
		t.Error("split with an unknown scheme succeeded")
	}
}

func TestEnvironmentBinding(t *testing.T) {
	t.Setenv("GOSPLIT_PIECES", "7")
	t.Setenv("GOSPLIT_MAX_SIZE", "2MiB")

	out, err := execute(t, "split", "--show", "file.txt")
	if err != nil {
		t.Fatalf("split --show: %v", err)
	}

	for _, want := range []string{"pieces: 7", "maxsize: 2MiB", "file.txt"} {
		if !strings.Contains(strings.ToLower(out), strings.ToLower(want)) {
			t.Errorf("--show output lacks %q:\n%s", want, out)
		}
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "--version")
	if err != nil {
		t.Fatalf("--version: %v", err)
	}

	if strings.TrimSpace(out) != "v1.2.3" {
		t.Errorf("--version = %q", out)
	}
}
