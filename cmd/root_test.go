package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"t9pad/internal/core"
)

func testRun(t *testing.T, input string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err = run(context.Background(), args, core.Streams{
		Stdin:  strings.NewReader(input),
		Stdout: &out,
		Stderr: &errOut,
	})
	return out.String(), errOut.String(), err
}

// TestExecute_Version verifies --version prints a version string.
func TestExecute_Version(t *testing.T) {
	out, _, err := testRun(t, "", "--version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "t9pad ") {
		t.Errorf("stdout = %q", out)
	}
}

// TestExecute_Help verifies --help returns without error.
func TestExecute_Help(t *testing.T) {
	_, errOut, err := testRun(t, "", "--help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(errOut, "--layout") {
		t.Errorf("usage should list --layout:\n%s", errOut)
	}
}

// TestExecute_Decode verifies positional sequences are decoded in order.
func TestExecute_Decode(t *testing.T) {
	out, _, err := testRun(t, "", "4433555 555666#", "8 88777444666*664#")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "HELLO\nTURING\n" {
		t.Errorf("stdout = %q", out)
	}
}

// TestExecute_DecodeFailure verifies a bad sequence fails the run.
func TestExecute_DecodeFailure(t *testing.T) {
	_, errOut, err := testRun(t, "", "22")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(errOut, "input must end with '#'") {
		t.Errorf("stderr = %q", errOut)
	}
}

// TestExecute_NoArgsStartsShell verifies the shell runs on stdin.
func TestExecute_NoArgsStartsShell(t *testing.T) {
	out, _, err := testRun(t, "227*#\nquit\n", "--no-banner")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Output: 'B'") {
		t.Errorf("stdout = %q", out)
	}
}

// TestExecute_FileFromStdin verifies -f - reads sequences from stdin.
func TestExecute_FileFromStdin(t *testing.T) {
	out, _, err := testRun(t, "222 2 22#\n", "-q", "-f", "-")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "'CAB'\n" {
		t.Errorf("stdout = %q", out)
	}
}

// TestExecute_Layout verifies --layout replaces the key map.
func TestExecute_Layout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.yaml")
	if err := os.WriteFile(path, []byte("keys:\n  \"2\": XY\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	out, _, err := testRun(t, "", "-l", path, "222#")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "X\n" {
		t.Errorf("stdout = %q", out)
	}
}

// TestExecute_EnvLayout verifies T9PAD_LAYOUT is honoured and flags win.
func TestExecute_EnvLayout(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, "env.toml")
	flagPath := filepath.Join(dir, "flag.toml")
	if err := os.WriteFile(envPath, []byte("[keys]\n2 = \"E\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(flagPath, []byte("[keys]\n2 = \"F\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("T9PAD_LAYOUT", envPath)

	out, _, err := testRun(t, "", "2#")
	if err != nil || out != "E\n" {
		t.Errorf("env: out=%q err=%v", out, err)
	}
	out, _, err = testRun(t, "", "--layout", flagPath, "2#")
	if err != nil || out != "F\n" {
		t.Errorf("flag: out=%q err=%v", out, err)
	}
}

// TestExecute_EnvWatchIgnoredInBatch verifies T9PAD_WATCH does not fail
// a run that decodes arguments, while --watch still does.
func TestExecute_EnvWatchIgnoredInBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.toml")
	if err := os.WriteFile(path, []byte("[keys]\n2 = \"W\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("T9PAD_LAYOUT", path)
	t.Setenv("T9PAD_WATCH", "1")

	out, _, err := testRun(t, "", "2#")
	if err != nil || out != "W\n" {
		t.Errorf("env watch: out=%q err=%v", out, err)
	}
	if _, _, err := testRun(t, "", "--watch", "2#"); err == nil {
		t.Error("explicit --watch with arguments should fail")
	}
}

// TestExecute_Stats verifies --stats prints a JSON snapshot.
func TestExecute_Stats(t *testing.T) {
	_, errOut, err := testRun(t, "", "--stats", "33#")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(errOut, `"decodes_total": 1`) {
		t.Errorf("stderr = %q", errOut)
	}
}

// TestExecute_DryRun verifies --dry-run validates and exits cleanly.
func TestExecute_DryRun(t *testing.T) {
	out, _, err := testRun(t, "", "--dry-run", "2a#")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "" {
		t.Errorf("dry run should not decode, got %q", out)
	}
}

// TestExecute_DryRunInvalid verifies --dry-run still catches bad configs.
func TestExecute_DryRunInvalid(t *testing.T) {
	_, _, err := testRun(t, "", "--watch", "--dry-run")
	if err == nil {
		t.Fatal("expected validation error")
	}
}

// TestExecute_InvalidFlags verifies unknown flags produce an error.
func TestExecute_InvalidFlags(t *testing.T) {
	_, _, err := testRun(t, "", "--nonexistent-flag")
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
}

// TestExecute_ConflictingInputs verifies sequences and -f conflict.
func TestExecute_ConflictingInputs(t *testing.T) {
	_, _, err := testRun(t, "", "-f", "seq.txt", "2#")
	if err == nil {
		t.Fatal("expected error for arguments with --file")
	}
	if !strings.Contains(err.Error(), "mutually exclusive") {
		t.Errorf("error should mention mutually exclusive: %v", err)
	}
}
