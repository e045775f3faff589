package core

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"

	"t9pad/config"
	"t9pad/internal/metrics"
	"t9pad/util"
)

func TestShellMode_Run(t *testing.T) {
	std, out, _ := testStreams("4433555 555666#\nquit\n")
	cfg := config.New()
	cfg.NoBanner = true

	mode, err := Build(cfg, std, util.Discard(), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := mode.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "Output: 'HELLO'") {
		t.Errorf("stdout = %q", out.String())
	}
}

func TestShellMode_HotReload(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "live.toml")
	if err := os.WriteFile(path, []byte("[keys]\n2 = \"ABC\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	pr, pw := io.Pipe()
	std, out, _ := testStreams("")
	std.Stdin = pr

	cfg := config.New()
	cfg.NoBanner = true
	cfg.Prompt = ""
	cfg.LayoutPath = path
	cfg.WatchLayout = true

	m := metrics.New()
	mode, err := Build(cfg, std, util.Discard(), m)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- mode.Run(context.Background()) }()

	// The watcher starts inside Run, so keep editing until a reload lands.
	deadline := time.Now().Add(5 * time.Second)
	for m.LayoutReloads() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("layout was never reloaded")
		}
		_ = os.WriteFile(path, []byte("[keys]\n2 = \"XYZ\"\n"), 0o600)
		time.Sleep(250 * time.Millisecond)
	}

	if _, err := io.WriteString(pw, "22#\nquit\n"); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("shell did not exit")
	}
	pw.Close()

	if !strings.Contains(out.String(), "Output: 'Y'") {
		t.Errorf("stdout = %q", out.String())
	}
}
