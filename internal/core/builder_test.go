package core

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"t9pad/config"
	"t9pad/util"
)

func testStreams(input string) (Streams, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return Streams{Stdin: strings.NewReader(input), Stdout: &out, Stderr: &errOut}, &out, &errOut
}

func TestBuild_SelectsMode(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
		want string
	}{
		{"shell", config.New(), "*core.ShellMode"},
		{"arguments", &config.Config{Sequences: []string{"2#"}}, "*core.BatchMode"},
		{"file", &config.Config{InputFile: "-"}, "*core.BatchMode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			std, _, _ := testStreams("")
			mode, err := Build(tt.cfg, std, util.Discard(), nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := typeName(mode); got != tt.want {
				t.Errorf("mode = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestBuild_ShellWatchOnlyWhenRequested(t *testing.T) {
	path := filepath.Join(t.TempDir(), "k.toml")
	if err := os.WriteFile(path, []byte("[keys]\n2 = \"AB\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, watch := range []bool{false, true} {
		cfg := config.New()
		cfg.LayoutPath = path
		cfg.WatchLayout = watch

		std, _, _ := testStreams("")
		mode, err := Build(cfg, std, util.Discard(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		sm := mode.(*ShellMode)
		if (sm.LayoutPath != "") != watch {
			t.Errorf("watch=%v: LayoutPath = %q", watch, sm.LayoutPath)
		}
		if got := sm.Session.KeyMap().String(); got != "2=AB" {
			t.Errorf("layout = %q, want 2=AB", got)
		}
	}
}

func TestBuild_BadLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("keys:\n  \"0\": X\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg := &config.Config{Sequences: []string{"2#"}, LayoutPath: path}

	std, _, _ := testStreams("")
	if _, err := Build(cfg, std, util.Discard(), nil); err == nil {
		t.Fatal("expected layout error")
	}
}

func typeName(v interface{}) string {
	switch v.(type) {
	case *ShellMode:
		return "*core.ShellMode"
	case *BatchMode:
		return "*core.BatchMode"
	}
	return "unknown"
}
