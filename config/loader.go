package config

// loader.go - configuration loading from environment variables.
//
// Precedence order (highest wins):
//   1. CLI flags  (handled by cmd/root.go)
//   2. Environment variables  (this file)
//   3. Defaults   (defaults.go)

import (
	"os"
	"strconv"
	"strings"
)

// ── Environment variable mapping ─────────────────────────────────────
//
// Every supported env var uses the T9PAD_ prefix.  Boolean values
// accept "1", "true", "yes" (case-insensitive).

// LoadFromEnv overlays environment variables onto cfg.  Only non-empty
// env vars override the existing value.  This should be called BEFORE
// CLI flag parsing so that flags take precedence.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("T9PAD_LAYOUT"); v != "" {
		cfg.LayoutPath = v
	}
	if envBool("T9PAD_WATCH") {
		cfg.WatchLayout = true
		cfg.WatchFromEnv = true
	}

	// Shell
	if v := os.Getenv("T9PAD_PROMPT"); v != "" {
		cfg.Prompt = v
	}
	if v := os.Getenv("T9PAD_QUIT"); v != "" {
		cfg.QuitWord = v
	}
	if envBool("T9PAD_NO_BANNER") {
		cfg.NoBanner = true
	}

	// Output
	if envBool("T9PAD_QUOTE") {
		cfg.Quote = true
	}
	if envBool("T9PAD_STATS") {
		cfg.Stats = true
	}
	if v := envInt("T9PAD_VERBOSE"); v > 0 {
		cfg.Verbose = v
	}
}

// ── helpers ──────────────────────────────────────────────────────────

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "1" || v == "true" || v == "yes"
}
