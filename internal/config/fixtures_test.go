package config_test

import (
	"testing"

	"github.com/firefly-engineering/projctl/internal/config"
	"github.com/firefly-engineering/projctl/internal/testutil"
)

func TestFixtureConfigs(t *testing.T) {
	paths := &config.Paths{StateDir: "/state"}

	t.Run("umi toml", func(t *testing.T) {
		cfg, err := testutil.ValidConfig()
		if err != nil {
			t.Fatalf("ValidConfig() error: %v", err)
		}
		if cfg.IsBigfish() {
			t.Error("umi config should not be bigfish")
		}
		if got := cfg.DatabasePath(paths); got != "/state/projects.db" {
			t.Errorf("DatabasePath() = %q, want relative to the state dir", got)
		}
		if cfg.IsTerminalEditor("code") {
			t.Error("code should not need the terminal")
		}
	})

	t.Run("bigfish yaml", func(t *testing.T) {
		cfg, err := testutil.BigfishConfig()
		if err != nil {
			t.Fatalf("BigfishConfig() error: %v", err)
		}
		if !cfg.IsBigfish() {
			t.Error("IsBigfish() should be true")
		}
		if got := cfg.DatabasePath(paths); got != "/var/lib/projctl/bigfish.db" {
			t.Errorf("DatabasePath() = %q, want the absolute path", got)
		}
	})

	t.Run("terminal editor override", func(t *testing.T) {
		cfg, err := testutil.LoadConfigFixture("terminal_config.yaml")
		if err != nil {
			t.Fatalf("LoadConfigFixture() error: %v", err)
		}
		if cfg.EditorTerminal == nil || !*cfg.EditorTerminal {
			t.Fatalf("EditorTerminal = %v, want true", cfg.EditorTerminal)
		}
		if !cfg.IsTerminalEditor("emacs") {
			t.Error("override should mark emacs as a terminal editor")
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if _, err := testutil.LoadConfigFixture("invalid_config.toml"); err == nil {
			t.Error("invalid fixture should fail validation")
		}
	})
}
