package config

import (
	"os"
	"path/filepath"
	"testing"
)

// writeConfig writes a YAML config file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// TestLoad_FromEnv verifies environment variables populate the config.
func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SWAYSOCK", "/run/user/1000/sway-ipc.sock")
	t.Setenv("SWAYRESTORE_DIR", "/var/lib/swayrestore")

	cfg, err := Load("", Config{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Socket != "/run/user/1000/sway-ipc.sock" || cfg.StateDir != "/var/lib/swayrestore" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

// TestLoad_EnvOverridesFile verifies precedence of env over file.
func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "socket: /from/file.sock\nstate_dir: /from/file\n")
	t.Setenv("SWAYSOCK", "/from/env.sock")
	t.Setenv("SWAYRESTORE_DIR", "")
	os.Unsetenv("SWAYRESTORE_DIR")

	cfg, err := Load(path, Config{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Socket != "/from/env.sock" {
		t.Fatalf("expected env socket, got %s", cfg.Socket)
	}
	if cfg.StateDir != "/from/file" {
		t.Fatalf("expected file state dir, got %s", cfg.StateDir)
	}
}

// TestLoad_OverridesWin verifies flag overrides beat everything.
func TestLoad_OverridesWin(t *testing.T) {
	path := writeConfig(t, "socket: /from/file.sock\n")
	t.Setenv("SWAYSOCK", "/from/env.sock")

	cfg, err := Load(path, Config{Socket: "/from/flag.sock"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Socket != "/from/flag.sock" {
		t.Fatalf("expected flag socket, got %s", cfg.Socket)
	}
}

// TestLoad_MissingSocket verifies the socket endpoint is required.
func TestLoad_MissingSocket(t *testing.T) {
	t.Setenv("SWAYSOCK", "")
	os.Unsetenv("SWAYSOCK")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if _, err := Load("", Config{}); err == nil {
		t.Fatalf("expected error without a socket")
	}
}

// TestLoad_DefaultStateDir verifies the XDG data fallback.
func TestLoad_DefaultStateDir(t *testing.T) {
	t.Setenv("SWAYSOCK", "/run/sway.sock")
	t.Setenv("SWAYRESTORE_DIR", "")
	os.Unsetenv("SWAYRESTORE_DIR")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", "/home/u/.local/share")

	cfg, err := Load("", Config{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.StateDir != filepath.Join("/home/u/.local/share", "swayrestore") {
		t.Fatalf("unexpected state dir: %s", cfg.StateDir)
	}
}

// TestLoad_ExplicitMissingFile verifies a requested config file must
// exist.
func TestLoad_ExplicitMissingFile(t *testing.T) {
	t.Setenv("SWAYSOCK", "/run/sway.sock")
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	if _, err := Load(missing, Config{}); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}
