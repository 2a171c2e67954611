package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/frudas24/swayrestore/internal/layout"
)

// TestSaveLoad_RoundTrip verifies saved outputs load back unchanged.
func TestSaveLoad_RoundTrip(t *testing.T) {
	repo := New(filepath.Join(t.TempDir(), "layouts"))
	in := []layout.Output{
		{Name: "eDP-1", Make: "Samsung", Model: "XYZ", Serial: "12345", Transform: "270", Rect: layout.Rect{X: 1, Y: 2, Width: 3, Height: 4}, Active: true},
		{Name: "DP-3", Make: "Dell", Model: "U2720Q", Serial: "77AB", Active: false},
	}

	if err := repo.Save("abc123", in); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	out, err := repo.Load("abc123")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(out) != 2 || out[0] != in[0] || out[1] != in[1] {
		t.Fatalf("expected %+v, got %+v", in, out)
	}
}

// TestLoad_MissingKey verifies an unsaved fingerprint reports
// ErrNotFound.
func TestLoad_MissingKey(t *testing.T) {
	repo := New(t.TempDir())
	_, err := repo.Load("deadbeef")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// TestLoad_CorruptFile verifies malformed stored data fails.
func TestLoad_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "abc123"), []byte("{broken"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := New(dir).Load("abc123"); err == nil {
		t.Fatalf("expected error for corrupt file")
	}
}

// TestSave_CreatesRoot verifies the state directory is created on
// demand.
func TestSave_CreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "layouts")
	if err := New(root).Save("abc123", nil); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "abc123")); err != nil {
		t.Fatalf("expected saved file: %v", err)
	}
}
