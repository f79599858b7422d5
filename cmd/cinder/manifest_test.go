package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "cinder.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestFindCinderTomlWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeManifest(t, root, "[dump]\npreds = true\n")

	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, ok, err := findCinderToml(nested)
	if err != nil {
		t.Fatalf("findCinderToml: %v", err)
	}
	if !ok {
		t.Fatal("expected manifest to be found")
	}
	if got != want {
		t.Errorf("found %q, want %q", got, want)
	}
}

func TestFindCinderTomlMissing(t *testing.T) {
	_, ok, err := findCinderToml(t.TempDir())
	if err != nil {
		t.Fatalf("findCinderToml: %v", err)
	}
	if ok {
		t.Error("expected no manifest in an empty tree")
	}
}

func TestLoadManifestConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[dump]\npreds = true\ncomment_column = 60\n")

	cfg, err := loadManifestConfig(path)
	if err != nil {
		t.Fatalf("loadManifestConfig: %v", err)
	}
	if !cfg.Dump.Preds {
		t.Error("expected [dump].preds = true")
	}
	if cfg.Dump.CommentColumn != 60 {
		t.Errorf("comment_column = %d, want 60", cfg.Dump.CommentColumn)
	}
}

func TestLoadManifestConfigRejectsNegativeColumn(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[dump]\ncomment_column = -1\n")

	if _, err := loadManifestConfig(path); err == nil {
		t.Error("expected error for negative comment_column")
	}
}

func TestLoadManifestConfigEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "")

	cfg, err := loadManifestConfig(path)
	if err != nil {
		t.Fatalf("loadManifestConfig: %v", err)
	}
	if cfg.Dump.Preds || cfg.Dump.CommentColumn != 0 {
		t.Errorf("expected zero-valued config, got %+v", cfg)
	}
}
