package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[package]
name = "demo"
entry = "main.lm"

[run]
jobs = 4
color = "never"
`)
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Package.Name != "demo" || m.Package.Entry != "main.lm" {
		t.Errorf("package = %+v", m.Package)
	}
	if m.Run.Jobs != 4 || m.Run.Color != "never" || m.Run.NoCache {
		t.Errorf("run = %+v", m.Run)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[package]\nname = \"demo\"\n")
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Run.Color != "auto" || m.Run.Jobs != 0 {
		t.Errorf("run = %+v, want auto/0", m.Run)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	path := writeManifest(t, dir, "[run]\njobs = 1\n")
	if _, err := Load(path); err == nil {
		t.Error("missing [package].name accepted")
	}

	path = writeManifest(t, dir, "[package]\nname = \"demo\"\n[run]\ncolor = \"sometimes\"\n")
	if _, err := Load(path); err == nil {
		t.Error("invalid color accepted")
	}
}

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, ok, err := FindRoot(nested)
	if err != nil || !ok {
		t.Fatalf("FindRoot = %v, %v", ok, err)
	}
	// TempDir may sit behind a symlink; compare resolved paths.
	wantReal, _ := filepath.EvalSymlinks(root)
	gotReal, _ := filepath.EvalSymlinks(got)
	if gotReal != wantReal {
		t.Errorf("root = %q, want %q", gotReal, wantReal)
	}
}

func TestFindRootAbsent(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := FindRoot(dir)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("found a manifest in an empty tree")
	}
}

func TestCombine(t *testing.T) {
	a, b := Sum([]byte("a")), Sum([]byte("b"))
	if Combine(a, b) == Combine(b, a) {
		t.Error("Combine must be order-sensitive")
	}
	if Combine(a) == Combine(a, b) {
		t.Error("Combine must depend on all parts")
	}
}
