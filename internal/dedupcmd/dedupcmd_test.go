package dedupcmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/initumX/onlyfind/internal/types"
)

func mustWrite(t *testing.T, path string, content []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestExecuteEndToEnd(t *testing.T) {
	dir := t.TempDir()
	content := []byte("duplicate content shared across three files")
	mustWrite(t, filepath.Join(dir, "a.txt"), content)
	mustWrite(t, filepath.Join(dir, "b.txt"), content)
	mustWrite(t, filepath.Join(dir, "sub", "c.txt"), content)
	mustWrite(t, filepath.Join(dir, "unique.txt"), []byte("nothing else matches this"))

	params := &types.DedupParams{RootDir: dir, Mode: types.ModeNormal, Workers: 2}
	cmd := New()
	groups, stats, err := cmd.Execute(params, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if groups.Len() != 1 {
		t.Fatalf("expected 1 confirmed group, got %d", groups.Len())
	}
	if len(groups.First().Files) != 3 {
		t.Fatalf("expected 3 files in the confirmed group, got %d", len(groups.First().Files))
	}
	if stats.ConfirmedFiles != 3 {
		t.Errorf("expected ConfirmedFiles == 3, got %d", stats.ConfirmedFiles)
	}
	if len(cmd.Files()) != 4 {
		t.Errorf("expected Files() to retain all 4 scanned candidates, got %d", len(cmd.Files()))
	}
}

func TestExecuteNoFilesFound(t *testing.T) {
	dir := t.TempDir()
	params := &types.DedupParams{RootDir: dir, Mode: types.ModeNormal, Workers: 1}
	cmd := New()
	_, _, err := cmd.Execute(params, nil, nil, nil)
	if err == nil {
		t.Fatal("expected ErrNoFilesFound for an empty directory tree")
	}
}

func TestExecuteInvalidParams(t *testing.T) {
	params := &types.DedupParams{RootDir: "", Workers: 1}
	cmd := New()
	_, _, err := cmd.Execute(params, nil, nil, nil)
	if err == nil {
		t.Fatal("expected ErrInvalidParams for an empty root dir")
	}
}
