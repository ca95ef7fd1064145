package template

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOverlay(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "AGENTS.md"), "template agents\n")
	writeFile(t, filepath.Join(src, ".agents", "prompts", "review.md"), "review\n")
	writeFile(t, filepath.Join(src, ".git", "HEAD"), "ref: refs/heads/main\n")

	dst := t.TempDir()
	writeFile(t, filepath.Join(dst, "AGENTS.md"), "old\n")
	writeFile(t, filepath.Join(dst, "README.md"), "keep me\n")

	written, err := Overlay(src, dst, map[string]bool{".git": true})
	if err != nil {
		t.Fatalf("Overlay: %v", err)
	}

	if diff := cmp.Diff([]string{".agents", "AGENTS.md"}, written); diff != "" {
		t.Errorf("written mismatch (-want +got):\n%s", diff)
	}
	if got := readFile(t, filepath.Join(dst, "AGENTS.md")); got != "template agents\n" {
		t.Errorf("AGENTS.md = %q, want overwritten", got)
	}
	if got := readFile(t, filepath.Join(dst, ".agents", "prompts", "review.md")); got != "review\n" {
		t.Errorf("nested file = %q", got)
	}
	if got := readFile(t, filepath.Join(dst, "README.md")); got != "keep me\n" {
		t.Errorf("unrelated file changed: %q", got)
	}
	if _, err := os.Stat(filepath.Join(dst, ".git")); err == nil {
		t.Error(".git should not be copied")
	}
}

func TestOverlay_DirectoryReplacesFile(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "docs", "agents.md"), "docs\n")

	dst := t.TempDir()
	writeFile(t, filepath.Join(dst, "docs"), "i am a file\n")

	if _, err := Overlay(src, dst, nil); err != nil {
		t.Fatalf("Overlay: %v", err)
	}
	info, err := os.Stat(filepath.Join(dst, "docs"))
	if err != nil {
		t.Fatal(err)
	}
	if !info.IsDir() {
		t.Fatal("docs should now be a directory")
	}
	if got := readFile(t, filepath.Join(dst, "docs", "agents.md")); got != "docs\n" {
		t.Errorf("docs/agents.md = %q", got)
	}
}

func TestOverlay_FileReplacesDirectory(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "CLAUDE.md"), "file\n")

	dst := t.TempDir()
	writeFile(t, filepath.Join(dst, "CLAUDE.md", "nested.md"), "dir content\n")

	if _, err := Overlay(src, dst, nil); err != nil {
		t.Fatalf("Overlay: %v", err)
	}
	if got := readFile(t, filepath.Join(dst, "CLAUDE.md")); got != "file\n" {
		t.Errorf("CLAUDE.md = %q, want file content", got)
	}
}

func TestOverlay_PreservesExecutableBit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("execute bits are not meaningful on Windows")
	}
	src := t.TempDir()
	script := filepath.Join(src, ".agents", "init.sh")
	writeFile(t, script, "#!/bin/sh\nexit 0\n")
	if err := os.Chmod(script, 0755); err != nil {
		t.Fatal(err)
	}

	dst := t.TempDir()
	writeFile(t, filepath.Join(dst, ".agents", "init.sh"), "old\n")

	if _, err := Overlay(src, dst, nil); err != nil {
		t.Fatalf("Overlay: %v", err)
	}
	info, err := os.Stat(filepath.Join(dst, ".agents", "init.sh"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0100 == 0 {
		t.Errorf("mode = %v, want executable", info.Mode())
	}
}

func TestOverlay_Symlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need developer mode on Windows")
	}
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "AGENTS.md"), "agents\n")
	if err := os.Symlink("AGENTS.md", filepath.Join(src, "CLAUDE.md")); err != nil {
		t.Fatal(err)
	}

	dst := t.TempDir()
	writeFile(t, filepath.Join(dst, "CLAUDE.md"), "old claude\n")

	if _, err := Overlay(src, dst, nil); err != nil {
		t.Fatalf("Overlay: %v", err)
	}
	target, err := os.Readlink(filepath.Join(dst, "CLAUDE.md"))
	if err != nil {
		t.Fatalf("CLAUDE.md should be a symlink: %v", err)
	}
	if target != "AGENTS.md" {
		t.Errorf("symlink target = %q", target)
	}
}

func TestOverlay_ExcludeAtDepth(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "sub", ".DS_Store"), "")
	writeFile(t, filepath.Join(src, "sub", "keep.md"), "keep\n")

	dst := t.TempDir()
	if _, err := Overlay(src, dst, map[string]bool{".DS_Store": true}); err != nil {
		t.Fatalf("Overlay: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "sub", ".DS_Store")); err == nil {
		t.Error("excluded name should be skipped in subdirectories")
	}
	if _, err := os.Stat(filepath.Join(dst, "sub", "keep.md")); err != nil {
		t.Error("keep.md should be copied")
	}
}
