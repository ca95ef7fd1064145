package template

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/agentx-labs/agentboot/internal/platform"
)

// Overlay copies the tree at src onto dst. Files overwrite files, a
// directory replaces a same-named non-directory and a file or symlink
// replaces a same-named directory. Entries whose name is in exclude are
// skipped at every depth. It returns the sorted top-level names written.
func Overlay(src, dst string, exclude map[string]bool) ([]string, error) {
	if err := os.MkdirAll(dst, 0755); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return nil, err
	}

	var written []string
	for _, entry := range entries {
		if exclude[entry.Name()] {
			continue
		}
		if err := overlayEntry(filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name()), exclude); err != nil {
			return written, err
		}
		written = append(written, entry.Name())
	}
	sort.Strings(written)
	return written, nil
}

func overlayEntry(src, dst string, exclude map[string]bool) error {
	info, err := os.Lstat(src)
	if err != nil {
		return err
	}
	existing, statErr := os.Lstat(dst)
	exists := statErr == nil

	switch {
	case info.IsDir():
		if exists && !existing.IsDir() {
			if err := os.RemoveAll(dst); err != nil {
				return fmt.Errorf("replacing %s with a directory: %w", dst, err)
			}
		}
		if err := os.MkdirAll(dst, info.Mode().Perm()|0700); err != nil {
			return err
		}
		entries, err := os.ReadDir(src)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if exclude[entry.Name()] {
				continue
			}
			if err := overlayEntry(filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name()), exclude); err != nil {
				return err
			}
		}
		return nil

	case info.Mode()&os.ModeSymlink != 0:
		target, err := os.Readlink(src)
		if err != nil {
			return err
		}
		if exists {
			if err := os.RemoveAll(dst); err != nil {
				return fmt.Errorf("replacing %s with a symlink: %w", dst, err)
			}
		}
		return os.Symlink(target, dst)

	case info.Mode().IsRegular():
		if exists && (existing.IsDir() || existing.Mode()&os.ModeSymlink != 0) {
			if err := os.RemoveAll(dst); err != nil {
				return fmt.Errorf("replacing %s with a file: %w", dst, err)
			}
		}
		return copyFile(src, dst)
	}

	// Sockets, devices and pipes are never part of a template.
	return nil
}

// copyFile copies a single file from src to dst, preserving permissions.
// An existing dst is truncated and takes on the source mode.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	srcInfo, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return platform.Chmod(dst, srcInfo.Mode().Perm())
}
