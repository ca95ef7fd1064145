package platform

import (
	"os"
	"runtime"
)

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// IsExecutable reports whether info describes a regular file with any
// execute bit set. On Windows every regular file counts as not executable,
// so scripts are always run through an interpreter there.
func IsExecutable(info os.FileInfo) bool {
	if runtime.GOOS == "windows" {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0111 != 0
}
