package template

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentx-labs/agentboot/internal/errors"
	"github.com/agentx-labs/agentboot/internal/platform"
)

// FilePair maps a template file to its name in the target repository.
type FilePair struct {
	Source string
	Dest   string
}

// FixedFiles are the files copied in fixed-file mode.
var FixedFiles = []FilePair{
	{Source: "AGENTS_TEMPLATE.md", Dest: "AGENTS.md"},
	{Source: "AGENTS_STRUCTURE.md", Dest: "AGENTS_STRUCTURE.md"},
}

// FixedPaths returns the repository-relative paths written in fixed-file
// mode, in copy order. These are exactly the paths staged for commit.
func FixedPaths() []string {
	paths := make([]string, len(FixedFiles))
	for i, f := range FixedFiles {
		paths[i] = f.Dest
	}
	return paths
}

// CopyResult reports what CopyFixed did per destination path.
type CopyResult struct {
	Copied      []string // written (including overwrites)
	Overwritten []string // existed before with different content
	Skipped     []string // source and destination are the same file
}

// ResolveDir picks the fixed-file template directory: the explicit value
// when set, otherwise the directory of the running executable.
func ResolveDir(explicit string) (string, error) {
	if explicit != "" {
		dir, err := platform.AbsPath(explicit)
		if err != nil {
			return "", errors.Wrap(errors.EConfig, "resolving template directory", err)
		}
		return dir, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", errors.Wrap(errors.EInternal, "locating executable", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// CheckFixed verifies every fixed template file exists in templateDir.
func CheckFixed(templateDir string) error {
	var missing []string
	for _, f := range FixedFiles {
		info, err := os.Stat(filepath.Join(templateDir, f.Source))
		if err != nil || !info.Mode().IsRegular() {
			missing = append(missing, f.Source)
		}
	}
	if len(missing) > 0 {
		return errors.Newf(errors.EMissingTemplate, "Missing %s in %s", strings.Join(missing, " and "), templateDir)
	}
	return nil
}

// CopyFixed copies the fixed template files from templateDir into repoDir,
// overwriting existing destinations. A pair whose source and destination are
// the same file is skipped. Nothing is copied unless every source exists.
func CopyFixed(templateDir, repoDir string) (*CopyResult, error) {
	if err := CheckFixed(templateDir); err != nil {
		return nil, err
	}

	result := &CopyResult{}
	for _, f := range FixedFiles {
		src := filepath.Join(templateDir, f.Source)
		dst := filepath.Join(repoDir, f.Dest)

		if platform.SameFile(src, dst) {
			result.Skipped = append(result.Skipped, f.Dest)
			continue
		}

		data, err := os.ReadFile(src)
		if err != nil {
			return result, errors.Wrap(errors.EInternal, fmt.Sprintf("reading %s", src), err)
		}
		if existing, err := os.ReadFile(dst); err == nil && !bytes.Equal(existing, data) {
			result.Overwritten = append(result.Overwritten, f.Dest)
		}

		if err := copyFile(src, dst); err != nil {
			return result, errors.Wrap(errors.EInternal, fmt.Sprintf("copying %s to %s", f.Source, f.Dest), err)
		}
		result.Copied = append(result.Copied, f.Dest)
	}
	return result, nil
}
