// Package repo resolves the repository a bootstrap run operates on: an
// existing local checkout, or a fresh clone of a URL or owner/name shorthand.
package repo

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/agentx-labs/agentboot/internal/errors"
	"github.com/agentx-labs/agentboot/internal/git"
	"github.com/agentx-labs/agentboot/internal/platform"
)

// Target is a resolved working directory.
type Target struct {
	Dir    string // absolute path of the working tree
	Source string // what was cloned; empty for an existing checkout
	Cloned bool
}

// Resolver turns a repository reference into a Target.
type Resolver struct {
	Git *git.Client
	Log *zap.Logger
	Out io.Writer // progress lines; nil discards them

	// ShorthandBase expands owner/name references, e.g. "https://github.com".
	ShorthandBase string
	// Getwd returns the directory clones are placed in; os.Getwd when nil.
	Getwd func() (string, error)
}

// Resolve returns the working directory for ref.
//
// An existing local directory is used as is: combining it with dest is an
// E_CONFIG error, and a directory outside a git working tree is E_NOT_A_REPO.
// Anything else is cloned into dest (or a directory named after ref in the
// current directory); an existing destination is E_ALREADY_EXISTS and a
// failed clone is E_CLONE.
func (r *Resolver) Resolve(ctx context.Context, ref, dest string) (*Target, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New(errors.EUsage, "repository reference is required")
	}

	local := platform.ExpandHome(ref)
	if info, err := os.Stat(local); err == nil && info.IsDir() {
		return r.existing(ctx, local, dest)
	}

	destDir, err := r.destination(ref, dest)
	if err != nil {
		return nil, err
	}
	if _, err := os.Lstat(destDir); err == nil {
		return nil, errors.Newf(errors.EAlreadyExists, "Destination already exists: %s", destDir)
	}

	source := ExpandShorthand(ref, r.ShorthandBase)
	r.log().Debug("cloning target repository", zap.String("source", source), zap.String("dest", destDir))
	if r.Out != nil {
		fmt.Fprintf(r.Out, "Cloning %s into %s...\n", source, destDir)
	}
	if err := r.Git.Clone(ctx, source, destDir, git.CloneOpts{}, errors.EClone); err != nil {
		return nil, err
	}
	return &Target{Dir: destDir, Source: source, Cloned: true}, nil
}

func (r *Resolver) existing(ctx context.Context, dir, dest string) (*Target, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrap(errors.EInternal, "resolving "+dir, err)
	}
	if dest != "" {
		return nil, errors.Newf(errors.EConfig, "--dest cannot be used with an existing local repository (%s)", abs)
	}

	ok, err := r.Git.IsWorkTree(ctx, abs)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Newf(errors.ENotARepo, "Not a git repository: %s", abs)
	}
	return &Target{Dir: abs}, nil
}

func (r *Resolver) destination(ref, dest string) (string, error) {
	if dest != "" {
		abs, err := platform.AbsPath(dest)
		if err != nil {
			return "", errors.Wrap(errors.EConfig, "resolving --dest", err)
		}
		return abs, nil
	}

	name := DestName(ref)
	if name == "" || name == "." || name == ".." {
		return "", errors.Newf(errors.EConfig, "cannot derive a directory name from %q; pass --dest", ref)
	}

	getwd := r.Getwd
	if getwd == nil {
		getwd = os.Getwd
	}
	cwd, err := getwd()
	if err != nil {
		return "", errors.Wrap(errors.EInternal, "getting current directory", err)
	}
	return filepath.Join(cwd, name), nil
}

func (r *Resolver) log() *zap.Logger {
	if r.Log == nil {
		return zap.NewNop()
	}
	return r.Log
}

// DestName derives the clone directory name from a reference: the last path
// segment with trailing slashes and a ".git" suffix removed. scp-style
// references ("git@host:owner/name.git") split on ":" as well.
func DestName(ref string) string {
	ref = strings.TrimRight(strings.TrimSpace(ref), `/\`)
	if i := strings.LastIndexAny(ref, `/\`); i >= 0 {
		ref = ref[i+1:]
	} else if i := strings.LastIndex(ref, ":"); i >= 0 {
		ref = ref[i+1:]
	}
	return strings.TrimSuffix(ref, ".git")
}

// ExpandShorthand turns "owner/name" into "<base>/owner/name.git". URLs,
// scp-style addresses, paths and anything that is not exactly two plain
// segments are returned unchanged, as is every ref when base is empty.
func ExpandShorthand(ref, base string) string {
	if base == "" || !IsShorthand(ref) {
		return ref
	}
	name := strings.TrimSuffix(ref, ".git")
	return strings.TrimRight(base, "/") + "/" + name + ".git"
}

// IsShorthand reports whether ref looks like "owner/name".
func IsShorthand(ref string) bool {
	if strings.ContainsAny(ref, `:\~@ `) || strings.HasPrefix(ref, ".") || strings.HasPrefix(ref, "/") {
		return false
	}
	parts := strings.Split(ref, "/")
	return len(parts) == 2 && parts[0] != "" && parts[1] != "" && parts[0] != ".." && parts[1] != ".."
}
