package template

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/agentx-labs/agentboot/internal/errors"
	"github.com/agentx-labs/agentboot/internal/git"
)

// stagingPattern names the temporary directory a template is cloned into.
const stagingPattern = "agentboot-template-*"

// RemoteOpts controls FromRepository.
type RemoteOpts struct {
	// TempRoot is the parent of the staging directory; os.TempDir() when empty.
	TempRoot string
}

// RemoteResult reports what FromRepository wrote.
type RemoteResult struct {
	Paths    []string  // top-level names written into the repository
	Manifest *Manifest // nil when the template has no manifest
}

// FromRepository clones the template repository at url into a temporary
// staging directory, strips its .git metadata and root manifest and
// overlays the tree onto repoDir. Manifest.Exclude names are skipped at
// every depth. The staging directory is removed on every return path.
func FromRepository(ctx context.Context, g *git.Client, url, repoDir string, opts RemoteOpts) (*RemoteResult, error) {
	staging, err := os.MkdirTemp(opts.TempRoot, stagingPattern)
	if err != nil {
		return nil, errors.Wrap(errors.EInternal, "creating template staging directory", err)
	}
	defer func() {
		if err := os.RemoveAll(staging); err != nil {
			g.Log.Warn("could not remove template staging directory", zap.String("dir", staging), zap.Error(err))
		}
	}()

	checkout := filepath.Join(staging, "template")
	if err := g.Clone(ctx, url, checkout, git.CloneOpts{Depth: 1}, errors.ETemplateClone); err != nil {
		return nil, err
	}
	if err := os.RemoveAll(filepath.Join(checkout, ".git")); err != nil {
		return nil, errors.Wrap(errors.EInternal, "stripping template .git directory", err)
	}

	manifest, err := LoadManifest(checkout)
	if err != nil {
		return nil, err
	}

	if err := os.Remove(filepath.Join(checkout, ManifestFile)); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(errors.EInternal, "stripping template manifest", err)
	}

	exclude := map[string]bool{".git": true}
	if manifest != nil {
		for _, name := range manifest.Exclude {
			exclude[name] = true
		}
	}

	g.Log.Debug("overlaying template", zap.String("from", checkout), zap.String("to", repoDir))
	paths, err := Overlay(checkout, repoDir, exclude)
	if err != nil {
		return nil, errors.Wrap(errors.EInternal, "copying template into "+repoDir, err)
	}

	return &RemoteResult{Paths: paths, Manifest: manifest}, nil
}
