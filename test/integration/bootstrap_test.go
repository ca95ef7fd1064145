//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentx-labs/agentboot/internal/bootstrap"
	"github.com/agentx-labs/agentboot/internal/errors"
	"github.com/agentx-labs/agentboot/internal/prompt"
	"github.com/agentx-labs/agentboot/internal/runner"
	"github.com/agentx-labs/agentboot/internal/template"
)

func newBootstrapper(answers prompt.Confirmer, cwd string, out *bytes.Buffer) *bootstrap.Bootstrapper {
	return &bootstrap.Bootstrapper{
		Runner:        runner.New(nil),
		Confirm:       answers,
		Out:           out,
		ErrOut:        out,
		ShorthandBase: "https://github.com",
		Getwd:         func() (string, error) { return cwd, nil },
	}
}

func TestBootstrapNonGitDirectory(t *testing.T) {
	requireGit(t)
	isolateGit(t)
	plain := t.TempDir()
	var out bytes.Buffer

	_, err := newBootstrapper(&prompt.Scripted{}, t.TempDir(), &out).Run(context.Background(), bootstrap.Options{
		Repo:        plain,
		TemplateDir: templateDir(t),
	})
	if got := errors.ExitCode(err); got != 1 {
		t.Fatalf("ExitCode = %d, want 1 (err = %v)", got, err)
	}
	if !strings.Contains(err.Error(), "Not a git repository") {
		t.Errorf("error = %q", err)
	}
	entries, _ := os.ReadDir(plain)
	if len(entries) != 0 {
		t.Errorf("no files should be written, found %d", len(entries))
	}
}

func TestBootstrapExistingCheckoutIsIdempotent(t *testing.T) {
	requireGit(t)
	isolateGit(t)
	repoDir := filepath.Join(t.TempDir(), "project")
	initRepo(t, repoDir, map[string]string{"README.md": "# project\n"})
	tmpl := templateDir(t)

	for i := 0; i < 2; i++ {
		var out bytes.Buffer
		_, err := newBootstrapper(prompt.Defaults{}, t.TempDir(), &out).Run(context.Background(), bootstrap.Options{
			Repo:        repoDir,
			TemplateDir: tmpl,
		})
		if err != nil {
			t.Fatalf("run %d: %v\n%s", i+1, err, out.String())
		}
	}

	assertFileContent(t, filepath.Join(repoDir, "AGENTS.md"), "# AGENTS\n")
	assertFileContent(t, filepath.Join(repoDir, "AGENTS_STRUCTURE.md"), "# Structure\n")
	if got := git(t, repoDir, "rev-list", "--count", "HEAD"); got != "1" {
		t.Errorf("declining the commit must not create commits, count = %s", got)
	}
}

func TestBootstrapCloneCommitAndPush(t *testing.T) {
	requireGit(t)
	isolateGit(t)
	url, bare := bareRemote(t)
	cwd := t.TempDir()
	var out bytes.Buffer

	answers := &prompt.Scripted{
		Confirms: []bool{true, true, true},
		Answers:  []string{"feature-x", ""},
	}
	res, err := newBootstrapper(answers, cwd, &out).Run(context.Background(), bootstrap.Options{
		Repo:          url,
		TemplateDir:   templateDir(t),
		CommitMessage: "Add agent bootstrap files",
	})
	if err != nil {
		t.Fatalf("Run: %v\n%s", err, out.String())
	}

	want := filepath.Join(cwd, "project")
	if res.Target.Dir != want || !res.Target.Cloned {
		t.Errorf("target = %+v, want cloned into %s", res.Target, want)
	}
	if got := git(t, want, "branch", "--show-current"); got != "feature-x" {
		t.Errorf("branch = %q", got)
	}
	if got := git(t, want, "log", "-1", "--format=%s"); got != "Add agent bootstrap files" {
		t.Errorf("commit subject = %q", got)
	}
	if got := git(t, want, "show", "--name-only", "--format=", "HEAD"); got != "AGENTS.md\nAGENTS_STRUCTURE.md" {
		t.Errorf("committed files = %q", got)
	}
	if got := git(t, bare, "log", "-1", "--format=%s", "feature-x"); got != "Add agent bootstrap files" {
		t.Errorf("remote feature-x head = %q", got)
	}
	if got := git(t, want, "rev-parse", "--abbrev-ref", "feature-x@{upstream}"); got != "origin/feature-x" {
		t.Errorf("upstream = %q", got)
	}
}

func TestBootstrapDestinationExists(t *testing.T) {
	requireGit(t)
	isolateGit(t)
	url, _ := bareRemote(t)
	cwd := t.TempDir()
	if err := os.Mkdir(filepath.Join(cwd, "project"), 0755); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer

	_, err := newBootstrapper(&prompt.Scripted{}, cwd, &out).Run(context.Background(), bootstrap.Options{
		Repo:        url,
		TemplateDir: templateDir(t),
	})
	if got := errors.GetCode(err); got != errors.EAlreadyExists {
		t.Fatalf("code = %q, want %q", got, errors.EAlreadyExists)
	}
}

func TestBootstrapTemplateRepository(t *testing.T) {
	requireGit(t)
	isolateGit(t)
	repoDir := filepath.Join(t.TempDir(), "project")
	initRepo(t, repoDir, map[string]string{"README.md": "# project\n"})

	tmplRepo := filepath.Join(t.TempDir(), "agent-template")
	initRepo(t, tmplRepo, map[string]string{
		"AGENTS.md":           "# Team agents\n",
		".agents/init.sh":     "touch .agents/initialized\n",
		"NOTES.txt":           "template only\n",
		template.ManifestFile: "name: team\nexclude: [NOTES.txt]\ncommit_message: Seed agent config\n",
	})

	tempRoot := t.TempDir()
	var out bytes.Buffer
	b := newBootstrapper(&prompt.Scripted{Confirms: []bool{false, true, false}}, t.TempDir(), &out)
	b.TempRoot = tempRoot

	_, err := b.Run(context.Background(), bootstrap.Options{
		Repo:         repoDir,
		TemplateRepo: "file://" + filepath.ToSlash(tmplRepo),
		InitScript:   ".agents/init.sh",
	})
	if err != nil {
		t.Fatalf("Run: %v\n%s", err, out.String())
	}

	assertFileContent(t, filepath.Join(repoDir, "AGENTS.md"), "# Team agents\n")
	assertFileContent(t, filepath.Join(repoDir, ".agents", "initialized"), "")
	assertNotExists(t, filepath.Join(repoDir, "NOTES.txt"))
	assertNotExists(t, filepath.Join(repoDir, template.ManifestFile))
	if got := git(t, repoDir, "log", "-1", "--format=%s"); got != "Seed agent config" {
		t.Errorf("commit subject = %q", got)
	}
	if entries, _ := os.ReadDir(tempRoot); len(entries) != 0 {
		t.Errorf("staging directory left behind")
	}
}

func TestBootstrapTemplateCloneFailure(t *testing.T) {
	requireGit(t)
	isolateGit(t)
	repoDir := filepath.Join(t.TempDir(), "project")
	initRepo(t, repoDir, map[string]string{"README.md": "# project\n"})
	tempRoot := t.TempDir()
	var out bytes.Buffer
	b := newBootstrapper(&prompt.Scripted{}, t.TempDir(), &out)
	b.TempRoot = tempRoot

	_, err := b.Run(context.Background(), bootstrap.Options{
		Repo:         repoDir,
		TemplateRepo: "file://" + filepath.ToSlash(filepath.Join(t.TempDir(), "missing.git")),
	})
	if got := errors.GetCode(err); got != errors.ETemplateClone {
		t.Fatalf("code = %q, want %q", got, errors.ETemplateClone)
	}
	if errors.ExitCode(err) == 0 {
		t.Error("exit code must be non-zero")
	}
	if entries, _ := os.ReadDir(tempRoot); len(entries) != 0 {
		t.Errorf("staging directory left behind")
	}
}
