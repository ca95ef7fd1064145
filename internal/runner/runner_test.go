package runner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExecRunner_ExitCode(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		expectCode int
	}{
		{"exit 0", []string{"-c", "exit 0"}, 0},
		{"exit 1", []string{"-c", "exit 1"}, 1},
		{"exit 42", []string{"-c", "exit 42"}, 42},
	}

	r := New(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := r.Run(context.Background(), "sh", tt.args, RunOpts{})
			if err != nil {
				t.Fatalf("Run returned error: %v", err)
			}
			if result.ExitCode != tt.expectCode {
				t.Errorf("exit code = %d, want %d", result.ExitCode, tt.expectCode)
			}
		})
	}
}

func TestExecRunner_CapturesAndStreams(t *testing.T) {
	var streamed bytes.Buffer
	r := New(nil)
	result, err := r.Run(context.Background(), "sh", []string{"-c", "echo out; echo err >&2"}, RunOpts{
		Stdout: &streamed,
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(result.Stdout, "out") {
		t.Errorf("stdout = %q, want to contain 'out'", result.Stdout)
	}
	if !strings.Contains(result.Stderr, "err") {
		t.Errorf("stderr = %q, want to contain 'err'", result.Stderr)
	}
	if !strings.Contains(streamed.String(), "out") {
		t.Errorf("streamed stdout = %q, want to contain 'out'", streamed.String())
	}
}

func TestExecRunner_Stdin(t *testing.T) {
	r := New(nil)
	result, err := r.Run(context.Background(), "cat", nil, RunOpts{Stdin: strings.NewReader("hello prompt")})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.Stdout != "hello prompt" {
		t.Errorf("stdout = %q, want %q", result.Stdout, "hello prompt")
	}
}

func TestExecRunner_DirAndEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "marker"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	r := New(nil)
	result, err := r.Run(context.Background(), "sh", []string{"-c", "ls; echo $AGENTBOOT_TEST_VAR"}, RunOpts{
		Dir: dir,
		Env: map[string]string{"AGENTBOOT_TEST_VAR": "set"},
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(result.Stdout, "marker") {
		t.Errorf("stdout = %q, want directory listing with 'marker'", result.Stdout)
	}
	if !strings.Contains(result.Stdout, "set") {
		t.Errorf("stdout = %q, want env var value", result.Stdout)
	}
}

func TestExecRunner_StartFailure(t *testing.T) {
	r := New(nil)
	if _, err := r.Run(context.Background(), "no_such_command_agentboot_123", nil, RunOpts{}); err == nil {
		t.Error("Run with a missing binary should return an error")
	}
}

func TestCommandLine(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"git", []string{"push", "-u", "origin", "main"}, "git push -u origin main"},
		{"git", []string{"commit", "-m", "Add agent bootstrap files"}, "git commit -m 'Add agent bootstrap files'"},
		{"codex", []string{"exec", "-"}, "codex exec -"},
	}
	for _, tt := range tests {
		if got := CommandLine(tt.name, tt.args); got != tt.want {
			t.Errorf("CommandLine(%q, %v) = %q, want %q", tt.name, tt.args, got, tt.want)
		}
	}
}
