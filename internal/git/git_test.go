package git

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/lwidev/lda/internal/logging"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

// initRepo creates a local repo with one commit per file on the given branch.
func initRepo(t *testing.T, dir, branch string, files map[string]string) {
	t.Helper()
	cmds := [][]string{
		{"git", "init", "-q", "-b", branch, dir},
		{"git", "-C", dir, "config", "user.email", "test@test.com"},
		{"git", "-C", dir, "config", "user.name", "Test"},
	}
	for _, args := range cmds {
		if out, err := exec.Command(args[0], args[1:]...).CombinedOutput(); err != nil {
			t.Fatalf("%v: %s", err, out)
		}
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	for _, args := range [][]string{
		{"git", "-C", dir, "add", "-A"},
		{"git", "-C", dir, "commit", "-q", "-m", "initial"},
	} {
		if out, err := exec.Command(args[0], args[1:]...).CombinedOutput(); err != nil {
			t.Fatalf("%v: %s", err, out)
		}
	}
}

func fileURL(dir string) string {
	return "file://" + filepath.ToSlash(dir)
}

func TestShallowClone(t *testing.T) {
	requireGit(t)
	ctx := context.Background()

	remote := t.TempDir()
	initRepo(t, remote, "main", map[string]string{
		"src/lib/utils/format.ts": "export const x = 1;\n",
	})

	dest := filepath.Join(t.TempDir(), "checkout")
	commit, err := NewShellClient().ShallowClone(ctx, CloneOptions{URL: fileURL(remote), Dest: dest})
	if err != nil {
		t.Fatalf("ShallowClone() error = %v", err)
	}
	if len(commit) < 7 {
		t.Errorf("expected a commit hash, got %q", commit)
	}

	got, err := os.ReadFile(filepath.Join(dest, "src", "lib", "utils", "format.ts"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "export const x = 1;\n" {
		t.Errorf("unexpected content %q", got)
	}
}

func TestShallowClone_IntoExistingEmptyDir(t *testing.T) {
	requireGit(t)

	remote := t.TempDir()
	initRepo(t, remote, "main", map[string]string{"a.txt": "a"})

	dest := t.TempDir()
	if _, err := NewShellClient().ShallowClone(context.Background(), CloneOptions{URL: fileURL(remote), Dest: dest}); err != nil {
		t.Fatalf("ShallowClone() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "a.txt")); err != nil {
		t.Errorf("expected a.txt in checkout: %v", err)
	}
}

func TestShallowClone_Branch(t *testing.T) {
	requireGit(t)

	remote := t.TempDir()
	initRepo(t, remote, "release", map[string]string{"version.txt": "2\n"})

	dest := filepath.Join(t.TempDir(), "checkout")
	_, err := NewShellClient().ShallowClone(context.Background(), CloneOptions{
		URL:  fileURL(remote),
		Ref:  "release",
		Dest: dest,
	})
	if err != nil {
		t.Fatalf("ShallowClone() error = %v", err)
	}

	_, err = NewShellClient().ShallowClone(context.Background(), CloneOptions{
		URL:  fileURL(remote),
		Ref:  "does-not-exist",
		Dest: filepath.Join(t.TempDir(), "other"),
	})
	if err == nil {
		t.Error("expected an error for an unknown ref")
	}
}

func TestShallowClone_Errors(t *testing.T) {
	requireGit(t)
	client := NewShellClient()
	ctx := context.Background()

	tests := map[string]CloneOptions{
		"missing url":  {Dest: t.TempDir()},
		"missing dest": {URL: "file:///nowhere"},
		"unknown repo": {URL: fileURL(filepath.Join(t.TempDir(), "missing")), Dest: filepath.Join(t.TempDir(), "x")},
	}

	for name, opts := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := client.ShallowClone(ctx, opts); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestShallowClone_Cancelled(t *testing.T) {
	requireGit(t)

	remote := t.TempDir()
	initRepo(t, remote, "main", map[string]string{"a.txt": "a"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewShellClient().ShallowClone(ctx, CloneOptions{URL: fileURL(remote), Dest: filepath.Join(t.TempDir(), "c")}); err == nil {
		t.Error("expected an error for a cancelled context")
	}
}

func TestConfigureAuth(t *testing.T) {
	tests := map[string]struct {
		url        string
		token      string
		wantHelper bool
	}{
		"https with token":    {url: "https://github.com/LwiDev/AdminTemplate", token: "secret", wantHelper: true},
		"https without token": {url: "https://github.com/LwiDev/AdminTemplate"},
		"file with token":     {url: "file:///tmp/repo", token: "secret"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cmd := exec.Command("git", "clone", tt.url, "dest")
			NewShellClient().configureAuth(cmd, tt.url, tt.token)

			if !slices.Contains(cmd.Env, "GIT_TERMINAL_PROMPT=0") {
				t.Error("expected terminal prompts to be disabled")
			}

			hasHelper := slices.ContainsFunc(cmd.Args, func(a string) bool {
				return strings.HasPrefix(a, "credential.helper=")
			})
			if hasHelper != tt.wantHelper {
				t.Errorf("credential helper present = %v, want %v (args %v)", hasHelper, tt.wantHelper, cmd.Args)
			}
			if tt.wantHelper && cmd.Args[1] != "-c" {
				t.Errorf("expected -c right after git, got %v", cmd.Args)
			}

			for _, a := range cmd.Args {
				if tt.token != "" && strings.Contains(a, tt.token) {
					t.Errorf("token leaked into argv: %v", cmd.Args)
				}
			}
			if tt.wantHelper && !slices.Contains(cmd.Env, tokenEnv+"="+tt.token) {
				t.Error("expected token in environment")
			}
		})
	}
}

func TestInsertGitFlags(t *testing.T) {
	got := insertGitFlags([]string{"git", "clone", "url"}, "-c", "x=y")
	want := []string{"git", "-c", "x=y", "clone", "url"}
	if !slices.Equal(got, want) {
		t.Errorf("insertGitFlags() = %v, want %v", got, want)
	}
	if got := insertGitFlags(nil, "-c"); !slices.Equal(got, []string{"-c"}) {
		t.Errorf("insertGitFlags(nil) = %v", got)
	}
}

func TestShallowClone_LogsWithComponent(t *testing.T) {
	requireGit(t)

	var buf bytes.Buffer
	logging.SetDefault(logging.New(logging.Options{Level: logging.LevelDebug, Output: &buf}))
	t.Cleanup(func() { logging.SetDefault(logging.New(logging.DefaultOptions())) })

	remote := t.TempDir()
	initRepo(t, remote, "main", map[string]string{"README.md": "template\n"})

	dest := filepath.Join(t.TempDir(), "checkout")
	commit, err := NewShellClient().ShallowClone(context.Background(), CloneOptions{
		URL:   fileURL(remote),
		Dest:  dest,
		Token: "secret-token",
	})
	if err != nil {
		t.Fatalf("ShallowClone() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"component=git", "cloning template", "commit=" + commit} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "secret-token") {
		t.Errorf("token leaked into logs:\n%s", out)
	}
}
