package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/lwidev/lda/internal/util"
)

// runCLI runs the application with stdout captured and optional stdin input.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	oldStdout, oldStdin := os.Stdout, os.Stdin
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	inR, inW, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdin = inR
	go func() {
		_, _ = io.WriteString(inW, stdin)
		_ = inW.Close()
	}()

	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		_, _ = io.Copy(&buf, r)
		close(done)
	}()

	runErr := Run(context.Background(), append([]string{"lda", "--no-color"}, args...))

	_ = w.Close()
	<-done
	os.Stdout, os.Stdin = oldStdout, oldStdin
	_ = inR.Close()

	return buf.String(), runErr
}

// workspaceFixture creates a template and a project next to each other and
// points the CLI at the template.
type workspaceFixture struct {
	template string
	project  string
}

func newWorkspaceFixture(t *testing.T) workspaceFixture {
	t.Helper()

	root := util.CreateTempDir(t)
	f := workspaceFixture{
		template: filepath.Join(root, "AdminTemplate"),
		project:  filepath.Join(root, "app"),
	}

	util.WriteFile(t, filepath.Join(f.template, "src/lib/utils/format.ts"), "export const v = 2;\n")
	util.WriteFile(t, filepath.Join(f.template, "src/lib/stores/user.ts"), "export const user = 1;\n")
	util.WriteFile(t, filepath.Join(f.template, "src/lib/theme.css"), ":root {}\n")
	util.WriteFile(t, filepath.Join(f.template, "src/lib/server/db.ts"), "template only\n")

	util.WriteFile(t, filepath.Join(f.project, "src/lib/utils/format.ts"), "export const v = 1;\n")
	util.WriteFile(t, filepath.Join(f.project, "src/lib/stores/user.ts"), "export const user = 1;\n")
	util.WriteFile(t, filepath.Join(f.project, "src/routes/+page.svelte"), "<h1>app</h1>\n")

	t.Setenv("LDA_TEMPLATE_PATH", f.template)
	t.Setenv("GITHUB_TOKEN", "")

	return f
}

func (f workspaceFixture) path(rel string) string {
	return filepath.Join(f.project, filepath.FromSlash(rel))
}
