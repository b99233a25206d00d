package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lwidev/lda/internal/sync"
	"github.com/lwidev/lda/internal/util"
)

func TestLineConfirmer(t *testing.T) {
	dir := util.CreateTempDir(t)
	src := filepath.Join(dir, "template.ts")
	dst := filepath.Join(dir, "project.ts")
	util.WriteFile(t, src, "new line\n")
	util.WriteFile(t, dst, "old line\n")
	rec := sync.DriftRecord{SourcePath: src, TargetPath: dst, RelativePath: "src/lib/a.ts"}

	tests := map[string]struct {
		input      string
		want       bool
		wantErr    error
		wantOutput string
	}{
		"yes accepts":           {input: "y\n", want: true},
		"full word accepts":     {input: "YES\n", want: true},
		"no declines":           {input: "n\n", want: false},
		"empty line declines":   {input: "\n", want: false},
		"quit aborts":           {input: "q\n", wantErr: sync.ErrAborted},
		"eof aborts":            {input: "", wantErr: sync.ErrAborted},
		"answer without eol":    {input: "y", want: true},
		"unknown asks again":    {input: "maybe\ny\n", want: true, wantOutput: "Please answer"},
		"diff then accept":      {input: "d\ny\n", want: true, wantOutput: "+ new line"},
		"prompt names the file": {input: "n\n", wantOutput: "Update src/lib/a.ts (changed)"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			lc := NewLineConfirmer(strings.NewReader(tt.input), &out)

			got, err := lc.Confirm(context.Background(), rec)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Confirm() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Confirm() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Confirm() = %v, want %v", got, tt.want)
			}
			if tt.wantOutput != "" && !strings.Contains(out.String(), tt.wantOutput) {
				t.Errorf("output missing %q\ngot: %s", tt.wantOutput, out.String())
			}
		})
	}
}

func TestLineConfirmerCounter(t *testing.T) {
	var out bytes.Buffer
	lc := NewLineConfirmer(strings.NewReader("n\nn\n"), &out)
	lc.SetTotal(2)

	rec := sync.DriftRecord{RelativePath: "src/lib/theme.css", Missing: true}
	for range 2 {
		if _, err := lc.Confirm(context.Background(), rec); err != nil {
			t.Fatalf("Confirm() error = %v", err)
		}
	}

	for _, want := range []string{"[1/2] Update src/lib/theme.css (new)", "[2/2]"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q\ngot: %s", want, out.String())
		}
	}
}

func TestLineConfirmerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	lc := NewLineConfirmer(strings.NewReader("y\n"), &bytes.Buffer{})
	if _, err := lc.Confirm(ctx, sync.DriftRecord{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("Confirm() error = %v, want context.Canceled", err)
	}
}
