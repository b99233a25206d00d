package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/lwidev/lda/internal/util"
)

func TestDefaultPatterns(t *testing.T) {
	p := DefaultPatterns()

	if len(p.Include) != 5 {
		t.Errorf("expected 5 default include paths, got %d", len(p.Include))
	}
	if len(p.Exclude) != 3 {
		t.Errorf("expected 3 default exclude paths, got %d", len(p.Exclude))
	}
	if p.Include[4] != "src/lib/theme.css" {
		t.Errorf("expected theme stylesheet last, got %q", p.Include[4])
	}
}

func TestPatternSet_Excludes(t *testing.T) {
	p := PatternSet{Exclude: []string{"src/lib/models", "admin", ""}}

	tests := map[string]struct {
		rel  string
		want bool
	}{
		"prefix match":             {rel: "src/lib/models/user.ts", want: true},
		"exact match":              {rel: "src/lib/models", want: true},
		"substring anywhere":       {rel: "src/lib/components/ui/admin-badge.svelte", want: true},
		"unrelated":                {rel: "src/lib/utils/format.ts", want: false},
		"empty pattern is ignored": {rel: "src/lib/stores/auth.ts", want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := p.Excludes(tt.rel); got != tt.want {
				t.Errorf("Excludes(%q) = %v, want %v", tt.rel, got, tt.want)
			}
		})
	}
}

func TestPatternSet_Clone(t *testing.T) {
	orig := DefaultPatterns()
	clone := orig.Clone()
	clone.Include[0] = "changed"

	if orig.Include[0] == "changed" {
		t.Error("Clone() shares backing arrays with the original")
	}
}

func TestLoadPatterns(t *testing.T) {
	tests := map[string]struct {
		content   *string
		want      PatternSet
		wantError bool
	}{
		"missing file uses defaults": {
			content: nil,
			want:    DefaultPatterns(),
		},
		"custom patterns": {
			content: strPtr(`{"sync": {"include": ["src/lib/utils"], "exclude": ["legacy"]}}`),
			want:    PatternSet{Include: []string{"src/lib/utils"}, Exclude: []string{"legacy"}},
		},
		"no sync key uses defaults": {
			content: strPtr(`{"theme": "blue"}`),
			want:    DefaultPatterns(),
		},
		"null document uses defaults": {
			content: strPtr(`null`),
			want:    DefaultPatterns(),
		},
		"sync without exclude keeps exclude empty": {
			content: strPtr(`{"sync": {"include": ["src/lib/stores"]}}`),
			want:    PatternSet{Include: []string{"src/lib/stores"}},
		},
		"malformed json falls back with error": {
			content:   strPtr(`{"sync": {"include": [`),
			want:      DefaultPatterns(),
			wantError: true,
		},
		"escaping pattern falls back with error": {
			content:   strPtr(`{"sync": {"include": ["../AdminTemplate/src"], "exclude": []}}`),
			want:      DefaultPatterns(),
			wantError: true,
		},
		"slash-delimited exclude token is kept": {
			content: strPtr(`{"sync": {"include": ["src/lib/utils"], "exclude": ["/admin/"]}}`),
			want:    PatternSet{Include: []string{"src/lib/utils"}, Exclude: []string{"/admin/"}},
		},
		"wrong shape falls back with error": {
			content:   strPtr(`{"sync": {"include": "src/lib/utils"}}`),
			want:      DefaultPatterns(),
			wantError: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.content != nil {
				util.WriteFile(t, filepath.Join(dir, ".ldarc"), *tt.content)
			}

			got, err := LoadPatterns(dir)
			if (err != nil) != tt.wantError {
				t.Fatalf("LoadPatterns() error = %v, wantError %v", err, tt.wantError)
			}
			if err != nil && !errors.Is(err, ErrMalformedProjectConfig) {
				t.Errorf("expected ErrMalformedProjectConfig, got %v", err)
			}
			if !reflect.DeepEqual(normalize(got), normalize(tt.want)) {
				t.Errorf("LoadPatterns() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestWriteDefaultPatterns(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteDefaultPatterns(dir)
	util.AssertNoError(t, err)

	loaded, err := LoadPatterns(dir)
	util.AssertNoError(t, err)
	if !reflect.DeepEqual(loaded, DefaultPatterns()) {
		t.Errorf("written patterns = %+v, want defaults", loaded)
	}

	if _, err := WriteDefaultPatterns(dir); err == nil {
		t.Error("expected an error when .ldarc already exists")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected %s to exist: %v", path, err)
	}
}

func strPtr(s string) *string { return &s }

// normalize treats nil and empty slices alike.
func normalize(p PatternSet) PatternSet {
	if p.Include == nil {
		p.Include = []string{}
	}
	if p.Exclude == nil {
		p.Exclude = []string{}
	}
	return p
}

func TestDefaultPatternsValidate(t *testing.T) {
	result := DefaultPatterns().Validate()
	if !result.Valid || len(result.Warnings) != 0 {
		t.Errorf("default patterns should validate cleanly: %s %v %v", result.Summary(), result.Errors, result.Warnings)
	}
}
