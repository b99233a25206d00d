package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/lwidev/lda/internal/logging"
)

func TestNew_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Options{
		Level:  logging.LevelInfo,
		Output: &buf,
	})

	logger.Info("test message", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("expected output to contain 'test message', got: %s", output)
	}
	if !strings.Contains(output, "key=value") {
		t.Errorf("expected output to contain 'key=value', got: %s", output)
	}
}

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Options{
		Level:  logging.LevelInfo,
		Output: &buf,
		JSON:   true,
	})

	logger.Info("test message", logging.RelPath("src/lib/utils/format.ts"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}

	if entry["msg"] != "test message" {
		t.Errorf("expected msg='test message', got: %v", entry["msg"])
	}
	if entry["rel_path"] != "src/lib/utils/format.ts" {
		t.Errorf("expected rel_path attribute, got: %v", entry["rel_path"])
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Options{
		Level:  logging.LevelWarn,
		Output: &buf,
	})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")

	output := buf.String()
	if strings.Contains(output, "debug message") || strings.Contains(output, "info message") {
		t.Errorf("debug and info should be filtered at warn level, got: %s", output)
	}
	if !strings.Contains(output, "warn message") {
		t.Error("warn message should appear at warn level")
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := logging.DefaultOptions()

	if opts.Level != logging.LevelWarn {
		t.Errorf("expected default level to be Warn, got: %v", opts.Level)
	}
	if opts.JSON {
		t.Error("expected default JSON to be false")
	}
	if opts.AddSource {
		t.Error("expected default AddSource to be false")
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	logging.SetDefault(logging.New(logging.Options{
		Level:  logging.LevelInfo,
		Output: &buf,
	}))

	logging.With("component", "collector").Info("child message")

	if !strings.Contains(buf.String(), "component=collector") {
		t.Errorf("expected output to contain 'component=collector', got: %s", buf.String())
	}
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Options{
		Level:  logging.LevelInfo,
		Output: &buf,
	})

	ctx := logging.NewContext(context.Background(), logger)
	logging.WithContext(ctx).Info("context message")

	if !strings.Contains(buf.String(), "context message") {
		t.Error("expected logger from context to write to buffer")
	}
	if logging.FromContext(context.Background()) != nil {
		t.Error("expected nil logger from empty context")
	}
}

func TestWithContext_FallsBackToDefault(t *testing.T) {
	var buf bytes.Buffer
	logging.SetDefault(logging.New(logging.Options{
		Level:  logging.LevelInfo,
		Output: &buf,
	}))

	logging.WithContext(context.Background()).Info("fallback message")

	if !strings.Contains(buf.String(), "fallback message") {
		t.Error("expected WithContext to fall back to default logger")
	}
}

func TestAttributeHelpers(t *testing.T) {
	tests := []struct {
		name    string
		attr    slog.Attr
		wantKey string
		wantVal string
	}{
		{name: "Path", attr: logging.Path("/work/app/src/lib/theme.css"), wantKey: "path", wantVal: "/work/app/src/lib/theme.css"},
		{name: "RelPath", attr: logging.RelPath("src/lib/theme.css"), wantKey: "rel_path", wantVal: "src/lib/theme.css"},
		{name: "Template", attr: logging.Template("/work/AdminTemplate"), wantKey: "template", wantVal: "/work/AdminTemplate"},
		{name: "Source", attr: logging.Source("remote"), wantKey: "source_kind", wantVal: "remote"},
		{name: "Policy", attr: logging.Policy("interactive"), wantKey: "policy", wantVal: "interactive"},
		{name: "Operation", attr: logging.Operation("sync"), wantKey: "operation", wantVal: "sync"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.attr.Key != tt.wantKey {
				t.Errorf("got key %q, want %q", tt.attr.Key, tt.wantKey)
			}
			if tt.attr.Value.String() != tt.wantVal {
				t.Errorf("got value %q, want %q", tt.attr.Value.String(), tt.wantVal)
			}
		})
	}
}

func TestErr(t *testing.T) {
	if attr := logging.Err(nil); attr.Key != "" {
		t.Errorf("expected empty key for nil error, got: %q", attr.Key)
	}

	var buf bytes.Buffer
	logger := logging.New(logging.Options{Level: logging.LevelInfo, Output: &buf, JSON: true})
	logger.Info("error occurred", logging.Err(errors.New("copy failed")))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}
	if entry["error"] != "copy failed" {
		t.Errorf("expected error field in output, got %v", entry["error"])
	}
}

func TestCount(t *testing.T) {
	attr := logging.Count(42)
	if attr.Key != "count" {
		t.Errorf("expected key 'count', got %q", attr.Key)
	}
	if attr.Value.Int64() != 42 {
		t.Errorf("expected value 42, got %d", attr.Value.Int64())
	}
}

func TestTimer(t *testing.T) {
	var buf bytes.Buffer
	logging.SetDefault(logging.New(logging.Options{
		Level:  logging.LevelDebug,
		Output: &buf,
	}))

	done := logging.Timer("collect")
	done()

	output := buf.String()
	if !strings.Contains(output, "operation=collect") {
		t.Errorf("expected operation attribute, got: %s", output)
	}
	if !strings.Contains(output, "duration=") {
		t.Errorf("expected duration attribute, got: %s", output)
	}
}

func TestNew_AddSource(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Options{
		Level:     logging.LevelInfo,
		Output:    &buf,
		AddSource: true,
	})

	logger.Info("test with source")

	if !strings.Contains(buf.String(), "source=") {
		t.Errorf("expected output to contain source info, got: %s", buf.String())
	}
}

func TestPackageLevelLogging(t *testing.T) {
	var buf bytes.Buffer
	logging.SetDefault(logging.New(logging.Options{
		Level:  logging.LevelDebug,
		Output: &buf,
	}))

	logging.Debug("debug message")
	logging.Info("info message")
	logging.Warn("warn message")
	logging.Error("error message")

	output := buf.String()
	for _, want := range []string{"debug message", "info message", "warn message", "error message"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}
