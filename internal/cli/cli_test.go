package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/lwidev/lda/internal/logging"
)

func TestVersionVariables(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if Commit == "" {
		t.Error("Commit should not be empty")
	}
	if BuildDate == "" {
		t.Error("BuildDate should not be empty")
	}
}

func TestConfigureLogging(t *testing.T) {
	tests := map[string]struct {
		args      []string
		wantLevel slog.Level
		wantJSON  bool
	}{
		"no flags keeps warn level": {
			args:      []string{"lda", "version"},
			wantLevel: slog.LevelWarn,
		},
		"verbose flag enables info level": {
			args:      []string{"lda", "--verbose", "version"},
			wantLevel: slog.LevelInfo,
		},
		"debug flag enables debug level": {
			args:      []string{"lda", "--debug", "version"},
			wantLevel: slog.LevelDebug,
		},
		"log-json writes JSON records": {
			args:      []string{"lda", "--debug", "--log-json", "version"},
			wantLevel: slog.LevelDebug,
			wantJSON:  true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			oldStderr := os.Stderr
			r, w, _ := os.Pipe()
			os.Stderr = w

			oldStdout := os.Stdout
			_, stdoutW, _ := os.Pipe()
			os.Stdout = stdoutW

			logging.SetDefault(logging.New(logging.DefaultOptions()))

			err := Run(context.Background(), tt.args)

			_ = w.Close()
			_ = stdoutW.Close()
			os.Stderr = oldStderr
			os.Stdout = oldStdout

			var stderr bytes.Buffer
			_, _ = io.Copy(&stderr, r)

			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			ctx := context.Background()
			logger := logging.Default()
			if !logger.Enabled(ctx, tt.wantLevel) {
				t.Errorf("logger should be enabled for %v", tt.wantLevel)
			}
			if tt.wantLevel > slog.LevelDebug && logger.Enabled(ctx, tt.wantLevel-4) {
				t.Errorf("logger should not be enabled below %v", tt.wantLevel)
			}
			if tt.wantJSON && !strings.Contains(stderr.String(), `"msg":"logging configured"`) {
				t.Errorf("expected JSON log output, got %q", stderr.String())
			}
		})
	}

	logging.SetDefault(logging.New(logging.DefaultOptions()))
}

func TestUnknownCommand(t *testing.T) {
	_, err := runCLI(t, "", "frobnicate")
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), "frobnicate") {
		t.Errorf("error should name the unknown command, got %v", err)
	}
}
