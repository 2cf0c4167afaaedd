package logging_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/filedesk/filevault/pkg/logging"
)

func TestFinalize_Defaults(t *testing.T) {
	var cfg logging.Config
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.Level != logging.LevelInfo {
		t.Errorf("Level = %q, want info", cfg.Level)
	}
	if cfg.Format != logging.FormatText {
		t.Errorf("Format = %q, want text", cfg.Format)
	}
}

func TestFinalize_EnvOverride(t *testing.T) {
	t.Setenv(logging.EnvLevel, "debug")
	t.Setenv(logging.EnvFormat, "json")

	cfg := logging.Config{Level: logging.LevelWarn, Format: logging.FormatText}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.Level != logging.LevelDebug {
		t.Errorf("Level = %q, want debug from env", cfg.Level)
	}
	if cfg.Format != logging.FormatJSON {
		t.Errorf("Format = %q, want json from env", cfg.Format)
	}
}

func TestFinalize_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     logging.Config
		wantErr bool
	}{
		{"valid", logging.Config{Level: "error", Format: "json"}, false},
		{"bad level", logging.Config{Level: "verbose"}, true},
		{"bad format", logging.Config{Format: "xml"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize()
			if (err != nil) != tt.wantErr {
				t.Errorf("Finalize() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLogger_LevelGating(t *testing.T) {
	ctx := context.Background()

	cfg := logging.Config{Level: logging.LevelWarn, Format: logging.FormatText}
	logger := cfg.Logger()

	if logger.Enabled(ctx, slog.LevelInfo) {
		t.Error("info enabled at warn level")
	}
	if !logger.Enabled(ctx, slog.LevelError) {
		t.Error("error not enabled at warn level")
	}
}

func TestMerge(t *testing.T) {
	base := logging.Config{Level: logging.LevelInfo, Format: logging.FormatText}
	base.Merge(&logging.Config{Level: logging.LevelDebug})

	if base.Level != logging.LevelDebug {
		t.Errorf("Level = %q, want overlay value", base.Level)
	}
	if base.Format != logging.FormatText {
		t.Errorf("Format = %q, want base value preserved", base.Format)
	}
}
