package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func newEnvFlags() (*pflag.FlagSet, *string, *int64) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	level := flags.String("log-level", "info", "")
	seed := flags.Int64("seed", 0, "")
	return flags, level, seed
}

func writeDotEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func TestApplyEnvFile(t *testing.T) {
	tests := []struct {
		name    string
		dotenv  string // empty means no file
		wantErr bool
	}{
		{"missing file", "", false},
		{"comments only", "# nothing here\n", false},
		{"malformed key", "BAD-KEY=1\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ".env")
			if tt.dotenv != "" {
				path = writeDotEnv(t, tt.dotenv)
			}

			flags, _, _ := newEnvFlags()
			err := applyEnvFile(flags, path)
			if (err != nil) != tt.wantErr {
				t.Errorf("applyEnvFile() error = %v, expected error: %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyEnvFileFillsUnsetFlags(t *testing.T) {
	t.Setenv("TAPSY_LOG_LEVEL", "debug")
	t.Setenv("TAPSY_SEED", "42")

	flags, level, seed := newEnvFlags()
	if err := flags.Parse([]string{"--seed", "7"}); err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if err := applyEnvFile(flags, filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("applyEnvFile() failed: %v", err)
	}

	if *level != "debug" {
		t.Errorf("log-level = %q, expected debug from the environment", *level)
	}
	if *seed != 7 {
		t.Errorf("seed = %d, expected the command-line 7", *seed)
	}
}

func TestApplyEnvFileRejectsBadValue(t *testing.T) {
	t.Setenv("TAPSY_SEED", "soon")

	flags, _, _ := newEnvFlags()
	if err := applyEnvFile(flags, filepath.Join(t.TempDir(), ".env")); err == nil {
		t.Error("applyEnvFile() accepted a non-numeric TAPSY_SEED")
	}
}
