package main

// Notes:
// - configureMaxProcs: not tested beyond runMain; it only forwards to maxprocs.Set.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mathjax "github.com/alnah/mdbook-inline-mathjax"
	"github.com/alnah/mdbook-inline-mathjax/internal/config"
)

// ---------------------------------------------------------------------------
// TestResolveSettings - Source priority
// ---------------------------------------------------------------------------

func TestResolveSettings(t *testing.T) {
	t.Parallel()

	fileCfg := &config.Config{
		Markers:  config.MarkersConfig{Open: "[file", Close: "file]"},
		Workers:  2,
		Warnings: config.WarningsConfig{Code: true},
	}

	tests := []struct {
		name  string
		cfg   *config.Config
		book  mathjax.Settings
		env   *envConfig
		flags *preprocessFlags
		want  runSettings
	}{
		{
			name:  "defaults",
			cfg:   config.DefaultConfig(),
			env:   &envConfig{},
			flags: &preprocessFlags{},
			want:  runSettings{markers: mathjax.DefaultMarkers},
		},
		{
			name:  "config file only",
			cfg:   fileCfg,
			env:   &envConfig{},
			flags: &preprocessFlags{},
			want: runSettings{
				markers:  mathjax.Markers{Open: "[file", Close: "file]"},
				workers:  2,
				warnCode: true,
			},
		},
		{
			name:  "book.toml overrides config file per field",
			cfg:   fileCfg,
			book:  mathjax.Settings{Markers: mathjax.Markers{Open: "[book"}, Workers: 3},
			env:   &envConfig{},
			flags: &preprocessFlags{},
			want: runSettings{
				markers:  mathjax.Markers{Open: "[book", Close: "file]"},
				workers:  3,
				warnCode: true,
			},
		},
		{
			name:  "env overrides book.toml workers",
			cfg:   fileCfg,
			book:  mathjax.Settings{Workers: 3},
			env:   &envConfig{Workers: 5},
			flags: &preprocessFlags{},
			want: runSettings{
				markers:  mathjax.Markers{Open: "[file", Close: "file]"},
				workers:  5,
				warnCode: true,
			},
		},
		{
			name:  "flags override everything",
			cfg:   fileCfg,
			book:  mathjax.Settings{Workers: 3},
			env:   &envConfig{Workers: 5},
			flags: &preprocessFlags{workers: 7, warnings: true},
			want: runSettings{
				markers:      mathjax.Markers{Open: "[file", Close: "file]"},
				workers:      7,
				warnUnpaired: true,
				warnCode:     true,
			},
		},
		{
			name:  "one marker set keeps the other default",
			cfg:   config.DefaultConfig(),
			book:  mathjax.Settings{Markers: mathjax.Markers{Close: "]"}},
			env:   &envConfig{},
			flags: &preprocessFlags{},
			want:  runSettings{markers: mathjax.Markers{Open: `\(`, Close: "]"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := resolveSettings(tt.cfg, tt.book, tt.env, tt.flags)
			if got != tt.want {
				t.Errorf("resolveSettings() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestBuildOptions - Diagnostic filtering
// ---------------------------------------------------------------------------

func TestBuildOptions(t *testing.T) {
	t.Parallel()

	// One delimiter in code and an odd total: both kinds fire
	book := []byte(`{"sections":[{"Chapter":{"name":"Ch","content":"run ` + "`$A`" + ` now","sub_items":[]}}]}`)

	tests := []struct {
		name         string
		warnUnpaired bool
		warnCode     bool
		want         []string
		notWant      []string
	}{
		{"none", false, false, nil, []string{"warning:"}},
		{"unpaired only", true, false, []string{"opening marker"}, []string{"inside code"}},
		{"code only", false, true, []string{"inside code"}, []string{"opening marker"}},
		{"both", true, true, []string{"opening marker", "inside code", "Ch:1:6:"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			s := runSettings{markers: mathjax.DefaultMarkers, warnUnpaired: tt.warnUnpaired, warnCode: tt.warnCode}
			pre := mathjax.NewPreprocessor(buildOptions(s, newLogger(&buf, false, false))...)

			if _, _, err := pre.Run(context.Background(), book); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("log = %q, want to contain %q", buf.String(), w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(buf.String(), w) {
					t.Errorf("log = %q, should not contain %q", buf.String(), w)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestValidateWorkers - Worker bounds
// ---------------------------------------------------------------------------

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n       int
		wantErr bool
	}{
		{0, false},
		{1, false},
		{config.MaxWorkers, false},
		{-1, true},
		{config.MaxWorkers + 1, true},
	}

	for _, tt := range tests {
		err := validateWorkers(tt.n)
		if tt.wantErr && !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) = %v, want ErrInvalidWorkerCount", tt.n, err)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("validateWorkers(%d) = %v, want nil", tt.n, err)
		}
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - Flag and environment selection
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	flagPath := filepath.Join(dir, "flag.yaml")
	envPath := filepath.Join(dir, "env.yaml")
	if err := os.WriteFile(flagPath, []byte("workers: 1\n"), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(envPath, []byte("workers: 2\n"), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	tests := []struct {
		name        string
		flagValue   string
		envPath     string
		wantWorkers int
	}{
		{"no config", "", "", 0},
		{"env only", "", envPath, 2},
		{"flag wins over env", flagPath, envPath, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := loadConfig(tt.flagValue, &envConfig{ConfigPath: tt.envPath})
			if err != nil {
				t.Fatalf("loadConfig() error = %v", err)
			}
			if cfg.Workers != tt.wantWorkers {
				t.Errorf("Workers = %d, want %d", cfg.Workers, tt.wantWorkers)
			}
		})
	}
}

func TestLoadConfig_NotFound(t *testing.T) {
	t.Parallel()

	t.Run("name gets a hint", func(t *testing.T) {
		t.Parallel()

		_, err := loadConfig("no-such-config-name", &envConfig{})
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "hint:") {
			t.Errorf("error %q should carry a hint", err)
		}
	})

	t.Run("path gets no hint", func(t *testing.T) {
		t.Parallel()

		_, err := loadConfig("/nonexistent/mathjax.yaml", &envConfig{})
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if strings.Contains(err.Error(), "hint:") {
			t.Errorf("error %q should not carry a hint", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestCheckHostVersion - Advisory version check
// ---------------------------------------------------------------------------

func TestCheckHostVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		version  string
		wantErr  bool
		wantWarn bool
	}{
		{"compatible", "0.4.40", false, false},
		{"older minor", "0.3.7", false, true},
		{"newer minor", "0.5.0", false, true},
		{"invalid", "not-a-version", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			err := checkHostVersion(tt.version, newLogger(&buf, false, false))
			if tt.wantErr {
				if !errors.Is(err, mathjax.ErrInvalidVersion) {
					t.Errorf("error = %v, want ErrInvalidVersion", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if warned := buf.Len() > 0; warned != tt.wantWarn {
				t.Errorf("warned = %v, want %v (log: %q)", warned, tt.wantWarn, buf.String())
			}
		})
	}
}
