package main

import (
	"strconv"
	"strings"
)

// envPrefix namespaces the environment variables read by the preprocessor.
const envPrefix = "MDBOOK_MATHJAX_"

// envConfig holds configuration from environment variables.
// Lets CI override settings without touching book.toml.
type envConfig struct {
	ConfigPath string // MDBOOK_MATHJAX_CONFIG: config file name or path
	Workers    int    // MDBOOK_MATHJAX_WORKERS: parallel chapter workers
	Quiet      bool   // MDBOOK_MATHJAX_QUIET: suppress warnings
}

// knownEnvVars lists valid MDBOOK_MATHJAX_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDBOOK_MATHJAX_CONFIG":  true,
	"MDBOOK_MATHJAX_WORKERS": true,
	"MDBOOK_MATHJAX_QUIET":   true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable numbers and booleans are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("MDBOOK_MATHJAX_CONFIG"),
	}

	if workers := getenv("MDBOOK_MATHJAX_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	if quiet := getenv("MDBOOK_MATHJAX_QUIET"); quiet != "" {
		if q, err := strconv.ParseBool(quiet); err == nil {
			cfg.Quiet = q
		}
	}

	return cfg
}

// warnUnknownEnvVars warns about unrecognized MDBOOK_MATHJAX_* variables.
// Helps catch typos like MDBOOK_MATHJAX_WORKER.
func warnUnknownEnvVars(log *logger, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			log.Warnf("unknown environment variable %s (typo?)", name)
		}
	}
}
