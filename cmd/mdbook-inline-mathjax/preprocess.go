package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	mathjax "github.com/alnah/mdbook-inline-mathjax"
	"github.com/alnah/mdbook-inline-mathjax/internal/config"
	"github.com/alnah/mdbook-inline-mathjax/internal/fileutil"
	"github.com/alnah/mdbook-inline-mathjax/internal/hints"
)

// Sentinel errors for the preprocess command.
var (
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrWriteOutput        = errors.New("failed to write book to stdout")
)

// runSettings is the merged configuration for one preprocessing run.
type runSettings struct {
	markers      mathjax.Markers
	workers      int
	warnUnpaired bool
	warnCode     bool
}

// runPreprocess reads [context, book] from stdin and writes the rewritten book to stdout.
func runPreprocess(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parsePreprocessFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: unknown command %q (run 'mdbook-inline-mathjax help')", ErrUsage, positional[0])
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig(env.Getenv)
	log := newLogger(env.Stderr, flags.common.quiet || envCfg.Quiet, flags.common.verbose)
	warnUnknownEnvVars(log, env.Environ())

	undo := configureMaxProcs(log)
	defer undo()

	cfg, err := loadConfig(flags.config, envCfg)
	if err != nil {
		return err
	}

	pctx, book, err := mathjax.ParseInput(env.Stdin)
	if err != nil {
		return fmt.Errorf("%w%s", err, hints.ForMalformedInput(env.StdinFD))
	}

	if err := checkHostVersion(pctx.MDBookVersion, log); err != nil {
		return err
	}

	settings := resolveSettings(cfg, pctx.Settings(), envCfg, flags)
	pre := mathjax.NewPreprocessor(buildOptions(settings, log)...)
	log.Verbosef("Renderer: %s, workers: %d", pctx.Renderer, pre.Workers())

	out, report, err := pre.Run(ctx, book)
	if err != nil {
		return fmt.Errorf("preprocessing book: %w", err)
	}

	if _, err := env.Stdout.Write(out); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	log.Verbosef("Chapters: %d, rewritten: %d, delimiters: %d",
		report.Chapters, report.Changed, report.Delimiters)
	return nil
}

// configureMaxProcs sizes GOMAXPROCS to the container CPU quota.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func configureMaxProcs(log *logger) func() {
	undo, _ := maxprocs.Set(maxprocs.Logger(log.Verbosef))
	return undo
}

// checkHostVersion warns when mdbook is outside the supported range.
// A mismatch never blocks processing; an unparsable version does.
func checkHostVersion(hostVersion string, log *logger) error {
	compatible, err := mathjax.CheckVersion(hostVersion)
	if err != nil {
		return fmt.Errorf("%w%s", err, hints.ForInvalidVersion())
	}
	if !compatible {
		log.Warnf("the %s preprocessor was built against mdbook %s, but is being called from mdbook %s",
			mathjax.Name, mathjax.MDBookVersion, hostVersion)
	}
	return nil
}

// loadConfig loads the config file named by the flag, else by the environment.
// No name means defaults.
func loadConfig(flagValue string, env *envConfig) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = env.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
			return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, err
	}
	return cfg, nil
}

// resolveSettings merges every configuration source.
// Priority: CLI flags > env vars > book.toml > config file > defaults.
func resolveSettings(cfg *config.Config, book mathjax.Settings, env *envConfig, flags *preprocessFlags) runSettings {
	s := runSettings{
		markers:      mathjax.Markers{Open: cfg.Markers.Open, Close: cfg.Markers.Close},
		workers:      cfg.Workers,
		warnUnpaired: cfg.Warnings.Unpaired,
		warnCode:     cfg.Warnings.Code,
	}

	if book.Markers.Open != "" {
		s.markers.Open = book.Markers.Open
	}
	if book.Markers.Close != "" {
		s.markers.Close = book.Markers.Close
	}
	if book.Workers > 0 {
		s.workers = book.Workers
	}

	if env.Workers > 0 {
		s.workers = env.Workers
	}

	if flags.workers > 0 {
		s.workers = flags.workers
	}
	if flags.warnings {
		s.warnUnpaired = true
		s.warnCode = true
	}

	if s.markers.Open == "" {
		s.markers.Open = mathjax.DefaultMarkers.Open
	}
	if s.markers.Close == "" {
		s.markers.Close = mathjax.DefaultMarkers.Close
	}
	return s
}

// buildOptions turns settings into preprocessor options.
// Diagnostics are only computed when a warning kind is enabled.
func buildOptions(s runSettings, log *logger) []mathjax.Option {
	opts := []mathjax.Option{
		mathjax.WithMarkers(s.markers),
		mathjax.WithWorkers(s.workers),
	}

	if s.warnUnpaired || s.warnCode {
		opts = append(opts, mathjax.WithDiagnostics(func(chapter string, d mathjax.Diagnostic) {
			switch {
			case d.Kind == mathjax.UnpairedDelimiter && !s.warnUnpaired:
				return
			case d.Kind == mathjax.DelimiterInCode && !s.warnCode:
				return
			}
			log.Warnf("%s:%s", chapter, d)
		}))
	}
	return opts
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}
