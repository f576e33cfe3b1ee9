package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"intellenum-generator/internal/analyze"
	"intellenum-generator/internal/cache"
	"intellenum-generator/internal/config"
	"intellenum-generator/internal/diagnostic"
	"intellenum-generator/internal/gen"
	"intellenum-generator/internal/logger"
	"intellenum-generator/internal/plan"
)

var generateCmd = &cobra.Command{
	Use:   "generate [packages]",
	Short: "Generate code for the value types in the given packages",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, args, true)
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [packages]",
	Short: "Report diagnostics without writing files",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, args, false)
	},
}

func init() {
	for _, c := range []*cobra.Command{generateCmd, checkCmd} {
		c.Flags().String("defaults", "", "program-wide defaults file (.yaml or .toml)")
		c.Flags().IntP("jobs", "j", 0, "candidates built in parallel (0=GOMAXPROCS)")
		c.Flags().Bool("tests", false, "include test files")
		c.Flags().Bool("warnings-as-errors", false, "fail on warnings")
	}

	generateCmd.Flags().StringP("output", "o", "", "write every file to this directory instead of next to its package")
	generateCmd.Flags().Bool("stubs", false, "emit the state type of types with errors")
	generateCmd.Flags().String("debug-dir", "", "directory for unformatted output of failed files")
	generateCmd.Flags().Bool("no-cache", false, "do not reuse previously generated files")
	generateCmd.Flags().String("cache-dir", "", "incremental cache directory")
}

// run performs one generation pass and reports its diagnostics. Files are
// written only when write is set.
func run(cmd *cobra.Command, args []string, write bool) error {
	s := current

	log, err := logger.New(s.JSONLog, s.Verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	res, err := pass(cmd.Context(), s, args, log)
	if err != nil {
		return err
	}

	out := cmd.ErrOrStderr()
	failed := report(out, res.AllDiagnostics(), s.WarningsAsErrors)
	failed = reportFaults(out, res.Faults) || failed

	if write {
		emitted, err := emit(s, res.Items, log)
		if err != nil {
			return err
		}

		failed = reportFaults(out, emitted) || failed
	}

	if failed {
		return errReported
	}

	return nil
}

// pass loads the packages and runs the planning pipeline over them.
func pass(ctx context.Context, s *settings, patterns []string, log *zap.Logger) (*plan.Result, error) {
	prog, err := analyze.Load(ctx, analyze.Options{
		Dir:      s.Dir,
		Patterns: patterns,
		Tests:    s.Tests,
		Logger:   log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var defaults *config.DefaultsFile
	if s.Defaults != "" {
		if defaults, err = config.LoadDefaultsFile(s.Defaults); err != nil {
			return nil, err
		}
	}

	driver := plan.NewDriver(plan.Options{
		Jobs:         s.Jobs,
		DefaultsFile: defaults,
		Logger:       log,
	})

	res, err := driver.Run(ctx, prog)
	if err != nil {
		return nil, fmt.Errorf("generation pass: %w", err)
	}

	return res, nil
}

// emit renders and writes the files of items.
func emit(s *settings, items []*plan.WorkItem, log *zap.Logger) ([]plan.Fault, error) {
	opts := []gen.Option{gen.WithLogger(log)}

	if !s.NoCache {
		c, err := openCache(s, log)
		if err != nil {
			log.Warn("incremental cache disabled", zap.Error(err))
		} else {
			opts = append(opts, gen.WithCache(c))
		}
	}

	emitter := gen.NewEmitter(gen.Config{EmitStubs: s.Stubs, DebugDir: s.DebugDir}, nil, opts...)

	units, faults := emitter.EmitAll(items)
	if err := gen.WriteFiles(units, s.Output); err != nil {
		return faults, err
	}

	log.Info("files written", zap.Int("files", len(units)))

	return faults, nil
}

func openCache(s *settings, log *zap.Logger) (*cache.Cache, error) {
	dir := s.CacheDir
	if dir == "" {
		var err error
		if dir, err = cache.DefaultDir("intellenum"); err != nil {
			return nil, err
		}
	}

	return cache.Open(dir, cache.WithLogger(log), cache.WithVersion(version))
}

// reportFaults prints internal faults. It reports whether there were any.
func reportFaults(w io.Writer, faults []plan.Fault) bool {
	for _, f := range faults {
		fmt.Fprintf(w, "%s %s: %v\n", errorColor.Sprint("fault:"), f.Key, f.Err)
	}

	return len(faults) > 0
}

// report prints diagnostics. It reports whether any of them fails the run.
func report(w io.Writer, diags []diagnostic.Diagnostic, warningsAsErrors bool) bool {
	failed := false

	for _, d := range diags {
		fmt.Fprintln(w, formatDiagnostic(d))

		switch d.Severity {
		case diagnostic.SeverityError:
			failed = true
		case diagnostic.SeverityWarning:
			failed = failed || warningsAsErrors
		}
	}

	return failed
}
