package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"intellenum-generator/internal/diagnostic"
	"intellenum-generator/internal/fixit"
	"intellenum-generator/internal/logger"
)

var fixCmd = &cobra.Command{
	Use:   "fix <file> <TypeName>",
	Short: "Add a validation method stub to a value type",
	Long: `fix runs the pipeline over the package of file and applies the
validation stub suggested for TypeName, editing file in place.`,
	Args: cobra.ExactArgs(2),
	RunE: runFix,
}

func init() {
	fixCmd.Flags().Bool("preview", false, "print the edited file instead of writing it")
}

func runFix(cmd *cobra.Command, args []string) error {
	path, typeName := args[0], args[1]
	if !filepath.IsAbs(path) {
		path = filepath.Join(current.Dir, path)
	}

	s := *current
	s.Dir = filepath.Dir(path)

	log, err := logger.New(s.JSONLog, s.Verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	res, err := pass(cmd.Context(), &s, nil, log)
	if err != nil {
		return err
	}

	d, ok := findFix(res.AllDiagnostics(), typeName)
	if !ok {
		return fmt.Errorf("no validation method suggested for %s", typeName)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	fixed, err := fixit.Apply(src, d)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if preview, _ := cmd.Flags().GetBool("preview"); preview {
		_, err = cmd.OutOrStdout().Write(fixed)
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, fixed, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "added %s to %s in %s\n", fixit.MethodName, typeName, path)

	return nil
}

// findFix returns the validation method suggestion for typeName.
func findFix(diags []diagnostic.Diagnostic, typeName string) (diagnostic.Diagnostic, bool) {
	for _, d := range diags {
		if d.Code == diagnostic.AddValidationMethod && d.Property(diagnostic.PropTypeName) == typeName {
			return d, true
		}
	}

	return diagnostic.Diagnostic{}, false
}
