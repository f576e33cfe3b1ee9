package gen

import (
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes every unit. Units go next to their declaring package
// unless outputDir is set, in which case they all go there. Missing
// directories are created.
func WriteFiles(units []SourceUnit, outputDir string) error {
	for _, unit := range units {
		dir := unit.Dir
		if outputDir != "" {
			dir = outputDir
		}

		err := os.MkdirAll(dir, dirPerm)
		if err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}

		err = os.WriteFile(filepath.Join(dir, unit.Filename), unit.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", unit.Filename, err)
		}
	}

	return nil
}
