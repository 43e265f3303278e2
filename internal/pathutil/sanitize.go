package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SanitizeOutputPath validates and cleans an output file path.
// It rejects paths containing ".." after cleaning and paths that
// resolve to symlinks. New files in existing directories are accepted.
// Returns the cleaned absolute path.
func SanitizeOutputPath(path string) (string, error) {
	cleaned := filepath.Clean(path)

	abs, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("pathutil: cannot resolve absolute path: %w", err)
	}

	if strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("pathutil: path must not contain '..': %s", cleaned)
	}

	info, err := os.Lstat(abs)
	if err == nil {
		if info.Mode()&os.ModeSymlink != 0 {
			return "", fmt.Errorf("pathutil: refusing to write to symlink: %s", abs)
		}
	}

	return abs, nil
}

// RejectOutputCollision returns an error if the cleaned output path matches
// any of the given input paths, preventing a merge from overwriting one of
// its own sources.
func RejectOutputCollision(outputPath string, inputPaths ...string) error {
	outAbs, err := filepath.Abs(filepath.Clean(outputPath))
	if err != nil {
		return fmt.Errorf("pathutil: cannot resolve absolute path: %w", err)
	}
	for _, in := range inputPaths {
		inAbs, err := filepath.Abs(filepath.Clean(in))
		if err != nil {
			continue
		}
		if inAbs == outAbs {
			return fmt.Errorf("pathutil: output path %q must not match an input file", outputPath)
		}
	}
	return nil
}
