package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alnah/go-rstify"
	"github.com/alnah/go-rstify/internal/fileutil"
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles expands inputs into the files to convert, in input order.
// Files named explicitly are taken whatever their extension; directories are
// walked for files matching extensions. A file reached twice is listed once.
func discoverFiles(inputs []string, outputDir string, extensions []string) ([]FileToConvert, error) {
	var files []FileToConvert
	seen := make(map[string]bool)

	add := func(path, baseInputDir string) {
		key := filepath.Clean(path)
		if seen[key] {
			return
		}
		seen[key] = true
		files = append(files, FileToConvert{
			InputPath:  path,
			OutputPath: resolveOutputPath(path, outputDir, baseInputDir),
		})
	}

	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			add(input, "")
			continue
		}

		err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			if d.IsDir() || !fileutil.HasExtension(path, extensions) {
				return nil
			}
			add(path, input)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// resolveOutputPath determines the .rst output path for an input file.
// Without an output directory the result sits next to the input. Files found
// under baseInputDir keep their relative directory inside outputDir.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	if outputDir == "" {
		return rstify.OutputPath(inputPath)
	}

	name := filepath.Base(rstify.OutputPath(inputPath))

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), name)
		}
	}

	return filepath.Join(outputDir, name)
}
