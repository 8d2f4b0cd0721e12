package rstify

import (
	"path/filepath"
	"strings"
)

// OutputExtension is the extension of converted files.
const OutputExtension = ".rst"

// OutputPath derives the output file path for inputPath by replacing its
// extension with OutputExtension, or appending it when there is none.
//
// "pep-0001.txt" becomes "pep-0001.rst"; "README" becomes "README.rst".
// Dotfiles such as ".notes" are treated as having no extension.
// An input that already ends in .rst maps to itself; callers writing files
// must reject that case.
func OutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	if ext == "" || ext == filepath.Base(inputPath) {
		return inputPath + OutputExtension
	}
	return strings.TrimSuffix(inputPath, ext) + OutputExtension
}
