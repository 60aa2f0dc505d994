package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// maxCandidates bounds the numbered names tried by UniqueFilename.
const maxCandidates = 1000

// FindFirstMissingFile returns the first file path that does not exist.
// If all files exist, it returns an error.
func FindFirstMissingFile(filenames []string) (string, error) {
	for _, filename := range filenames {
		if _, err := os.Stat(filename); os.IsNotExist(err) {
			return filename, nil
		} else if err != nil {
			return "", fmt.Errorf("error checking %q: %w", filename, err)
		}
	}
	return "", errors.New("all files exist")
}

// DocumentName appends the .docx extension to name unless it already has it.
func DocumentName(name string) string {
	if strings.EqualFold(filepath.Ext(name), ".docx") {
		return name
	}

	return name + ".docx"
}

// UniqueFilename returns name if it does not exist, otherwise the first free
// "base(N).ext" next to it.
func UniqueFilename(name string) (string, error) {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	candidates := make([]string, 0, maxCandidates+1)
	candidates = append(candidates, name)
	for i := 1; i <= maxCandidates; i++ {
		candidates = append(candidates, fmt.Sprintf("%s(%d)%s", base, i, ext))
	}

	filename, err := FindFirstMissingFile(candidates)
	if err != nil {
		return "", fmt.Errorf("unable to find a free name for %s: %w", name, err)
	}

	return filename, nil
}
