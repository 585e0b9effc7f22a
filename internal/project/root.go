// Package project locates the Go workspace and its pkgtest configuration.
package project

import (
	"errors"
	"os"
	"path/filepath"
)

// ConfigFileName is the name of the configuration file in the workspace root.
const ConfigFileName = ".pkgtest.yaml"

// rootMarkers are the files that mark a workspace root, nearest first.
var rootMarkers = []string{"go.work", "go.mod"}

// ErrNoModuleRoot is returned when neither go.work nor go.mod is found.
var ErrNoModuleRoot = errors.New("go.mod not found: not a Go module (or any parent up to the root)")

// FindRootFrom walks up from the given directory until it finds go.work or go.mod.
func FindRootFrom(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		for _, marker := range rootMarkers {
			if fileExists(filepath.Join(dir, marker)) {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", ErrNoModuleRoot
		}
		dir = parent
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
