package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AndreyAkinshin/pkgtest/internal/config"
)

// Project is a resolved workspace with its effective configuration.
type Project struct {
	Root       string // Directory go list and go test run in
	ConfigPath string // Configuration file in use; empty when none was found
	Config     *config.Config
	Warnings   []string
}

// Options control how a project is located.
type Options struct {
	// StartDir is where root discovery begins. Empty means the working directory.
	StartDir string

	// ConfigPath names the configuration file explicitly. When empty,
	// ConfigFileName is looked up in the discovered root.
	ConfigPath string
}

// Load locates the workspace and loads its configuration.
//
// A directory without go.mod is still accepted as the root; go list then
// reports the problem as a discovery failure.
func Load(opts Options) (*Project, error) {
	start := opts.StartDir
	if start == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		start = cwd
	}

	root, err := FindRootFrom(start)
	if errors.Is(err, ErrNoModuleRoot) {
		root, err = filepath.Abs(start)
	}
	if err != nil {
		return nil, err
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		if candidate := filepath.Join(root, ConfigFileName); fileExists(candidate) {
			configPath = candidate
		}
	}

	p := &Project{Root: root}
	if configPath == "" {
		p.Config = config.Default()
	} else {
		configPath, err = filepath.Abs(configPath)
		if err != nil {
			return nil, err
		}
		cfg, warnings, err := config.LoadAndValidate(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		p.ConfigPath = configPath
		p.Config = cfg
		p.Warnings = warnings
		if cfg.Dir != "" {
			p.Root = resolveDir(filepath.Dir(configPath), cfg.Dir)
		}
	}

	config.ApplyEnvironment(p.Config)

	if err := validateRootDirectory(p.Root); err != nil {
		return nil, err
	}
	return p, nil
}

// resolveDir interprets dir relative to base unless it is absolute.
func resolveDir(base, dir string) string {
	if dir == "" {
		return base
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(base, dir)
}

// validateRootDirectory checks that the workspace directory exists.
func validateRootDirectory(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return fmt.Errorf("workspace directory %q does not exist", dir)
	}
	if err != nil {
		return fmt.Errorf("cannot access workspace directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("workspace path %q is not a directory", dir)
	}
	return nil
}
