package invoke

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigCandidates returns relative paths that will be checked (in order)
// when searching for a default invoke config.
func DefaultConfigCandidates() []string {
	return []string{
		"invoke.yaml",
		"invoke.yml",
		filepath.FromSlash("invoke/invoke.yaml"),
		filepath.FromSlash("invoke/invoke.yml"),
	}
}

// FindDefaultConfigFile searches for an invoke config file in the working
// directory, then next to the executable.
func FindDefaultConfigFile() (string, error) {
	candidates := DefaultConfigCandidates()

	dirs := []string{"."}
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}

	for _, dir := range dirs {
		for _, rel := range candidates {
			p := rel
			if dir != "." {
				p = filepath.Join(dir, rel)
			}
			if st, err := os.Stat(p); err == nil && !st.IsDir() {
				return p, nil
			}
		}
	}

	return "", fmt.Errorf("invoke config not found (expected %v)", candidates)
}

// WithDefaultConfigFile finds and loads the default invoke config file.
// It panics if the file cannot be found or read.
func WithDefaultConfigFile() Option {
	p, err := FindDefaultConfigFile()
	if err != nil {
		return OptionFunc(func(*Options) {
			panic(fmt.Errorf("invoke.WithDefaultConfigFile: %w", err))
		})
	}
	return WithConfigFile(p)
}
