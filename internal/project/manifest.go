// Package project loads the circt.toml manifest that pins a project's
// default pass pipeline and emit options. CLI flags override the
// manifest.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file name probed for in a project directory.
const ManifestName = "circt.toml"

// ErrNoManifest indicates that no circt.toml was found.
var ErrNoManifest = errors.New("no circt.toml manifest")

// Manifest is the parsed circt.toml.
type Manifest struct {
	Root     string   // directory the manifest was loaded from
	Pipeline Pipeline `toml:"pipeline"`
	Emit     Emit     `toml:"emit"`
}

// Pipeline is the [pipeline] section.
type Pipeline struct {
	Passes []string `toml:"passes"`
}

// Emit is the [emit] section.
type Emit struct {
	Dir string `toml:"dir"`
}

// Load parses the manifest at path.
func Load(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	// A missing [pipeline] section means "no default passes", not an
	// error; flags or the built-in default take over.
	if !meta.IsDefined("pipeline") {
		m.Pipeline.Passes = nil
	}
	m.Root = filepath.Dir(path)
	return &m, nil
}

// Find walks up from dir looking for circt.toml and loads the first
// one found. Returns ErrNoManifest when the root is reached without a
// hit.
func Find(dir string) (*Manifest, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	for {
		candidate := filepath.Join(abs, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return Load(candidate)
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return nil, ErrNoManifest
		}
		abs = parent
	}
}
