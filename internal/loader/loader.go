// Package loader reads scene settings from a YAML file or a scene script.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/pipeworks/pkg/engine"
	"github.com/chazu/pipeworks/pkg/scene"
)

// ScriptExt is the extension of scene scripts. Any other file is read as
// YAML.
const ScriptExt = ".pipes"

// Load returns the settings in path. An empty path returns the defaults.
func Load(path string) (*scene.Settings, error) {
	if path == "" {
		return scene.DefaultSettings(), nil
	}
	if !strings.EqualFold(filepath.Ext(path), ScriptExt) {
		return scene.LoadSettings(path)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	return Script(engine.NewEngine(), string(src), path)
}

// Script evaluates a scene script with e. Script errors are joined into
// one error prefixed with name.
func Script(e *engine.Engine, source, name string) (*scene.Settings, error) {
	s, evalErrs, err := e.Evaluate(source)
	if err != nil {
		return nil, fmt.Errorf("loader: %s: %w", name, err)
	}
	if len(evalErrs) > 0 {
		errs := make([]error, len(evalErrs))
		for i, ee := range evalErrs {
			errs[i] = ee
		}
		return nil, fmt.Errorf("loader: %s: %w", name, errors.Join(errs...))
	}
	return s, nil
}
