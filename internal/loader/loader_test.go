package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/pipeworks/pkg/engine"
	"github.com/chazu/pipeworks/pkg/scene"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		content   string
		wantWidth float64
	}{
		{"yaml", "scene.yaml", "dimensions:\n  width: 5\n", 5},
		{"script", "scene.pipes", "(dimensions :width 6)", 6},
		{"script upper-case extension", "scene.PIPES", "(dimensions :width 7)", 7},
		{"empty script", "scene.pipes", "", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Load(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if s.Dimensions.Width != tt.wantWidth {
				t.Errorf("width = %v, want %v", s.Dimensions.Width, tt.wantWidth)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Dimensions != scene.DefaultSettings().Dimensions {
		t.Errorf("dimensions = %+v, want defaults", s.Dimensions)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.pipes")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing script: err = %v, want ErrNotExist", err)
	}

	_, err := Load(writeFile(t, "bad.pipes", "(dimensions :width 0)"))
	if err == nil || !strings.Contains(err.Error(), "bad.pipes") {
		t.Errorf("invalid script: err = %v, want error naming the file", err)
	}

	_, err = Load(writeFile(t, "bad.yaml", "dimensions:\n  widht: 5\n"))
	if err == nil {
		t.Error("expected error for unknown YAML key")
	}
}

func TestScriptJoinsEvalErrors(t *testing.T) {
	_, err := Script(engine.NewEngine(), "(pipe :colour 1)", "inline")
	if err == nil {
		t.Fatal("expected error")
	}
	var ee engine.EvalError
	if !errors.As(err, &ee) {
		t.Fatalf("err = %v, want an engine.EvalError in the chain", err)
	}
	if !strings.Contains(ee.Message, "colour") {
		t.Errorf("message = %q", ee.Message)
	}
}
