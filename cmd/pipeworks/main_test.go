package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunRoute(t *testing.T) {
	var buf bytes.Buffer
	if err := runRoute(&buf, "", routeOptions{}); err != nil {
		t.Fatalf("runRoute failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	var pipes []string
	for _, l := range lines {
		if strings.HasPrefix(l, "pipe ") {
			pipes = append(pipes, l)
		}
	}
	if len(pipes) != 3 {
		t.Fatalf("expected 3 pipe lines, got %d:\n%s", len(pipes), buf.String())
	}
	for i, l := range pipes {
		if !strings.Contains(l, ": direct,") {
			t.Errorf("pipe line %d = %q, want direct routing", i+1, l)
		}
	}
	if !strings.Contains(buf.String(), "analysis: compound") {
		t.Errorf("expected the analyzer label to be shown:\n%s", buf.String())
	}
}

func TestRunRouteDebugMetadata(t *testing.T) {
	var buf bytes.Buffer
	if err := runRoute(&buf, "", routeOptions{debug: true}); err != nil {
		t.Fatalf("runRoute failed: %v", err)
	}
	out := buf.String()
	for _, key := range []string{"pointCount:", "routedAs:", "totalLength:", "turnAngle:"} {
		if !strings.Contains(out, key) {
			t.Errorf("missing %s in output:\n%s", key, out)
		}
	}
}

func TestRunRouteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := runRoute(&buf, "", routeOptions{json: true}); err != nil {
		t.Fatalf("runRoute failed: %v", err)
	}
	var sc struct {
		Pipes []json.RawMessage `json:"pipes"`
	}
	if err := json.Unmarshal(buf.Bytes(), &sc); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(sc.Pipes) != 3 {
		t.Errorf("expected 3 pipes, got %d", len(sc.Pipes))
	}
}

func TestRunValidate(t *testing.T) {
	var buf bytes.Buffer
	if err := runValidate(&buf, ""); err != nil {
		t.Fatalf("runValidate failed: %v", err)
	}
	if !strings.Contains(buf.String(), "ok: 4 warnings") {
		t.Errorf("output = %q", buf.String())
	}

	path := filepath.Join(t.TempDir(), "bad.pipes")
	if err := os.WriteFile(path, []byte("(dimensions :width -1)"), 0o644); err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	err := runValidate(&buf, path)
	if err == nil || errors.Is(err, errInvalidScene) {
		t.Errorf("err = %v, want a load error", err)
	}
}

func TestFileArg(t *testing.T) {
	if got := fileArg(nil); got != "" {
		t.Errorf("fileArg(nil) = %q", got)
	}
	if got := fileArg([]string{"a.yaml"}); got != "a.yaml" {
		t.Errorf("fileArg = %q", got)
	}
}

func TestCommandFlags(t *testing.T) {
	for _, use := range []string{routeCmd().Use, validateCmd().Use, serveCmd().Use} {
		if !strings.HasSuffix(use, "[settings-file]") {
			t.Errorf("Use = %q", use)
		}
	}
	for _, name := range []string{"json", "debug", "verbose", "viewport"} {
		if routeCmd().Flags().Lookup(name) == nil {
			t.Errorf("route has no --%s flag", name)
		}
	}
	if serveCmd().Flags().Lookup("port") == nil {
		t.Error("serve has no --port flag")
	}
}
