package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/optray/go-ray-optics/pkg/core"
	"github.com/optray/go-ray-optics/pkg/tracer"
)

func TestLoadScene(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		demo        string
		expectError bool
	}{
		{"bench demo", "", "bench", false},
		{"cavity demo", "", "cavity", false},
		{"unknown demo", "", "nonexistent", true},
		{"empty demo name", "", "", true},
		{"missing scene file", "does/not/exist.json", "bench", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := loadScene(tt.path, tt.demo)
			if tt.expectError {
				if err == nil {
					t.Errorf("expected an error for (%q, %q)", tt.path, tt.demo)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(s.Objects) == 0 {
				t.Error("loaded scene has no objects")
			}
		})
	}
}

func TestLoadSceneFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	content := `{"revision": 1, "objects": [
		{"action": "absorber", "zorder": 1, "subpaths": [
			{"segments": [{"type": "line", "points": [[5, -5], [5, 5]]}]}
		]}
	]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write scene file: %v", err)
	}

	s, err := loadScene(path, "bench")
	if err != nil {
		t.Fatalf("loadScene: %v", err)
	}
	if len(s.Objects) != 1 || s.Objects[0].Action != "absorber" {
		t.Errorf("loaded objects = %+v, want the absorber from the file", s.Objects)
	}
}

func TestWriteTrace(t *testing.T) {
	s, err := loadScene("", "bench")
	if err != nil {
		t.Fatalf("loadScene: %v", err)
	}
	tr, err := tracer.New(s, nil, tracer.DefaultConfig())
	if err != nil {
		t.Fatalf("tracer.New: %v", err)
	}
	trace, err := tr.Trace(core.NewVec2(0, 0), core.NewVec2(1, 0))
	if err != nil {
		t.Fatalf("Trace: %v", err)
	}

	path := filepath.Join(t.TempDir(), "trace.json")
	if err := writeTrace(trace, path); err != nil {
		t.Fatalf("writeTrace: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read trace file: %v", err)
	}
	if len(data) == 0 {
		t.Error("trace file is empty")
	}
}
