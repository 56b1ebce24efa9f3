package dag

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	apperrors "github.com/kbukum/convokit/errors"
)

func testRegistry(calls *[]string, names ...string) *Registry {
	r := NewRegistry()
	n := recorder(calls)
	for _, name := range names {
		r.Register(name, n(name))
	}
	return r
}

func writePipeline(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestParsePipeline(t *testing.T) {
	p, err := ParsePipeline([]byte(`
name: timing
nodes:
  - component: gap
  - component: pause
    depends_on: [gap]
    condition: multi_speaker
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "timing" || len(p.Nodes) != 2 {
		t.Fatalf("pipeline = %+v", p)
	}
	if p.Nodes[1].Condition != ConditionMultiSpeaker {
		t.Errorf("condition = %q", p.Nodes[1].Condition)
	}
}

func TestParsePipeline_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code apperrors.ErrorCode
	}{
		{"bad yaml", "name: [", apperrors.ErrCodeInvalidFormat},
		{"missing name", "nodes: []", apperrors.ErrCodeMissingField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePipeline([]byte(tt.data))
			if !apperrors.HasCode(err, tt.code) {
				t.Fatalf("expected %s, got %v", tt.code, err)
			}
		})
	}
}

func TestLoadPipeline(t *testing.T) {
	dir := t.TempDir()
	path := writePipeline(t, dir, "p.yaml", "name: p\nnodes:\n  - component: gap\n")

	p, err := LoadPipeline("p", filepath.Join(dir, "missing.yaml"), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "p" {
		t.Fatalf("name = %q", p.Name)
	}

	if _, err := LoadPipeline("none", filepath.Join(dir, "missing.yaml")); !apperrors.HasCode(err, apperrors.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestResolvePipeline_Includes(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "timing"), 0o755); err != nil {
		t.Fatal(err)
	}
	writePipeline(t, dir, "timing/timing.yaml", `
name: timing
nodes:
  - component: gap
  - component: pause
    depends_on: [gap]
`)
	writePipeline(t, dir, "base.yml", `
name: base
nodes:
  - component: overlap
`)

	p := &Pipeline{
		Name:     "full",
		Includes: []string{"base", "timing"},
		Nodes:    []NodeDef{{Component: "speechrate", DependsOn: []string{"pause", "overlap"}}},
	}

	var calls []string
	reg := testRegistry(&calls, "gap", "pause", "overlap", "speechrate")
	g, err := ResolvePipeline(p, reg, NewFilePipelineLoader(dir))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(g.Nodes) != 4 {
		t.Fatalf("nodes = %d", len(g.Nodes))
	}

	if _, err := (&Engine{}).Execute(context.Background(), g, NewState()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"gap", "overlap", "pause", "speechrate"}
	if !reflect.DeepEqual(calls, want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
}

func TestResolvePipeline_Errors(t *testing.T) {
	dir := t.TempDir()
	writePipeline(t, dir, "a.yaml", "name: a\nincludes: [b]\n")
	writePipeline(t, dir, "b.yaml", "name: b\nincludes: [a]\n")

	var calls []string
	reg := testRegistry(&calls, "gap")
	loader := NewFilePipelineLoader(dir)

	tests := []struct {
		name     string
		pipeline *Pipeline
		loader   PipelineLoader
	}{
		{"unknown detector", Chain("p", "gap", "ghost"), loader},
		{"circular include", &Pipeline{Name: "a", Includes: []string{"b"}}, loader},
		{"missing include", &Pipeline{Name: "p", Includes: []string{"nope"}}, loader},
		{"include without loader", &Pipeline{Name: "p", Includes: []string{"b"}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolvePipeline(tt.pipeline, reg, tt.loader)
			if !apperrors.HasCode(err, apperrors.ErrCodePipelineInvalid) {
				t.Fatalf("expected PIPELINE_INVALID, got %v", err)
			}
		})
	}
}
