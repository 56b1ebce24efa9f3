package dag

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/convokit/errors"
)

// PipelineLoader loads pipeline definitions by name.
type PipelineLoader interface {
	Load(name string) (*Pipeline, error)
}

// FilePipelineLoader loads pipelines from YAML files on disk.
type FilePipelineLoader struct {
	dirs []string
}

// NewFilePipelineLoader creates a loader that searches the given directories for pipeline YAML files.
func NewFilePipelineLoader(dirs ...string) PipelineLoader {
	return &FilePipelineLoader{dirs: dirs}
}

// Load searches for {name}.yaml and {name}.yml in each directory and its
// immediate subdirectories.
func (l *FilePipelineLoader) Load(name string) (*Pipeline, error) {
	for _, dir := range l.dirs {
		for _, ext := range []string{".yaml", ".yml"} {
			path := filepath.Join(dir, name+ext)
			if p, err := loadPipelineFile(path); err == nil {
				return p, nil
			}

			matches, _ := filepath.Glob(filepath.Join(dir, "*", name+ext))
			for _, match := range matches {
				if p, err := loadPipelineFile(match); err == nil {
					return p, nil
				}
			}
		}
	}
	return nil, errors.NotFound("pipeline", name).WithDetail("dirs", l.dirs)
}

func loadPipelineFile(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := ParsePipeline(data)
	if err != nil {
		return nil, fmt.Errorf("dag: parsing %s: %w", path, err)
	}
	return p, nil
}

// ParsePipeline decodes a YAML pipeline definition.
func ParsePipeline(data []byte) (*Pipeline, error) {
	var p Pipeline
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, errors.InvalidFormat("pipeline", "YAML pipeline document").WithCause(err)
	}
	if p.Name == "" {
		return nil, errors.MissingField("name")
	}
	return &p, nil
}

// LoadPipeline loads a pipeline from explicit file paths.
// It tries each path until one succeeds.
func LoadPipeline(name string, paths ...string) (*Pipeline, error) {
	var lastErr error
	for _, path := range paths {
		p, err := loadPipelineFile(path)
		if err == nil {
			return p, nil
		}
		lastErr = err
	}
	return nil, errors.NotFound("pipeline", name).WithCause(lastErr)
}

// ResolvePipeline converts a Pipeline definition into an executable Graph.
// It resolves includes recursively through loader, which may be nil for
// pipelines without includes, and looks up nodes in the registry.
func ResolvePipeline(p *Pipeline, registry *Registry, loader PipelineLoader) (*Graph, error) {
	stack := make(map[string]bool)    // current recursion path (cycle detection)
	resolved := make(map[string]bool) // already fully resolved (dedup)
	return resolvePipeline(p, registry, loader, stack, resolved)
}

func resolvePipeline(p *Pipeline, registry *Registry, loader PipelineLoader, stack, resolved map[string]bool) (*Graph, error) {
	if stack[p.Name] {
		return nil, errors.PipelineInvalid(fmt.Sprintf("circular include of pipeline %q", p.Name))
	}
	stack[p.Name] = true
	defer delete(stack, p.Name)

	g := &Graph{
		Nodes: make(map[string]Node),
	}

	for _, includeName := range p.Includes {
		if resolved[includeName] {
			continue // diamond include
		}
		if loader == nil {
			return nil, errors.PipelineInvalid(fmt.Sprintf("pipeline %q includes %q but no loader is configured", p.Name, includeName))
		}

		sub, err := loader.Load(includeName)
		if err != nil {
			return nil, errors.PipelineInvalid(fmt.Sprintf("loading include %q", includeName)).WithCause(err)
		}

		subGraph, err := resolvePipeline(sub, registry, loader, stack, resolved)
		if err != nil {
			return nil, err
		}

		for name, node := range subGraph.Nodes {
			if _, exists := g.Nodes[name]; exists {
				continue // first wins
			}
			g.Nodes[name] = node
		}
		g.Edges = append(g.Edges, subGraph.Edges...)
	}

	for _, def := range p.Nodes {
		if _, exists := g.Nodes[def.Component]; !exists {
			node, ok := registry.Get(def.Component)
			if !ok {
				return nil, errors.PipelineInvalid(fmt.Sprintf("unknown detector %q", def.Component)).
					WithDetail("known", registry.List())
			}
			g.Nodes[def.Component] = node
		}

		for _, dep := range def.DependsOn {
			g.Edges = append(g.Edges, Edge{From: dep, To: def.Component})
		}
	}

	resolved[p.Name] = true
	return g, nil
}
