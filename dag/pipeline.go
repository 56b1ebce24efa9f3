package dag

// Pipeline is a composable, YAML-defined detector graph.
type Pipeline struct {
	// Name is the pipeline identifier.
	Name string `yaml:"name"`
	// Includes lists sub-pipeline names to compose (recursive).
	Includes []string `yaml:"includes,omitempty"`
	// Nodes defines the pipeline's node specifications.
	Nodes []NodeDef `yaml:"nodes"`
}

// NodeDef defines a node within a pipeline.
type NodeDef struct {
	// Component is the registry lookup key for this node.
	Component string `yaml:"component"`
	// DependsOn lists node names this node depends on.
	DependsOn []string `yaml:"depends_on,omitempty"`
	// Condition is a named condition function key.
	Condition string `yaml:"condition,omitempty"`
}

// Chain builds a pipeline running components strictly in the given order.
func Chain(name string, components ...string) *Pipeline {
	p := &Pipeline{Name: name}
	for i, c := range components {
		def := NodeDef{Component: c}
		if i > 0 {
			def.DependsOn = []string{components[i-1]}
		}
		p.Nodes = append(p.Nodes, def)
	}
	return p
}
