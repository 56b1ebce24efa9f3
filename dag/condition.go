package dag

// ConditionFunc evaluates whether a node should run based on state.
type ConditionFunc func(state *State) bool

// ConditionMultiSpeaker holds when the model has at least two speakers.
const ConditionMultiSpeaker = "multi_speaker"

// DefaultConditions returns the built-in named conditions.
func DefaultConditions() map[string]ConditionFunc {
	return map[string]ConditionFunc{
		ConditionMultiSpeaker: func(state *State) bool {
			m, err := Read(state, ModelPort)
			return err == nil && m.Stats().SpeakerCount >= 2
		},
	}
}

// ConditionFilter returns a NodeFilter evaluating the condition named by
// each node definition. Nodes without a condition, or naming an unknown
// one, always run.
func ConditionFilter(pipeline *Pipeline, conditions map[string]ConditionFunc) NodeFilter {
	defs := make(map[string]NodeDef, len(pipeline.Nodes))
	for _, def := range pipeline.Nodes {
		defs[def.Component] = def
	}

	return func(nodeName string, state *State) bool {
		def, ok := defs[nodeName]
		if !ok || def.Condition == "" {
			return true
		}
		fn, ok := conditions[def.Condition]
		if !ok {
			return true
		}
		return fn(state)
	}
}
