package dag

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/kbukum/convokit/conversation"
	apperrors "github.com/kbukum/convokit/errors"
	"github.com/kbukum/convokit/logger"
	"github.com/kbukum/convokit/tokentree"
)

// --- test helpers ---

// funcNode is a simple Node implementation for testing.
type funcNode struct {
	name string
	fn   func(ctx context.Context, state *State) (any, error)
}

func (n *funcNode) Name() string { return n.name }
func (n *funcNode) Run(ctx context.Context, state *State) (any, error) {
	return n.fn(ctx, state)
}

func newFuncNode(name string, fn func(ctx context.Context, state *State) (any, error)) Node {
	return &funcNode{name: name, fn: fn}
}

// recorder returns a node constructor appending each executed name to calls.
func recorder(calls *[]string) func(name string) Node {
	return func(name string) Node {
		return newFuncNode(name, func(context.Context, *State) (any, error) {
			*calls = append(*calls, name)
			return name, nil
		})
	}
}

func testModel(speakers ...string) *conversation.Model {
	var tokens []tokentree.Token
	for i, sp := range speakers {
		start := float64(i) * 1.5
		tokens = append(tokens, tokentree.Token{Start: start, End: start + 1, Speaker: sp, Text: "word"})
	}
	return conversation.FromTokens(tokens, conversation.WithLogger(logger.Nop()))
}

// --- State tests ---

func TestState_GetSet(t *testing.T) {
	s := NewState()
	s.Set("key", "value")
	v, ok := s.Get("key")
	if !ok || v != "value" {
		t.Fatalf("expected 'value', got %v (ok=%v)", v, ok)
	}
}

func TestState_Missing(t *testing.T) {
	s := NewState()
	if _, ok := s.Get("missing"); ok {
		t.Fatal("expected missing key")
	}
}

func TestState_Keys(t *testing.T) {
	s := NewModelState(testModel("A"))
	s.Set("extra", 1)
	if got := s.Keys(); !slices.Equal(got, []string{"extra", "model"}) {
		t.Fatalf("keys = %v", got)
	}
}

// --- Port tests ---

func TestPort_ReadWrite(t *testing.T) {
	m := testModel("A")
	s := NewModelState(m)

	got, err := Read(s, ModelPort)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != m {
		t.Fatal("expected the stored model")
	}
}

func TestPort_Errors(t *testing.T) {
	s := NewState()
	_, err := Read(s, ModelPort)
	if appErr, ok := apperrors.AsAppError(err); !ok || appErr.Code != apperrors.ErrCodeInternal {
		t.Fatalf("expected internal error for missing key, got %v", err)
	}
	s.Set(ModelPort.Key, "not a model")
	if _, err := Read(s, ModelPort); err == nil {
		t.Fatal("expected error for type mismatch")
	}
}

// --- Graph tests ---

func TestBuildLevels(t *testing.T) {
	calls := []string{}
	n := recorder(&calls)

	tests := []struct {
		name  string
		graph *Graph
		want  [][]string
	}{
		{
			name:  "independent nodes share a sorted level",
			graph: &Graph{Nodes: map[string]Node{"c": n("c"), "a": n("a"), "b": n("b")}},
			want:  [][]string{{"a", "b", "c"}},
		},
		{
			name: "chain",
			graph: &Graph{
				Nodes: map[string]Node{"a": n("a"), "b": n("b"), "c": n("c")},
				Edges: []Edge{{From: "a", To: "b"}, {From: "b", To: "c"}},
			},
			want: [][]string{{"a"}, {"b"}, {"c"}},
		},
		{
			name: "diamond",
			graph: &Graph{
				Nodes: map[string]Node{"a": n("a"), "b": n("b"), "c": n("c"), "d": n("d")},
				Edges: []Edge{{From: "a", To: "c"}, {From: "a", To: "b"}, {From: "b", To: "d"}, {From: "c", To: "d"}},
			},
			want: [][]string{{"a"}, {"b", "c"}, {"d"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildLevels(tt.graph)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("levels = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildLevels_Invalid(t *testing.T) {
	calls := []string{}
	n := recorder(&calls)

	tests := []struct {
		name  string
		graph *Graph
	}{
		{
			name: "cycle",
			graph: &Graph{
				Nodes: map[string]Node{"a": n("a"), "b": n("b")},
				Edges: []Edge{{From: "a", To: "b"}, {From: "b", To: "a"}},
			},
		},
		{
			name: "unknown edge",
			graph: &Graph{
				Nodes: map[string]Node{"a": n("a")},
				Edges: []Edge{{From: "ghost", To: "a"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildLevels(tt.graph)
			if !apperrors.HasCode(err, apperrors.ErrCodePipelineInvalid) {
				t.Fatalf("expected PIPELINE_INVALID, got %v", err)
			}
		})
	}
}

// --- Engine tests ---

func TestEngine_RunsInDependencyOrder(t *testing.T) {
	var calls []string
	n := recorder(&calls)
	g := &Graph{
		Nodes: map[string]Node{"speechrate": n("speechrate"), "gap": n("gap"), "pause": n("pause"), "overlap": n("overlap")},
		Edges: []Edge{{From: "overlap", To: "gap"}, {From: "gap", To: "speechrate"}},
	}

	result, err := (&Engine{}).Execute(context.Background(), g, NewState())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"overlap", "pause", "gap", "speechrate"}
	if !reflect.DeepEqual(calls, want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	if !reflect.DeepEqual(result.Order, want) {
		t.Fatalf("order = %v, want %v", result.Order, want)
	}
	for _, name := range want {
		if result.NodeResults[name].Status != StatusCompleted {
			t.Errorf("%s status = %s", name, result.NodeResults[name].Status)
		}
	}
}

func TestEngine_StopsOnFailure(t *testing.T) {
	var calls []string
	n := recorder(&calls)
	boom := errors.New("boom")
	g := &Graph{
		Nodes: map[string]Node{
			"a": n("a"),
			"b": newFuncNode("b", func(context.Context, *State) (any, error) { return nil, boom }),
			"c": n("c"),
		},
		Edges: []Edge{{From: "a", To: "b"}, {From: "b", To: "c"}},
	}

	result, err := (&Engine{}).Execute(context.Background(), g, NewState())
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if !reflect.DeepEqual(calls, []string{"a"}) {
		t.Fatalf("calls = %v", calls)
	}
	if result.NodeResults["b"].Status != StatusFailed {
		t.Errorf("b status = %s", result.NodeResults["b"].Status)
	}
	if result.NodeResults["c"].Status != StatusSkipped {
		t.Errorf("c status = %s", result.NodeResults["c"].Status)
	}
}

func TestEngine_Cancelled(t *testing.T) {
	var calls []string
	n := recorder(&calls)
	g := &Graph{Nodes: map[string]Node{"a": n("a")}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := (&Engine{}).Execute(ctx, g, NewState())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(calls) != 0 {
		t.Fatalf("calls = %v", calls)
	}
	if result.NodeResults["a"].Status != StatusSkipped {
		t.Errorf("a status = %s", result.NodeResults["a"].Status)
	}
}

func TestEngine_CycleIsRejected(t *testing.T) {
	var calls []string
	n := recorder(&calls)
	g := &Graph{
		Nodes: map[string]Node{"a": n("a"), "b": n("b")},
		Edges: []Edge{{From: "a", To: "b"}, {From: "b", To: "a"}},
	}
	if _, err := (&Engine{}).Execute(context.Background(), g, NewState()); err == nil {
		t.Fatal("expected error")
	}
}

// --- Condition tests ---

func TestConditionFilter(t *testing.T) {
	p := &Pipeline{
		Name: "cond",
		Nodes: []NodeDef{
			{Component: "gap", Condition: ConditionMultiSpeaker},
			{Component: "pause"},
			{Component: "overlap", Condition: "unknown"},
		},
	}
	filter := ConditionFilter(p, DefaultConditions())

	tests := []struct {
		name     string
		speakers []string
		want     map[string]bool
	}{
		{"single speaker", []string{"A", "A"}, map[string]bool{"gap": false, "pause": true, "overlap": true}},
		{"two speakers", []string{"A", "B"}, map[string]bool{"gap": true, "pause": true, "overlap": true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewState()
			Write(state, ModelPort, testModel(tt.speakers...))
			for node, want := range tt.want {
				if got := filter(node, state); got != want {
					t.Errorf("%s = %v, want %v", node, got, want)
				}
			}
		})
	}
}

func TestEngine_ExecuteFiltered(t *testing.T) {
	var calls []string
	n := recorder(&calls)
	g := &Graph{
		Nodes: map[string]Node{"a": n("a"), "b": n("b")},
		Edges: []Edge{{From: "a", To: "b"}},
	}
	filter := func(name string, _ *State) bool { return name != "a" }

	result, err := (&Engine{}).ExecuteFiltered(context.Background(), g, NewState(), filter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(calls, []string{"b"}) {
		t.Fatalf("calls = %v", calls)
	}
	if result.NodeResults["a"].Status != StatusSkipped {
		t.Errorf("a status = %s", result.NodeResults["a"].Status)
	}
}

// --- Pipeline tests ---

func TestChain(t *testing.T) {
	p := Chain("default", "gap", "pause", "overlap")
	if len(p.Nodes) != 3 {
		t.Fatalf("nodes = %d", len(p.Nodes))
	}
	if len(p.Nodes[0].DependsOn) != 0 {
		t.Errorf("first node depends on %v", p.Nodes[0].DependsOn)
	}
	if !reflect.DeepEqual(p.Nodes[2].DependsOn, []string{"pause"}) {
		t.Errorf("overlap depends on %v", p.Nodes[2].DependsOn)
	}
}
