package detect

import (
	"context"
	"testing"

	"github.com/kbukum/convokit/marker"
	"github.com/kbukum/convokit/tokentree"
)

type placedWant struct {
	kind    marker.Kind
	at      float64
	speaker string
}

func TestOverlapFourMarkers(t *testing.T) {
	m := model(
		tok(0, 1, "A", "one"),
		tok(1, 2, "A", "two"),
		tok(2, 3, "A", "three"),
		tok(2.5, 3.5, "B", "wait"),
		tok(3.5, 4, "B", "what"),
	)
	if err := NewOverlap().Apply(context.Background(), m); err != nil {
		t.Fatal(err)
	}
	got := markersOf(t, m)
	want := []placedWant{
		{marker.OverlapFirstStart, 2.0, "A"},
		{marker.OverlapSecondStart, 2.5, "B"},
		{marker.OverlapFirstEnd, 3.0, "A"},
		{marker.OverlapSecondEnd, 3.5, "B"},
	}
	if len(got) != len(want) {
		t.Fatalf("markers = %d, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		g := got[i]
		if g.marker.Kind != w.kind || g.start != w.at || g.end != w.at || g.marker.Speaker != w.speaker {
			t.Errorf("marker %d = %+v at [%v, %v], want %s at %v by %s", i, g.marker, g.start, g.end, w.kind, w.at, w.speaker)
		}
		if g.marker.Info != "1" {
			t.Errorf("marker %d overlap id = %q, want 1", i, g.marker.Info)
		}
	}

	at := map[marker.Kind]float64{}
	for _, g := range got {
		at[g.marker.Kind] = g.start
	}
	if at[marker.OverlapFirstEnd] < at[marker.OverlapFirstStart] || at[marker.OverlapSecondEnd] < at[marker.OverlapSecondStart] {
		t.Errorf("end markers precede start markers: %v", at)
	}
}

func TestOverlapIDsAreSequential(t *testing.T) {
	m := model(
		tok(0, 2, "A", "one"),
		tok(1.5, 3, "B", "two"),
		tok(2.8, 4, "A", "three"),
	)
	if err := NewOverlap().Apply(context.Background(), m); err != nil {
		t.Fatal(err)
	}
	ids := map[string]int{}
	for _, g := range markersOf(t, m) {
		ids[g.marker.Info]++
	}
	if ids["1"] != 4 || ids["2"] != 4 || len(ids) != 2 {
		t.Fatalf("overlap ids = %v", ids)
	}
}

func TestNoOverlapWhenSequential(t *testing.T) {
	m := model(tok(0, 1, "A", "one"), tok(1, 2, "B", "two"))
	if err := NewOverlap().Apply(context.Background(), m); err != nil {
		t.Fatal(err)
	}
	if got := markersOf(t, m); len(got) != 0 {
		t.Fatalf("touching turns do not overlap: %+v", got)
	}
}

func TestIntersecting(t *testing.T) {
	tokens := []tokentree.Token{
		tok(0, 1, "A", "x"),
		tok(1, 2, "A", "y"),
		tok(2, 3, "A", "z"),
	}
	tests := []struct {
		start, end  float64
		first, last int
	}{
		{0.5, 1.5, 0, 1},
		{1, 2, 1, 1},
		{3, 4, -1, -1},
		{-1, 0, -1, -1},
		{0, 10, 0, 2},
	}
	for _, tt := range tests {
		first, last := intersecting(tokens, tt.start, tt.end)
		if first != tt.first || last != tt.last {
			t.Errorf("intersecting([%v,%v)) = %d, %d; want %d, %d", tt.start, tt.end, first, last, tt.first, tt.last)
		}
	}
}
