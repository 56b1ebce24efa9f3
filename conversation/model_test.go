package conversation

import (
	"testing"

	"github.com/kbukum/convokit/logger"
	"github.com/kbukum/convokit/marker"
	"github.com/kbukum/convokit/tokentree"
	"github.com/kbukum/convokit/transcript"
)

func tok(start, end float64, speaker, text string) tokentree.Token {
	return tokentree.Token{Start: start, End: end, Speaker: speaker, Text: text}
}

func twoSpeakerModel() *Model {
	return FromTokens([]tokentree.Token{
		tok(2.5, 3.0, "SP2", "Hi"),
		tok(0.0, 0.5, "SP1", "Hello"),
		tok(0.55, 1.0, "SP1", "there"),
	}, WithLogger(logger.Nop()), WithID("m-test"))
}

func TestFromTokensBuildsViews(t *testing.T) {
	m := twoSpeakerModel()

	if m.ID != "m-test" {
		t.Errorf("ID = %q", m.ID)
	}
	if got := m.TurnMap(false).Len(); got != 2 {
		t.Fatalf("turns = %d, want 2", got)
	}
	if got := m.SpeakerMap(false).Speakers(); len(got) != 2 || got[0] != "SP1" || got[1] != "SP2" {
		t.Errorf("speakers = %v", got)
	}
	stats := m.Stats()
	if stats.TokenCount != 3 || stats.TurnCount != 2 || stats.SpeakerCount != 2 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestGeneratedID(t *testing.T) {
	a := FromTokens(nil, WithLogger(logger.Nop()))
	b := FromTokens(nil, WithLogger(logger.Nop()))
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct generated ids, got %q and %q", a.ID, b.ID)
	}
}

func TestInsertMarkerAndRebuild(t *testing.T) {
	m := twoSpeakerModel()
	m.InsertMarker(1.0, 2.5, marker.New(marker.Gap, "1.5", marker.NoSpeaker))
	m.RebuildTurnMap()

	turns := m.TurnMap(false).Turns()
	if len(turns) != 3 {
		t.Fatalf("turns = %d, want 3", len(turns))
	}
	if !turns[1].IsMarker() {
		t.Errorf("middle turn should be the gap marker: %+v", turns[1])
	}
	stats := m.Stats()
	if stats.MarkerCounts[marker.Gap] != 1 {
		t.Errorf("marker counts = %v", stats.MarkerCounts)
	}
	if stats.SpeakerCount != 2 {
		t.Errorf("marker labels must not count as speakers, got %d", stats.SpeakerCount)
	}
}

func TestCopyAccessorsAreIndependent(t *testing.T) {
	m := twoSpeakerModel()

	tree := m.Tree(true)
	tree.Insert(9, 10, "SP3", "extra")
	if m.Tree(false).Len() != 3 {
		t.Fatalf("copied tree mutation leaked into model")
	}

	tm := m.TurnMap(true)
	tm.Turns()[0].Tokens[0].Text = "changed"
	if got := m.TurnMap(false).Turns()[0].Tokens[0].Text; got != "Hello" {
		t.Fatalf("copied turn map mutation leaked: %q", got)
	}

	if m.Tree(false) != m.Tree(false) {
		t.Fatal("non-copy accessor should return the live tree")
	}

	stats := m.Stats()
	stats.MarkerCounts[marker.Pause] = 99
	if m.Stats().MarkerCounts[marker.Pause] != 0 {
		t.Fatal("stats copy shares its marker counts map")
	}
}

func TestTokenEdits(t *testing.T) {
	m := twoSpeakerModel()

	if !m.ReplaceText(0.55, "world") {
		t.Fatal("ReplaceText on existing key failed")
	}
	if m.ReplaceText(7.7, "x") {
		t.Fatal("ReplaceText on missing key should report false")
	}
	if !m.DeleteToken(2.5) {
		t.Fatal("DeleteToken on existing key failed")
	}
	if m.DeleteToken(2.5) {
		t.Fatal("second delete should be a no-op")
	}
	m.InsertToken(tok(5, 6, "SP3", "late"))
	m.RebuildTurnMap()

	got, ok := m.Tree(false).Search(0.55)
	if !ok || got.Text != "world" {
		t.Errorf("Search(0.55) = %+v, %v", got, ok)
	}
	if m.Stats().TokenCount != 3 {
		t.Errorf("TokenCount = %d", m.Stats().TokenCount)
	}
}

func TestNextOverlapID(t *testing.T) {
	m := twoSpeakerModel()
	for want := 1; want <= 3; want++ {
		if got := m.NextOverlapID(); got != want {
			t.Fatalf("NextOverlapID = %d, want %d", got, want)
		}
	}
}

func TestUpdateStats(t *testing.T) {
	m := twoSpeakerModel()
	m.UpdateStats(func(s *Stats) {
		s.Median = 4.2
		s.SlowCount = 1
	})
	if s := m.Stats(); s.Median != 4.2 || s.SlowCount != 1 {
		t.Errorf("stats = %+v", s)
	}
	m.RebuildTurnMap()
	if s := m.Stats(); s.Median != 4.2 {
		t.Errorf("rebuild should keep detector statistics, got %+v", s)
	}
}

func TestFromTranscript(t *testing.T) {
	tr := transcript.FromMap(map[string][]transcript.Word{
		"a.wav": {{Start: 0, End: 0.4, Speaker: "spk", Text: "hi"}},
		"b.wav": {{Start: 0.5, End: 0.9, Speaker: "spk", Text: "yo"}},
	})
	m, err := FromTranscript(tr, WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("FromTranscript: %v", err)
	}
	if got := m.SpeakerMap(false).Speakers(); len(got) != 2 {
		t.Errorf("speakers = %v, want two remapped labels", got)
	}

	bad := transcript.FromMap(map[string][]transcript.Word{
		"a.wav": {{Start: 1, End: 0.5, Speaker: "spk", Text: "backwards"}},
	})
	if _, err := FromTranscript(bad); err == nil {
		t.Fatal("expected malformed word to fail the build")
	}
}

func TestFromTurnMap(t *testing.T) {
	src := twoSpeakerModel()
	m := FromTurnMap(src.TurnMap(true), WithLogger(logger.Nop()))
	if m.Tree(false).Len() != 3 || m.TurnMap(false).Len() != 2 {
		t.Fatalf("tokens=%d turns=%d", m.Tree(false).Len(), m.TurnMap(false).Len())
	}
}
