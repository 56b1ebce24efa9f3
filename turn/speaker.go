package turn

// SpeakerTurns holds one speaker's turns in temporal order.
type SpeakerTurns struct {
	Turns []Turn `json:"turns"`
}

// SpeakerMap groups turns by the speaker label of their first token.
// Labels keep first-seen order.
type SpeakerMap struct {
	order   []string
	entries map[string]*SpeakerTurns
}

// GroupBySpeaker builds a SpeakerMap in a single pass over m.
func GroupBySpeaker(m *Map) *SpeakerMap {
	sm := &SpeakerMap{entries: make(map[string]*SpeakerTurns)}
	for t := range m.All() {
		label := t.Speaker()
		entry, ok := sm.entries[label]
		if !ok {
			entry = &SpeakerTurns{}
			sm.entries[label] = entry
			sm.order = append(sm.order, label)
		}
		entry.Turns = append(entry.Turns, t)
	}
	return sm
}

// Speakers returns speaker labels in first-seen order.
func (sm *SpeakerMap) Speakers() []string {
	out := make([]string, len(sm.order))
	copy(out, sm.order)
	return out
}

// Get returns the turns of one speaker.
func (sm *SpeakerMap) Get(label string) (SpeakerTurns, bool) {
	entry, ok := sm.entries[label]
	if !ok {
		return SpeakerTurns{}, false
	}
	return *entry, true
}

// Len returns the number of distinct labels.
func (sm *SpeakerMap) Len() int { return len(sm.order) }

// Clone returns a deep copy.
func (sm *SpeakerMap) Clone() *SpeakerMap {
	out := &SpeakerMap{
		order:   sm.Speakers(),
		entries: make(map[string]*SpeakerTurns, len(sm.entries)),
	}
	for label, entry := range sm.entries {
		turns := make([]Turn, len(entry.Turns))
		for i, t := range entry.Turns {
			turns[i] = t.Clone()
		}
		out.entries[label] = &SpeakerTurns{Turns: turns}
	}
	return out
}
