package transcript

// Word is one recognized token.
type Word struct {
	// Start is the word start time in seconds.
	Start float64 `json:"start" validate:"finite,gte=0"`
	// End is the word end time in seconds.
	End float64 `json:"end" validate:"finite,gtefield=Start"`
	// Speaker is the speaker label assigned by recognition or diarization.
	Speaker string `json:"speaker" validate:"required"`
	// Text is the recognized word.
	Text string `json:"text" validate:"required"`
}

// Source is the word stream recognized from one file or channel.
type Source struct {
	// Key identifies the file or channel.
	Key string `json:"key" validate:"required"`
	// Words are the recognized words in time order.
	Words []Word `json:"words"`
}

// Transcript is the full input of one conversation.
type Transcript struct {
	Sources []Source `json:"sources"`
}

// Segment is a time-aligned portion of a transcript as returned by
// segment-level recognizers.
type Segment struct {
	// Start is the segment start time in seconds.
	Start float64 `json:"start"`
	// End is the segment end time in seconds.
	End float64 `json:"end"`
	// Text is the transcribed text for this segment.
	Text string `json:"text"`
	// Speaker is the identified speaker label, if available.
	Speaker string `json:"speaker,omitempty"`
	// Words holds word-level timings when the recognizer provides them.
	Words []Word `json:"words,omitempty"`
}

// SpeakerSegment is a speaker-attributed time range from diarization.
type SpeakerSegment struct {
	// Speaker is the identified speaker label.
	Speaker string `json:"speaker"`
	// Start is the segment start time in seconds.
	Start float64 `json:"start"`
	// End is the segment end time in seconds.
	End float64 `json:"end"`
}
