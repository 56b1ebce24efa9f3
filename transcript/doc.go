// Package transcript is the ingestion boundary of convokit. It holds the
// word-level output of speech recognition, grouped by source file or channel,
// validates it, and flattens it into tree tokens with speaker labels that
// stay unique when several sources are merged into one conversation.
package transcript
