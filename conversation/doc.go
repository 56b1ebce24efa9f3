// Package conversation provides the ConversationModel aggregate: the token
// tree of one transcript plus the turn-level, speaker-level, and
// conversation-level views derived from it.
//
// A Model is the single mutable owner of its tree. It is not safe for
// concurrent use; detectors borrow it one at a time, and parallel
// transcripts each get their own Model.
package conversation
