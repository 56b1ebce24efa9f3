// Package turn derives turn-level and speaker-level views from the ordered
// token stream of a conversation.
//
// A Builder groups tokens into speaker-continuous turns. Marker nodes take
// part in grouping, but a marker sitting between two words of the same
// speaker does not split that speaker's turn: the builder looks back past
// marker turns for the speaker's continuing turn before opening a new one.
package turn
