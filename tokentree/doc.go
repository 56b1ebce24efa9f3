// Package tokentree holds the timed tokens of one conversation in an
// unbalanced binary search tree keyed by start time.
//
// An in-order traversal yields tokens, spoken words and marker nodes alike,
// in non-decreasing start order. Every node is owned by exactly one parent
// slot; deletion moves the in-order successor into the vacated slot rather
// than copying values between nodes.
//
// Equal start times are allowed. A token inserted at an existing start time
// is placed before the tokens already stored at that time, which lets a
// marker attached to a word's start sort ahead of the word itself.
package tokentree
