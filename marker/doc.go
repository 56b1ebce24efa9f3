// Package marker defines the synthetic discourse-event entries that
// detectors place into a conversation's token tree.
//
// Inside the engine a marker is the tagged value Marker{Kind, Info, Speaker}.
// At the tree-storage boundary it is serialized into the token text as
//
//	(markerType=<kind>:markerInfo=<payload>:markerSpeaker=<speaker>)
//
// and the token's speaker label is set to the kind, which is how marker
// nodes are told apart from spoken words.
package marker
