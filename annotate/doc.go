// Package annotate runs the full annotation flow for one transcript: build
// the conversation model, execute the detector pipeline over it, then
// resolve the markers with a presentation vocabulary.
//
// A Service is built once from Config and is safe for concurrent use; each
// call builds its own model.
package annotate
