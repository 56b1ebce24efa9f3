// Package present resolves marker nodes into the surface strings of an
// output vocabulary and regroups the result into turns ready for a
// format-specific writer.
//
// Built-in vocabularies cover CHAT, TXT, CSV, and XML conventions, plus Raw,
// which re-emits markers in their encoded form. Additional vocabularies can
// be loaded from YAML:
//
//	name: SRT
//	entries:
//	  gaps:
//	    template: "[{info}s]"
//	    attribute: tag
//	  pauses:
//	    template: "({info})"
//	    glyph_template: "{info}"
//	    attribute: speaker
package present
