package present

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/convokit/errors"
	"github.com/kbukum/convokit/marker"
	"github.com/kbukum/convokit/util"
	"github.com/kbukum/convokit/validation"
)

// Attribute selects the speaker label a resolved marker carries.
type Attribute string

const (
	// AttributeTag keeps the marker kind as the speaker label, so the marker
	// stands in a turn of its own.
	AttributeTag Attribute = "tag"
	// AttributeSpeaker attributes the marker to its markerSpeaker, so it
	// joins that speaker's turn.
	AttributeSpeaker Attribute = "speaker"
)

// Placeholders substituted in templates.
const (
	PlaceholderInfo    = "{info}"
	PlaceholderSpeaker = "{speaker}"
	PlaceholderKind    = "{kind}"
)

// Entry is the surface form of one marker kind.
type Entry struct {
	// Template is the rendered text. It may contain placeholders.
	Template string `yaml:"template"`
	// GlyphTemplate replaces Template when the payload is a glyph rather
	// than a number, such as the latch sign of a pause.
	GlyphTemplate string `yaml:"glyph_template,omitempty"`
	// Attribute selects the resolved speaker label. Empty means tag.
	Attribute Attribute `yaml:"attribute,omitempty"`
}

// Render substitutes the marker's fields into the entry template.
func (e Entry) Render(m marker.Marker) string {
	tmpl := e.Template
	if e.GlyphTemplate != "" && !isNumeric(m.Info) {
		tmpl = e.GlyphTemplate
	}
	return strings.NewReplacer(
		PlaceholderInfo, m.Info,
		PlaceholderSpeaker, m.Speaker,
		PlaceholderKind, string(m.Kind),
	).Replace(tmpl)
}

// Vocabulary maps every marker kind to its surface form in one output format.
type Vocabulary struct {
	Name string `yaml:"name"`
	// Passthrough re-emits markers unchanged in their encoded form.
	Passthrough bool                 `yaml:"passthrough,omitempty"`
	Entries     map[marker.Kind]Entry `yaml:"entries"`
}

// Lookup returns the entry for kind, or UNKNOWN_MARKER_KIND.
func (v *Vocabulary) Lookup(kind marker.Kind) (Entry, error) {
	e, ok := v.Entries[kind]
	if !ok {
		return Entry{}, errors.UnknownMarkerKind(v.Name, string(kind))
	}
	return e, nil
}

// Validate checks that a non-passthrough vocabulary covers every marker kind
// and uses known attributes.
func (v *Vocabulary) Validate() error {
	val := validation.New().Required("name", v.Name)
	if appErr := val.Validate(); appErr != nil {
		return appErr
	}
	if v.Passthrough {
		return nil
	}
	for _, kind := range marker.Kinds() {
		e, err := v.Lookup(kind)
		if err != nil {
			return err
		}
		switch e.Attribute {
		case "", AttributeTag, AttributeSpeaker:
		default:
			return errors.InvalidInput(fmt.Sprintf("entries.%s.attribute", kind),
				fmt.Sprintf("must be %q or %q", AttributeTag, AttributeSpeaker))
		}
	}
	for kind := range v.Entries {
		if !kind.Valid() {
			return errors.UnknownMarkerKind(v.Name, string(kind))
		}
	}
	return nil
}

// Clone returns a copy of v whose Entries can be changed independently.
func (v *Vocabulary) Clone() *Vocabulary {
	out := *v
	out.Entries = maps.Clone(v.Entries)
	return &out
}

// LoadVocabulary reads and validates a YAML vocabulary file.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NotFound("vocabulary", path).WithCause(err)
	}
	return ParseVocabulary(data)
}

// ParseVocabulary decodes and validates a YAML vocabulary.
func ParseVocabulary(data []byte) (*Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, errors.InvalidFormat("vocabulary", "YAML vocabulary document").WithCause(err)
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return &v, nil
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// Builtin returns a fresh copy of the built-in vocabulary called name,
// case-insensitively. Callers may modify it.
func Builtin(name string) (*Vocabulary, error) {
	for _, build := range builtins {
		if v := build(); strings.EqualFold(v.Name, name) {
			return v, nil
		}
	}
	return nil, errors.NotFound("vocabulary", name).WithDetail("known", BuiltinNames())
}

// BuiltinNames lists the built-in vocabularies.
func BuiltinNames() []string {
	names := util.Map(builtins, func(build func() *Vocabulary) string { return build().Name })
	slices.Sort(names)
	return names
}
