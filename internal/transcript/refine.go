package transcript

import (
	"errors"
	"regexp"
	"strings"
)

// ErrBlankMapping reports a speaker mapping entry with an empty key or value.
var ErrBlankMapping = errors.New("speaker mapping keys and values cannot be blank")

// MappingEntry pairs a placeholder tag with the resolved speaker name.
type MappingEntry struct {
	Placeholder string
	Name        string
}

// SpeakerMapping preserves the order entries were supplied in; replacement and
// change reporting follow that order.
type SpeakerMapping []MappingEntry

// Validate rejects entries whose placeholder or name is empty or whitespace.
func (m SpeakerMapping) Validate() error {
	for _, e := range m {
		if strings.TrimSpace(e.Placeholder) == "" || strings.TrimSpace(e.Name) == "" {
			return ErrBlankMapping
		}
	}
	return nil
}

// Change records one placeholder that was rewritten.
type Change struct {
	Placeholder string
	Replacement string
	Occurrences int
}

// Refine replaces speaker placeholders with their mapped names and reports one
// Change per placeholder that occurred at least once, in mapping order.
// Placeholders absent from the text are omitted from the change list. The
// replacement is purely deterministic; free-text feedback supplied alongside a
// mapping never alters this path.
func Refine(text string, mapping SpeakerMapping) (string, []Change, error) {
	if err := mapping.Validate(); err != nil {
		return "", nil, err
	}
	out := text
	var changes []Change
	for _, e := range mapping {
		var n int
		out, n = replaceTag(out, e.Placeholder, e.Name)
		if n > 0 {
			changes = append(changes, Change{Placeholder: e.Placeholder, Replacement: e.Name, Occurrences: n})
		}
	}
	return out, changes, nil
}

// replaceTag rewrites bracketed "[ph]" tokens wherever they appear; when the
// text has none, it falls back to the bare label form at the start of a line
// ("ph:" or "ph [MM:SS]:"). Occurrences of the placeholder inside ordinary
// prose are never touched.
func replaceTag(text, ph, name string) (string, int) {
	token := "[" + ph + "]"
	if n := strings.Count(text, token); n > 0 {
		return strings.ReplaceAll(text, token, "["+name+"]"), n
	}
	re := regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(ph) + `(?:\s*\[\d{1,2}:\d{2}\])?\s*:`)
	n := 0
	out := re.ReplaceAllStringFunc(text, func(m string) string {
		n++
		return name + strings.TrimPrefix(m, ph)
	})
	return out, n
}
