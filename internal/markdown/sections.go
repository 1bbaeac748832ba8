package markdown

import (
	"regexp"
	"strings"
)

var sectionRe = regexp.MustCompile(`(?m)^##\s+(.+)$`)

// Sections returns the level-two heading titles of md in document order,
// trimmed of surrounding whitespace. Level-two headings are the section level
// of generated summaries; level-one titles and deeper headings are ignored.
// Duplicate titles are kept as they appear.
func Sections(md string) []string {
	var out []string
	for _, m := range sectionRe.FindAllStringSubmatch(md, -1) {
		out = append(out, strings.TrimSpace(m[1]))
	}
	return out
}
