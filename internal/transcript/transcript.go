package transcript

import (
	"regexp"
	"strings"
)

// Speaker labels look like "[Speaker A]:" or "[Speaker A] [12:05]:" followed
// by text; a bare "[00:31]:" is a timestamp, not a speaker.
var (
	tagRe       = regexp.MustCompile(`\[([^\]]+)\](?:\s*\[(\d{1,2}:\d{2})\])?:`)
	timestampRe = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
)

// Utterance is one speaker turn in a transcript.
type Utterance struct {
	Speaker   string
	Timestamp string
	Text      string
}

// Parse splits raw model output into utterances at each speaker label. Text
// before the first label is kept as an utterance with an empty Speaker so no
// content is lost. Input with no labels at all becomes a single utterance.
func Parse(text string) []Utterance {
	ms := tagRe.FindAllStringSubmatchIndex(text, -1)
	if len(ms) == 0 {
		t := strings.TrimSpace(text)
		if t == "" {
			return nil
		}
		return []Utterance{{Text: t}}
	}
	var utts []Utterance
	if lead := strings.TrimSpace(text[:ms[0][0]]); lead != "" {
		utts = append(utts, Utterance{Text: lead})
	}
	for i, m := range ms {
		end := len(text)
		if i+1 < len(ms) {
			end = ms[i+1][0]
		}
		u := Utterance{
			Speaker: text[m[2]:m[3]],
			Text:    strings.TrimSpace(text[m[1]:end]),
		}
		if m[4] >= 0 {
			u.Timestamp = text[m[4]:m[5]]
		}
		utts = append(utts, u)
	}
	return utts
}

// Speakers returns the distinct speaker tags in the order they first appear.
// Bare timestamp labels are skipped.
func Speakers(text string) []string {
	seen := map[string]bool{}
	var out []string
	for _, u := range Parse(text) {
		if u.Speaker == "" || timestampRe.MatchString(u.Speaker) || seen[u.Speaker] {
			continue
		}
		seen[u.Speaker] = true
		out = append(out, u.Speaker)
	}
	return out
}
