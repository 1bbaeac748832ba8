package secret

import "strings"

// Mask returns a masked representation of a secret string so it can be
// logged without disclosing it. Short secrets are fully masked; medium
// secrets keep the first and last characters; long secrets keep the first
// three and the last one.
func Mask(s string) string {
	n := len(s)
	switch {
	case n == 0:
		return ""
	case n <= 5:
		return strings.Repeat("*", n)
	case n <= 20:
		return s[:1] + strings.Repeat("*", n-2) + s[n-1:]
	default:
		return s[:3] + strings.Repeat("*", n-4) + s[n-1:]
	}
}
