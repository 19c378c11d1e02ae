package convert

import (
	"regexp"
	"strings"
)

var doiRegex = regexp.MustCompile(`^10\.\d{4,}/\S+$`)

// CleanDOI normalizes a raw DOI string: lowercase, resolver prefixes
// stripped. Returns the empty string for values that cannot be a DOI.
func CleanDOI(raw string) string {
	if raw == "" {
		return ""
	}
	raw = strings.TrimSpace(strings.ToLower(raw))
	if strings.Count(raw, " ") != 0 {
		return ""
	}
	raw = strings.TrimPrefix(raw, "doi:")
	raw = strings.TrimPrefix(raw, "https://")
	raw = strings.TrimPrefix(raw, "http://")
	raw = strings.TrimPrefix(raw, "dx.doi.org/")
	raw = strings.TrimPrefix(raw, "doi.org/")
	if !strings.HasPrefix(raw, "10.") {
		return ""
	}
	if !doiRegex.MatchString(raw) {
		return ""
	}
	if !isASCII(raw) {
		return ""
	}
	return raw
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > 127 {
			return false
		}
	}
	return true
}
