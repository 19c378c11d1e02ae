// Package convert normalizes source-native publication records into the
// canonical vita.Publication shape. Converters are pure functions of their
// input; cross-referencing lookups belong to the reconcile phase.
package convert

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Skip marks records that are deliberately excluded from conversion, as
// opposed to records that fail to convert.
type Skip struct {
	err error
}

func (s Skip) Error() string {
	return s.err.Error()
}

var (
	ErrSkipPreprint    = Skip{err: errors.New("preprint")}
	ErrSkipTranslation = Skip{err: errors.New("translation")}
	ErrSkipNoAuthor    = Skip{err: errors.New("no author")}
	ErrSkipBook        = Skip{err: errors.New("crossref book record")}
)

// Conversion failures; callers count these under failed, not skipped.
var (
	ErrNoTitle      = errors.New("no title")
	ErrNoYear       = errors.New("no year")
	ErrNoIdentifier = errors.New("no identifier")
	ErrUnknownType  = errors.New("unknown publication type")
)

// IsSkip reports whether err marks a deliberately excluded record.
func IsSkip(err error) bool {
	var s Skip
	return errors.As(err, &s)
}

// dateString renders year, month and day as YYYY-MM-DD. Missing month and
// day default to 12 and 31, so year-only dates sort after fully dated
// records of the same year.
func dateString(year, month, day int64) string {
	if month < 1 || month > 12 {
		month = 12
	}
	if day < 1 || day > 31 {
		day = 31
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// parseDateParts turns a crossref style date-parts slice into a date
// string, applying the year-only convention.
func parseDateParts(parts []int64) string {
	var year, month, day int64
	switch {
	case len(parts) > 2:
		year, month, day = parts[0], parts[1], parts[2]
	case len(parts) > 1:
		year, month = parts[0], parts[1]
	case len(parts) > 0:
		year = parts[0]
	default:
		return ""
	}
	return dateString(year, month, day)
}

// parseAnyDate parses a free form date string, e.g. a scopus cover date.
// Returns the date formatted as YYYY-MM-DD and the year.
func parseAnyDate(s string) (string, int64) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", 0
	}
	if t, err := dateparse.ParseStrict(s); err == nil {
		return t.Format("2006-01-02"), int64(t.Year())
	}
	if len(s) >= 4 {
		if year, err := strconv.ParseInt(s[:4], 10, 64); err == nil && year > 1000 {
			return dateString(year, 0, 0), year
		}
	}
	return "", 0
}

// monthNumber parses numeric and abbreviated month names ("3", "Mar").
func monthNumber(s string) int64 {
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if t, err := time.Parse("Jan", s); err == nil {
		return int64(t.Month())
	}
	return 0
}

func cleanTitle(title string) string {
	title = strings.TrimSpace(title)
	title = strings.Join(strings.Fields(title), " ")
	return strings.TrimRight(title, ".")
}

// initials collapses given names into initials: "Russell A." -> "RA".
func initials(given string) string {
	var b strings.Builder
	for _, part := range strings.Fields(given) {
		r := []rune(part)
		if len(r) > 0 {
			b.WriteRune(r[0])
		}
	}
	return b.String()
}

// indexedName renders an author as "Family GI", the shape pubmed uses and
// all converters normalize to.
func indexedName(family, given string) string {
	family = strings.TrimSpace(family)
	given = strings.TrimSpace(given)
	switch {
	case family == "":
		return given
	case given == "":
		return family
	}
	return family + " " + initials(given)
}

// splitList splits scopus style semicolon joined values.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(s, ";") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// stripPMC removes the PMC prefix from a PubMed Central id, so the same
// article carries the same value regardless of source.
func stripPMC(pmcid string) string {
	return strings.TrimPrefix(strings.TrimSpace(pmcid), "PMC")
}
