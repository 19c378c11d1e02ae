package convert

import (
	"fmt"
	"strings"

	"github.com/miku/vitakit/schema/crossref"
	"github.com/miku/vitakit/schema/vita"
	"github.com/segmentio/encoding/json"
)

// CrossrefTypeMap maps crossref work types onto the canonical publication
// types. Anything not listed here is either skipped (see below) or fails
// conversion.
var CrossrefTypeMap = map[string]string{
	"journal-article":     vita.TypeJournalArticle,
	"book-chapter":        vita.TypeBookChapter,
	"book-section":        vita.TypeBookChapter,
	"proceedings-article": vita.TypeProceedingsArticle,
	"monograph":           vita.TypeBook,
	"edited-book":         vita.TypeBook,
}

// CrossrefWorkToPublication converts a crossref work into the canonical
// shape. Preprints, translations and author-less records (typically errata)
// are skipped; crossref book records are skipped because their metadata is
// unreliable and books enter via the manual CSV path.
func CrossrefWorkToPublication(work *crossref.Work) (*vita.Publication, error) {
	if work == nil {
		return nil, fmt.Errorf("crossref work cannot be nil")
	}
	doi := CleanDOI(work.DOI)
	if doi == "" {
		return nil, ErrNoIdentifier
	}
	switch work.Type {
	case "posted-content":
		return nil, ErrSkipPreprint
	case "book", "reference-book":
		return nil, ErrSkipBook
	}
	if len(work.Translator) > 0 && string(work.Translator) != "null" {
		return nil, ErrSkipTranslation
	}
	typ, ok := CrossrefTypeMap[work.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, work.Type)
	}
	if len(work.Title) == 0 || cleanTitle(work.Title[0]) == "" {
		return nil, ErrNoTitle
	}
	authors, err := crossrefAuthors(work.Author)
	if err != nil || len(authors) == 0 {
		return nil, ErrSkipNoAuthor
	}
	pub := vita.Publication{
		DOI:     doi,
		Title:   cleanTitle(work.Title[0]),
		Type:    typ,
		Source:  vita.SourceCrossref,
		Authors: authors,
		Volume:  strings.TrimSpace(work.Volume),
	}
	// The year can show up in a few different places.
	for _, parts := range [][]crossref.DatePart{
		work.PublishedPrint.DateParts,
		work.JournalIssue.PublishedPrint.DateParts,
		work.JournalIssue.PublishedOnline.DateParts,
		work.PublishedOnline.DateParts,
		work.Published.DateParts,
		work.Issued.DateParts,
	} {
		if len(parts) > 0 && len(parts[0]) > 0 {
			pub.Year = parts[0][0]
			break
		}
	}
	if pub.Year == 0 {
		return nil, ErrNoYear
	}
	if len(work.Published.DateParts) > 0 {
		pub.Date = parseDateParts(work.Published.DateParts[0])
	} else {
		pub.Date = dateString(pub.Year, 0, 0)
	}
	if page := strings.TrimSpace(work.Page); page != "" && !strings.Contains(page, "n/a") {
		pub.Pages = page
	}
	if len(work.ContainerTitle) > 0 {
		pub.Journal = strings.TrimSpace(work.ContainerTitle[0])
	}
	pub.Publisher = strings.TrimSpace(work.Publisher)
	return &pub, nil
}

// crossrefAuthors decodes the author blob, which varies in shape across
// crossref members, and renders indexed names.
func crossrefAuthors(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var authors []crossref.Author
	if err := json.Unmarshal(raw, &authors); err != nil {
		return nil, err
	}
	var names []string
	for _, author := range authors {
		if author.Family == "" && author.Given == "" {
			continue
		}
		names = append(names, indexedName(author.Family, author.Given))
	}
	return names, nil
}
