package convert

import (
	"fmt"
	"strings"

	"github.com/miku/vitakit/schema/scopus"
	"github.com/miku/vitakit/schema/vita"
)

// ScopusTypeMap maps aggregation type and subtype description pairs onto
// canonical types.
var ScopusTypeMap = map[string]string{
	"Journal/Article":                        vita.TypeJournalArticle,
	"Journal/Review":                         vita.TypeJournalArticle,
	"Journal/Article in Press":               vita.TypeJournalArticle,
	"Book/Book":                              vita.TypeBook,
	"Book/Book Chapter":                      vita.TypeBookChapter,
	"Book Series/Book Chapter":               vita.TypeBookChapter,
	"Conference Proceeding/Conference Paper": vita.TypeProceedingsArticle,
}

// ScopusEntryToPublication converts a search entry from the COMPLETE view.
// Conversion is offline; the crossref enrichment the original data may lack
// happens during reconciliation.
func ScopusEntryToPublication(entry *scopus.Entry) (*vita.Publication, error) {
	if entry == nil {
		return nil, fmt.Errorf("scopus entry cannot be nil")
	}
	title := cleanTitle(entry.Title)
	if title == "" {
		return nil, ErrNoTitle
	}
	date, year := parseAnyDate(entry.CoverDate)
	if year == 0 {
		return nil, ErrNoYear
	}
	key := entry.AggregationType + "/" + entry.SubtypeDescription
	typ, ok := ScopusTypeMap[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, key)
	}
	pub := vita.Publication{
		DOI:         CleanDOI(entry.DOI),
		Title:       title,
		Year:        year,
		Date:        date,
		Type:        typ,
		Source:      vita.SourceScopus,
		Journal:     strings.TrimSpace(entry.PublicationName),
		Volume:      strings.TrimSpace(entry.Volume),
		Pages:       strings.TrimSpace(entry.PageRange),
		Identifiers: map[string]string{},
	}
	if entry.EID != "" {
		pub.Identifiers[vita.IDEID] = entry.EID
	}
	if entry.PubmedID != "" {
		pub.Identifiers[vita.IDPMID] = entry.PubmedID
	}
	pub.Authors = splitList(entry.AuthorNames)
	pub.ScopusCoauthorIDs = splitList(entry.AuthorIDs)
	pub.FreeToRead = freeToRead(entry)
	if pub.DOI == "" && entry.EID == "" {
		return nil, ErrNoIdentifier
	}
	return &pub, nil
}

// freeToRead joins the open access labels of an entry, e.g.
// "publisherhybridgold repositoryvor".
func freeToRead(entry *scopus.Entry) string {
	var labels []string
	for _, v := range entry.FreeToRead.Value {
		if v.Text != "" {
			labels = append(labels, v.Text)
		}
	}
	return strings.Join(labels, " ")
}
