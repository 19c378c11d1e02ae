package convert

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/miku/vitakit/schema/vita"
)

// CSVTypeMap maps the free text type column of the manual publications CSV
// onto canonical types. Unrecognized values fail conversion; we never
// guess.
var CSVTypeMap = map[string]string{
	"journal-article":     vita.TypeJournalArticle,
	"book":                vita.TypeBook,
	"book-chapter":        vita.TypeBookChapter,
	"proceedings-article": vita.TypeProceedingsArticle,
}

// ManualRow is one row of the supplemental publications CSV, for works that
// no API covers (e.g. book chapters).
type ManualRow struct {
	DOI       string
	ISBN      string
	Type      string
	Title     string
	Year      string
	Authors   string
	Journal   string
	Volume    string
	Page      string
	Publisher string
}

// ReadManualCSV reads the supplemental publications file. Columns are
// matched by header name; unknown columns are ignored.
func ReadManualCSV(r io.Reader) ([]ManualRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, err
	}
	idx := make(map[string]int)
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	field := func(rec []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	var rows []ManualRow
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, ManualRow{
			DOI:       field(rec, "doi"),
			ISBN:      field(rec, "isbn"),
			Type:      field(rec, "type"),
			Title:     field(rec, "title"),
			Year:      field(rec, "year"),
			Authors:   field(rec, "authors"),
			Journal:   field(rec, "journal"),
			Volume:    field(rec, "volume"),
			Page:      field(rec, "page"),
			Publisher: field(rec, "publisher"),
		})
	}
	return rows, nil
}

// ManualRowToPublication converts one CSV row into the canonical shape.
// Manual rows carry year-only dates, which get the 12-31 convention.
func ManualRowToPublication(row ManualRow) (*vita.Publication, error) {
	title := cleanTitle(row.Title)
	if title == "" {
		return nil, ErrNoTitle
	}
	year, err := strconv.ParseInt(row.Year, 10, 64)
	if err != nil || year == 0 {
		return nil, ErrNoYear
	}
	typ, ok := CSVTypeMap[strings.ToLower(strings.TrimSpace(row.Type))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, row.Type)
	}
	pub := vita.Publication{
		DOI:         CleanDOI(row.DOI),
		Title:       title,
		Year:        year,
		Date:        dateString(year, 0, 0),
		Type:        typ,
		Source:      vita.SourceManual,
		Volume:      row.Volume,
		Pages:       row.Page,
		Publisher:   row.Publisher,
		Identifiers: map[string]string{},
	}
	if typ == vita.TypeBook {
		pub.Journal = title
	} else {
		pub.Journal = row.Journal
	}
	if row.ISBN != "" {
		pub.Identifiers[vita.IDISBN] = row.ISBN
	}
	for _, author := range strings.Split(row.Authors, ",") {
		if author = strings.TrimSpace(author); author != "" {
			pub.Authors = append(pub.Authors, author)
		}
	}
	return &pub, nil
}

// LinkRow is one row of the link annotations CSV: DOI, kind (Data, Code,
// OSF), URL.
type LinkRow struct {
	DOI  string
	Kind string
	URL  string
}

// ReadLinksCSV reads link annotations. Expected header: DOI,type,url.
func ReadLinksCSV(r io.Reader) ([]LinkRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	var rows []LinkRow
	for _, rec := range records[1:] {
		if len(rec) < 3 {
			continue
		}
		rows = append(rows, LinkRow{
			DOI:  CleanDOI(rec[0]),
			Kind: strings.TrimSpace(rec[1]),
			URL:  strings.TrimSpace(rec[2]),
		})
	}
	return rows, nil
}
