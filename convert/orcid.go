package convert

import (
	"fmt"
	"strconv"

	"github.com/miku/vitakit/schema/orcid"
	"github.com/miku/vitakit/schema/vita"
)

// OrcidTypeMap maps ORCID work types onto canonical types.
var OrcidTypeMap = map[string]string{
	"journal-article":     vita.TypeJournalArticle,
	"book":                vita.TypeBook,
	"book-chapter":        vita.TypeBookChapter,
	"conference-paper":    vita.TypeProceedingsArticle,
	"proceedings-article": vita.TypeProceedingsArticle,
}

// OrcidWorkToPublication converts an ORCID work summary. ORCID summaries
// carry no author list; authors arrive from the other sources during
// reconciliation.
func OrcidWorkToPublication(ws *orcid.WorkSummary) (*vita.Publication, error) {
	if ws == nil {
		return nil, fmt.Errorf("orcid work summary cannot be nil")
	}
	title := cleanTitle(ws.Title.Title.Value)
	if title == "" {
		return nil, ErrNoTitle
	}
	typ, ok := OrcidTypeMap[ws.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, ws.Type)
	}
	year, _ := strconv.ParseInt(ws.PublicationDate.Year.Value, 10, 64)
	if year == 0 {
		return nil, ErrNoYear
	}
	month, _ := strconv.ParseInt(ws.PublicationDate.Month.Value, 10, 64)
	day, _ := strconv.ParseInt(ws.PublicationDate.Day.Value, 10, 64)
	pub := vita.Publication{
		Title:       title,
		Year:        year,
		Date:        dateString(year, month, day),
		Type:        typ,
		Source:      vita.SourceOrcid,
		Journal:     ws.JournalTitle.Value,
		Identifiers: map[string]string{},
	}
	for _, eid := range ws.ExternalIds.ExternalId {
		switch eid.Type {
		case "doi":
			pub.DOI = CleanDOI(eid.Value)
		case "pmid":
			pub.Identifiers[vita.IDPMID] = eid.Value
		case "pmc":
			pub.Identifiers[vita.IDPMCID] = stripPMC(eid.Value)
		case "isbn":
			pub.Identifiers[vita.IDISBN] = eid.Value
		}
	}
	return &pub, nil
}
