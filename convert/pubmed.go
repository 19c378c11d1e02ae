package convert

import (
	"strconv"
	"strings"

	"github.com/miku/vitakit/schema/pubmed"
	"github.com/miku/vitakit/schema/vita"
)

// PubmedArticleToPublication converts one efetch article. Everything pubmed
// returns for our queries is a journal article.
func PubmedArticleToPublication(doc *pubmed.Article) (*vita.Publication, error) {
	article := doc.MedlineCitation.Article
	title := cleanTitle(article.ArticleTitle.Text)
	if title == "" {
		return nil, ErrNoTitle
	}
	year := pubmedYear(article.Journal.JournalIssue.PubDate)
	if year == 0 {
		return nil, ErrNoYear
	}
	pub := vita.Publication{
		Title:       title,
		Year:        year,
		Type:        vita.TypeJournalArticle,
		Source:      vita.SourcePubmed,
		Volume:      article.Journal.JournalIssue.Volume,
		Pages:       article.Pagination.MedlinePgn,
		Identifiers: map[string]string{},
	}
	if article.Journal.ISOAbbreviation != "" {
		pub.Journal = article.Journal.ISOAbbreviation
	} else {
		pub.Journal = article.Journal.Title
	}
	// Prefer the day-level article date over the journal issue date.
	if len(article.ArticleDate) > 0 {
		pub.Date = pubmedDate(article.ArticleDate[0])
	} else {
		pub.Date = pubmedDate(article.Journal.JournalIssue.PubDate)
	}
	for _, author := range article.AuthorList.Author {
		if author.LastName == "" {
			continue
		}
		if author.Initials != "" {
			pub.Authors = append(pub.Authors, author.LastName+" "+author.Initials)
		} else {
			pub.Authors = append(pub.Authors, indexedName(author.LastName, author.ForeName))
		}
	}
	if pmid := doc.MedlineCitation.PMID.Text; pmid != "" {
		pub.Identifiers[vita.IDPMID] = pmid
	}
	for _, id := range doc.PubmedData.ArticleIdList.ArticleId {
		switch id.IdType {
		case "doi":
			pub.DOI = CleanDOI(id.Text)
		case "pubmed":
			pub.Identifiers[vita.IDPMID] = id.Text
		case "pmc":
			pub.Identifiers[vita.IDPMCID] = stripPMC(id.Text)
		}
	}
	return &pub, nil
}

// pubmedYear extracts the year from a PubDate, falling back to the leading
// token of a MedlineDate like "1998 Dec-1999 Jan".
func pubmedYear(d pubmed.Date) int64 {
	if d.Year != "" {
		if year, err := strconv.ParseInt(d.Year, 10, 64); err == nil {
			return year
		}
	}
	if fields := strings.Fields(d.MedlineDate); len(fields) > 0 {
		if year, err := strconv.ParseInt(fields[0], 10, 64); err == nil {
			return year
		}
	}
	return 0
}

// pubmedDate renders a pubmed date element, applying the year-only
// convention for missing month and day.
func pubmedDate(d pubmed.Date) string {
	year := pubmedYear(d)
	if year == 0 {
		return ""
	}
	var day int64
	if n, err := strconv.ParseInt(d.Day, 10, 64); err == nil {
		day = n
	}
	return dateString(year, monthNumber(d.Month), day)
}
