package vita

// Source names. The default precedence order for scalar field merges is
// scopus, pubmed, crossref, orcid, manual; established by processing order,
// not by field content.
const (
	SourceScopus   = "scopus"
	SourcePubmed   = "pubmed"
	SourceCrossref = "crossref"
	SourceOrcid    = "orcid"
	SourceManual   = "manual"
)

// Publication types vitakit can render.
const (
	TypeJournalArticle     = "journal-article"
	TypeBook               = "book"
	TypeBookChapter        = "book-chapter"
	TypeProceedingsArticle = "proceedings-article"
)

// Identifier kinds used as keys in Publication.Identifiers.
const (
	IDPMID  = "pmid"
	IDPMCID = "pmcid"
	IDISBN  = "isbn"
	IDEID   = "eid"
	IDNoDOI = "nodoi"
)

// Citation holds pre-rendered reference strings, attached by the render
// stage after reconciliation.
type Citation struct {
	Latex    string `json:"latex,omitempty"`
	Markdown string `json:"md,omitempty"`
}

// Publication is the canonical shape every source converter produces. Title
// and Year are required; a missing value is a conversion failure. DOI, when
// present, is lowercase and stripped of resolver prefixes. Records without a
// DOI carry a synthetic "nodoi" token in Identifiers once resolved.
type Publication struct {
	DOI               string            `json:"doi,omitempty"`
	Title             string            `json:"title"`
	Year              int64             `json:"year"`
	Date              string            `json:"date,omitempty"` // YYYY-MM-DD
	Authors           []string          `json:"authors,omitempty"`
	Journal           string            `json:"journal,omitempty"`
	Volume            string            `json:"volume,omitempty"`
	Pages             string            `json:"pages,omitempty"`
	Publisher         string            `json:"publisher,omitempty"`
	FreeToRead        string            `json:"freetoread,omitempty"` // scopus open access labels, space separated
	Type              string            `json:"type"`
	Source            string            `json:"source"`
	Identifiers       map[string]string `json:"identifiers,omitempty"`
	ScopusCoauthorIDs []string          `json:"scopus_coauthor_ids,omitempty"`
	Links             map[string]string `json:"links,omitempty"`
	Citation          *Citation         `json:"citation,omitempty"`
}

// FirstAuthor returns the first entry of the author list, or the empty
// string.
func (p *Publication) FirstAuthor() string {
	if len(p.Authors) == 0 {
		return ""
	}
	return p.Authors[0]
}

// Clone returns a deep copy. The store hands out clones, so committed
// records stay immutable.
func (p *Publication) Clone() *Publication {
	c := *p
	if p.Authors != nil {
		c.Authors = append([]string(nil), p.Authors...)
	}
	if p.ScopusCoauthorIDs != nil {
		c.ScopusCoauthorIDs = append([]string(nil), p.ScopusCoauthorIDs...)
	}
	if p.Identifiers != nil {
		c.Identifiers = make(map[string]string, len(p.Identifiers))
		for k, v := range p.Identifiers {
			c.Identifiers[k] = v
		}
	}
	if p.Links != nil {
		c.Links = make(map[string]string, len(p.Links))
		for k, v := range p.Links {
			c.Links[k] = v
		}
	}
	if p.Citation != nil {
		cit := *p.Citation
		c.Citation = &cit
	}
	return &c
}

// Coauthor is derived by folding scopus coauthor ids over the reconciled
// set. Computed on demand, not persisted as primary data.
type Coauthor struct {
	ScopusID     string   `json:"scopus_id"`
	Name         string   `json:"name,omitempty"`
	Affiliations []string `json:"affiliations,omitempty"`
	Dates        []string `json:"dates,omitempty"` // sorted, YYYY-MM-DD
	NumPubs      int      `json:"num_pubs"`
}

// ScholarMetrics are the citation metrics scraped from a Google Scholar
// profile page; best effort, any field may be zero.
type ScholarMetrics struct {
	Citations     int64 `json:"citations,omitempty"`
	Citations5y   int64 `json:"citations5y,omitempty"`
	HIndex        int64 `json:"hindex,omitempty"`
	HIndex5y      int64 `json:"hindex5y,omitempty"`
	I10Index      int64 `json:"i10index,omitempty"`
	I10Index5y    int64 `json:"i10index5y,omitempty"`
	ProfileScrape bool  `json:"profile_scrape,omitempty"`
}
