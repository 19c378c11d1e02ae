package scopus

// SearchResponse is a Scopus search API envelope, cf.
// https://dev.elsevier.com/documentation/ScopusSearchAPI.wadl.
type SearchResponse struct {
	SearchResults struct {
		TotalResults string  `json:"opensearch:totalResults,omitempty"`
		StartIndex   string  `json:"opensearch:startIndex,omitempty"`
		ItemsPerPage string  `json:"opensearch:itemsPerPage,omitempty"`
		Entry        []Entry `json:"entry,omitempty"`
	} `json:"search-results"`
}

// Entry is one document from a Scopus author search, COMPLETE view. Scopus
// joins multi-valued fields with semicolons.
type Entry struct {
	EID                string `json:"eid,omitempty"`
	DOI                string `json:"prism:doi,omitempty"`
	Title              string `json:"dc:title,omitempty"`
	Creator            string `json:"dc:creator,omitempty"`
	PublicationName    string `json:"prism:publicationName,omitempty"`
	Volume             string `json:"prism:volume,omitempty"`
	PageRange          string `json:"prism:pageRange,omitempty"`
	CoverDate          string `json:"prism:coverDate,omitempty"`
	AggregationType    string `json:"prism:aggregationType,omitempty"`
	SubtypeDescription string `json:"subtypeDescription,omitempty"`
	PubmedID           string `json:"pubmed-id,omitempty"`
	AuthorIDs          string `json:"author-ids,omitempty"` // semicolon separated scopus author ids
	AuthorNames        string `json:"author-names,omitempty"`
	AfIDs              string `json:"author-afids,omitempty"`
	Error              string `json:"error,omitempty"` // set on empty result sets
	FreeToRead         struct {
		Value []Label `json:"value,omitempty"`
	} `json:"freetoread,omitempty"`
}

// Label wraps scopus' dollar-keyed atom values.
type Label struct {
	Text string `json:"$,omitempty"`
}

// AuthorResponse is an author retrieval response, trimmed to display name
// and current affiliation.
type AuthorResponse struct {
	AuthorRetrievalResponse []AuthorProfile `json:"author-retrieval-response,omitempty"`
}

type AuthorProfile struct {
	CoreData struct {
		IndexedName   string `json:"indexed-name,omitempty"`
		PreferredName struct {
			Surname     string `json:"surname,omitempty"`
			GivenName   string `json:"given-name,omitempty"`
			IndexedName string `json:"indexed-name,omitempty"`
		} `json:"preferred-name"`
	} `json:"coredata"`
	AffiliationCurrent struct {
		Affiliation []Affiliation `json:"affiliation,omitempty"`
	} `json:"affiliation-current"`
}

type Affiliation struct {
	ID      string `json:"@id,omitempty"`
	Name    string `json:"preferred-name,omitempty"`
	Parent  string `json:"parent-preferred-name,omitempty"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

// Display returns a one line affiliation description.
func (a Affiliation) Display() string {
	s := a.Name
	if a.Parent != "" {
		s += ", " + a.Parent
	}
	if a.City != "" {
		s += ", " + a.City
	}
	if a.Country != "" {
		s += ", " + a.Country
	}
	return s
}
