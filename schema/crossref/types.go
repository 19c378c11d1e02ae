package crossref

import "encoding/json"

type DatePart []int64

// Author is a crossref work contributor.
type Author struct {
	Affiliation []struct {
		Name  string   `json:"name"`
		Place []string `json:"place"`
	} `json:"affiliation,omitempty"`
	Family             string `json:"family,omitempty"`
	Given              string `json:"given,omitempty"`
	Sequence           string `json:"sequence,omitempty"`
	ORCID              string `json:"orcid,omitempty"`
	AuthenticatedORCID bool   `json:"authenticated-orcid"`
}

// Work is a crossref API works document, cf.
// https://www.crossref.org/documentation/retrieve-metadata/rest-api/. Only
// the message part, trimmed to the fields we read.
type Work struct {
	Abstract       string          `json:"abstract,omitempty"`
	Author         json.RawMessage `json:"author,omitempty"` // schema varies per member
	ContainerTitle []string        `json:"container-title,omitempty"`
	DOI            string
	ISSN           []string
	Issue          string `json:"issue,omitempty"`
	Issued         struct {
		DateParts []DatePart `json:"date-parts,omitempty"`
	} `json:"issued"`
	JournalIssue struct {
		Issue          string `json:"issue,omitempty"`
		PublishedPrint struct {
			DateParts []DatePart `json:"date-parts,omitempty"`
		} `json:"published-print,omitempty"`
		PublishedOnline struct {
			DateParts []DatePart `json:"date-parts,omitempty"`
		} `json:"published-online,omitempty"`
	} `json:"journal-issue,omitempty"`
	Page      string `json:"page,omitempty"`
	Published struct {
		DateParts []DatePart `json:"date-parts,omitempty"`
	} `json:"published,omitempty"`
	PublishedPrint struct {
		DateParts []DatePart `json:"date-parts,omitempty"`
	} `json:"published-print,omitempty"`
	PublishedOnline struct {
		DateParts []DatePart `json:"date-parts,omitempty"`
	} `json:"published-online,omitempty"`
	Publisher  string          `json:"publisher,omitempty"`
	Subtitle   json.RawMessage `json:"subtitle,omitempty"`
	Title      []string        `json:"title,omitempty"`
	Translator json.RawMessage `json:"translator,omitempty"`
	Type       string          `json:"type,omitempty"`
	URL        string
	Volume     string `json:"volume,omitempty"`
}

// WorkResponse is the envelope of a works/{doi} lookup.
type WorkResponse struct {
	Status  string `json:"status,omitempty"`
	Message *Work  `json:"message,omitempty"`
}
