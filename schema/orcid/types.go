package orcid

// Record is a pub.orcid.org/v3.0/{id} response, trimmed to the works
// section and the error envelope.
type Record struct {
	ErrorCode        int64  `json:"error-code,omitempty"`
	DeveloperMessage string `json:"developer-message,omitempty"`
	ActivitiesSummary struct {
		Works struct {
			Group []WorkGroup `json:"group,omitempty"`
		} `json:"works"`
	} `json:"activities-summary"`
}

// WorkGroup bundles work summaries that ORCID itself considers the same
// work.
type WorkGroup struct {
	WorkSummary []WorkSummary `json:"work-summary,omitempty"`
}

type WorkSummary struct {
	Title struct {
		Title struct {
			Value string `json:"value,omitempty"`
		} `json:"title"`
	} `json:"title"`
	Type         string `json:"type,omitempty"`
	JournalTitle struct {
		Value string `json:"value,omitempty"`
	} `json:"journal-title"`
	PublicationDate struct {
		Year  Value `json:"year"`
		Month Value `json:"month"`
		Day   Value `json:"day"`
	} `json:"publication-date"`
	ExternalIds struct {
		ExternalId []ExternalId `json:"external-id,omitempty"`
	} `json:"external-ids"`
}

type Value struct {
	Value string `json:"value,omitempty"`
}

type ExternalId struct {
	Type  string `json:"external-id-type,omitempty"`
	Value string `json:"external-id-value,omitempty"`
}
