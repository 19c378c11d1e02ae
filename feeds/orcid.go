package feeds

import (
	"fmt"
	"net/http"

	"github.com/miku/vitakit"
	"github.com/miku/vitakit/schema/orcid"
	"github.com/segmentio/encoding/json"
)

// DefaultOrcidBaseURL is the public, unauthenticated ORCID API.
const DefaultOrcidBaseURL = "https://pub.orcid.org/v3.0"

// OrcidClient fetches public ORCID records.
type OrcidClient struct {
	BaseURL string
	Client  Doer
}

func NewOrcidClient(client Doer) *OrcidClient {
	return &OrcidClient{BaseURL: DefaultOrcidBaseURL, Client: client}
}

// Record fetches the full public record for an ORCID id.
func (c *OrcidClient) Record(id string) (*orcid.Record, error) {
	req, err := http.NewRequest("GET", fmt.Sprintf("%s/%s", c.BaseURL, id), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.orcid+json")
	req.Header.Set("User-Agent", vitakit.UserAgent)
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("orcid: HTTP %d for %s", resp.StatusCode, id)
	}
	var record orcid.Record
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("orcid: decode failed: %w", err)
	}
	if record.ErrorCode != 0 {
		return nil, fmt.Errorf("orcid: %s", record.DeveloperMessage)
	}
	return &record, nil
}

// Works flattens the record's work groups into one summary per group. ORCID
// already groups summaries it considers the same work; we take the first of
// each group, which is the preferred summary.
func (c *OrcidClient) Works(id string) ([]orcid.WorkSummary, error) {
	record, err := c.Record(id)
	if err != nil {
		return nil, err
	}
	var works []orcid.WorkSummary
	for _, group := range record.ActivitiesSummary.Works.Group {
		if len(group.WorkSummary) > 0 {
			works = append(works, group.WorkSummary[0])
		}
	}
	return works, nil
}
