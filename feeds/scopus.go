package feeds

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/miku/vitakit"
	"github.com/miku/vitakit/schema/scopus"
	"github.com/miku/vitakit/schema/vita"
	"github.com/segmentio/encoding/json"
	"golang.org/x/time/rate"
)

// DefaultScopusBaseURL is the Elsevier content API.
const DefaultScopusBaseURL = "https://api.elsevier.com/content"

// scopusRateLimit keeps us inside the per-key quota.
const scopusRateLimit = 5.0

// ScopusClient runs author searches and author profile retrievals against
// the Elsevier APIs. Requires an API key.
type ScopusClient struct {
	BaseURL  string
	APIKey   string
	Client   Doer
	PageSize int
	limiter  *rate.Limiter
}

func NewScopusClient(client Doer, apiKey string) *ScopusClient {
	return &ScopusClient{
		BaseURL:  DefaultScopusBaseURL,
		APIKey:   apiKey,
		Client:   client,
		PageSize: 25,
		limiter:  rate.NewLimiter(rate.Limit(scopusRateLimit), 1),
	}
}

func (c *ScopusClient) get(link string, v interface{}) error {
	if err := c.limiter.Wait(context.Background()); err != nil {
		return err
	}
	req, err := http.NewRequest("GET", link, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-ELS-APIKey", c.APIKey)
	req.Header.Set("User-Agent", vitakit.UserAgent)
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("scopus: HTTP %d for %s", resp.StatusCode, link)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("scopus: decode failed: %w", err)
	}
	return nil
}

// AuthorWorks pages through all documents of a scopus author id, COMPLETE
// view, so entries carry coauthor ids and pubmed ids.
func (c *ScopusClient) AuthorWorks(authorID string) ([]scopus.Entry, error) {
	var (
		entries []scopus.Entry
		start   int
	)
	for {
		vs := url.Values{}
		vs.Set("query", fmt.Sprintf("AU-ID(%s)", authorID))
		vs.Set("view", "COMPLETE")
		vs.Set("start", strconv.Itoa(start))
		vs.Set("count", strconv.Itoa(c.PageSize))
		link := fmt.Sprintf("%s/search/scopus?%s", c.BaseURL, vs.Encode())
		var sr scopus.SearchResponse
		if err := c.get(link, &sr); err != nil {
			return nil, err
		}
		total, _ := strconv.Atoi(sr.SearchResults.TotalResults)
		for _, entry := range sr.SearchResults.Entry {
			if entry.Error != "" {
				continue
			}
			entries = append(entries, entry)
		}
		start += c.PageSize
		if start >= total || len(sr.SearchResults.Entry) == 0 {
			break
		}
	}
	return entries, nil
}

// Author resolves a scopus author id to a coauthor record with display name
// and current affiliations. Implements reconcile.AuthorLookup.
func (c *ScopusClient) Author(id string) (*vita.Coauthor, error) {
	link := fmt.Sprintf("%s/author/author_id/%s?view=LIGHT", c.BaseURL, url.PathEscape(id))
	var ar scopus.AuthorResponse
	if err := c.get(link, &ar); err != nil {
		return nil, err
	}
	if len(ar.AuthorRetrievalResponse) == 0 {
		return nil, fmt.Errorf("scopus: no author profile for %s", id)
	}
	profile := ar.AuthorRetrievalResponse[0]
	name := profile.CoreData.IndexedName
	if name == "" {
		name = profile.CoreData.PreferredName.IndexedName
	}
	ca := vita.Coauthor{ScopusID: id, Name: name}
	for _, aff := range profile.AffiliationCurrent.Affiliation {
		if display := aff.Display(); display != "" {
			ca.Affiliations = append(ca.Affiliations, display)
		}
	}
	return &ca, nil
}
