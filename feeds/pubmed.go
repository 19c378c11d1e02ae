package feeds

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jinzhu/now"
	"github.com/miku/vitakit"
	"github.com/miku/vitakit/schema/pubmed"
	"golang.org/x/time/rate"
)

// DefaultEntrezBaseURL is the NCBI E-utilities endpoint.
const DefaultEntrezBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// entrezRateLimit is 3 requests per second without an API key, per NCBI
// usage guidelines.
const entrezRateLimit = 3.0

// EntrezClient talks to the NCBI E-utilities: esearch for PMIDs, efetch for
// full records, elink for PMC cross references.
type EntrezClient struct {
	BaseURL string
	Client  Doer
	Email   string
	RetMax  int
	limiter *rate.Limiter
}

func NewEntrezClient(client Doer, email string) *EntrezClient {
	return &EntrezClient{
		BaseURL: DefaultEntrezBaseURL,
		Client:  client,
		Email:   email,
		RetMax:  1000,
		limiter: rate.NewLimiter(rate.Limit(entrezRateLimit), 1),
	}
}

func (c *EntrezClient) get(path string, vs url.Values, v interface{}) error {
	if c.Email != "" {
		vs.Set("email", c.Email)
		vs.Set("tool", vitakit.AppName)
	}
	if err := c.limiter.Wait(context.Background()); err != nil {
		return err
	}
	link := fmt.Sprintf("%s/%s?%s", c.BaseURL, path, vs.Encode())
	req, err := http.NewRequest("GET", link, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", vitakit.UserAgent)
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("entrez: HTTP %d for %s", resp.StatusCode, path)
	}
	if err := xml.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("entrez: decode failed: %w", err)
	}
	return nil
}

// Search runs an esearch query and returns matching PMIDs.
func (c *EntrezClient) Search(term string) ([]string, error) {
	vs := url.Values{}
	vs.Set("db", "pubmed")
	vs.Set("term", term)
	vs.Set("retmax", fmt.Sprintf("%d", c.RetMax))
	var result pubmed.ESearchResult
	if err := c.get("esearch.fcgi", vs, &result); err != nil {
		return nil, err
	}
	return result.IdList.Id, nil
}

// SearchSince restricts the query to publication dates from the beginning
// of the year of t until today.
func (c *EntrezClient) SearchSince(term string, t time.Time) ([]string, error) {
	vs := url.Values{}
	vs.Set("db", "pubmed")
	vs.Set("term", term)
	vs.Set("retmax", fmt.Sprintf("%d", c.RetMax))
	vs.Set("datetype", "pdat")
	vs.Set("mindate", now.With(t).BeginningOfYear().Format("2006/01/02"))
	vs.Set("maxdate", time.Now().Format("2006/01/02"))
	var result pubmed.ESearchResult
	if err := c.get("esearch.fcgi", vs, &result); err != nil {
		return nil, err
	}
	return result.IdList.Id, nil
}

// Fetch retrieves full article records for a list of PMIDs.
func (c *EntrezClient) Fetch(pmids []string) ([]pubmed.Article, error) {
	if len(pmids) == 0 {
		return nil, nil
	}
	vs := url.Values{}
	vs.Set("db", "pubmed")
	vs.Set("id", strings.Join(pmids, ","))
	vs.Set("retmode", "xml")
	vs.Set("retmax", fmt.Sprintf("%d", c.RetMax))
	var set pubmed.ArticleSet
	if err := c.get("efetch.fcgi", vs, &set); err != nil {
		return nil, err
	}
	return set.Article, nil
}

// PMCID resolves a PMID to its PubMed Central id via elink, without the PMC
// prefix. Returns the empty string when no full text record exists.
func (c *EntrezClient) PMCID(pmid string) (string, error) {
	vs := url.Values{}
	vs.Set("dbfrom", "pubmed")
	vs.Set("db", "pmc")
	vs.Set("linkname", "pubmed_pmc")
	vs.Set("id", pmid)
	var result pubmed.ELinkResult
	if err := c.get("elink.fcgi", vs, &result); err != nil {
		return "", err
	}
	for _, ls := range result.LinkSet {
		for _, db := range ls.LinkSetDb {
			if db.LinkName != "pubmed_pmc" {
				continue
			}
			for _, link := range db.Link {
				if link.Id != "" {
					return strings.TrimPrefix(link.Id, "PMC"), nil
				}
			}
		}
	}
	return "", nil
}
