package feeds

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/miku/vitakit"
	"github.com/miku/vitakit/schema/vita"
)

// ScholarClient scrapes citation metrics from a Google Scholar profile
// page. There is no API; this is best effort and a failure here never
// blocks a reconciliation run.
type ScholarClient struct {
	Client Doer
}

func NewScholarClient(client Doer) *ScholarClient {
	return &ScholarClient{Client: client}
}

// Metrics fetches the profile page and reads the citation indices table.
// Column order on the page: all time, last five years; row order:
// citations, h-index, i10-index.
func (c *ScholarClient) Metrics(profileURL string) (*vita.ScholarMetrics, error) {
	req, err := http.NewRequest("GET", profileURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", vitakit.UserAgent)
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("scholar: HTTP %d for %s", resp.StatusCode, profileURL)
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}
	var values []int64
	doc.Find("table#gsc_rsb_st td.gsc_rsb_std").Each(func(i int, s *goquery.Selection) {
		n, err := strconv.ParseInt(s.Text(), 10, 64)
		if err != nil {
			n = 0
		}
		values = append(values, n)
	})
	if len(values) < 6 {
		return nil, fmt.Errorf("scholar: citation table not found")
	}
	return &vita.ScholarMetrics{
		Citations:     values[0],
		Citations5y:   values[1],
		HIndex:        values[2],
		HIndex5y:      values[3],
		I10Index:      values[4],
		I10Index5y:    values[5],
		ProfileScrape: true,
	}, nil
}
