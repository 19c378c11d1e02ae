package feeds

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/klauspost/compress/zstd"
	"github.com/miku/vitakit"
	"github.com/miku/vitakit/schema/crossref"
	"github.com/segmentio/encoding/json"
	"golang.org/x/time/rate"
)

// DefaultCrossrefEndpoint is the crossref REST API works route.
const DefaultCrossrefEndpoint = "https://api.crossref.org/works"

// crossrefRateLimit stays well under the polite pool allowance.
const crossrefRateLimit = 10.0

// CrossrefClient fetches single works by DOI. Responses are cached on disk
// as zstd compressed JSON, since DOI lookups repeat across runs and works
// metadata changes rarely.
type CrossrefClient struct {
	ApiEndpoint string
	ApiEmail    string
	Client      Doer
	CacheDir    string
	limiter     *rate.Limiter
}

// NewCrossrefClient returns a client caching under the XDG cache dir.
func NewCrossrefClient(client Doer, email string) (*CrossrefClient, error) {
	cacheDir := filepath.Join(xdg.CacheHome, vitakit.AppName, "crossref")
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, err
	}
	return &CrossrefClient{
		ApiEndpoint: DefaultCrossrefEndpoint,
		ApiEmail:    email,
		Client:      client,
		CacheDir:    cacheDir,
		limiter:     rate.NewLimiter(rate.Limit(crossrefRateLimit), 1),
	}, nil
}

func (c *CrossrefClient) cachePath(doi string) string {
	return filepath.Join(c.CacheDir, hashString(doi)+".json.zst")
}

// readCache returns the cached work for a DOI, or nil on a miss.
func (c *CrossrefClient) readCache(doi string) (*crossref.Work, error) {
	f, err := os.Open(c.cachePath(doi))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	var work crossref.Work
	if err := json.NewDecoder(dec).Decode(&work); err != nil {
		return nil, err
	}
	return &work, nil
}

// writeCache writes the work atomically, via temp file and rename.
func (c *CrossrefClient) writeCache(doi string, work *crossref.Work) error {
	dst := c.cachePath(doi)
	f, err := os.CreateTemp(c.CacheDir, "wip-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())
	enc, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return err
	}
	if err := json.NewEncoder(enc).Encode(work); err != nil {
		enc.Close()
		f.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), dst)
}

// WorkByDOI fetches one crossref work, from cache when possible.
func (c *CrossrefClient) WorkByDOI(doi string) (*crossref.Work, error) {
	if c.CacheDir != "" {
		if work, err := c.readCache(doi); err == nil && work != nil {
			return work, nil
		}
	}
	if err := c.limiter.Wait(context.Background()); err != nil {
		return nil, err
	}
	link := fmt.Sprintf("%s/%s", c.ApiEndpoint, url.PathEscape(doi))
	if c.ApiEmail != "" {
		vs := url.Values{}
		vs.Set("mailto", c.ApiEmail)
		link += "?" + vs.Encode()
	}
	req, err := http.NewRequest("GET", link, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", vitakit.UserAgent)
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("crossref: no record for %s", doi)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("crossref: HTTP %d for %s", resp.StatusCode, doi)
	}
	var wr crossref.WorkResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return nil, fmt.Errorf("crossref: decode failed: %w", err)
	}
	if wr.Status != "ok" || wr.Message == nil {
		return nil, fmt.Errorf("crossref: failed with status %q", wr.Status)
	}
	if c.CacheDir != "" {
		if err := c.writeCache(doi, wr.Message); err != nil {
			return nil, err
		}
	}
	return wr.Message, nil
}
