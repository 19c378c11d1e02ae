package feeds

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/miku/vitakit/schema/crossref"
	"github.com/segmentio/encoding/json"
	"golang.org/x/time/rate"
)

func newTestLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Inf, 1)
}

const mockESearchXML = `<?xml version="1.0" ?>
<eSearchResult>
  <Count>2</Count>
  <IdList>
    <Id>32437510</Id>
    <Id>31611695</Id>
  </IdList>
</eSearchResult>`

const mockEFetchXML = `<?xml version="1.0" ?>
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <PMID Version="1">32437510</PMID>
      <Article>
        <Journal>
          <ISOAbbreviation>Nat Neurosci</ISOAbbreviation>
          <JournalIssue><PubDate><Year>2020</Year></PubDate></JournalIssue>
        </Journal>
        <ArticleTitle>Establishing best practices.</ArticleTitle>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

const mockELinkXML = `<?xml version="1.0" ?>
<eLinkResult>
  <LinkSet>
    <LinkSetDb>
      <LinkName>pubmed_pmc</LinkName>
      <Link><Id>7983302</Id></Link>
    </LinkSetDb>
  </LinkSet>
</eLinkResult>`

func TestEntrezClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("email"); got != "test@example.com" {
			t.Errorf("missing email param, got %q", got)
		}
		w.Header().Set("Content-Type", "text/xml")
		switch {
		case strings.Contains(r.URL.Path, "esearch"):
			io.WriteString(w, mockESearchXML)
		case strings.Contains(r.URL.Path, "efetch"):
			io.WriteString(w, mockEFetchXML)
		case strings.Contains(r.URL.Path, "elink"):
			io.WriteString(w, mockELinkXML)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()
	client := NewEntrezClient(http.DefaultClient, "test@example.com")
	client.BaseURL = server.URL
	pmids, err := client.Search("poldrack r[au]")
	if err != nil {
		t.Fatal(err)
	}
	if len(pmids) != 2 || pmids[0] != "32437510" {
		t.Errorf("unexpected pmids: %v", pmids)
	}
	articles, err := client.Fetch(pmids)
	if err != nil {
		t.Fatal(err)
	}
	if len(articles) != 1 {
		t.Fatalf("want 1 article, got %d", len(articles))
	}
	if got := articles[0].MedlineCitation.Article.ArticleTitle.Text; got != "Establishing best practices." {
		t.Errorf("unexpected title: %q", got)
	}
	pmcid, err := client.PMCID("32437510")
	if err != nil {
		t.Fatal(err)
	}
	if pmcid != "7983302" {
		t.Errorf("want 7983302, got %q", pmcid)
	}
}

func TestEntrezFetchEmpty(t *testing.T) {
	client := NewEntrezClient(http.DefaultClient, "")
	articles, err := client.Fetch(nil)
	if err != nil {
		t.Fatal(err)
	}
	if articles != nil {
		t.Errorf("want no request and no articles, got %v", articles)
	}
}

func TestCrossrefClientCaches(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		var work crossref.Work
		work.DOI = "10.1234/asdf"
		work.Type = "journal-article"
		work.Title = []string{"Cached work"}
		json.NewEncoder(w).Encode(crossref.WorkResponse{Status: "ok", Message: &work})
	}))
	defer server.Close()
	client := &CrossrefClient{
		ApiEndpoint: server.URL,
		ApiEmail:    "test@example.com",
		Client:      http.DefaultClient,
		CacheDir:    t.TempDir(),
		limiter:     newTestLimiter(),
	}
	for i := 0; i < 3; i++ {
		work, err := client.WorkByDOI("10.1234/asdf")
		if err != nil {
			t.Fatal(err)
		}
		if len(work.Title) == 0 || work.Title[0] != "Cached work" {
			t.Errorf("unexpected work: %+v", work)
		}
	}
	if requests != 1 {
		t.Errorf("want a single upstream request, got %d", requests)
	}
}

func TestCrossrefNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()
	client := &CrossrefClient{
		ApiEndpoint: server.URL,
		Client:      http.DefaultClient,
		CacheDir:    t.TempDir(),
		limiter:     newTestLimiter(),
	}
	if _, err := client.WorkByDOI("10.9999/missing"); err == nil {
		t.Error("want error for missing DOI")
	}
}

const mockOrcidRecord = `{
  "activities-summary": {
    "works": {
      "group": [
        {
          "work-summary": [
            {
              "title": {"title": {"value": "Establishing best practices"}},
              "type": "journal-article",
              "publication-date": {"year": {"value": "2020"}},
              "external-ids": {"external-id": [
                {"external-id-type": "doi", "external-id-value": "10.1038/s41593-020-0638-2"}
              ]}
            },
            {
              "title": {"title": {"value": "duplicate summary, same group"}},
              "type": "journal-article"
            }
          ]
        }
      ]
    }
  }
}`

func TestOrcidWorks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/vnd.orcid+json" {
			t.Errorf("unexpected accept header: %q", got)
		}
		io.WriteString(w, mockOrcidRecord)
	}))
	defer server.Close()
	client := NewOrcidClient(http.DefaultClient)
	client.BaseURL = server.URL
	works, err := client.Works("0000-0001-6755-0259")
	if err != nil {
		t.Fatal(err)
	}
	if len(works) != 1 {
		t.Fatalf("want one summary per group, got %d", len(works))
	}
	if works[0].Title.Title.Value != "Establishing best practices" {
		t.Errorf("unexpected title: %q", works[0].Title.Title.Value)
	}
}

func TestOrcidError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"error-code": 9016, "developer-message": "invalid orcid"}`)
	}))
	defer server.Close()
	client := NewOrcidClient(http.DefaultClient)
	client.BaseURL = server.URL
	if _, err := client.Record("bogus"); err == nil {
		t.Error("want error for error envelope")
	}
}

func TestScopusAuthorWorksPaging(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-ELS-APIKey"); got != "test-key" {
			t.Errorf("missing api key header, got %q", got)
		}
		start := r.URL.Query().Get("start")
		var entries string
		switch start {
		case "0":
			entries = `[{"eid": "2-s2.0-1", "dc:title": "First"}, {"eid": "2-s2.0-2", "dc:title": "Second"}]`
		default:
			entries = `[{"eid": "2-s2.0-3", "dc:title": "Third"}]`
		}
		fmt.Fprintf(w, `{"search-results": {"opensearch:totalResults": "3", "entry": %s}}`, entries)
	}))
	defer server.Close()
	client := NewScopusClient(http.DefaultClient, "test-key")
	client.BaseURL = server.URL
	client.PageSize = 2
	entries, err := client.AuthorWorks("7004739390")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("want 3 entries over 2 pages, got %d", len(entries))
	}
	if entries[2].EID != "2-s2.0-3" {
		t.Errorf("unexpected last entry: %+v", entries[2])
	}
}

const mockScholarHTML = `<html><body>
<table id="gsc_rsb_st">
<tr><td class="gsc_rsb_std">43799</td><td class="gsc_rsb_std">20929</td></tr>
<tr><td class="gsc_rsb_std">94</td><td class="gsc_rsb_std">72</td></tr>
<tr><td class="gsc_rsb_std">241</td><td class="gsc_rsb_std">199</td></tr>
</table>
</body></html>`

func TestScholarMetrics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, mockScholarHTML)
	}))
	defer server.Close()
	client := NewScholarClient(http.DefaultClient)
	metrics, err := client.Metrics(server.URL)
	if err != nil {
		t.Fatal(err)
	}
	if metrics.Citations != 43799 || metrics.HIndex != 94 || metrics.I10Index5y != 199 {
		t.Errorf("unexpected metrics: %+v", metrics)
	}
}

func TestNewClient(t *testing.T) {
	client := NewClient(3, 0)
	if client.MaxRetries != 3 {
		t.Errorf("want 3 retries, got %d", client.MaxRetries)
	}
	if client.Timeout != DefaultTimeout {
		t.Errorf("want default timeout, got %v", client.Timeout)
	}
}

func TestHashString(t *testing.T) {
	a, b := hashString("10.1234/asdf"), hashString("10.1234/qwer")
	if a == b {
		t.Error("distinct inputs hash alike")
	}
	if len(a) != 40 {
		t.Errorf("want hex sha1, got %q", a)
	}
}
