// vita-sync runs one full reconciliation: fetch raw records from the
// configured sources, normalize, deduplicate, enrich and commit the
// canonical publication set.
//
// $ vita-sync -c config.yaml -additional-pubs additional_pubs.csv -links links.csv
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/miku/vitakit/config"
	"github.com/miku/vitakit/convert"
	"github.com/miku/vitakit/feeds"
	"github.com/miku/vitakit/reconcile"
	"github.com/miku/vitakit/render"
	"github.com/miku/vitakit/schema/vita"
	"github.com/miku/vitakit/store"
	"github.com/segmentio/encoding/json"
	log "github.com/sirupsen/logrus"
)

var (
	configFile     = flag.String("c", "config.yaml", "researcher config file")
	additionalPubs = flag.String("additional-pubs", "", "manually curated publications (csv)")
	linksFile      = flag.String("links", "", "link annotations (csv: DOI,type,url)")
	exclusionsFile = flag.String("exclusions", "", "bad DOIs to drop, one per line")
	coauthorsFile  = flag.String("coauthors", "", "write aggregated coauthors to file (json)")
	metricsFile    = flag.String("metrics", "", "write scholar metrics to file (json)")
	sinceVal       = flag.String("since", "", "restrict pubmed to publication dates from the year of this date on, e.g. 2020-01-01")
	dryRun         = flag.Bool("n", false, "dry run, do not persist")
	debug          = flag.Bool("debug", false, "log debug messages")
	maxRecords     = flag.Int("x", 0, "limit records per source, for testing")
)

func main() {
	flag.Parse()
	if *debug {
		log.SetLevel(log.DebugLevel)
	}
	// API keys live in the environment, optionally via .env.
	_ = godotenv.Load()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	var (
		httpClient = feeds.NewClient(3, 0)
		engine     = reconcile.NewEngine()
		entrez     *feeds.EntrezClient
		scopus     *feeds.ScopusClient
		orcidDOIs  []string
	)
	if cfg.Researcher.Query != "" {
		entrez = feeds.NewEntrezClient(httpClient, cfg.Researcher.Email)
	}
	if key := os.Getenv("SCOPUS_API_KEY"); key != "" && cfg.Researcher.ScopusID != "" {
		scopus = feeds.NewScopusClient(httpClient, key)
	}
	for _, source := range cfg.SourcePriority {
		log.WithField("source", source).Info("processing source")
		switch source {
		case vita.SourceScopus:
			if scopus == nil {
				log.Info("scopus not configured, skipping")
				continue
			}
			entries, err := scopus.AuthorWorks(cfg.Researcher.ScopusID)
			if err != nil {
				log.WithField("err", err).Error("scopus fetch failed")
				continue
			}
			for i := range clip(len(entries), *maxRecords) {
				engine.Observe(convert.ScopusEntryToPublication(&entries[i]))
			}
		case vita.SourcePubmed:
			if entrez == nil {
				log.Info("pubmed not configured, skipping")
				continue
			}
			var (
				pmids []string
				err   error
			)
			if *sinceVal != "" {
				since, perr := time.Parse("2006-01-02", *sinceVal)
				if perr != nil {
					log.Fatal(perr)
				}
				pmids, err = entrez.SearchSince(cfg.Researcher.Query, since)
			} else {
				pmids, err = entrez.Search(cfg.Researcher.Query)
			}
			if err != nil {
				log.WithField("err", err).Error("pubmed search failed")
				continue
			}
			log.WithField("n", len(pmids)).Info("pubmed matches")
			articles, err := entrez.Fetch(pmids)
			if err != nil {
				log.WithField("err", err).Error("pubmed fetch failed")
				continue
			}
			for i := range clip(len(articles), *maxRecords) {
				engine.Observe(convert.PubmedArticleToPublication(&articles[i]))
			}
		case vita.SourceCrossref:
			dois, err := orcidDOIList(httpClient, cfg, &orcidDOIs)
			if err != nil {
				log.WithField("err", err).Error("orcid doi list failed")
				continue
			}
			crossref, err := feeds.NewCrossrefClient(httpClient, cfg.Researcher.Email)
			if err != nil {
				log.Fatal(err)
			}
			for _, doi := range dois {
				if engine.WorkingSet().Has(doi) {
					continue
				}
				work, err := crossref.WorkByDOI(doi)
				if err != nil {
					log.WithFields(log.Fields{"doi": doi, "err": err}).Warn("crossref lookup failed")
					continue
				}
				engine.Observe(convert.CrossrefWorkToPublication(work))
			}
		case vita.SourceOrcid:
			if cfg.Researcher.Orcid == "" {
				continue
			}
			client := feeds.NewOrcidClient(httpClient)
			works, err := client.Works(cfg.Researcher.Orcid)
			if err != nil {
				log.WithField("err", err).Error("orcid fetch failed")
				continue
			}
			for i := range clip(len(works), *maxRecords) {
				engine.Observe(convert.OrcidWorkToPublication(&works[i]))
			}
		case vita.SourceManual:
			if *additionalPubs == "" {
				continue
			}
			f, err := os.Open(*additionalPubs)
			if err != nil {
				log.Fatal(err)
			}
			rows, err := convert.ReadManualCSV(f)
			f.Close()
			if err != nil {
				log.Fatal(err)
			}
			for _, row := range rows {
				engine.Observe(convert.ManualRowToPublication(row))
			}
		default:
			log.WithField("source", source).Warn("unknown source in priority list")
		}
	}
	if *linksFile != "" {
		f, err := os.Open(*linksFile)
		if err != nil {
			log.Fatal(err)
		}
		rows, err := convert.ReadLinksCSV(f)
		f.Close()
		if err != nil {
			log.Fatal(err)
		}
		engine.AttachLinks(rows)
	}
	if *exclusionsFile != "" {
		b, err := os.ReadFile(*exclusionsFile)
		if err != nil {
			log.Fatal(err)
		}
		var keys []string
		for _, line := range strings.Split(string(b), "\n") {
			if doi := convert.CleanDOI(line); doi != "" {
				keys = append(keys, doi)
			}
		}
		engine.Exclude(keys)
	}
	if entrez != nil {
		engine.EnrichPMCIDs(entrez)
	}
	if scopus != nil {
		coauthors := engine.Coauthors(scopus)
		log.WithField("n", len(coauthors)).Info("aggregated coauthors")
		if *coauthorsFile != "" {
			if err := writeJSON(*coauthorsFile, coauthors); err != nil {
				log.Fatal(err)
			}
		}
	}
	if cfg.Researcher.ScholarProfile != "" {
		scholar := feeds.NewScholarClient(httpClient)
		if metrics, err := scholar.Metrics(cfg.Researcher.ScholarProfile); err != nil {
			log.WithField("err", err).Warn("scholar metrics failed")
		} else {
			log.WithFields(log.Fields{"hindex": metrics.HIndex, "citations": metrics.Citations}).Info("scholar metrics")
			if *metricsFile != "" {
				if err := writeJSON(*metricsFile, metrics); err != nil {
					log.Fatal(err)
				}
			}
		}
	}
	ws := engine.WorkingSet()
	var pubs []*vita.Publication
	for _, key := range ws.Keys() {
		pub, _ := ws.Get(key)
		pubs = append(pubs, pub)
	}
	render.Attach(pubs)

	var st store.Store
	if *dryRun {
		st = store.NewMemory()
	} else {
		st, err = store.OpenSQLite(cfg.DBPath)
		if err != nil {
			log.Fatal(err)
		}
	}
	defer st.Close()
	if err := engine.Commit(st); err != nil {
		log.WithField("err", err).Fatal("run incomplete, persistence failed")
	}
	log.WithField("publications", ws.Len()).Info("run complete")
	fmt.Println(engine.Stats())
}

// clip bounds n by the test limit, 0 meaning no limit.
func clip(n, limit int) int {
	if limit > 0 && limit < n {
		return limit
	}
	return n
}

func writeJSON(path string, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

func orcidDOIList(client feeds.Doer, cfg *config.Config, cache *[]string) ([]string, error) {
	if len(*cache) > 0 {
		return *cache, nil
	}
	if cfg.Researcher.Orcid == "" {
		return nil, nil
	}
	oc := feeds.NewOrcidClient(client)
	works, err := oc.Works(cfg.Researcher.Orcid)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	for _, w := range works {
		for _, eid := range w.ExternalIds.ExternalId {
			if eid.Type != "doi" {
				continue
			}
			if doi := convert.CleanDOI(eid.Value); doi != "" && !seen[doi] {
				seen[doi] = true
				*cache = append(*cache, doi)
			}
		}
	}
	return *cache, nil
}
