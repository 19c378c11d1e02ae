package reconcile

import (
	"sort"

	"github.com/miku/vitakit/schema/vita"
	"github.com/sirupsen/logrus"
)

// PMCIDLookup resolves a PMID to a PMCID. Implemented by feeds.EntrezClient.
type PMCIDLookup interface {
	PMCID(pmid string) (string, error)
}

// AuthorLookup resolves a scopus author id to display name and current
// affiliations. Implemented by feeds.ScopusClient.
type AuthorLookup interface {
	Author(id string) (*vita.Coauthor, error)
}

// EnrichPMCIDs runs one pass over the working set and fills in missing
// PMCIDs for entries that carry a PMID. A lookup failure leaves the field
// unset and never aborts the batch.
func (e *Engine) EnrichPMCIDs(lookup PMCIDLookup) {
	for _, key := range e.ws.Keys() {
		pub, _ := e.ws.Get(key)
		pmid := pub.Identifiers[vita.IDPMID]
		if pmid == "" || pub.Identifiers[vita.IDPMCID] != "" {
			continue
		}
		pmcid, err := lookup.PMCID(pmid)
		if err != nil {
			e.log.WithFields(logrus.Fields{"pmid": pmid, "err": err}).Warn("pmcid lookup failed")
			continue
		}
		if pmcid == "" {
			continue
		}
		pub.Identifiers[vita.IDPMCID] = pmcid
		e.stats.Enriched++
	}
}

// Coauthors folds the scopus coauthor ids of the working set into coauthor
// records: display name, affiliations, sorted collaboration dates and a
// publication count per external author id. An unresolvable id skips that
// coauthor only.
func (e *Engine) Coauthors(lookup AuthorLookup) map[string]*vita.Coauthor {
	coauthors := make(map[string]*vita.Coauthor)
	for _, key := range e.ws.Keys() {
		pub, _ := e.ws.Get(key)
		for _, id := range pub.ScopusCoauthorIDs {
			ca, ok := coauthors[id]
			if !ok {
				var err error
				ca, err = lookup.Author(id)
				if err != nil {
					e.log.WithFields(logrus.Fields{"scopus_id": id, "err": err}).Warn("coauthor lookup failed")
					continue
				}
				if ca == nil || ca.Name == "" {
					continue
				}
				ca.ScopusID = id
				coauthors[id] = ca
				e.stats.Enriched++
			}
			ca.NumPubs++
			if pub.Date != "" {
				ca.Dates = append(ca.Dates, pub.Date)
				sort.Strings(ca.Dates)
			}
		}
	}
	return coauthors
}
