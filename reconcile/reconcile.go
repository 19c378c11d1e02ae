// Package reconcile merges normalized publications from all sources into a
// single working set, enriches the result and commits it to a store.
//
// Source precedence for scalar fields is established by processing order:
// whatever source is merged first wins, later sightings only fill gaps and
// extend the identifier and link maps.
package reconcile

import (
	"fmt"
	"strings"

	"github.com/miku/vitakit/convert"
	"github.com/miku/vitakit/resolve"
	"github.com/miku/vitakit/schema/vita"
	"github.com/miku/vitakit/store"
	"github.com/sirupsen/logrus"
)

// skipStrings mark non-article noise; such records never enter the working
// set, so publication counts downstream see only true publications.
var skipStrings = []string{
	"corrigendum",
	"erratum",
	"author correction",
	"publisher correction",
}

// IsNoise reports whether a title marks a correction notice rather than a
// publication.
func IsNoise(title string) bool {
	title = strings.ToLower(title)
	for _, s := range skipStrings {
		if strings.Contains(title, s) {
			return true
		}
	}
	return false
}

// Stats summarizes one reconciliation run. Every input record is attributed
// to exactly one of converted, skipped or failed; merged and enriched count
// additional events on converted records.
type Stats struct {
	Converted int `json:"converted"`
	Skipped   int `json:"skipped"`
	Merged    int `json:"merged"`
	Enriched  int `json:"enriched"`
	Failed    int `json:"failed"`
}

func (s Stats) String() string {
	return fmt.Sprintf("converted=%d skipped=%d merged=%d enriched=%d failed=%d",
		s.Converted, s.Skipped, s.Merged, s.Enriched, s.Failed)
}

// Engine owns the working set of one reconciliation run.
type Engine struct {
	ws    *resolve.WorkingSet
	stats Stats
	log   logrus.FieldLogger
}

func NewEngine() *Engine {
	return &Engine{
		ws:  resolve.NewWorkingSet(),
		log: logrus.StandardLogger(),
	}
}

// SetLogger replaces the default logger.
func (e *Engine) SetLogger(log logrus.FieldLogger) {
	e.log = log
}

func (e *Engine) Stats() Stats {
	return e.stats
}

// WorkingSet exposes the current set, e.g. for enrichment and rendering.
func (e *Engine) WorkingSet() *resolve.WorkingSet {
	return e.ws
}

// Observe takes the outcome of one conversion and routes it: skips and
// failures are counted and logged, successful conversions are merged. A bad
// record never aborts the batch.
func (e *Engine) Observe(pub *vita.Publication, err error) {
	switch {
	case err == nil:
		e.Merge(pub)
	case convert.IsSkip(err):
		e.stats.Skipped++
		e.log.WithField("reason", err.Error()).Debug("skipping record")
	default:
		e.stats.Failed++
		e.log.WithField("err", err).Warn("conversion failed")
	}
}

// Merge folds one publication into the working set. Idempotent: merging the
// identical record twice leaves the entry unchanged.
func (e *Engine) Merge(pub *vita.Publication) {
	if IsNoise(pub.Title) {
		e.stats.Skipped++
		e.log.WithField("title", pub.Title).Info("skipping correction notice")
		return
	}
	key, isNew, err := resolve.Resolve(pub, e.ws)
	if err != nil {
		e.stats.Failed++
		e.log.WithFields(logrus.Fields{"title": pub.Title, "err": err}).Warn("resolution failed")
		return
	}
	e.stats.Converted++
	if isNew {
		entry := pub.Clone()
		if resolve.IsSynthetic(key) {
			if entry.Identifiers == nil {
				entry.Identifiers = make(map[string]string)
			}
			entry.Identifiers[vita.IDNoDOI] = key
		}
		e.ws.Put(key, entry)
		return
	}
	dst, _ := e.ws.Get(key)
	mergeInto(dst, pub)
	e.stats.Merged++
	e.log.WithFields(logrus.Fields{"key": key, "source": pub.Source}).Debug("merged record")
}

// mergeInto applies the field level merge policy: first-writer-wins for
// scalars, union for the identifier and link maps, set-once for the scopus
// coauthor ids.
func mergeInto(dst, src *vita.Publication) {
	if dst.Title == "" {
		dst.Title = src.Title
	}
	if dst.Year == 0 {
		dst.Year = src.Year
	}
	if dst.Date == "" {
		dst.Date = src.Date
	}
	if dst.Journal == "" {
		dst.Journal = src.Journal
	}
	if dst.Volume == "" {
		dst.Volume = src.Volume
	}
	if dst.Pages == "" {
		dst.Pages = src.Pages
	}
	if dst.Publisher == "" {
		dst.Publisher = src.Publisher
	}
	if dst.FreeToRead == "" {
		dst.FreeToRead = src.FreeToRead
	}
	if dst.Type == "" {
		dst.Type = src.Type
	}
	if len(dst.Authors) == 0 {
		dst.Authors = append([]string(nil), src.Authors...)
	}
	for k, v := range src.Identifiers {
		if dst.Identifiers == nil {
			dst.Identifiers = make(map[string]string)
		}
		if _, ok := dst.Identifiers[k]; !ok {
			dst.Identifiers[k] = v
		}
	}
	for k, v := range src.Links {
		if dst.Links == nil {
			dst.Links = make(map[string]string)
		}
		if _, ok := dst.Links[k]; !ok {
			dst.Links[k] = v
		}
	}
	if len(dst.ScopusCoauthorIDs) == 0 && len(src.ScopusCoauthorIDs) > 0 {
		dst.ScopusCoauthorIDs = append([]string(nil), src.ScopusCoauthorIDs...)
	}
}

// AttachLinks merges manually curated link annotations into existing
// entries; unknown DOIs are logged and dropped.
func (e *Engine) AttachLinks(rows []convert.LinkRow) {
	for _, row := range rows {
		pub, ok := e.ws.Get(row.DOI)
		if !ok {
			e.log.WithField("doi", row.DOI).Warn("link annotation for unknown doi")
			continue
		}
		if pub.Links == nil {
			pub.Links = make(map[string]string)
		}
		pub.Links[row.Kind] = row.URL
		e.stats.Enriched++
	}
}

// Exclude removes publications by canonical key, e.g. from a bad DOI list.
func (e *Engine) Exclude(keys []string) {
	for _, key := range keys {
		if e.ws.Has(key) {
			e.ws.Delete(key)
			e.log.WithField("key", key).Info("dropping excluded publication")
		}
	}
}

// Commit persists the working set. Persistence failures are fatal and
// surface to the caller; the run is then reported as incomplete.
func (e *Engine) Commit(st store.Store) error {
	for _, key := range e.ws.Keys() {
		pub, _ := e.ws.Get(key)
		if err := st.Upsert(key, pub); err != nil {
			return fmt.Errorf("persist %s: %w", key, err)
		}
	}
	return nil
}
