// Package resolve assigns canonical keys to normalized publications: the
// cleaned DOI when present, an exact title match against the working set
// otherwise, and finally a synthetic nodoi key.
package resolve

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/miku/vitakit/normal"
	"github.com/miku/vitakit/schema/vita"
)

// SyntheticPrefix marks keys minted for records without a DOI.
const SyntheticPrefix = "nodoi_"

// ErrCollision signals that minting a unique synthetic key failed
// repeatedly; callers may retry the record.
var ErrCollision = errors.New("synthetic key collision")

// maxMintAttempts bounds the check-and-mint retry loop. With 128 bit random
// tokens a single retry is already improbable.
const maxMintAttempts = 16

// WorkingSet maps canonical keys to one reconciled publication each. It is
// created fresh per reconciliation run and owned by a single run; mutation
// goes through the reconcile engine.
type WorkingSet struct {
	pubs   map[string]*vita.Publication
	titles map[string]string // title key -> canonical key
	order  []string
}

func NewWorkingSet() *WorkingSet {
	return &WorkingSet{
		pubs:   make(map[string]*vita.Publication),
		titles: make(map[string]string),
	}
}

func (ws *WorkingSet) Len() int {
	return len(ws.pubs)
}

func (ws *WorkingSet) Has(key string) bool {
	_, ok := ws.pubs[key]
	return ok
}

func (ws *WorkingSet) Get(key string) (*vita.Publication, bool) {
	pub, ok := ws.pubs[key]
	return pub, ok
}

// Put inserts or replaces the entry for key and indexes its title.
func (ws *WorkingSet) Put(key string, pub *vita.Publication) {
	if _, ok := ws.pubs[key]; !ok {
		ws.order = append(ws.order, key)
	}
	ws.pubs[key] = pub
	if t := normal.TitleKey(pub.Title); t != "" {
		if _, ok := ws.titles[t]; !ok {
			ws.titles[t] = key
		}
	}
}

// Delete removes an entry, e.g. for the exclusion list.
func (ws *WorkingSet) Delete(key string) {
	pub, ok := ws.pubs[key]
	if !ok {
		return
	}
	delete(ws.pubs, key)
	if t := normal.TitleKey(pub.Title); ws.titles[t] == key {
		delete(ws.titles, t)
	}
	for i, k := range ws.order {
		if k == key {
			ws.order = append(ws.order[:i], ws.order[i+1:]...)
			break
		}
	}
}

// Keys returns the canonical keys in insertion order.
func (ws *WorkingSet) Keys() []string {
	return append([]string(nil), ws.order...)
}

// byTitle returns the key of an existing entry with the exact same title,
// ignoring case.
func (ws *WorkingSet) byTitle(title string) (string, bool) {
	key, ok := ws.titles[normal.TitleKey(title)]
	return key, ok
}

// Resolve computes the canonical key for a publication and reports whether
// the key is new to the working set. Records without a DOI are matched by
// exact title against existing entries, recovering a previously assigned
// key; otherwise a synthetic key is minted, retrying until it is unique
// within the set.
func Resolve(pub *vita.Publication, ws *WorkingSet) (key string, isNew bool, err error) {
	if pub.DOI != "" {
		return pub.DOI, !ws.Has(pub.DOI), nil
	}
	if key, ok := ws.byTitle(pub.Title); ok {
		return key, false, nil
	}
	for i := 0; i < maxMintAttempts; i++ {
		key = SyntheticPrefix + mintToken()
		if !ws.Has(key) {
			return key, true, nil
		}
	}
	return "", false, ErrCollision
}

// mintToken returns a random lowercase alphanumeric token. Stable for the
// lifetime of one run only; never persisted across runs as an identity.
func mintToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// IsSynthetic reports whether a canonical key was minted rather than
// derived from a DOI.
func IsSynthetic(key string) bool {
	return strings.HasPrefix(key, SyntheticPrefix)
}
