package reconcile

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/miku/vitakit/convert"
	"github.com/miku/vitakit/resolve"
	"github.com/miku/vitakit/schema/vita"
	"github.com/miku/vitakit/store"
)

func scopusSighting() *vita.Publication {
	return &vita.Publication{
		DOI:     "10.1038/s41593-020-0638-2",
		Title:   "Establishing best practices",
		Year:    2020,
		Date:    "2020-06-01",
		Authors: []string{"Poldrack R.A.", "Huckins G."},
		Journal: "Nature Neuroscience",
		Volume:  "23",
		Pages:   "711-718",
		Type:    vita.TypeJournalArticle,
		Source:  vita.SourceScopus,
		Identifiers: map[string]string{
			vita.IDEID:  "2-s2.0-85086474000",
			vita.IDPMID: "32437510",
		},
		ScopusCoauthorIDs: []string{"7004739390", "57217085329"},
		FreeToRead:        "publisherhybridgold",
	}
}

func pubmedSighting() *vita.Publication {
	return &vita.Publication{
		DOI:     "10.1038/s41593-020-0638-2",
		Title:   "Establishing best practices",
		Year:    2020,
		Date:    "2020-05-20",
		Authors: []string{"Poldrack RA", "Huckins G"},
		Journal: "Nat Neurosci",
		Type:    vita.TypeJournalArticle,
		Source:  vita.SourcePubmed,
		Identifiers: map[string]string{
			vita.IDPMID:  "32437510",
			vita.IDPMCID: "7983302",
		},
	}
}

func TestMergeIdempotent(t *testing.T) {
	e := NewEngine()
	e.Merge(scopusSighting())
	want, _ := e.WorkingSet().Get("10.1038/s41593-020-0638-2")
	snapshot := want.Clone()
	e.Merge(scopusSighting())
	if e.WorkingSet().Len() != 1 {
		t.Fatalf("want 1 entry, got %d", e.WorkingSet().Len())
	}
	got, _ := e.WorkingSet().Get("10.1038/s41593-020-0638-2")
	if diff := cmp.Diff(snapshot, got); diff != "" {
		t.Errorf("second merge changed the entry (-want +got):\n%s", diff)
	}
	stats := e.Stats()
	if stats.Converted != 2 || stats.Merged != 1 {
		t.Errorf("unexpected stats: %s", stats)
	}
}

func TestMergeTwoSources(t *testing.T) {
	e := NewEngine()
	e.Merge(scopusSighting())
	e.Merge(pubmedSighting())
	pub, ok := e.WorkingSet().Get("10.1038/s41593-020-0638-2")
	if !ok {
		t.Fatal("entry missing")
	}
	// Scalars keep the first sighting, identifier maps union.
	if pub.Journal != "Nature Neuroscience" || pub.Date != "2020-06-01" {
		t.Errorf("first writer must win scalars, got journal=%q date=%q", pub.Journal, pub.Date)
	}
	if pub.Identifiers[vita.IDPMCID] != "7983302" {
		t.Errorf("pmcid not merged: %v", pub.Identifiers)
	}
	if pub.Identifiers[vita.IDEID] != "2-s2.0-85086474000" {
		t.Errorf("eid lost in merge: %v", pub.Identifiers)
	}
	if pub.FreeToRead != "publisherhybridgold" {
		t.Errorf("open access labels lost in merge: %q", pub.FreeToRead)
	}
}

func TestMergeFillsOpenAccess(t *testing.T) {
	e := NewEngine()
	e.Merge(pubmedSighting())
	e.Merge(scopusSighting())
	pub, _ := e.WorkingSet().Get("10.1038/s41593-020-0638-2")
	// Pubmed carries no labels, the later scopus sighting fills the gap.
	if pub.FreeToRead != "publisherhybridgold" {
		t.Errorf("open access labels not filled: %q", pub.FreeToRead)
	}
	if pub.Journal != "Nat Neurosci" {
		t.Errorf("first writer must still win scalars, got %q", pub.Journal)
	}
}

func TestNoiseNeverEnters(t *testing.T) {
	e := NewEngine()
	for _, title := range []string{
		"Erratum to: Establishing best practices",
		"Corrigendum: something",
		"Author Correction: something else",
		"Publisher Correction: yet another",
	} {
		e.Merge(&vita.Publication{DOI: "10.1234/x", Title: title, Year: 2020})
	}
	if e.WorkingSet().Len() != 0 {
		t.Errorf("correction notices entered the set: %d", e.WorkingSet().Len())
	}
	if e.Stats().Skipped != 4 {
		t.Errorf("want 4 skipped, got %d", e.Stats().Skipped)
	}
}

func TestSameTitleNoDOISharesKey(t *testing.T) {
	e := NewEngine()
	e.Merge(&vita.Publication{Title: "A chapter", Year: 2019, Journal: "Handbook", Source: vita.SourceManual})
	e.Merge(&vita.Publication{Title: "A Chapter", Year: 2019, Pages: "1-10", Source: vita.SourceManual})
	if e.WorkingSet().Len() != 1 {
		t.Fatalf("want single entry for same title, got %d", e.WorkingSet().Len())
	}
	key := e.WorkingSet().Keys()[0]
	if !resolve.IsSynthetic(key) {
		t.Errorf("want synthetic key, got %s", key)
	}
	pub, _ := e.WorkingSet().Get(key)
	if pub.Identifiers[vita.IDNoDOI] != key {
		t.Errorf("synthetic key not recorded in identifiers: %v", pub.Identifiers)
	}
	if pub.Journal != "Handbook" || pub.Pages != "1-10" {
		t.Errorf("merge incomplete: %+v", pub)
	}
}

func TestObserveRouting(t *testing.T) {
	e := NewEngine()
	e.Observe(scopusSighting(), nil)
	e.Observe(nil, convert.ErrSkipPreprint)
	e.Observe(nil, errors.New("boom"))
	stats := e.Stats()
	if stats.Converted != 1 || stats.Skipped != 1 || stats.Failed != 1 {
		t.Errorf("unexpected stats: %s", stats)
	}
}

func TestAttachLinks(t *testing.T) {
	e := NewEngine()
	e.Merge(scopusSighting())
	e.AttachLinks([]convert.LinkRow{
		{DOI: "10.1038/s41593-020-0638-2", Kind: "Data", URL: "https://example.com/data"},
		{DOI: "10.9999/unknown", Kind: "Code", URL: "https://example.com/code"},
	})
	pub, _ := e.WorkingSet().Get("10.1038/s41593-020-0638-2")
	if pub.Links["Data"] != "https://example.com/data" {
		t.Errorf("link not attached: %v", pub.Links)
	}
	if e.Stats().Enriched != 1 {
		t.Errorf("want 1 enriched, got %d", e.Stats().Enriched)
	}
}

func TestExclude(t *testing.T) {
	e := NewEngine()
	e.Merge(scopusSighting())
	e.Exclude([]string{"10.1038/s41593-020-0638-2", "10.9999/unknown"})
	if e.WorkingSet().Len() != 0 {
		t.Errorf("excluded entry still present")
	}
}

var errDiskFull = errors.New("disk full")

// failingStore rejects every upsert.
type failingStore struct{}

func (failingStore) GetAll() ([]*vita.Publication, error) { return nil, nil }

func (failingStore) Upsert(string, *vita.Publication) error { return errDiskFull }

func (failingStore) Exists(string) (bool, error) { return false, nil }

func (failingStore) Close() error { return nil }

func TestCommitFailureSurfaces(t *testing.T) {
	e := NewEngine()
	e.Merge(scopusSighting())
	err := e.Commit(failingStore{})
	if err == nil {
		t.Fatal("want persistence failure to surface")
	}
	if !errors.Is(err, errDiskFull) {
		t.Errorf("store error not wrapped: %v", err)
	}
	if !strings.Contains(err.Error(), "10.1038/s41593-020-0638-2") {
		t.Errorf("failing key not attributed: %v", err)
	}
}

func TestCommit(t *testing.T) {
	e := NewEngine()
	e.Merge(scopusSighting())
	e.Merge(pubmedSighting())
	st := store.NewMemory()
	if err := e.Commit(st); err != nil {
		t.Fatal(err)
	}
	pubs, err := st.GetAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(pubs) != 1 {
		t.Fatalf("want 1 committed publication, got %d", len(pubs))
	}
}
