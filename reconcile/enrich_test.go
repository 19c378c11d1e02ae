package reconcile

import (
	"errors"
	"testing"

	"github.com/miku/vitakit/schema/vita"
)

type fakePMCIDLookup map[string]string

func (f fakePMCIDLookup) PMCID(pmid string) (string, error) {
	pmcid, ok := f[pmid]
	if !ok {
		return "", errors.New("not found")
	}
	return pmcid, nil
}

type fakeAuthorLookup map[string]string

func (f fakeAuthorLookup) Author(id string) (*vita.Coauthor, error) {
	name, ok := f[id]
	if !ok {
		return nil, errors.New("no author profile")
	}
	return &vita.Coauthor{Name: name}, nil
}

func TestEnrichPMCIDs(t *testing.T) {
	e := NewEngine()
	e.Merge(&vita.Publication{
		DOI: "10.1234/a", Title: "A", Year: 2020,
		Identifiers: map[string]string{vita.IDPMID: "111"},
	})
	e.Merge(&vita.Publication{
		DOI: "10.1234/b", Title: "B", Year: 2020,
		Identifiers: map[string]string{vita.IDPMID: "222", vita.IDPMCID: "already"},
	})
	e.Merge(&vita.Publication{DOI: "10.1234/c", Title: "C", Year: 2020})
	e.EnrichPMCIDs(fakePMCIDLookup{"111": "7000001"})
	a, _ := e.WorkingSet().Get("10.1234/a")
	if a.Identifiers[vita.IDPMCID] != "7000001" {
		t.Errorf("pmcid not filled: %v", a.Identifiers)
	}
	b, _ := e.WorkingSet().Get("10.1234/b")
	if b.Identifiers[vita.IDPMCID] != "already" {
		t.Errorf("existing pmcid overwritten: %v", b.Identifiers)
	}
	if e.Stats().Enriched != 1 {
		t.Errorf("want 1 enriched, got %d", e.Stats().Enriched)
	}
}

func TestCoauthors(t *testing.T) {
	e := NewEngine()
	e.Merge(&vita.Publication{
		DOI: "10.1234/a", Title: "A", Year: 2020, Date: "2020-06-01",
		ScopusCoauthorIDs: []string{"100", "200"},
	})
	e.Merge(&vita.Publication{
		DOI: "10.1234/b", Title: "B", Year: 2018, Date: "2018-03-15",
		ScopusCoauthorIDs: []string{"100", "999"},
	})
	coauthors := e.Coauthors(fakeAuthorLookup{"100": "Huckins G.", "200": "Gorgolewski K.J."})
	if len(coauthors) != 2 {
		t.Fatalf("want 2 coauthors, got %d", len(coauthors))
	}
	ca := coauthors["100"]
	if ca.Name != "Huckins G." || ca.NumPubs != 2 {
		t.Errorf("unexpected coauthor: %+v", ca)
	}
	// Collaboration dates come out sorted regardless of merge order.
	if len(ca.Dates) != 2 || ca.Dates[0] != "2018-03-15" || ca.Dates[1] != "2020-06-01" {
		t.Errorf("dates not sorted: %v", ca.Dates)
	}
	if _, ok := coauthors["999"]; ok {
		t.Error("unresolvable id must be skipped")
	}
}
