// Package render turns reconciled publications into citation strings and
// ordered listings. Pure formatting; it never mutates identity fields.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/miku/vitakit/schema/vita"
)

// Author lists longer than EtAlThreshold are shortened to the first
// EtAlShow names plus "et al."
const (
	EtAlThreshold = 10
	EtAlShow      = 3
)

// shortenAuthors joins an author list, applying the et al. rule.
func shortenAuthors(authors []string) string {
	if len(authors) > EtAlThreshold {
		return strings.Join(authors[:EtAlShow], ", ") + " et al."
	}
	return strings.Join(authors, ", ")
}

// ensurePeriod makes sure a title ends with exactly one period.
func ensurePeriod(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), ".") + "."
}

// escapeLatex escapes the few characters that show up in titles and journal
// names.
func escapeLatex(s string) string {
	s = strings.ReplaceAll(s, `\`, ``)
	s = strings.ReplaceAll(s, `&`, `\&`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// Latex renders one reference line in LaTeX.
func Latex(pub *vita.Publication) string {
	return reference(pub, `\textit{`, `}`, escapeLatex)
}

// Markdown renders one reference line in Markdown.
func Markdown(pub *vita.Publication) string {
	return reference(pub, "*", "*", func(s string) string { return s })
}

// reference renders the shared citation layout with format specific italic
// markers and escaping.
func reference(pub *vita.Publication, italOpen, italClose string, esc func(string) string) string {
	var (
		authors = shortenAuthors(pub.Authors)
		title   = ensurePeriod(esc(pub.Title))
		b       strings.Builder
	)
	fmt.Fprintf(&b, "%s (%d). ", authors, pub.Year)
	switch pub.Type {
	case vita.TypeBook:
		fmt.Fprintf(&b, "%s%s%s. ", italOpen, strings.TrimRight(esc(pub.Title), "."), italClose)
		b.WriteString(ensurePeriod(esc(pub.Publisher)))
	case vita.TypeBookChapter:
		fmt.Fprintf(&b, "%s In %s%s.%s ", title, italOpen, strings.TrimRight(esc(pub.Journal), "."), italClose)
		if pub.Pages != "" {
			fmt.Fprintf(&b, "(p. %s). ", pub.Pages)
		}
		b.WriteString(ensurePeriod(esc(pub.Publisher)))
	default: // journal-article, proceedings-article
		fmt.Fprintf(&b, "%s %s%s", title, italOpen, esc(pub.Journal))
		if pub.Volume != "" {
			fmt.Fprintf(&b, ", %s", pub.Volume)
		}
		b.WriteString(italClose)
		if pub.Pages != "" {
			fmt.Fprintf(&b, ", %s", pub.Pages)
		}
		b.WriteString(".")
	}
	return b.String()
}

// goldLabels are the scopus open access labels that earn an OA marker when
// no PubMed Central record exists.
var goldLabels = []string{"publisherhybridgold", "publisherfree2read"}

// openAccessURL returns the open access link for a publication: the PubMed
// Central page when a PMCID exists, the DOI resolver for publisher open
// access labels, the empty string otherwise.
func openAccessURL(pub *vita.Publication) string {
	if pmcid := pub.Identifiers[vita.IDPMCID]; pmcid != "" {
		return "https://www.ncbi.nlm.nih.gov/pmc/articles/PMC" + pmcid
	}
	if pub.DOI == "" {
		return ""
	}
	for _, label := range goldLabels {
		if strings.Contains(pub.FreeToRead, label) {
			return "https://doi.org/" + pub.DOI
		}
	}
	return ""
}

// linkKinds returns the curated link kinds in stable order.
func linkKinds(links map[string]string) []string {
	var kinds []string
	for kind := range links {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// MarkdownLine renders the citation plus OA, DOI and curated link markers,
// the shape publication listings use.
func MarkdownLine(pub *vita.Publication) string {
	var b strings.Builder
	b.WriteString(Markdown(pub))
	if oa := openAccessURL(pub); oa != "" {
		fmt.Fprintf(&b, " [OA](%s)", oa)
	}
	if pub.DOI != "" {
		fmt.Fprintf(&b, " [DOI](https://doi.org/%s)", pub.DOI)
	}
	for _, kind := range linkKinds(pub.Links) {
		fmt.Fprintf(&b, " [%s](%s)", kind, pub.Links[kind])
	}
	return b.String()
}

// LatexLine is MarkdownLine for LaTeX output, markers as \href.
func LatexLine(pub *vita.Publication) string {
	var b strings.Builder
	b.WriteString(Latex(pub))
	if oa := openAccessURL(pub); oa != "" {
		fmt.Fprintf(&b, ` \href{%s}{OA}`, oa)
	}
	if pub.DOI != "" {
		fmt.Fprintf(&b, ` \href{https://doi.org/%s}{DOI}`, pub.DOI)
	}
	for _, kind := range linkKinds(pub.Links) {
		fmt.Fprintf(&b, ` \href{%s}{%s}`, pub.Links[kind], kind)
	}
	return b.String()
}

// Attach fills in the citation substructure for every publication.
func Attach(pubs []*vita.Publication) {
	for _, pub := range pubs {
		pub.Citation = &vita.Citation{
			Latex:    Latex(pub),
			Markdown: Markdown(pub),
		}
	}
}

// Sort orders publications by year descending, then by first author.
func Sort(pubs []*vita.Publication) {
	sort.SliceStable(pubs, func(i, j int) bool {
		if pubs[i].Year != pubs[j].Year {
			return pubs[i].Year > pubs[j].Year
		}
		return pubs[i].FirstAuthor() < pubs[j].FirstAuthor()
	})
}
