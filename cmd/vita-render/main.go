// vita-render prints the committed publication set as a citation list,
// latest first.
//
// $ vita-render -db vitakit.db -f latex > publications.tex
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/miku/vitakit/render"
	"github.com/miku/vitakit/schema/vita"
	"github.com/miku/vitakit/store"
	"github.com/segmentio/encoding/json"
	log "github.com/sirupsen/logrus"
)

var (
	dbPath   = flag.String("db", "vitakit.db", "sqlite database path")
	format   = flag.String("f", "markdown", "output format: latex, markdown, json")
	byYear   = flag.Bool("y", false, "group output under year headings")
	sinceVal = flag.Int64("since", 0, "only publications from this year on")
)

func main() {
	flag.Parse()
	st, err := store.OpenSQLite(*dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()
	pubs, err := st.GetAll()
	if err != nil {
		log.Fatal(err)
	}
	if *sinceVal > 0 {
		pubs = slices.DeleteFunc(pubs, func(p *vita.Publication) bool {
			return p.Year < *sinceVal
		})
	}
	render.Sort(pubs)
	bw := bufio.NewWriter(os.Stdout)
	defer bw.Flush()
	var year int64 = -1
	for _, pub := range pubs {
		if *byYear && pub.Year != year {
			year = pub.Year
			switch *format {
			case "latex":
				fmt.Fprintf(bw, "\n\\subsection*{%d}\n\n", year)
			case "markdown":
				fmt.Fprintf(bw, "\n## %d\n\n", year)
			}
		}
		switch *format {
		case "latex":
			fmt.Fprintln(bw, render.LatexLine(pub))
		case "markdown":
			fmt.Fprintln(bw, render.MarkdownLine(pub))
		case "json":
			if err := json.NewEncoder(bw).Encode(pub); err != nil {
				log.Fatal(err)
			}
		default:
			log.Fatalf("unsupported format: %s", *format)
		}
	}
}
