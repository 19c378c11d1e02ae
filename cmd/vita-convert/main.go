// vita-convert converts raw source records from stdin to publication
// JSON lines on stdout.
//
// $ curl -sL $SCOPUS_SEARCH_URL | jq -c '.["search-results"].entry[]' | vita-convert -f scopus
//
// Supported input formats: scopus (json lines), crossref (json lines),
// orcid (json lines of work summaries), pubmed (xml article set),
// csv (manual additions). Line formats are processed in parallel.
package main

import (
	"bufio"
	"context"
	"encoding/xml"
	"flag"
	"fmt"
	"os"
	"runtime"
	"sync/atomic"

	"github.com/miku/vitakit/batch"
	"github.com/miku/vitakit/convert"
	"github.com/miku/vitakit/reconcile"
	"github.com/miku/vitakit/schema/crossref"
	"github.com/miku/vitakit/schema/orcid"
	"github.com/miku/vitakit/schema/pubmed"
	"github.com/miku/vitakit/schema/scopus"
	"github.com/miku/vitakit/schema/vita"
	"github.com/segmentio/encoding/json"
	log "github.com/sirupsen/logrus"
)

var (
	format     = flag.String("f", "crossref", "input format: scopus, crossref, orcid, pubmed, csv")
	numWorkers = flag.Int("w", runtime.NumCPU(), "number of workers for line formats")
	batchSize  = flag.Int("b", 1000, "records per batch")
)

var converted, skipped, failed atomic.Int64

func main() {
	flag.Parse()
	bw := bufio.NewWriter(os.Stdout)
	defer bw.Flush()
	switch *format {
	case "scopus":
		runLines(bw, func(b []byte) (*vita.Publication, error) {
			var entry scopus.Entry
			if err := json.Unmarshal(b, &entry); err != nil {
				return nil, err
			}
			return convert.ScopusEntryToPublication(&entry)
		})
	case "crossref":
		runLines(bw, func(b []byte) (*vita.Publication, error) {
			var work crossref.Work
			if err := json.Unmarshal(b, &work); err != nil {
				return nil, err
			}
			return convert.CrossrefWorkToPublication(&work)
		})
	case "orcid":
		runLines(bw, func(b []byte) (*vita.Publication, error) {
			var ws orcid.WorkSummary
			if err := json.Unmarshal(b, &ws); err != nil {
				return nil, err
			}
			return convert.OrcidWorkToPublication(&ws)
		})
	case "pubmed":
		var set pubmed.ArticleSet
		if err := xml.NewDecoder(bufio.NewReader(os.Stdin)).Decode(&set); err != nil {
			log.Fatal(err)
		}
		enc := json.NewEncoder(bw)
		for i := range set.Article {
			pub, err := convert.PubmedArticleToPublication(&set.Article[i])
			if !observe(pub, err) {
				continue
			}
			if err := enc.Encode(pub); err != nil {
				log.Fatal(err)
			}
		}
	case "csv":
		rows, err := convert.ReadManualCSV(bufio.NewReader(os.Stdin))
		if err != nil {
			log.Fatal(err)
		}
		enc := json.NewEncoder(bw)
		for _, row := range rows {
			pub, err := convert.ManualRowToPublication(row)
			if !observe(pub, err) {
				continue
			}
			if err := enc.Encode(pub); err != nil {
				log.Fatal(err)
			}
		}
	default:
		log.Fatalf("unsupported format: %s", *format)
	}
	stats := reconcile.Stats{
		Converted: int(converted.Load()),
		Skipped:   int(skipped.Load()),
		Failed:    int(failed.Load()),
	}
	fmt.Fprintln(os.Stderr, stats.String())
}

// observe counts one conversion outcome and reports whether the record
// should be emitted.
func observe(pub *vita.Publication, err error) bool {
	switch {
	case err == nil:
		converted.Add(1)
		return true
	case convert.IsSkip(err):
		skipped.Add(1)
		return false
	default:
		failed.Add(1)
		log.WithField("err", err).Warn("conversion failed")
		return false
	}
}

// runLines processes newline delimited records in parallel. A record that
// fails to parse or convert is counted and dropped, never aborts the run.
func runLines(w *bufio.Writer, parse func([]byte) (*vita.Publication, error)) {
	p := batch.NewProcessor(os.Stdin, w, func(b []byte) ([]byte, error) {
		pub, err := parse(b)
		if !observe(pub, err) {
			return nil, nil
		}
		out, err := json.Marshal(pub)
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	})
	p.NumWorkers = *numWorkers
	p.BatchSize = *batchSize
	if err := p.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
