// Package batch runs a transformation over a stream of newline delimited
// records with a fixed number of workers. Used by the converter tool, where
// per-record work (JSON decode, normalize, encode) dominates IO. Output
// order is not guaranteed.
package batch

import (
	"bufio"
	"context"
	"io"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

const (
	defaultBatchSize    = 1000
	defaultMaxTokenSize = 1 << 24 // single records larger than 16MB are a data error
)

// TransformFunc turns one record into output bytes. A nil, nil return
// drops the record without error.
type TransformFunc func([]byte) ([]byte, error)

// Processor fans record batches out to workers and funnels results into a
// single writer.
type Processor struct {
	r            io.Reader
	w            io.Writer
	f            TransformFunc
	NumWorkers   int
	BatchSize    int
	MaxTokenSize int
}

func NewProcessor(r io.Reader, w io.Writer, f TransformFunc) *Processor {
	return &Processor{
		r:            r,
		w:            w,
		f:            f,
		NumWorkers:   runtime.NumCPU(),
		BatchSize:    defaultBatchSize,
		MaxTokenSize: defaultMaxTokenSize,
	}
}

// Run processes the stream until EOF or the first error. The first failing
// record aborts the whole run; callers that want to tolerate bad records
// handle the error inside their TransformFunc.
func (p *Processor) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	var (
		batches = make(chan [][]byte, p.NumWorkers)
		mu      sync.Mutex // serializes writes
	)
	g.Go(func() error {
		defer close(batches)
		scanner := bufio.NewScanner(p.r)
		scanner.Buffer(make([]byte, bufio.MaxScanTokenSize), p.MaxTokenSize)
		batch := make([][]byte, 0, p.BatchSize)
		for scanner.Scan() {
			if len(scanner.Bytes()) == 0 {
				continue
			}
			b := make([]byte, len(scanner.Bytes()))
			copy(b, scanner.Bytes())
			batch = append(batch, b)
			if len(batch) == p.BatchSize {
				select {
				case batches <- batch:
				case <-ctx.Done():
					return ctx.Err()
				}
				batch = make([][]byte, 0, p.BatchSize)
			}
		}
		if err := scanner.Err(); err != nil {
			return err
		}
		if len(batch) > 0 {
			select {
			case batches <- batch:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for i := 0; i < p.NumWorkers; i++ {
		g.Go(func() error {
			for batch := range batches {
				var buf []byte
				for _, record := range batch {
					out, err := p.f(record)
					if err != nil {
						return err
					}
					buf = append(buf, out...)
				}
				mu.Lock()
				_, err := p.w.Write(buf)
				mu.Unlock()
				if err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
