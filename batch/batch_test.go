package batch

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
)

func TestProcessor(t *testing.T) {
	input := "a\nb\nc\n\nd\n"
	var buf bytes.Buffer
	p := NewProcessor(strings.NewReader(input), &buf, func(b []byte) ([]byte, error) {
		return append(bytes.ToUpper(b), '\n'), nil
	})
	p.BatchSize = 2
	if err := p.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	got := strings.Fields(buf.String())
	sort.Strings(got) // output order is not guaranteed
	want := "A B C D"
	if strings.Join(got, " ") != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestProcessorDropsRecords(t *testing.T) {
	var buf bytes.Buffer
	p := NewProcessor(strings.NewReader("keep\ndrop\nkeep\n"), &buf, func(b []byte) ([]byte, error) {
		if string(b) == "drop" {
			return nil, nil
		}
		return append(b, '\n'), nil
	})
	if err := p.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "keep"); n != 2 {
		t.Errorf("want 2 kept records, got %d", n)
	}
}

func TestProcessorPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	p := NewProcessor(strings.NewReader("x\n"), &bytes.Buffer{}, func(b []byte) ([]byte, error) {
		return nil, boom
	})
	if err := p.Run(context.Background()); !errors.Is(err, boom) {
		t.Errorf("want boom, got %v", err)
	}
}
