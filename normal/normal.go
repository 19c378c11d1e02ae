// Package normal provides string normalization pipelines, used to build
// title match keys for identity resolution.
package normal

import (
	"strings"
	"unicode"
)

type Pipeline struct {
	Normalizer []Normalizer
}

func (p *Pipeline) Normalize(s string) string {
	for _, n := range p.Normalizer {
		s = n.Normalize(s)
	}
	return s
}

type Normalizer interface {
	Normalize(string) string
}

type LowercaseNormalizer struct{}

func (n *LowercaseNormalizer) Normalize(v string) string {
	return strings.ToLower(v)
}

type CollapseWSNormalizer struct{}

func (n *CollapseWSNormalizer) Normalize(v string) string {
	return strings.Join(strings.FieldsFunc(v, unicode.IsSpace), " ")
}

type TrimPeriodNormalizer struct{}

func (n *TrimPeriodNormalizer) Normalize(v string) string {
	return strings.TrimRight(strings.TrimSpace(v), ".")
}

var titlePipeline = Pipeline{
	Normalizer: []Normalizer{
		&TrimPeriodNormalizer{},
		&CollapseWSNormalizer{},
		&LowercaseNormalizer{},
	},
}

// TitleKey returns the case-insensitive exact match key for a title.
// Deliberately no fuzzy matching here.
func TitleKey(s string) string {
	return titlePipeline.Normalize(s)
}
