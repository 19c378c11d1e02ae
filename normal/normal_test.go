package normal

import "testing"

func TestTitleKey(t *testing.T) {
	testCases := []struct {
		raw    string
		result string
	}{
		{"Mapping the Brain.", "mapping the brain"},
		{"  Mapping   the\tBrain ", "mapping the brain"},
		{"MAPPING THE BRAIN", "mapping the brain"},
		{"", ""},
		{"...", ""},
	}
	for _, tc := range testCases {
		if got := TitleKey(tc.raw); got != tc.result {
			t.Errorf("TitleKey(%q): want %q, got %q", tc.raw, tc.result, got)
		}
	}
}

func TestPipeline(t *testing.T) {
	p := Pipeline{Normalizer: []Normalizer{
		&TrimPeriodNormalizer{},
		&LowercaseNormalizer{},
	}}
	if got := p.Normalize("Hello."); got != "hello" {
		t.Errorf("want hello, got %q", got)
	}
}
