package convert

import (
	"fmt"
	"testing"
)

func TestCleanDOI(t *testing.T) {
	testCases := []struct {
		raw    string
		result string
	}{
		{"10.1234/asdf ", "10.1234/asdf"},
		{"10.1038/NPLASTICITY.2020.1", "10.1038/nplasticity.2020.1"},
		{"doi:10.1234/asdf", "10.1234/asdf"},
		{"http://doi.org/10.1234/asdf", "10.1234/asdf"},
		{"https://dx.doi.org/10.1234/asdf", "10.1234/asdf"},
		{"10.7326/M20-6817", "10.7326/m20-6817"},
		{"10.1037//0002-9432.72.1.50", "10.1037//0002-9432.72.1.50"},
		{"10.1234/ asdf", ""},
		{"10.6002/ect.2020.häyry", ""},
		{"10.123/tooshort", ""},
		{"10.1/x", ""},
		{"9.1234/notadoi", ""},
		{"PMC7203000", ""},
		{"", ""},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("testing DOI: %s", tc.raw), func(t *testing.T) {
			cleaned := CleanDOI(tc.raw)
			if cleaned != tc.result {
				t.Errorf("want %s, but got %s", tc.result, cleaned)
			}
		})
	}
}
