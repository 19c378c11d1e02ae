// Package config loads the researcher identity configuration.
package config

import (
	"fmt"
	"os"

	"github.com/miku/vitakit/schema/vita"
	"gopkg.in/yaml.v3"
)

// Researcher identifies whose record is being aggregated.
type Researcher struct {
	Lastname       string `yaml:"lastname"`
	Firstname      string `yaml:"firstname"`
	Email          string `yaml:"email"`
	Orcid          string `yaml:"orcid"`
	ScopusID       string `yaml:"scopus_id"`
	Query          string `yaml:"query"` // pubmed query string
	ScholarProfile string `yaml:"scholar_profile,omitempty"`
	URL            string `yaml:"url,omitempty"`
}

// Config is the top level configuration file, YAML.
type Config struct {
	Researcher Researcher `yaml:"researcher"`
	// SourcePriority is the processing order, which doubles as scalar
	// field precedence for merges.
	SourcePriority []string `yaml:"source_priority,omitempty"`
	// DBPath is the sqlite database location.
	DBPath string `yaml:"db,omitempty"`
}

// DefaultSourcePriority is the order sources are processed in when the
// config does not say otherwise.
var DefaultSourcePriority = []string{
	vita.SourceScopus,
	vita.SourcePubmed,
	vita.SourceCrossref,
	vita.SourceOrcid,
	vita.SourceManual,
}

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Researcher.Orcid == "" && cfg.Researcher.ScopusID == "" && cfg.Researcher.Query == "" {
		return nil, fmt.Errorf("config: need at least one of orcid, scopus_id, query")
	}
	if len(cfg.SourcePriority) == 0 {
		cfg.SourcePriority = DefaultSourcePriority
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "vitakit.db"
	}
	return &cfg, nil
}
