/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mikeb26/pgnstandings/internal"
)

// ErrNoDataSource is returned by Validate when the config names nowhere to
// load round files from. Without one no pipeline can run.
var ErrNoDataSource = errors.New("no tournament data source configured")

const defaultConcurrency = 4

// Config describes a tournament and where its round files live. It is read
// from tournament-config.json (or an equivalent YAML file).
type Config struct {
	Name           string   `yaml:"name"`
	PrimaryColor   string   `yaml:"primaryColor"`
	SecondaryColor string   `yaml:"secondaryColor"`
	LogoURL        string   `yaml:"logoUrl"`
	SponsorName    string   `yaml:"sponsorName"`
	StartDate      string   `yaml:"startDate"`
	EndDate        string   `yaml:"endDate"`
	Location       string   `yaml:"location"`
	Type           string   `yaml:"type"`
	Prizes         []string `yaml:"prizes"`

	// TournamentRepo is an "owner/name" GitHub repository whose DataBranch
	// holds the round files under DataDir.
	TournamentRepo string `yaml:"tournamentRepo"`
	DataBranch     string `yaml:"dataBranch"`
	DataDir        string `yaml:"dataDir"`

	// DataBucket/DataPrefix locate round files in S3 instead of GitHub.
	DataBucket string `yaml:"dataBucket"`
	DataPrefix string `yaml:"dataPrefix"`

	// Rounds lists round filenames in display order.
	Rounds []string `yaml:"rounds"`

	// Concurrency bounds how many rounds are fetched at once.
	Concurrency int `yaml:"concurrency"`
}

// LoadConfig reads and defaults a config file. YAML is a superset of JSON so
// both formats are accepted.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read tournament config %v: %w", path,
			err)
	}

	return ParseConfig(data)
}

// ParseConfig decodes and defaults config data.
func ParseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unable to parse tournament config: %w", err)
	}
	cfg.applyDefaults()

	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.DataBranch == "" {
		cfg.DataBranch = internal.DefaultDataBranch
	}
	if cfg.DataDir == "" {
		cfg.DataDir = internal.DefaultDataDir
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
}

// Validate reports ErrNoDataSource when neither a repository nor a bucket is
// configured. Callers that supply their own source (e.g. a local directory)
// need not call it.
func (cfg *Config) Validate() error {
	if cfg.TournamentRepo == "" && cfg.DataBucket == "" {
		return ErrNoDataSource
	}

	return nil
}

// Dates returns the parsed start and end dates; unset or unparseable dates
// are returned as zero times alongside the first parse error.
func (cfg *Config) Dates() (time.Time, time.Time, error) {
	start, startErr := internal.ParseDateOrZero(cfg.StartDate)
	end, endErr := internal.ParseDateOrZero(cfg.EndDate)
	if startErr != nil {
		return start, end, fmt.Errorf("parsing startDate %q: %w", cfg.StartDate,
			startErr)
	}
	if endErr != nil {
		return start, end, fmt.Errorf("parsing endDate %q: %w", cfg.EndDate,
			endErr)
	}

	return start, end, nil
}
