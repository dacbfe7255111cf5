// Package config loads the league configuration file: endpoints, team
// rosters, name aliases, and the per-match entries that drive an import
// run.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration parses "45s" style values, which time.Duration alone cannot
// read from YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// Endpoints configures the league backend.
type Endpoints struct {
	ImportURL string   `yaml:"import_url"`
	StatsURL  string   `yaml:"stats_url"`
	Timeout   Duration `yaml:"timeout"`
}

// CloseoutOverride corrects the closing turn of one cricket leg. The
// report never states how many darts the winning turn took, so when the
// score sheet says otherwise the override names the game, leg, winning
// side, and the true dart count.
type CloseoutOverride struct {
	Game   int    `yaml:"game"`
	Leg    int    `yaml:"leg"`
	Winner string `yaml:"winner"`
	Darts  int    `yaml:"darts"`
}

// MatchConfig describes one match to import.
type MatchConfig struct {
	Name     string `yaml:"name"`
	MatchID  string `yaml:"match_id"`
	File     string `yaml:"file"`
	HomeTeam string `yaml:"home_team"`
	AwayTeam string `yaml:"away_team"`

	// ReorderByPlayers, when set, lists the card's play order as player
	// combos ("tony/chris") to line out-of-sequence exports back up.
	ReorderByPlayers []string `yaml:"reorder_by_players"`

	CloseoutOverrides []CloseoutOverride `yaml:"closeout_overrides"`
}

// Config is the full league configuration.
type Config struct {
	LeagueID  string              `yaml:"league_id"`
	Endpoints Endpoints           `yaml:"endpoints"`
	Rosters   map[string][]string `yaml:"rosters"`
	Aliases   map[string]string   `yaml:"aliases"`
	Matches   []MatchConfig       `yaml:"matches"`
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if cfg.Endpoints.Timeout == 0 {
		cfg.Endpoints.Timeout = Duration(30 * time.Second)
	}
	for i, m := range cfg.Matches {
		if m.File == "" {
			return nil, fmt.Errorf("match %d (%s): no input file", i+1, m.Name)
		}
	}
	return &cfg, nil
}

// Match finds a configured match by name or match ID.
func (c *Config) Match(key string) (*MatchConfig, bool) {
	for i := range c.Matches {
		if c.Matches[i].Name == key || c.Matches[i].MatchID == key {
			return &c.Matches[i], true
		}
	}
	return nil, false
}
