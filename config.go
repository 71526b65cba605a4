package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultWorldSeed = "prototype"

// worldConfig captures the knobs used when generating a world. Balance
// constants (tier stats, costs) are deliberately not configurable.
type worldConfig struct {
	Seed           string       `json:"seed" yaml:"seed"`
	MaxLiveMonkeys int          `json:"maxLiveMonkeys" yaml:"max_live_monkeys"`
	BananaMax      int          `json:"bananaMax" yaml:"banana_max"`
	TreeCount      int          `json:"treeCount" yaml:"tree_count"`
	TeamStrategy   TeamStrategy `json:"teamStrategy" yaml:"team_strategy"`
}

// normalized returns a config with defaults applied.
func (cfg worldConfig) normalized() worldConfig {
	normalized := cfg
	normalized.Seed = strings.TrimSpace(normalized.Seed)
	if normalized.Seed == "" {
		normalized.Seed = defaultWorldSeed
	}
	if normalized.MaxLiveMonkeys <= 0 {
		normalized.MaxLiveMonkeys = defaultMaxLiveMonkeys
	}
	if normalized.BananaMax <= 0 {
		normalized.BananaMax = defaultBananaMax
	}
	if normalized.TreeCount < 0 {
		normalized.TreeCount = defaultTreeCount
	}
	switch normalized.TeamStrategy {
	case TeamStrategyWallet, TeamStrategyBucket:
	default:
		normalized.TeamStrategy = TeamStrategyWallet
	}
	return normalized
}

// defaultWorldConfig is the world used when no config file is supplied.
func defaultWorldConfig() worldConfig {
	return worldConfig{
		Seed:           defaultWorldSeed,
		MaxLiveMonkeys: defaultMaxLiveMonkeys,
		BananaMax:      defaultBananaMax,
		TreeCount:      defaultTreeCount,
		TeamStrategy:   TeamStrategyWallet,
	}
}

// configDuration makes "5s" style values parse from YAML.
type configDuration time.Duration

func (d *configDuration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = configDuration(parsed)
	return nil
}

func (d configDuration) Duration() time.Duration {
	return time.Duration(d)
}

// fundingConfig wires the transaction poller.
type fundingConfig struct {
	Enabled      bool           `yaml:"enabled"`
	URL          string         `yaml:"url"`
	PollInterval configDuration `yaml:"poll_interval"`
	SchemaPath   string         `yaml:"schema_path"`
}

type loggingConfig struct {
	Sinks    []string `yaml:"sinks"`
	JSONPath string   `yaml:"json_path"`
}

// serverConfig is the top-level config.yaml document.
type serverConfig struct {
	Addr    string        `yaml:"addr"`
	World   worldConfig   `yaml:"world"`
	Funding fundingConfig `yaml:"funding"`
	Logging loggingConfig `yaml:"logging"`
}

func (cfg serverConfig) normalized() serverConfig {
	normalized := cfg
	if normalized.Addr == "" {
		normalized.Addr = ":8080"
	}
	normalized.World = normalized.World.normalized()
	if normalized.Funding.PollInterval <= 0 {
		normalized.Funding.PollInterval = configDuration(5 * time.Second)
	}
	if normalized.Funding.SchemaPath == "" {
		normalized.Funding.SchemaPath = "schemas/funding_event.schema.json"
	}
	if len(normalized.Logging.Sinks) == 0 {
		normalized.Logging.Sinks = []string{"console"}
	}
	return normalized
}

// loadServerConfig reads config.yaml, falling back to defaults when the file
// is absent.
func loadServerConfig(path string) (serverConfig, error) {
	cfg := serverConfig{World: defaultWorldConfig()}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg.normalized(), nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg.normalized(), nil
}
