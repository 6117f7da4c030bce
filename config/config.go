// Package config loads process configuration from the environment, with an
// optional YAML file taking precedence.
package config

import (
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"spreadwatch/internal/services/ranker"
	"spreadwatch/internal/services/spread"
)

// Config holds the runtime settings of the process.
type Config struct {
	// CacheEnabled toggles disk caching of API responses.
	CacheEnabled bool
	// CacheTTL bounds the staleness of cached metadata, tickers and books.
	CacheTTL time.Duration
	// CacheDir is where the response cache file lives.
	CacheDir string
	// PollInterval is the sleep between spread polls; it also bounds the
	// staleness of cached book tickers.
	PollInterval time.Duration
	// MetricsPort is the port of the Prometheus pull endpoint.
	MetricsPort int
	// TopN is how many symbols each ranking keeps.
	TopN int
	// RankField is the 24h ticker statistic rankings sort by.
	RankField ranker.Field
	// DeltaPairing selects how spread deltas match previous observations.
	DeltaPairing spread.Pairing
	// NotionalQuoteAsset selects the symbol set for the notional report.
	NotionalQuoteAsset string
	// SpreadQuoteAsset selects the symbol set the polling loop tracks.
	SpreadQuoteAsset string
}

type yamlConfig struct {
	Cache              *bool  `yaml:"cache"`
	CacheTTLSeconds    *int   `yaml:"cache_ttl_seconds"`
	CacheDir           string `yaml:"cache_dir"`
	PollSeconds        *int   `yaml:"poll_seconds"`
	MetricsPort        *int   `yaml:"metrics_port"`
	TopN               *int   `yaml:"top_n"`
	RankField          string `yaml:"rank_field"`
	DeltaPairing       string `yaml:"delta_pairing"`
	NotionalQuoteAsset string `yaml:"notional_quote_asset"`
	SpreadQuoteAsset   string `yaml:"spread_quote_asset"`
}

// Get loads configuration from the environment and, when -config is
// passed, applies the YAML file on top.
func Get() (Config, error) {
	path := flag.String("config", "", "path to yaml config")
	flag.Parse()

	cfg, err := FromEnv(os.Getenv)
	if err != nil {
		return Config{}, err
	}
	if *path != "" {
		if err := cfg.applyYaml(*path); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// FromEnv builds a Config from the given environment lookup, falling back
// to defaults for unset keys.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		CacheEnabled:       true,
		CacheTTL:           60 * time.Second,
		CacheDir:           os.TempDir(),
		PollInterval:       10 * time.Second,
		MetricsPort:        8080,
		TopN:               5,
		RankField:          ranker.FieldVolume,
		DeltaPairing:       spread.PairByIndex,
		NotionalQuoteAsset: "BTC",
		SpreadQuoteAsset:   "USDT",
	}

	var err error
	if v := getenv("CACHE"); v != "" {
		if cfg.CacheEnabled, err = strconv.ParseBool(v); err != nil {
			return Config{}, errors.Wrapf(err, "invalid CACHE value %q", v)
		}
	}
	if v := getenv("CACHE_TTL"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil || seconds <= 0 {
			return Config{}, errors.Errorf("invalid CACHE_TTL value %q, want positive seconds", v)
		}
		cfg.CacheTTL = time.Duration(seconds) * time.Second
	}
	if v := getenv("CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	if v := getenv("PRINT_DELTA_TIMEOUT"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil || seconds <= 0 {
			return Config{}, errors.Errorf("invalid PRINT_DELTA_TIMEOUT value %q, want positive seconds", v)
		}
		cfg.PollInterval = time.Duration(seconds) * time.Second
	}
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, errors.Errorf("invalid PORT value %q", v)
		}
		cfg.MetricsPort = port
	}
	if v := getenv("TOP_N"); v != "" {
		topN, err := strconv.Atoi(v)
		if err != nil || topN <= 0 {
			return Config{}, errors.Errorf("invalid TOP_N value %q, want positive integer", v)
		}
		cfg.TopN = topN
	}
	if v := getenv("RANK_FIELD"); v != "" {
		if cfg.RankField, err = ranker.ParseField(v); err != nil {
			return Config{}, errors.Wrap(err, "invalid RANK_FIELD value")
		}
	}
	if v := getenv("DELTA_PAIRING"); v != "" {
		if cfg.DeltaPairing, err = spread.ParsePairing(v); err != nil {
			return Config{}, errors.Wrap(err, "invalid DELTA_PAIRING value")
		}
	}
	if v := getenv("NOTIONAL_QUOTE_ASSET"); v != "" {
		cfg.NotionalQuoteAsset = v
	}
	if v := getenv("SPREAD_QUOTE_ASSET"); v != "" {
		cfg.SpreadQuoteAsset = v
	}

	return cfg, nil
}

func (c *Config) applyYaml(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read config file %s", path)
	}

	var tmp yamlConfig
	if err := yaml.Unmarshal(raw, &tmp); err != nil {
		return errors.Wrapf(err, "failed to parse config file %s", path)
	}

	if tmp.Cache != nil {
		c.CacheEnabled = *tmp.Cache
	}
	if tmp.CacheTTLSeconds != nil {
		if *tmp.CacheTTLSeconds <= 0 {
			return errors.Errorf("incorrect 'cache_ttl_seconds' param in yaml config: %d", *tmp.CacheTTLSeconds)
		}
		c.CacheTTL = time.Duration(*tmp.CacheTTLSeconds) * time.Second
	}
	if tmp.CacheDir != "" {
		c.CacheDir = tmp.CacheDir
	}
	if tmp.PollSeconds != nil {
		if *tmp.PollSeconds <= 0 {
			return errors.Errorf("incorrect 'poll_seconds' param in yaml config: %d", *tmp.PollSeconds)
		}
		c.PollInterval = time.Duration(*tmp.PollSeconds) * time.Second
	}
	if tmp.MetricsPort != nil {
		if *tmp.MetricsPort <= 0 || *tmp.MetricsPort > 65535 {
			return errors.Errorf("incorrect 'metrics_port' param in yaml config: %d", *tmp.MetricsPort)
		}
		c.MetricsPort = *tmp.MetricsPort
	}
	if tmp.TopN != nil {
		if *tmp.TopN <= 0 {
			return errors.Errorf("incorrect 'top_n' param in yaml config: %d", *tmp.TopN)
		}
		c.TopN = *tmp.TopN
	}
	if tmp.RankField != "" {
		field, err := ranker.ParseField(tmp.RankField)
		if err != nil {
			return errors.Wrap(err, "incorrect 'rank_field' param in yaml config")
		}
		c.RankField = field
	}
	if tmp.DeltaPairing != "" {
		pairing, err := spread.ParsePairing(tmp.DeltaPairing)
		if err != nil {
			return errors.Wrap(err, "incorrect 'delta_pairing' param in yaml config")
		}
		c.DeltaPairing = pairing
	}
	if tmp.NotionalQuoteAsset != "" {
		c.NotionalQuoteAsset = tmp.NotionalQuoteAsset
	}
	if tmp.SpreadQuoteAsset != "" {
		c.SpreadQuoteAsset = tmp.SpreadQuoteAsset
	}

	return nil
}
