package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/Synth-Beta/synth-beta-testing-sub007/internal/markets/core/domain"
)

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Postgres PostgresConfig `toml:"postgres"`
	Cache    CacheConfig    `toml:"cache"`
	Targets  []TargetConfig `toml:"targets"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type PostgresConfig struct {
	DSN          string `toml:"dsn"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

type CacheConfig struct {
	TTLSeconds int `toml:"ttl_seconds"`
}

func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

type TargetConfig struct {
	Name      string   `toml:"name"`
	Aliases   []string `toml:"aliases"`
	TargetMAU int      `toml:"target_mau"`
	Phase     int      `toml:"phase"`
}

// Load reads a TOML config file and applies defaults. An empty path yields
// the default configuration. POSTGRES_DSN overrides the configured DSN.
func Load(path string) (Config, error) {
	cfg := Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Postgres.MaxOpenConns == 0 {
		cfg.Postgres.MaxOpenConns = 20
	}
	if cfg.Postgres.MaxIdleConns == 0 {
		cfg.Postgres.MaxIdleConns = 10
	}
	if cfg.Cache.TTLSeconds == 0 {
		cfg.Cache.TTLSeconds = 60
	}
	if len(cfg.Targets) == 0 {
		cfg.Targets = DefaultTargets()
	}

	if dsn := os.Getenv("POSTGRES_DSN"); dsn != "" {
		cfg.Postgres.DSN = dsn
	}

	return cfg, nil
}

// CityTargets converts the configured target table, preserving declaration
// order.
func (c Config) CityTargets() []domain.CityTarget {
	targets := make([]domain.CityTarget, 0, len(c.Targets))
	for _, t := range c.Targets {
		targets = append(targets, domain.CityTarget{
			Name:      t.Name,
			Aliases:   t.Aliases,
			TargetMAU: t.TargetMAU,
			Phase:     t.Phase,
		})
	}
	return targets
}

// DefaultTargets is the compiled-in launch-market table used when the config
// file does not declare one. Phase 4 is the reserved future/international
// placeholder and is excluded from snapshots.
func DefaultTargets() []TargetConfig {
	return []TargetConfig{
		{Name: "Austin", Aliases: []string{"Austin, TX", "ATX"}, TargetMAU: 2000, Phase: 1},
		{Name: "Nashville", Aliases: []string{"Nashville, TN"}, TargetMAU: 1500, Phase: 1},
		{Name: "Denver", Aliases: []string{"Denver, CO"}, TargetMAU: 1500, Phase: 1},
		{Name: "Portland", Aliases: []string{"Portland, OR", "PDX"}, TargetMAU: 1200, Phase: 2},
		{Name: "Washington DC", Aliases: []string{"Washington, D.C.", "DC"}, TargetMAU: 2500, Phase: 2},
		{Name: "Charlotte", Aliases: []string{"Charlotte, NC"}, TargetMAU: 1000, Phase: 2},
		{Name: "Chicago", Aliases: []string{"Chicago, IL"}, TargetMAU: 3000, Phase: 3},
		{Name: "Seattle", Aliases: []string{"Seattle, WA"}, TargetMAU: 2000, Phase: 3},
		{Name: "International", Aliases: nil, TargetMAU: 0, Phase: 4},
	}
}
