package config

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if VERIFUND_CONFIG is set
//  3. env (prefix VERIFUND_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv("VERIFUND_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: VERIFUND_ADDR, VERIFUND_LEDGER_URL, ...
	// Map env keys like VERIFUND_LEDGER_URL -> ledger_url (flat keys),
	// preserving underscores to match the koanf tags on the struct.
	envProvider := env.Provider("VERIFUND_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "verifund_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	switch {
	case cfg.Addr == "":
		return nil, errors.New("addr must not be empty")
	case cfg.LedgerURL == "":
		return nil, errors.New("ledger_url must not be empty")
	case cfg.NotifyTimeoutMS <= 0:
		return nil, errors.New("notify_timeout_ms must be positive")
	}
	return &cfg, nil
}
