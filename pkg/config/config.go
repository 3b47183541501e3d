// Package config loads runtime settings from the environment and an
// optional config file (prefix FIXEDSWAP, e.g. FIXEDSWAP_RPC_ENDPOINTS).
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	// RPCEndpoints are the HTTP RPC endpoints, tried round-robin.
	RPCEndpoints []string `mapstructure:"rpc_endpoints"`
	// WSEndpoint is the WebSocket endpoint for vault watching.
	WSEndpoint string `mapstructure:"ws_endpoint"`
	// JitoEndpoint, when set, enables bundle submission.
	JitoEndpoint string `mapstructure:"jito_endpoint"`
	// RateLimit is requests per second per endpoint.
	RateLimit int `mapstructure:"rate_limit"`
}

// Load reads configuration from path (optional) and the environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FIXEDSWAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("rpc_endpoints", []string{})
	v.SetDefault("ws_endpoint", "")
	v.SetDefault("jito_endpoint", "")
	v.SetDefault("rate_limit", 20)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	// Environment variables carry lists comma-separated.
	cleaned := make([]string, 0, len(cfg.RPCEndpoints))
	for _, e := range cfg.RPCEndpoints {
		for _, p := range strings.Split(e, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				cleaned = append(cleaned, trimmed)
			}
		}
	}
	cfg.RPCEndpoints = cleaned
	return cfg, nil
}
