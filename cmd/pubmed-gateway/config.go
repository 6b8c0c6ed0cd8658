// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-gateway/internal/eutils"
	"github.com/pdiddy/pubmed-gateway/internal/paginate"
	"github.com/pdiddy/pubmed-gateway/internal/secrets"
	"github.com/pdiddy/pubmed-gateway/pkg/types"
)

const defaultUserAgent = "pubmed-gateway/0.1"

// envKeyReplacer maps nested keys to env names: eutils.api_key becomes
// PUBMED_GATEWAY_EUTILS_API_KEY.
var envKeyReplacer = strings.NewReplacer(".", "_")

func setDefaults() {
	viper.SetDefault("server.port", "8000")
	viper.SetDefault("server.cors_allowed_origins", []string{"*"})
	viper.SetDefault("server.trusted_proxies", []string{})
	viper.SetDefault("eutils.base_url", eutils.DefaultBaseURL)
	viper.SetDefault("eutils.timeout", eutils.DefaultTimeout)
	viper.SetDefault("eutils.user_agent", defaultUserAgent)
	viper.SetDefault("eutils.api_key", "")
	viper.SetDefault("eutils.email", "")
	viper.SetDefault("eutils.tool", "")
	viper.SetDefault("search.default_limit", paginate.DefaultLimit)
	viper.SetDefault("search.default_database", types.DefaultDatabase)
}

// loadConfig assembles the effective configuration from viper, falling back
// to .secrets/ for credentials not set in config or the environment.
func loadConfig() (types.GatewayConfig, error) {
	cfg := types.GatewayConfig{
		Server: types.ServerConfig{
			Port:               viper.GetString("server.port"),
			CORSAllowedOrigins: viper.GetStringSlice("server.cors_allowed_origins"),
			TrustedProxies:     viper.GetStringSlice("server.trusted_proxies"),
		},
		Eutils: types.EutilsConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("eutils.timeout"),
				UserAgent: viper.GetString("eutils.user_agent"),
			},
			BaseURL: viper.GetString("eutils.base_url"),
			APIKey:  secretDefault(secrets.NCBIAPIKey, viper.GetString("eutils.api_key")),
			Email:   secretDefault(secrets.NCBIEmail, viper.GetString("eutils.email")),
			Tool:    viper.GetString("eutils.tool"),
		},
		Search: types.SearchConfig{
			DefaultDatabase: viper.GetString("search.default_database"),
			DefaultLimit:    viper.GetInt("search.default_limit"),
		},
	}

	if cfg.Eutils.BaseURL == "" {
		cfg.Eutils.BaseURL = eutils.DefaultBaseURL
	}
	if cfg.Eutils.Timeout <= 0 {
		cfg.Eutils.Timeout = eutils.DefaultTimeout
	}
	if cfg.Search.DefaultLimit <= 0 {
		return cfg, fmt.Errorf("search.default_limit must be positive, got %d", cfg.Search.DefaultLimit)
	}
	return cfg, nil
}

// newClient builds the E-utilities client for cfg.
func newClient(cfg types.EutilsConfig) *eutils.Client {
	return eutils.NewClient(
		eutils.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		eutils.WithBaseURL(cfg.BaseURL),
		eutils.WithAPIKey(cfg.APIKey),
		eutils.WithContact(cfg.Email, cfg.Tool),
		eutils.WithUserAgent(cfg.UserAgent),
	)
}

// outputFormat resolves the mutually exclusive output flags.
func outputFormat(asJSON, asYAML bool) (string, error) {
	switch {
	case asJSON && asYAML:
		return "", fmt.Errorf("--json and --yaml are mutually exclusive")
	case asJSON:
		return "json", nil
	case asYAML:
		return "yaml", nil
	}
	return "text", nil
}
