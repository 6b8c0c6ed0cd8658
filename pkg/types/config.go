// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for outbound requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pubmed-gateway/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// EutilsConfig holds settings for the E-utilities client.
type EutilsConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the E-utilities endpoint without a trailing slash.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey is an optional NCBI API key for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Email and Tool identify the caller to NCBI.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
	Tool  string `json:"tool,omitempty" yaml:"tool,omitempty"`
}

// SearchConfig holds defaults applied to inbound search requests.
type SearchConfig struct {
	// DefaultDatabase is used when a request names no database (default "pubmed").
	DefaultDatabase string `json:"default_database" yaml:"default_database"`

	// DefaultLimit is the page size when a request sets none (default 5).
	DefaultLimit int `json:"default_limit" yaml:"default_limit"`
}

// ServerConfig holds settings for the inbound HTTP surface.
type ServerConfig struct {
	// Port is the TCP port the API listens on.
	Port string `json:"port" yaml:"port"`

	// CORSAllowedOrigins lists origins allowed to call the API ("*" for any).
	CORSAllowedOrigins []string `json:"cors_allowed_origins" yaml:"cors_allowed_origins"`

	// TrustedProxies lists proxy IPs or CIDRs whose forwarding headers are
	// honoured. Empty trusts none.
	TrustedProxies []string `json:"trusted_proxies,omitempty" yaml:"trusted_proxies,omitempty"`
}

// GatewayConfig groups all settings.
type GatewayConfig struct {
	Server ServerConfig `json:"server" yaml:"server"`
	Eutils EutilsConfig `json:"eutils" yaml:"eutils"`
	Search SearchConfig `json:"search" yaml:"search"`
}
