// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package api serves the gateway over HTTP. Each endpoint lives in its own
// module under modules/ and registers itself on the /api group.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/pdiddy/pubmed-gateway/internal/api/modules/efetch"
	"github.com/pdiddy/pubmed-gateway/internal/api/modules/health"
	"github.com/pdiddy/pubmed-gateway/internal/api/modules/search"
	"github.com/pdiddy/pubmed-gateway/internal/api/response"
	"github.com/pdiddy/pubmed-gateway/internal/details"
	"github.com/pdiddy/pubmed-gateway/internal/paginate"
	"github.com/pdiddy/pubmed-gateway/pkg/types"
)

const shutdownTimeout = 10 * time.Second

// Upstream is everything the endpoints need from E-utilities.
type Upstream interface {
	paginate.Upstream
	details.Fetcher
}

// NewEngine builds the gin engine with middleware and all modules registered.
func NewEngine(cfg types.GatewayConfig, up Upstream) (*gin.Engine, error) {
	engine := gin.New()
	engine.Use(RequestID(), Logger(), gin.Recovery())
	engine.NoRoute(response.NoRoute)

	// A nil list trusts no proxy for client IP resolution.
	if err := engine.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("server.trusted_proxies: %w", err)
	}
	trusted, err := proxyMatcher(cfg.Server.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("server.trusted_proxies: %w", err)
	}

	engine.Use(cors.New(corsConfig(cfg.Server.CORSAllowedOrigins)))

	// Base group '/api' for all API routes
	baseGroup := engine.Group("/api")

	health.RegisterRoutes(baseGroup)
	search.RegisterRoutes(baseGroup, up, cfg.Search, trusted)
	efetch.RegisterRoutes(baseGroup, up, cfg.Search.DefaultDatabase)

	return engine, nil
}

// proxyMatcher reports whether a remote IP is one of proxies, given as
// addresses or CIDR prefixes.
func proxyMatcher(proxies []string) (func(remoteIP string) bool, error) {
	prefixes := make([]netip.Prefix, 0, len(proxies))
	for _, p := range proxies {
		if strings.Contains(p, "/") {
			pfx, err := netip.ParsePrefix(p)
			if err != nil {
				return nil, err
			}
			prefixes = append(prefixes, pfx.Masked())
			continue
		}
		addr, err := netip.ParseAddr(p)
		if err != nil {
			return nil, err
		}
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}

	return func(remoteIP string) bool {
		addr, err := netip.ParseAddr(remoteIP)
		if err != nil {
			return false
		}
		addr = addr.Unmap()
		for _, pfx := range prefixes {
			if pfx.Contains(addr) {
				return true
			}
		}
		return false
	}, nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"OPTIONS", "GET"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}

// Start serves the API on cfg.Server.Port until ctx is cancelled, then shuts
// the server down gracefully.
func Start(ctx context.Context, cfg types.GatewayConfig, up Upstream) error {
	engine, err := NewEngine(cfg, up)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("API listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
