package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/reservoir/internal/access/service"
	"github.com/aussiebroadwan/reservoir/pkg/jwtx"
)

// InitKeys loads the issuer's key set once and, for a JWKS URL, returns a
// refresher to keep it current. The refresher is nil for a static file.
func InitKeys(ctx context.Context, cfg Config, logger *slog.Logger) (*jwtx.KeySet, *service.KeyRefreshService, error) {
	keys := jwtx.NewKeySet()

	if cfg.JWKSFile != "" {
		set, err := jwtx.LoadJWKSFile(cfg.JWKSFile)
		if err != nil {
			return nil, nil, fmt.Errorf("load jwks file: %w", err)
		}
		if err := keys.Reset(set); err != nil {
			return nil, nil, fmt.Errorf("load jwks file: %w", err)
		}
		logger.Info("jwks loaded from file", "path", cfg.JWKSFile, "keys", len(set.Keys))
		return keys, nil, nil
	}

	client := &http.Client{Timeout: 10 * time.Second}
	src := func(ctx context.Context) (jwtx.JWKS, error) {
		return jwtx.FetchJWKS(ctx, client, cfg.JWKSURL)
	}

	refresher := service.NewKeyRefreshService(keys, src, logger, cfg.JWKSRefresh)
	// A failed first fetch is not fatal: /readyz reports it and the ticker retries.
	if err := refresher.Refresh(ctx); err != nil {
		logger.Error("initial jwks fetch failed", "url", cfg.JWKSURL, "error", err)
	}
	return keys, refresher, nil
}
