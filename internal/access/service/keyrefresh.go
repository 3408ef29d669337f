package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/reservoir/internal/access/metrics"
	"github.com/aussiebroadwan/reservoir/pkg/jwtx"
)

// KeySource loads the issuer's current key set.
type KeySource func(ctx context.Context) (jwtx.JWKS, error)

// KeyRefreshService keeps a KeySet in sync with the token issuer so key
// rotation upstream does not require a restart here.
type KeyRefreshService struct {
	Keys     *jwtx.KeySet
	Source   KeySource
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewKeyRefreshService defaults interval to 15 minutes.
func NewKeyRefreshService(keys *jwtx.KeySet, src KeySource, logger *slog.Logger, interval time.Duration) *KeyRefreshService {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &KeyRefreshService{
		Keys:     keys,
		Source:   src,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Refresh loads the key set once. On failure the previous keys stay active.
func (s *KeyRefreshService) Refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	set, err := s.Source(ctx)
	if err == nil {
		err = s.Keys.Reset(set)
	}
	if err != nil {
		metrics.KeyRefreshTotal.WithLabelValues("error").Inc()
		s.Logger.Warn("jwks refresh failed", "error", err, "keys_loaded", s.Keys.IsReady())
		return err
	}

	metrics.KeyRefreshTotal.WithLabelValues("ok").Inc()
	s.Logger.Debug("jwks refreshed", "keys", len(set.Keys))
	return nil
}

// Start refreshes on every tick. The initial load is the caller's job.
func (s *KeyRefreshService) Start() {
	go s.run()
	s.Logger.Info("jwks refresh started", "interval", s.Interval)
}

// Stop blocks until an in-flight refresh returns.
func (s *KeyRefreshService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("jwks refresh stopped")
}

func (s *KeyRefreshService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = s.Refresh(context.Background())
		case <-s.stopCh:
			return
		}
	}
}
