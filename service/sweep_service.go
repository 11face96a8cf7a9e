package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/cross_escrow/model"
	"github.com/cross_escrow/repository"
)

// SweepService periodically scans for objects that sat past their rescue
// horizon and surfaces them to operators. It never mutates state — rescue
// itself stays a caller-submitted transaction.
type SweepService struct {
	store    repository.Store
	clock    Clock
	logger   zerolog.Logger
	interval time.Duration
}

func NewSweepService(store repository.Store, clock Clock, logger zerolog.Logger, interval time.Duration) *SweepService {
	return &SweepService{store: store, clock: clock, logger: logger, interval: interval}
}

func (s *SweepService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepOnce()
		}
	}
}

func (s *SweepService) sweepOnce() {
	now := s.clock.NowMs()

	escrows, err := s.store.ListExpiredEscrows(now)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to scan expired escrows")
		return
	}
	for _, e := range escrows {
		s.logger.Warn().
			Str("escrow_id", e.ID).
			Str("side", string(e.Side)).
			Str("principal", model.FormatNative(e.Principal.Amount())).
			Str("deposit", model.FormatNative(e.SafetyDeposit.Amount())).
			Msg("escrow past rescue horizon")
	}

	wallets, err := s.store.ListExpiredWallets(now)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to scan expired wallets")
		return
	}
	for _, w := range wallets {
		if w.Principal.IsZero() {
			continue
		}
		s.logger.Warn().
			Str("wallet_id", w.ID).
			Str("principal", model.FormatNative(w.Principal.Amount())).
			Msg("wallet past rescue horizon")
	}
}
