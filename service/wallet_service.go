package service

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cross_escrow/model"
	"github.com/cross_escrow/protocol"
	"github.com/cross_escrow/repository"
)

type WalletService struct {
	store  repository.Store
	clock  Clock
	logger zerolog.Logger
}

func NewWalletService(store repository.Store, clock Clock, logger zerolog.Logger) *WalletService {
	return &WalletService{store: store, clock: clock, logger: logger}
}

type CreateWalletParams struct {
	OrderHash         []byte
	Maker             string
	MakingAmount      uint64
	TakingAmountStart uint64
	TakingAmountEnd   uint64
	AuctionDurationMs uint64
	Hashlock          []byte
	AllowPartialFills bool
	PartsAmount       uint64
	Timelocks         model.Timelocks
}

// CreateWallet publishes the maker's shared funding vessel. The maker's
// asset is locked into the wallet in full; resolvers can only split value
// out of it, never add.
func (s *WalletService) CreateWallet(p CreateWalletParams) (*model.Wallet, error) {
	if !protocol.ValidHash(p.OrderHash) {
		return nil, model.ErrInvalidOrderHash
	}
	if !protocol.ValidHash(p.Hashlock) {
		return nil, model.ErrInvalidHashlock
	}
	if p.MakingAmount == 0 || p.TakingAmountStart == 0 || p.TakingAmountEnd == 0 {
		return nil, model.ErrInvalidAmount
	}
	if p.TakingAmountStart < p.TakingAmountEnd {
		// the reserve price decays; a rising curve is a client bug
		return nil, model.ErrInvalidAmount
	}
	if p.AuctionDurationMs == 0 {
		return nil, model.ErrInvalidDuration
	}
	if p.AllowPartialFills != (p.PartsAmount > 0) {
		return nil, model.ErrInvalidPartialFill
	}
	if err := p.Timelocks.Validate(); err != nil {
		return nil, err
	}

	cfg, err := s.store.GetConfig()
	if err != nil {
		return nil, err
	}

	now := s.clock.NowMs()
	wallet := &model.Wallet{
		ID:                uuid.NewString(),
		OrderHash:         p.OrderHash,
		Maker:             p.Maker,
		Principal:         model.NewBalance(p.MakingAmount),
		MakingAmount:      p.MakingAmount,
		TakingAmountStart: p.TakingAmountStart,
		TakingAmountEnd:   p.TakingAmountEnd,
		AuctionDurationMs: p.AuctionDurationMs,
		Hashlock:          p.Hashlock,
		AllowPartialFills: p.AllowPartialFills,
		PartsAmount:       p.PartsAmount,
		IsActive:          true,
		DeployedAt:        now,
		RescueDelayMs:     cfg.RescueDelayMs,
		MinSafetyDeposit:  cfg.MinSafetyDeposit,
	}

	err = s.store.Atomically(func(st repository.Store) error {
		if err := st.CreateWallet(wallet); err != nil {
			return err
		}
		return appendEvent(st, model.EventWalletCreated, wallet.ID, wallet.OrderHash, now, model.WalletCreatedPayload{
			WalletID:      wallet.ID,
			OrderHash:     wallet.OrderHash,
			Maker:         wallet.Maker,
			InitialAmount: wallet.MakingAmount,
			CreatedAt:     now,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("wallet_id", wallet.ID).
		Str("maker", wallet.Maker).
		Str("amount", model.FormatNative(wallet.MakingAmount)).
		Uint64("parts", wallet.PartsAmount).
		Msg("wallet created")
	return wallet, nil
}

func (s *WalletService) GetWallet(id string) (*model.Wallet, error) {
	return s.store.GetWallet(id)
}
