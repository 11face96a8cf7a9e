package service

import (
	"bytes"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cross_escrow/model"
	"github.com/cross_escrow/protocol"
	"github.com/cross_escrow/repository"
)

type EscrowService struct {
	store  repository.Store
	clock  Clock
	locks  *LockTable
	logger zerolog.Logger
}

func NewEscrowService(store repository.Store, clock Clock, locks *LockTable, logger zerolog.Logger) *EscrowService {
	return &EscrowService{store: store, clock: clock, locks: locks, logger: logger}
}

type CreateEscrowSrcParams struct {
	WalletID string
	Caller   string // the resolver committing inventory
	Taker    string

	// SecretHashlock is keccak256(secret_k) in partial-fill mode (the leaf
	// preimage's hash), or the wallet's single hashlock otherwise.
	SecretHashlock []byte
	SecretIndex    uint64
	MerkleProof    [][]byte

	Amount        uint64
	TakingAmount  uint64
	SafetyDeposit uint64
	Timelocks     model.Timelocks
}

// CreateEscrowSrc drains a proportional share of the wallet into a new
// source escrow. The wallet's consumption is monotonic: the balance only
// drops and the secret index only climbs, so a replayed drain always
// rejects.
func (s *EscrowService) CreateEscrowSrc(p CreateEscrowSrcParams) (*model.Escrow, error) {
	unlock := s.locks.Acquire(p.WalletID)
	defer unlock()

	wallet, err := s.store.GetWallet(p.WalletID)
	if err != nil {
		return nil, err
	}

	now := s.clock.NowMs()

	if !wallet.IsActive {
		return nil, model.ErrWalletInactive
	}
	if p.Amount == 0 {
		return nil, model.ErrInvalidAmount
	}
	if p.Amount > wallet.Principal.Amount() {
		return nil, model.ErrInsufficientBalance
	}
	if p.SafetyDeposit < wallet.MinSafetyDeposit {
		return nil, model.ErrInvalidSafetyDeposit
	}
	if err := p.Timelocks.Validate(); err != nil {
		return nil, err
	}

	// Dutch auction bound, scaled to the filled share. Offers strictly
	// below the curve are refused.
	curve := protocol.AuctionPrice(
		wallet.TakingAmountStart, wallet.TakingAmountEnd,
		wallet.DeployedAt, int64(wallet.AuctionDurationMs), now,
	)
	if p.TakingAmount < protocol.RequiredTaking(curve, p.Amount, wallet.MakingAmount) {
		return nil, model.ErrInvalidAmount
	}

	if !protocol.ValidHash(p.SecretHashlock) {
		return nil, model.ErrInvalidHashlock
	}

	if wallet.AllowPartialFills {
		if p.SecretIndex <= wallet.LastUsedIndex {
			return nil, model.ErrSecretAlreadyUsed
		}
		if err := protocol.ValidateFillIndex(
			wallet.MakingAmount, wallet.FilledAmount(), p.Amount,
			wallet.PartsAmount, p.SecretIndex,
		); err != nil {
			return nil, err
		}
		leaf := protocol.Leaf(p.SecretIndex, p.SecretHashlock)
		if err := protocol.VerifyProof(leaf, p.MerkleProof, wallet.Hashlock); err != nil {
			return nil, err
		}
	} else {
		if p.SecretIndex != 0 || len(p.MerkleProof) != 0 {
			return nil, model.ErrInvalidPartialFill
		}
		if !bytes.Equal(p.SecretHashlock, wallet.Hashlock) {
			return nil, model.ErrInvalidHashlock
		}
	}

	principal, err := wallet.Principal.Split(p.Amount)
	if err != nil {
		return nil, err
	}
	if wallet.AllowPartialFills {
		wallet.LastUsedIndex = p.SecretIndex
	}
	if wallet.Principal.IsZero() {
		wallet.IsActive = false
	}

	escrow := &model.Escrow{
		ID:             uuid.NewString(),
		Side:           model.EscrowSideSrc,
		OrderHash:      wallet.OrderHash,
		Hashlock:       p.SecretHashlock,
		Maker:          wallet.Maker,
		Taker:          p.Taker,
		Resolver:       p.Caller,
		Principal:      principal,
		SafetyDeposit:  model.NewBalance(p.SafetyDeposit),
		InitialAmount:  p.Amount,
		InitialDeposit: p.SafetyDeposit,
		Timelocks:      p.Timelocks,
		DeployedAt:     now,
		RescueDelayMs:  wallet.RescueDelayMs,
		Status:         model.EscrowStatusActive,
	}

	err = s.store.Atomically(func(st repository.Store) error {
		if err := st.SaveWallet(wallet); err != nil {
			return err
		}
		if err := st.CreateEscrow(escrow); err != nil {
			return err
		}
		return appendEvent(st, model.EventEscrowCreated, escrow.ID, escrow.OrderHash, now, model.EscrowCreatedPayload{
			EscrowID:      escrow.ID,
			OrderHash:     escrow.OrderHash,
			Hashlock:      escrow.Hashlock,
			Maker:         escrow.Maker,
			Taker:         escrow.Taker,
			Amount:        p.Amount,
			SafetyDeposit: p.SafetyDeposit,
			Resolver:      escrow.Resolver,
			CreatedAt:     now,
			IsMerkle:      false,
			PartsAmount:   0,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("escrow_id", escrow.ID).
		Str("wallet_id", wallet.ID).
		Str("resolver", escrow.Resolver).
		Str("amount", model.FormatNative(p.Amount)).
		Uint64("secret_index", p.SecretIndex).
		Bool("wallet_active", wallet.IsActive).
		Msg("source escrow created")
	return escrow, nil
}

type CreateEscrowDstParams struct {
	Caller    string // the taker locking inventory on the destination side
	OrderHash []byte
	Maker     string

	// Hashlock is keccak256(secret) when PartsAmount == 0, the Merkle root
	// otherwise.
	Hashlock    []byte
	PartsAmount uint64

	Amount        uint64
	SafetyDeposit uint64
	Timelocks     model.Timelocks

	// SrcCancellationTs is the absolute source-side cancellation time the
	// caller observed on the counterparty chain. The destination escrow
	// must stop being withdrawable before the source becomes cancellable.
	SrcCancellationTs int64
}

// CreateEscrowDst locks the taker's inventory on the destination side.
func (s *EscrowService) CreateEscrowDst(p CreateEscrowDstParams) (*model.Escrow, error) {
	if !protocol.ValidHash(p.OrderHash) {
		return nil, model.ErrInvalidOrderHash
	}
	if !protocol.ValidHash(p.Hashlock) {
		return nil, model.ErrInvalidHashlock
	}
	if p.Amount == 0 {
		return nil, model.ErrInvalidAmount
	}

	cfg, err := s.store.GetConfig()
	if err != nil {
		return nil, err
	}
	if p.SafetyDeposit < cfg.MinSafetyDeposit {
		return nil, model.ErrInvalidSafetyDeposit
	}
	if err := p.Timelocks.Validate(); err != nil {
		return nil, err
	}

	now := s.clock.NowMs()
	if now+int64(p.Timelocks.DstCancellation) > p.SrcCancellationTs {
		return nil, model.ErrInvalidTimelock
	}

	escrow := &model.Escrow{
		ID:             uuid.NewString(),
		Side:           model.EscrowSideDst,
		OrderHash:      p.OrderHash,
		Maker:          p.Maker,
		Taker:          p.Caller,
		Resolver:       p.Caller,
		Principal:      model.NewBalance(p.Amount),
		SafetyDeposit:  model.NewBalance(p.SafetyDeposit),
		InitialAmount:  p.Amount,
		InitialDeposit: p.SafetyDeposit,
		Timelocks:      p.Timelocks,
		DeployedAt:     now,
		RescueDelayMs:  cfg.RescueDelayMs,
		Status:         model.EscrowStatusActive,
	}
	if p.PartsAmount > 0 {
		escrow.MerkleRoot = p.Hashlock
		escrow.PartsAmount = p.PartsAmount
	} else {
		escrow.Hashlock = p.Hashlock
	}

	err = s.store.Atomically(func(st repository.Store) error {
		if err := st.CreateEscrow(escrow); err != nil {
			return err
		}
		return appendEvent(st, model.EventEscrowCreated, escrow.ID, escrow.OrderHash, now, model.EscrowCreatedPayload{
			EscrowID:      escrow.ID,
			OrderHash:     escrow.OrderHash,
			Hashlock:      p.Hashlock,
			Maker:         escrow.Maker,
			Taker:         escrow.Taker,
			Amount:        p.Amount,
			SafetyDeposit: p.SafetyDeposit,
			Resolver:      escrow.Resolver,
			CreatedAt:     now,
			IsMerkle:      escrow.IsMerkle(),
			PartsAmount:   escrow.PartsAmount,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("escrow_id", escrow.ID).
		Str("taker", escrow.Taker).
		Str("amount", model.FormatNative(p.Amount)).
		Bool("is_merkle", escrow.IsMerkle()).
		Msg("destination escrow created")
	return escrow, nil
}

func (s *EscrowService) GetEscrow(id string) (*model.Escrow, error) {
	return s.store.GetEscrow(id)
}

func (s *EscrowService) ListByOrderHash(orderHash []byte) ([]*model.Escrow, error) {
	return s.store.ListEscrowsByOrderHash(orderHash)
}

func (s *EscrowService) EventsByOrderHash(orderHash []byte) ([]*model.SwapEvent, error) {
	return s.store.ListEventsByOrderHash(orderHash)
}

func (s *EscrowService) EventsByType(t model.EventType) ([]*model.SwapEvent, error) {
	return s.store.ListEventsByType(t)
}

func (s *EscrowService) PayoutsByObject(objectID string) ([]*model.Payout, error) {
	return s.store.ListPayoutsByObject(objectID)
}
