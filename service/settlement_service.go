package service

import (
	"github.com/rs/zerolog"

	"github.com/cross_escrow/model"
	"github.com/cross_escrow/protocol"
	"github.com/cross_escrow/repository"
)

type SettlementService struct {
	store  repository.Store
	clock  Clock
	locks  *LockTable
	logger zerolog.Logger
}

func NewSettlementService(store repository.Store, clock Clock, locks *LockTable, logger zerolog.Logger) *SettlementService {
	return &SettlementService{store: store, clock: clock, locks: locks, logger: logger}
}

type WithdrawParams struct {
	EscrowID string
	Caller   string
	Secret   []byte

	// Partial-fill mode only.
	SecretIndex *uint64
	MerkleProof [][]byte
}

// Withdraw runs the single transition function of an escrow: authorization,
// secret verification and value redistribution happen atomically against
// one read of the object and one read of the clock. On any precondition
// violation the object is unchanged.
func (s *SettlementService) Withdraw(p WithdrawParams) (*model.Escrow, error) {
	unlock := s.locks.Acquire(p.EscrowID)
	defer unlock()

	escrow, err := s.store.GetEscrow(p.EscrowID)
	if err != nil {
		return nil, err
	}

	if err := statusActive(escrow); err != nil {
		return nil, err
	}

	now := s.clock.NowMs()
	stage := protocol.StageFor(escrow.Side, escrow.Timelocks, escrow.DeployedAt, now)
	switch stage {
	case model.StageResolverWithdraw:
		if p.Caller != escrow.Resolver {
			return nil, model.ErrUnauthorised
		}
	case model.StagePublicWithdraw:
		// any caller with a valid secret
	default:
		return nil, model.ErrNotWithdrawable
	}

	var fill uint64
	var merkleIndex *uint64
	if escrow.IsMerkle() {
		if p.SecretIndex == nil || *p.SecretIndex > escrow.PartsAmount {
			return nil, model.ErrInvalidPartialFill
		}
		idx := *p.SecretIndex
		if escrow.UsedIndices.Contains(idx) {
			return nil, model.ErrSecretAlreadyUsed
		}
		if len(p.Secret) < protocol.SecretLen {
			return nil, model.ErrInvalidSecret
		}
		leaf := protocol.Leaf(idx, protocol.SecretHash(p.Secret))
		if err := protocol.VerifyProof(leaf, p.MerkleProof, escrow.MerkleRoot); err != nil {
			return nil, err
		}
		fill = protocol.FillAmount(escrow.InitialAmount, escrow.PartsAmount, idx)
		if remaining := escrow.Principal.Amount(); fill > remaining {
			fill = remaining
		}
		merkleIndex = &idx
	} else {
		if err := protocol.CheckSecret(p.Secret, escrow.Hashlock); err != nil {
			return nil, err
		}
		fill = escrow.Principal.Amount()
	}

	principal, err := escrow.Principal.Split(fill)
	if err != nil {
		return nil, err
	}

	var deposit model.Balance
	if escrow.Principal.IsZero() {
		escrow.Status = model.EscrowStatusWithdrawn
		deposit = model.NewBalance(escrow.SafetyDeposit.Drain())
	} else {
		escrow.UsedIndices = append(escrow.UsedIndices, *merkleIndex)
		share := protocol.ProportionalDeposit(escrow.InitialDeposit, fill, escrow.InitialAmount)
		deposit, err = escrow.SafetyDeposit.Split(share)
		if err != nil {
			return nil, err
		}
	}
	if escrow.Status == model.EscrowStatusWithdrawn && merkleIndex != nil {
		escrow.UsedIndices = append(escrow.UsedIndices, *merkleIndex)
	}

	// The principal goes to the side's intended recipient; the safety
	// deposit rewards whoever finalized the transition.
	recipient := escrow.Taker
	if escrow.Side == model.EscrowSideDst {
		recipient = escrow.Maker
	}

	principalOut := principal.Drain()
	depositOut := deposit.Drain()

	err = s.store.Atomically(func(st repository.Store) error {
		if err := st.SaveEscrow(escrow); err != nil {
			return err
		}
		if err := pay(st, escrow.ID, escrow.OrderHash, recipient, model.PayoutPrincipal, principalOut, now); err != nil {
			return err
		}
		if err := pay(st, escrow.ID, escrow.OrderHash, p.Caller, model.PayoutDeposit, depositOut, now); err != nil {
			return err
		}
		return appendEvent(st, model.EventEscrowWithdrawn, escrow.ID, escrow.OrderHash, now, model.EscrowWithdrawnPayload{
			EscrowID:    escrow.ID,
			OrderHash:   escrow.OrderHash,
			Secret:      p.Secret,
			WithdrawnBy: p.Caller,
			Maker:       escrow.Maker,
			Taker:       escrow.Taker,
			Amount:      principalOut,
			WithdrawnAt: now,
			MerkleIndex: merkleIndex,
		})
	})
	if err != nil {
		return nil, err
	}

	log := s.logger.Info().
		Str("escrow_id", escrow.ID).
		Str("side", string(escrow.Side)).
		Str("caller", p.Caller).
		Str("recipient", recipient).
		Str("amount", model.FormatNative(principalOut)).
		Str("status", string(escrow.Status))
	if merkleIndex != nil {
		log = log.Uint64("merkle_index", *merkleIndex)
	}
	log.Msg("escrow withdrawn")
	return escrow, nil
}

type CancelParams struct {
	EscrowID string
	Caller   string
}

// Cancel returns the principal to its original contributor once the
// cancellation window opens: the maker on the source side, the taker on the
// destination side. The safety deposit goes to the caller.
func (s *SettlementService) Cancel(p CancelParams) (*model.Escrow, error) {
	unlock := s.locks.Acquire(p.EscrowID)
	defer unlock()

	escrow, err := s.store.GetEscrow(p.EscrowID)
	if err != nil {
		return nil, err
	}

	if err := statusActive(escrow); err != nil {
		return nil, err
	}

	now := s.clock.NowMs()
	stage := protocol.StageFor(escrow.Side, escrow.Timelocks, escrow.DeployedAt, now)
	switch stage {
	case model.StageResolverCancel:
		if p.Caller != escrow.Resolver {
			return nil, model.ErrUnauthorised
		}
	case model.StagePublicCancel:
		// source side only; any caller
	default:
		return nil, model.ErrNotCancellable
	}

	recipient := escrow.Maker
	if escrow.Side == model.EscrowSideDst {
		recipient = escrow.Taker
	}

	escrow.Status = model.EscrowStatusCancelled
	principalOut := escrow.Principal.Drain()
	depositOut := escrow.SafetyDeposit.Drain()

	err = s.store.Atomically(func(st repository.Store) error {
		if err := st.SaveEscrow(escrow); err != nil {
			return err
		}
		if err := pay(st, escrow.ID, escrow.OrderHash, recipient, model.PayoutPrincipal, principalOut, now); err != nil {
			return err
		}
		if err := pay(st, escrow.ID, escrow.OrderHash, p.Caller, model.PayoutDeposit, depositOut, now); err != nil {
			return err
		}
		return appendEvent(st, model.EventEscrowCancelled, escrow.ID, escrow.OrderHash, now, model.EscrowCancelledPayload{
			EscrowID:    escrow.ID,
			OrderHash:   escrow.OrderHash,
			Maker:       escrow.Maker,
			Taker:       escrow.Taker,
			CancelledBy: p.Caller,
			Amount:      principalOut,
			CancelledAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("escrow_id", escrow.ID).
		Str("side", string(escrow.Side)).
		Str("caller", p.Caller).
		Str("recipient", recipient).
		Str("amount", model.FormatNative(principalOut)).
		Msg("escrow cancelled")
	return escrow, nil
}

func statusActive(e *model.Escrow) error {
	switch e.Status {
	case model.EscrowStatusActive:
		return nil
	case model.EscrowStatusWithdrawn:
		return model.ErrAlreadyWithdrawn
	default:
		return model.ErrAlreadyCancelled
	}
}
