package service

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/cross_escrow/model"
	"github.com/cross_escrow/repository"
)

type RescueService struct {
	store  repository.Store
	clock  Clock
	locks  *LockTable
	logger zerolog.Logger
}

func NewRescueService(store repository.Store, clock Clock, locks *LockTable, logger zerolog.Logger) *RescueService {
	return &RescueService{store: store, clock: clock, locks: locks, logger: logger}
}

// Rescue drains the residual balances of an escrow or wallet that was never
// finalized and deletes the object. It only opens after the rescue delay
// the object snapshotted at creation; the rescuer keeps everything drained.
func (s *RescueService) Rescue(objectID, caller string) error {
	unlock := s.locks.Acquire(objectID)
	defer unlock()

	escrow, err := s.store.GetEscrow(objectID)
	if err == nil {
		return s.rescueEscrow(escrow, caller)
	}
	if !errors.Is(err, model.ErrObjectNotFound) {
		return err
	}

	wallet, err := s.store.GetWallet(objectID)
	if err != nil {
		return err
	}
	return s.rescueWallet(wallet, caller)
}

func (s *RescueService) rescueEscrow(escrow *model.Escrow, caller string) error {
	if err := statusActive(escrow); err != nil {
		return err
	}
	now := s.clock.NowMs()
	if now < escrow.DeployedAt+escrow.RescueDelayMs {
		return model.ErrTimelockNotExpired
	}

	principalOut := escrow.Principal.Drain()
	depositOut := escrow.SafetyDeposit.Drain()

	err := s.store.Atomically(func(st repository.Store) error {
		if err := st.DeleteEscrow(escrow.ID); err != nil {
			return err
		}
		if err := pay(st, escrow.ID, escrow.OrderHash, caller, model.PayoutRescue, principalOut+depositOut, now); err != nil {
			return err
		}
		return appendEvent(st, model.EventFundsRescued, escrow.ID, escrow.OrderHash, now, model.FundsRescuedPayload{
			EscrowID:        escrow.ID,
			Rescuer:         caller,
			PrincipalAmount: principalOut,
			DepositAmount:   depositOut,
		})
	})
	if err != nil {
		return err
	}

	s.logger.Warn().
		Str("escrow_id", escrow.ID).
		Str("rescuer", caller).
		Str("principal", model.FormatNative(principalOut)).
		Str("deposit", model.FormatNative(depositOut)).
		Msg("stuck escrow rescued")
	return nil
}

func (s *RescueService) rescueWallet(wallet *model.Wallet, caller string) error {
	if !wallet.IsActive {
		return model.ErrWalletInactive
	}
	now := s.clock.NowMs()
	if now < wallet.DeployedAt+wallet.RescueDelayMs {
		return model.ErrTimelockNotExpired
	}

	principalOut := wallet.Principal.Drain()

	err := s.store.Atomically(func(st repository.Store) error {
		if err := st.DeleteWallet(wallet.ID); err != nil {
			return err
		}
		if err := pay(st, wallet.ID, wallet.OrderHash, caller, model.PayoutRescue, principalOut, now); err != nil {
			return err
		}
		return appendEvent(st, model.EventFundsRescued, wallet.ID, wallet.OrderHash, now, model.FundsRescuedPayload{
			EscrowID:        wallet.ID,
			Rescuer:         caller,
			PrincipalAmount: principalOut,
			DepositAmount:   0,
		})
	})
	if err != nil {
		return err
	}

	s.logger.Warn().
		Str("wallet_id", wallet.ID).
		Str("rescuer", caller).
		Str("principal", model.FormatNative(principalOut)).
		Msg("stuck wallet rescued")
	return nil
}
