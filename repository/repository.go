package repository

import (
	"github.com/cross_escrow/model"
)

// Store abstracts the object store from the transaction logic. Two
// implementations exist: GormStore (Postgres) and MemoryStore (tests).
type Store interface {
	// Atomically runs fn against a transactional view; either every write
	// inside fn commits or none do.
	Atomically(fn func(Store) error) error

	CreateWallet(w *model.Wallet) error
	GetWallet(id string) (*model.Wallet, error)
	SaveWallet(w *model.Wallet) error
	DeleteWallet(id string) error
	ListExpiredWallets(nowMs int64) ([]*model.Wallet, error)

	CreateEscrow(e *model.Escrow) error
	GetEscrow(id string) (*model.Escrow, error)
	SaveEscrow(e *model.Escrow) error
	DeleteEscrow(id string) error
	ListEscrowsByOrderHash(orderHash []byte) ([]*model.Escrow, error)
	ListExpiredEscrows(nowMs int64) ([]*model.Escrow, error)

	AppendEvent(ev *model.SwapEvent) error
	ListEventsByOrderHash(orderHash []byte) ([]*model.SwapEvent, error)
	ListEventsByType(t model.EventType) ([]*model.SwapEvent, error)

	CreatePayout(p *model.Payout) error
	ListPayoutsByObject(objectID string) ([]*model.Payout, error)
	ListPayoutsByRecipient(recipient string) ([]*model.Payout, error)

	GetConfig() (*model.ProtocolConfig, error)
	SaveConfig(c *model.ProtocolConfig) error

	CreateResolver(r *model.Resolver) error
	ListResolvers() ([]*model.Resolver, error)
}
