package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/cross_escrow/model"
)

// GormStore persists objects, the event journal and payouts in Postgres.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Atomically(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ErrObjectNotFound
	}
	return err
}

func (s *GormStore) CreateWallet(w *model.Wallet) error {
	return s.db.Create(w).Error
}

func (s *GormStore) GetWallet(id string) (*model.Wallet, error) {
	var w model.Wallet
	if err := s.db.Where("id = ?", id).First(&w).Error; err != nil {
		return nil, notFound(err)
	}
	return &w, nil
}

func (s *GormStore) SaveWallet(w *model.Wallet) error {
	return s.db.Save(w).Error
}

func (s *GormStore) DeleteWallet(id string) error {
	return s.db.Where("id = ?", id).Delete(&model.Wallet{}).Error
}

func (s *GormStore) ListExpiredWallets(nowMs int64) ([]*model.Wallet, error) {
	var list []*model.Wallet
	err := s.db.Where("deployed_at + rescue_delay_ms <= ?", nowMs).Find(&list).Error
	return list, err
}

func (s *GormStore) CreateEscrow(e *model.Escrow) error {
	return s.db.Create(e).Error
}

func (s *GormStore) GetEscrow(id string) (*model.Escrow, error) {
	var e model.Escrow
	if err := s.db.Where("id = ?", id).First(&e).Error; err != nil {
		return nil, notFound(err)
	}
	return &e, nil
}

func (s *GormStore) SaveEscrow(e *model.Escrow) error {
	return s.db.Save(e).Error
}

func (s *GormStore) DeleteEscrow(id string) error {
	return s.db.Where("id = ?", id).Delete(&model.Escrow{}).Error
}

func (s *GormStore) ListEscrowsByOrderHash(orderHash []byte) ([]*model.Escrow, error) {
	var list []*model.Escrow
	err := s.db.Where("order_hash = ?", orderHash).Find(&list).Error
	return list, err
}

func (s *GormStore) ListExpiredEscrows(nowMs int64) ([]*model.Escrow, error) {
	var list []*model.Escrow
	err := s.db.
		Where("status = ? AND deployed_at + rescue_delay_ms <= ?", model.EscrowStatusActive, nowMs).
		Find(&list).Error
	return list, err
}

func (s *GormStore) AppendEvent(ev *model.SwapEvent) error {
	return s.db.Create(ev).Error
}

func (s *GormStore) ListEventsByOrderHash(orderHash []byte) ([]*model.SwapEvent, error) {
	var list []*model.SwapEvent
	err := s.db.Where("order_hash = ?", orderHash).Order("id asc").Find(&list).Error
	return list, err
}

func (s *GormStore) ListEventsByType(t model.EventType) ([]*model.SwapEvent, error) {
	var list []*model.SwapEvent
	err := s.db.Where("type = ?", t).Order("id asc").Find(&list).Error
	return list, err
}

func (s *GormStore) CreatePayout(p *model.Payout) error {
	return s.db.Create(p).Error
}

func (s *GormStore) ListPayoutsByObject(objectID string) ([]*model.Payout, error) {
	var list []*model.Payout
	err := s.db.Where("object_id = ?", objectID).Order("id asc").Find(&list).Error
	return list, err
}

func (s *GormStore) ListPayoutsByRecipient(recipient string) ([]*model.Payout, error) {
	var list []*model.Payout
	err := s.db.Where("recipient = ?", recipient).Order("id asc").Find(&list).Error
	return list, err
}

func (s *GormStore) GetConfig() (*model.ProtocolConfig, error) {
	var c model.ProtocolConfig
	if err := s.db.First(&c).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (s *GormStore) SaveConfig(c *model.ProtocolConfig) error {
	return s.db.Save(c).Error
}

func (s *GormStore) CreateResolver(r *model.Resolver) error {
	return s.db.Create(r).Error
}

func (s *GormStore) ListResolvers() ([]*model.Resolver, error) {
	var list []*model.Resolver
	err := s.db.Order("id asc").Find(&list).Error
	return list, err
}
