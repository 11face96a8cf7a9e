package service

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/cross_escrow/model"
	"github.com/cross_escrow/repository"
)

type AdminService struct {
	store  repository.Store
	logger zerolog.Logger
}

func NewAdminService(store repository.Store, logger zerolog.Logger) *AdminService {
	return &AdminService{store: store, logger: logger}
}

// EnsureConfig seeds the protocol config singleton on first boot.
func (s *AdminService) EnsureConfig(admin string) (*model.ProtocolConfig, error) {
	cfg, err := s.store.GetConfig()
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, model.ErrObjectNotFound) {
		return nil, err
	}

	cfg = &model.ProtocolConfig{
		ID:               1,
		Admin:            admin,
		RescueDelayMs:    model.DefaultRescueDelayMs,
		MinSafetyDeposit: model.DefaultMinSafetyDeposit,
	}
	if err := s.store.SaveConfig(cfg); err != nil {
		return nil, err
	}
	s.logger.Info().Str("admin", admin).Msg("protocol config initialized")
	return cfg, nil
}

// UpdateConfig changes the rescue delay and safety-deposit floor for objects
// created from now on. Existing wallets and escrows keep the values they
// snapshotted at creation.
func (s *AdminService) UpdateConfig(caller string, rescueDelayMs int64, minSafetyDeposit uint64) (*model.ProtocolConfig, error) {
	cfg, err := s.store.GetConfig()
	if err != nil {
		return nil, err
	}
	if caller != cfg.Admin {
		return nil, model.ErrUnauthorised
	}
	if rescueDelayMs <= 0 {
		return nil, model.ErrInvalidTime
	}
	if minSafetyDeposit == 0 {
		return nil, model.ErrInvalidSafetyDeposit
	}

	cfg.RescueDelayMs = rescueDelayMs
	cfg.MinSafetyDeposit = minSafetyDeposit
	if err := s.store.SaveConfig(cfg); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("rescue_delay_ms", rescueDelayMs).
		Str("min_safety_deposit", model.FormatNative(minSafetyDeposit)).
		Msg("protocol config updated")
	return cfg, nil
}

// RegisterResolver records a resolver address for operators and watchers.
func (s *AdminService) RegisterResolver(caller, address, name string) (*model.Resolver, error) {
	cfg, err := s.store.GetConfig()
	if err != nil {
		return nil, err
	}
	if caller != cfg.Admin {
		return nil, model.ErrUnauthorised
	}

	r := &model.Resolver{Address: address, Name: name}
	if err := s.store.CreateResolver(r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *AdminService) ListResolvers() ([]*model.Resolver, error) {
	return s.store.ListResolvers()
}
