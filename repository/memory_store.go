package repository

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/cross_escrow/model"
)

// MemoryStore is the in-memory Store used by tests. Reads return copies and
// writes store copies, so callers can never mutate stored state in place.
type MemoryStore struct {
	mu        sync.Mutex
	wallets   map[string]*model.Wallet
	escrows   map[string]*model.Escrow
	events    []*model.SwapEvent
	payouts   []*model.Payout
	config    *model.ProtocolConfig
	resolvers []*model.Resolver
	nextID    uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		wallets: make(map[string]*model.Wallet),
		escrows: make(map[string]*model.Escrow),
	}
}

func cloneWallet(w *model.Wallet) *model.Wallet {
	c := *w
	c.OrderHash = append([]byte(nil), w.OrderHash...)
	c.Hashlock = append([]byte(nil), w.Hashlock...)
	return &c
}

func cloneEscrow(e *model.Escrow) *model.Escrow {
	c := *e
	c.OrderHash = append([]byte(nil), e.OrderHash...)
	c.Hashlock = append([]byte(nil), e.Hashlock...)
	c.MerkleRoot = append([]byte(nil), e.MerkleRoot...)
	c.UsedIndices = append(model.IndexSet(nil), e.UsedIndices...)
	return &c
}

// Atomically snapshots the store, runs fn, and restores the snapshot if fn
// fails. Concurrent transactions are serialized above this layer by the
// per-object locks, so a whole-store snapshot is sufficient here.
func (s *MemoryStore) Atomically(fn func(Store) error) error {
	s.mu.Lock()
	wallets := make(map[string]*model.Wallet, len(s.wallets))
	for k, v := range s.wallets {
		wallets[k] = v
	}
	escrows := make(map[string]*model.Escrow, len(s.escrows))
	for k, v := range s.escrows {
		escrows[k] = v
	}
	events := len(s.events)
	payouts := len(s.payouts)
	resolvers := len(s.resolvers)
	config := s.config
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.wallets = wallets
		s.escrows = escrows
		s.events = s.events[:events]
		s.payouts = s.payouts[:payouts]
		s.resolvers = s.resolvers[:resolvers]
		s.config = config
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *MemoryStore) CreateWallet(w *model.Wallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wallets[w.ID] = cloneWallet(w)
	return nil
}

func (s *MemoryStore) GetWallet(id string) (*model.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.wallets[id]
	if !ok {
		return nil, model.ErrObjectNotFound
	}
	return cloneWallet(w), nil
}

func (s *MemoryStore) SaveWallet(w *model.Wallet) error {
	return s.CreateWallet(w)
}

func (s *MemoryStore) DeleteWallet(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.wallets, id)
	return nil
}

func (s *MemoryStore) ListExpiredWallets(nowMs int64) ([]*model.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var list []*model.Wallet
	for _, w := range s.wallets {
		if w.DeployedAt+w.RescueDelayMs <= nowMs {
			list = append(list, cloneWallet(w))
		}
	}
	return list, nil
}

func (s *MemoryStore) CreateEscrow(e *model.Escrow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.escrows[e.ID] = cloneEscrow(e)
	return nil
}

func (s *MemoryStore) GetEscrow(id string) (*model.Escrow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.escrows[id]
	if !ok {
		return nil, model.ErrObjectNotFound
	}
	return cloneEscrow(e), nil
}

func (s *MemoryStore) SaveEscrow(e *model.Escrow) error {
	return s.CreateEscrow(e)
}

func (s *MemoryStore) DeleteEscrow(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.escrows, id)
	return nil
}

func (s *MemoryStore) ListEscrowsByOrderHash(orderHash []byte) ([]*model.Escrow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var list []*model.Escrow
	for _, e := range s.escrows {
		if bytes.Equal(e.OrderHash, orderHash) {
			list = append(list, cloneEscrow(e))
		}
	}
	return list, nil
}

func (s *MemoryStore) ListExpiredEscrows(nowMs int64) ([]*model.Escrow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var list []*model.Escrow
	for _, e := range s.escrows {
		if e.Status == model.EscrowStatusActive && e.DeployedAt+e.RescueDelayMs <= nowMs {
			list = append(list, cloneEscrow(e))
		}
	}
	return list, nil
}

func (s *MemoryStore) AppendEvent(ev *model.SwapEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	c := *ev
	c.ID = s.nextID
	ev.ID = s.nextID
	s.events = append(s.events, &c)
	return nil
}

func (s *MemoryStore) ListEventsByOrderHash(orderHash []byte) ([]*model.SwapEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var list []*model.SwapEvent
	for _, ev := range s.events {
		if bytes.Equal(ev.OrderHash, orderHash) {
			c := *ev
			list = append(list, &c)
		}
	}
	return list, nil
}

func (s *MemoryStore) ListEventsByType(t model.EventType) ([]*model.SwapEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var list []*model.SwapEvent
	for _, ev := range s.events {
		if ev.Type == t {
			c := *ev
			list = append(list, &c)
		}
	}
	return list, nil
}

func (s *MemoryStore) CreatePayout(p *model.Payout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	c := *p
	c.ID = s.nextID
	s.payouts = append(s.payouts, &c)
	return nil
}

func (s *MemoryStore) ListPayoutsByObject(objectID string) ([]*model.Payout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var list []*model.Payout
	for _, p := range s.payouts {
		if p.ObjectID == objectID {
			c := *p
			list = append(list, &c)
		}
	}
	return list, nil
}

func (s *MemoryStore) ListPayoutsByRecipient(recipient string) ([]*model.Payout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var list []*model.Payout
	for _, p := range s.payouts {
		if p.Recipient == recipient {
			c := *p
			list = append(list, &c)
		}
	}
	return list, nil
}

func (s *MemoryStore) GetConfig() (*model.ProtocolConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.config == nil {
		return nil, model.ErrObjectNotFound
	}
	c := *s.config
	return &c, nil
}

func (s *MemoryStore) SaveConfig(c *model.ProtocolConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.config = &cp
	return nil
}

func (s *MemoryStore) CreateResolver(r *model.Resolver) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.resolvers {
		if existing.Address == r.Address {
			return fmt.Errorf("resolver %s already registered", r.Address)
		}
	}
	s.nextID++
	c := *r
	c.ID = s.nextID
	s.resolvers = append(s.resolvers, &c)
	return nil
}

func (s *MemoryStore) ListResolvers() ([]*model.Resolver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var list []*model.Resolver
	for _, r := range s.resolvers {
		c := *r
		list = append(list, &c)
	}
	return list, nil
}
