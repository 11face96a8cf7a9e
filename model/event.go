package model

import (
	"encoding/json"
	"time"
)

type EventType string

const (
	EventWalletCreated   EventType = "WalletCreated"
	EventEscrowCreated   EventType = "EscrowCreated"
	EventEscrowWithdrawn EventType = "EscrowWithdrawn"
	EventEscrowCancelled EventType = "EscrowCancelled"
	EventFundsRescued    EventType = "FundsRescued"
)

// SwapEvent is the journal row watchers consume. Every state transition
// emits exactly one; the payload is the typed record below, JSON-encoded.
// All timestamps are milliseconds since epoch as reported by the ledger
// clock; all 32-byte values are raw bytes (hex in JSON).
type SwapEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Type      EventType `gorm:"size:32;index" json:"type"`
	ObjectID  string    `gorm:"size:64;index" json:"object_id"`
	OrderHash []byte    `gorm:"type:bytea;index" json:"order_hash"`
	Payload   []byte    `gorm:"type:bytea" json:"payload"`
	EmittedAt int64     `json:"emitted_at"`
	CreatedAt time.Time `json:"created_at"`
}

type WalletCreatedPayload struct {
	WalletID      string `json:"wallet_id"`
	OrderHash     []byte `json:"order_hash"`
	Maker         string `json:"maker"`
	InitialAmount uint64 `json:"initial_amount"`
	CreatedAt     int64  `json:"created_at"`
}

type EscrowCreatedPayload struct {
	EscrowID      string `json:"escrow_id"`
	OrderHash     []byte `json:"order_hash"`
	Hashlock      []byte `json:"hashlock"`
	Maker         string `json:"maker"`
	Taker         string `json:"taker"`
	Amount        uint64 `json:"amount"`
	SafetyDeposit uint64 `json:"safety_deposit"`
	Resolver      string `json:"resolver"`
	CreatedAt     int64  `json:"created_at"`
	IsMerkle      bool   `json:"is_merkle"`
	PartsAmount   uint64 `json:"parts_amount"`
}

type EscrowWithdrawnPayload struct {
	EscrowID    string  `json:"escrow_id"`
	OrderHash   []byte  `json:"order_hash"`
	Secret      []byte  `json:"secret"`
	WithdrawnBy string  `json:"withdrawn_by"`
	Maker       string  `json:"maker"`
	Taker       string  `json:"taker"`
	Amount      uint64  `json:"amount"`
	WithdrawnAt int64   `json:"withdrawn_at"`
	MerkleIndex *uint64 `json:"merkle_index,omitempty"`
}

type EscrowCancelledPayload struct {
	EscrowID    string `json:"escrow_id"`
	OrderHash   []byte `json:"order_hash"`
	Maker       string `json:"maker"`
	Taker       string `json:"taker"`
	CancelledBy string `json:"cancelled_by"`
	Amount      uint64 `json:"amount"`
	CancelledAt int64  `json:"cancelled_at"`
}

type FundsRescuedPayload struct {
	EscrowID        string `json:"escrow_id"`
	Rescuer         string `json:"rescuer"`
	PrincipalAmount uint64 `json:"principal_amount"`
	DepositAmount   uint64 `json:"deposit_amount"`
}

// NewSwapEvent wraps a typed payload into a journal row.
func NewSwapEvent(t EventType, objectID string, orderHash []byte, emittedAt int64, payload interface{}) (*SwapEvent, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &SwapEvent{
		Type:      t,
		ObjectID:  objectID,
		OrderHash: orderHash,
		Payload:   raw,
		EmittedAt: emittedAt,
	}, nil
}
