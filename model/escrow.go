package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type EscrowSide string

const (
	EscrowSideSrc EscrowSide = "src"
	EscrowSideDst EscrowSide = "dst"
)

type EscrowStatus string

const (
	EscrowStatusActive    EscrowStatus = "ACTIVE"
	EscrowStatusWithdrawn EscrowStatus = "WITHDRAWN"
	EscrowStatusCancelled EscrowStatus = "CANCELLED"
)

// IndexSet records which Merkle secret indices have settled against an
// escrow. Strictly additive — an index never appears twice.
type IndexSet []uint64

func (s IndexSet) Contains(idx uint64) bool {
	for _, v := range s {
		if v == idx {
			return true
		}
	}
	return false
}

func (s IndexSet) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	return string(b), err
}

func (s *IndexSet) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s = nil
		return nil
	case string:
		return json.Unmarshal([]byte(v), s)
	case []byte:
		return json.Unmarshal(v, s)
	default:
		return fmt.Errorf("scan index set: unsupported type %T", src)
	}
}

// Escrow is a shared lock on one side of a swap. No single principal owns
// it: mutation happens only through the stage-gated entry points, and the
// two balances are held exclusively by the object until a transition drains
// them. Status transitions are final.
type Escrow struct {
	ID        string     `gorm:"primaryKey;size:64" json:"id"`
	Side      EscrowSide `gorm:"size:8;index" json:"side"`
	OrderHash []byte     `gorm:"type:bytea;index" json:"order_hash"`

	// Single-fill mode: Hashlock = keccak256(secret).
	Hashlock []byte `gorm:"type:bytea" json:"hashlock"`

	// Partial-fill mode: settled share by share against the Merkle root.
	// PartsAmount > 0 marks the mode; InitialAmount keeps the denominator
	// for share arithmetic after the principal starts shrinking.
	MerkleRoot    []byte   `gorm:"type:bytea" json:"merkle_root,omitempty"`
	PartsAmount   uint64   `json:"parts_amount"`
	UsedIndices   IndexSet `gorm:"type:text" json:"used_indices"`
	InitialAmount uint64   `json:"initial_amount"`

	Maker    string `gorm:"size:64" json:"maker"`
	Taker    string `gorm:"size:64" json:"taker"`
	Resolver string `gorm:"size:64" json:"resolver"`

	Principal      Balance `gorm:"type:text" json:"principal"`
	SafetyDeposit  Balance `gorm:"type:text" json:"safety_deposit"`
	InitialDeposit uint64  `json:"initial_deposit"`

	Timelocks  Timelocks `gorm:"embedded;embeddedPrefix:tl_" json:"timelocks"`
	DeployedAt int64     `json:"deployed_at"`

	RescueDelayMs int64 `json:"rescue_delay_ms"`

	Status EscrowStatus `gorm:"size:16;index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsMerkle reports whether the escrow settles via Merkle-proven shares.
func (e *Escrow) IsMerkle() bool { return e.PartsAmount > 0 }
