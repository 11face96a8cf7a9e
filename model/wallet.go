package model

import (
	"time"
)

// Wallet is the maker's source-side funding vessel. It is shared: any
// resolver may drain a proportional share of the principal into a source
// escrow while the wallet stays active. Consumption is monotonic — the
// balance only decreases and the secret index only climbs.
type Wallet struct {
	ID        string `gorm:"primaryKey;size:64" json:"id"`
	OrderHash []byte `gorm:"type:bytea;index" json:"order_hash"`
	Maker     string `gorm:"size:64;index" json:"maker"`

	// Principal is the undistributed remainder of the maker's funding.
	Principal    Balance `gorm:"type:text" json:"principal"`
	MakingAmount uint64  `json:"making_amount"`

	// Dutch auction parameters: the required taking amount decays linearly
	// from start to end over the duration.
	TakingAmountStart uint64 `json:"taking_amount_start"`
	TakingAmountEnd   uint64 `json:"taking_amount_end"`
	AuctionDurationMs uint64 `json:"auction_duration_ms"`

	// Hashlock is keccak256(secret) in single-fill mode, or the root of the
	// Merkle tree of secrets when partial fills are allowed.
	Hashlock          []byte `gorm:"type:bytea" json:"hashlock"`
	AllowPartialFills bool   `json:"allow_partial_fills"`
	PartsAmount       uint64 `json:"parts_amount"`
	LastUsedIndex     uint64 `json:"last_used_index"`

	IsActive   bool  `gorm:"index" json:"is_active"`
	DeployedAt int64 `json:"deployed_at"`

	// Snapshots taken from the protocol config at creation; later admin
	// updates never touch existing objects.
	RescueDelayMs    int64  `json:"rescue_delay_ms"`
	MinSafetyDeposit uint64 `json:"min_safety_deposit"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FilledAmount is the cumulative principal already drained by resolvers.
func (w *Wallet) FilledAmount() uint64 {
	return w.MakingAmount - w.Principal.Amount()
}
