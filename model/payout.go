package model

import "time"

type PayoutKind string

const (
	PayoutPrincipal PayoutKind = "principal"
	PayoutDeposit   PayoutKind = "deposit"
	PayoutRescue    PayoutKind = "rescue"
)

// Payout records value leaving an object: who received it and why. The sum
// of payouts plus the residual balances of an object always equals what was
// locked into it.
type Payout struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	ObjectID  string     `gorm:"size:64;index" json:"object_id"`
	OrderHash []byte     `gorm:"type:bytea;index" json:"order_hash"`
	Recipient string     `gorm:"size:64;index" json:"recipient"`
	Kind      PayoutKind `gorm:"size:16" json:"kind"`
	Amount    uint64     `json:"amount"`
	PaidAt    int64      `json:"paid_at"`
	CreatedAt time.Time  `json:"created_at"`
}
