package model

import "time"

const (
	// DefaultRescueDelayMs is 7 days.
	DefaultRescueDelayMs = int64(604_800_000)
	// DefaultMinSafetyDeposit is 0.1 of the native gas asset in base units.
	DefaultMinSafetyDeposit = uint64(100_000_000)
)

// ProtocolConfig is the single administrative object. Updates apply to
// objects created afterwards only; wallets and escrows snapshot these values
// at creation.
type ProtocolConfig struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	Admin            string `gorm:"size:64" json:"admin"`
	RescueDelayMs    int64  `json:"rescue_delay_ms"`
	MinSafetyDeposit uint64 `json:"min_safety_deposit"`
	UpdatedAt        time.Time
}
