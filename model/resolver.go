package model

import "time"

// Resolver is a bookkeeping entry for a known resolver address. The registry
// never gates settlement — in public stages any caller may act — it only
// labels addresses for operators and watchers.
type Resolver struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Address   string    `gorm:"size:64;uniqueIndex" json:"address"`
	Name      string    `gorm:"size:128" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
