package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"
)

// NativeDecimals is the decimal precision of the ledger's native gas asset.
const NativeDecimals = 9

// Balance is a linear value: the amount field is unexported and can only
// change through Split, Merge and Drain, so every unit that enters an object
// is accounted for until it leaves. Splits always sum to the original.
//
// Persisted as a decimal string (amounts are base units and can use the full
// uint64 range).
type Balance struct {
	amount uint64
}

func NewBalance(amount uint64) Balance {
	return Balance{amount: amount}
}

// Amount reports the current value without consuming it.
func (b *Balance) Amount() uint64 { return b.amount }

func (b *Balance) IsZero() bool { return b.amount == 0 }

// Split carves amount out of the balance and returns it as a new Balance.
// The receiver keeps the remainder.
func (b *Balance) Split(amount uint64) (Balance, error) {
	if amount > b.amount {
		return Balance{}, ErrInsufficientBalance
	}
	b.amount -= amount
	return Balance{amount: amount}, nil
}

// Merge absorbs other into the receiver, leaving other empty.
func (b *Balance) Merge(other *Balance) {
	b.amount += other.amount
	other.amount = 0
}

// Drain empties the balance and returns everything it held.
func (b *Balance) Drain() uint64 {
	v := b.amount
	b.amount = 0
	return v
}

func (b Balance) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatUint(b.amount, 10))
}

func (b *Balance) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("unmarshal balance %q: %w", s, err)
	}
	b.amount = n
	return nil
}

func (b Balance) Value() (driver.Value, error) {
	return strconv.FormatUint(b.amount, 10), nil
}

func (b *Balance) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		b.amount = 0
		return nil
	case string:
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("scan balance %q: %w", v, err)
		}
		b.amount = n
		return nil
	case []byte:
		return b.Scan(string(v))
	case int64:
		b.amount = uint64(v)
		return nil
	default:
		return fmt.Errorf("scan balance: unsupported type %T", src)
	}
}

// FormatNative renders a base-unit amount as a decimal of the native asset,
// e.g. 100_000_000 -> "0.1".
func FormatNative(amount uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(amount), -NativeDecimals).String()
}
