package protocol

import (
	"math/big"

	"github.com/cross_escrow/model"
)

// FillAmount is the principal share unlocked by secret k of an order split
// into n parts. The final secret (k == n) absorbs the rounding dust.
func FillAmount(total, n, k uint64) uint64 {
	if k < n {
		return total / n
	}
	return total/n + total%n
}

// ProportionalDeposit scales the safety deposit to the filled share:
// deposit · fill / total.
func ProportionalDeposit(deposit, fill, total uint64) uint64 {
	if total == 0 {
		return 0
	}
	v := new(big.Int).SetUint64(deposit)
	v.Mul(v, new(big.Int).SetUint64(fill))
	v.Div(v, new(big.Int).SetUint64(total))
	return v.Uint64()
}

// ExpectedIndex is the secret index a drain of fill must present, given
// filled already consumed out of total across n parts. A fill that covers
// the entire remainder must present the final secret n; otherwise the index
// is the 1-based part that the last unit of the cumulative fill falls in.
func ExpectedIndex(total, filled, fill, n uint64) uint64 {
	if fill == total-filled {
		return n
	}
	v := new(big.Int).SetUint64(filled + fill - 1)
	v.Mul(v, new(big.Int).SetUint64(n))
	v.Div(v, new(big.Int).SetUint64(total))
	return v.Uint64() + 1
}

// ValidateFillIndex rejects a drain whose secret index does not match the
// share arithmetic, or whose index lies outside [0, n].
func ValidateFillIndex(total, filled, fill, n, k uint64) error {
	if k > n {
		return model.ErrInvalidPartialFill
	}
	if fill == 0 || fill > total-filled {
		return model.ErrInvalidAmount
	}
	if ExpectedIndex(total, filled, fill, n) != k {
		return model.ErrInvalidPartialFill
	}
	return nil
}
