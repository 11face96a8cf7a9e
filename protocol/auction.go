package protocol

import "math/big"

// AuctionPrice evaluates the linear Dutch-auction curve at t, clamped to
// [start, start+duration]:
//
//	price(t) = (priceStart·(end−t) + priceEnd·(t−start)) / (end−start)
//
// With priceStart == priceEnd the curve degenerates to a constant, which is
// a valid configuration.
func AuctionPrice(priceStart, priceEnd uint64, start, duration, t int64) uint64 {
	end := start + duration
	if t <= start {
		return priceStart
	}
	if t >= end {
		return priceEnd
	}
	span := new(big.Int).SetInt64(end - start)
	left := new(big.Int).SetUint64(priceStart)
	left.Mul(left, big.NewInt(end-t))
	right := new(big.Int).SetUint64(priceEnd)
	right.Mul(right, big.NewInt(t-start))
	left.Add(left, right)
	left.Div(left, span)
	return left.Uint64()
}

// RequiredTaking scales the curve value to a partial fill of amount out of
// makingAmount, rounding up so a resolver can never undercut the curve by
// splitting the order.
func RequiredTaking(curveValue, amount, makingAmount uint64) uint64 {
	if makingAmount == 0 {
		return 0
	}
	v := new(big.Int).SetUint64(curveValue)
	v.Mul(v, new(big.Int).SetUint64(amount))
	making := new(big.Int).SetUint64(makingAmount)
	rem := new(big.Int)
	v.DivMod(v, making, rem)
	if rem.Sign() > 0 {
		v.Add(v, big.NewInt(1))
	}
	return v.Uint64()
}
