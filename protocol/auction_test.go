package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuctionPriceEndpointsAndClamp(t *testing.T) {
	const start, duration = int64(1_000), int64(300_000)

	assert.Equal(t, uint64(2_000), AuctionPrice(2_000, 1_000, start, duration, start-50))
	assert.Equal(t, uint64(2_000), AuctionPrice(2_000, 1_000, start, duration, start))
	assert.Equal(t, uint64(1_000), AuctionPrice(2_000, 1_000, start, duration, start+duration))
	assert.Equal(t, uint64(1_000), AuctionPrice(2_000, 1_000, start, duration, start+duration+99))
}

func TestAuctionPriceInterpolates(t *testing.T) {
	const start, duration = int64(0), int64(300_000)

	assert.Equal(t, uint64(1_500), AuctionPrice(2_000, 1_000, start, duration, 150_000))
	assert.Equal(t, uint64(1_750), AuctionPrice(2_000, 1_000, start, duration, 75_000))

	// monotonically non-increasing along the window
	prev := AuctionPrice(2_000, 1_000, start, duration, start)
	for ts := start; ts <= start+duration; ts += 10_000 {
		cur := AuctionPrice(2_000, 1_000, start, duration, ts)
		assert.LessOrEqual(t, cur, prev, "t=%d", ts)
		prev = cur
	}
}

// Equal start and end prices are a valid configuration: the curve reduces
// to a constant.
func TestAuctionPriceConstantCurve(t *testing.T) {
	for _, ts := range []int64{-10, 0, 150_000, 300_000, 400_000} {
		assert.Equal(t, uint64(1_000), AuctionPrice(1_000, 1_000, 0, 300_000, ts))
	}
}

func TestRequiredTakingRoundsUp(t *testing.T) {
	// exact split
	assert.Equal(t, uint64(250), RequiredTaking(1_000, 250_000_000, 1_000_000_000))
	// remainder rounds up so splitting an order never undercuts the curve
	assert.Equal(t, uint64(334), RequiredTaking(1_000, 333_333_333, 1_000_000_000))
	// full fill pays the curve exactly
	assert.Equal(t, uint64(1_000), RequiredTaking(1_000, 1_000_000_000, 1_000_000_000))
}
