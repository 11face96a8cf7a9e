package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cross_escrow/model"
)

func TestFillAmount(t *testing.T) {
	// even split, final secret absorbs nothing
	assert.Equal(t, uint64(250_000_000), FillAmount(1_000_000_000, 4, 0))
	assert.Equal(t, uint64(250_000_000), FillAmount(1_000_000_000, 4, 3))
	assert.Equal(t, uint64(250_000_000), FillAmount(1_000_000_000, 4, 4))

	// rounding dust lands on the final secret
	assert.Equal(t, uint64(333_333_333), FillAmount(1_000_000_000, 3, 0))
	assert.Equal(t, uint64(333_333_334), FillAmount(1_000_000_000, 3, 3))

	total := uint64(1_000_000_007)
	sum := uint64(0)
	for k := uint64(0); k < 4; k++ {
		sum += FillAmount(total, 4, k)
	}
	// shares 1..n-1 plus the dust-absorbing final share n cover the whole
	assert.Equal(t, total, sum-FillAmount(total, 4, 0)+FillAmount(total, 4, 4))
}

func TestProportionalDeposit(t *testing.T) {
	assert.Equal(t, uint64(25_000_000), ProportionalDeposit(100_000_000, 250_000_000, 1_000_000_000))
	assert.Equal(t, uint64(100_000_000), ProportionalDeposit(100_000_000, 1_000_000_000, 1_000_000_000))
	assert.Equal(t, uint64(0), ProportionalDeposit(100_000_000, 0, 1_000_000_000))
	assert.Equal(t, uint64(0), ProportionalDeposit(100_000_000, 1, 0))
}

// Vectors from the reference partial-fill walk: 1_000_000_000 over 4 parts,
// drained 250M + 250M + 500M, presenting indices 1, 2 and the final 4.
func TestExpectedIndex(t *testing.T) {
	const total = uint64(1_000_000_000)
	const n = uint64(4)

	assert.Equal(t, uint64(1), ExpectedIndex(total, 0, 250_000_000, n))
	assert.Equal(t, uint64(2), ExpectedIndex(total, 250_000_000, 250_000_000, n))
	// covering the whole remainder always takes the final secret
	assert.Equal(t, n, ExpectedIndex(total, 500_000_000, 500_000_000, n))
	// a full fill of an untouched order also takes the final secret
	assert.Equal(t, n, ExpectedIndex(total, 0, total, n))

	// a fill that stops mid-part takes the index of the part it ends in
	assert.Equal(t, uint64(1), ExpectedIndex(total, 0, 100_000_000, n))
	assert.Equal(t, uint64(2), ExpectedIndex(total, 0, 300_000_000, n))
}

func TestValidateFillIndex(t *testing.T) {
	const total = uint64(1_000_000_000)
	const n = uint64(4)

	assert.NoError(t, ValidateFillIndex(total, 0, 250_000_000, n, 1))
	assert.NoError(t, ValidateFillIndex(total, 500_000_000, 500_000_000, n, 4))

	// mismatched index
	assert.Equal(t, model.ErrInvalidPartialFill, ValidateFillIndex(total, 0, 250_000_000, n, 2))
	// remainder fill must present the final secret
	assert.Equal(t, model.ErrInvalidPartialFill, ValidateFillIndex(total, 500_000_000, 500_000_000, n, 3))
	// index out of range
	assert.Equal(t, model.ErrInvalidPartialFill, ValidateFillIndex(total, 0, 250_000_000, n, 5))
	// zero and overdraw fills
	assert.Equal(t, model.ErrInvalidAmount, ValidateFillIndex(total, 0, 0, n, 1))
	assert.Equal(t, model.ErrInvalidAmount, ValidateFillIndex(total, 900_000_000, 200_000_000, n, 4))
}
