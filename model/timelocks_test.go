package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validTimelocks() Timelocks {
	return Timelocks{
		DstWithdrawal:       250_000,
		DstPublicWithdrawal: 550_000,
		DstCancellation:     850_000,

		SrcWithdrawal:         300_000,
		SrcPublicWithdrawal:   600_000,
		SrcCancellation:       900_000,
		SrcPublicCancellation: 1_200_000,
	}
}

func TestTimelocksValidate(t *testing.T) {
	assert.NoError(t, validTimelocks().Validate())
}

func TestTimelocksValidateRejectsLocalDisorder(t *testing.T) {
	tl := validTimelocks()
	tl.SrcPublicWithdrawal = tl.SrcWithdrawal
	assert.Equal(t, ErrInvalidTimelock, tl.Validate())

	tl = validTimelocks()
	tl.DstWithdrawal = 0
	assert.Equal(t, ErrInvalidTimelock, tl.Validate())

	tl = validTimelocks()
	tl.SrcPublicCancellation = tl.SrcCancellation - 1
	assert.Equal(t, ErrInvalidTimelock, tl.Validate())
}

// The destination windows must strictly precede their source counterparts;
// otherwise a resolver who reveals on the destination side can be beaten to
// the source-side claim.
func TestTimelocksValidateRejectsCrossChainDisorder(t *testing.T) {
	tl := validTimelocks()
	tl.DstWithdrawal = tl.SrcWithdrawal
	assert.Equal(t, ErrInvalidTimelock, tl.Validate())

	tl = validTimelocks()
	tl.DstPublicWithdrawal = tl.SrcPublicWithdrawal + 1
	assert.Equal(t, ErrInvalidTimelock, tl.Validate())

	tl = validTimelocks()
	tl.DstCancellation = tl.SrcCancellation
	assert.Equal(t, ErrInvalidTimelock, tl.Validate())
}
