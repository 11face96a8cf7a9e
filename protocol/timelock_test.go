package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cross_escrow/model"
)

func testTimelocks() model.Timelocks {
	return model.Timelocks{
		DstWithdrawal:       250_000, // 4m10s
		DstPublicWithdrawal: 550_000, // 9m10s
		DstCancellation:     850_000, // 14m10s

		SrcWithdrawal:         300_000,   // 5m
		SrcPublicWithdrawal:   600_000,   // 10m
		SrcCancellation:       900_000,   // 15m
		SrcPublicCancellation: 1_200_000, // 20m
	}
}

func TestSrcStageBoundaries(t *testing.T) {
	tl := testTimelocks()
	const deployedAt = int64(1_000)

	cases := []struct {
		now   int64
		stage model.Stage
	}{
		{deployedAt, model.StageFinalityLock},
		{deployedAt + 299_999, model.StageFinalityLock},
		{deployedAt + 300_000, model.StageResolverWithdraw},
		{deployedAt + 599_999, model.StageResolverWithdraw},
		{deployedAt + 600_000, model.StagePublicWithdraw},
		{deployedAt + 899_999, model.StagePublicWithdraw},
		{deployedAt + 900_000, model.StageResolverCancel},
		{deployedAt + 1_199_999, model.StageResolverCancel},
		{deployedAt + 1_200_000, model.StagePublicCancel},
		{deployedAt + 10_000_000, model.StagePublicCancel},
	}
	for _, c := range cases {
		assert.Equal(t, c.stage, SrcStage(tl, deployedAt, c.now), "now=%d", c.now)
	}
}

func TestDstStageBoundaries(t *testing.T) {
	tl := testTimelocks()
	const deployedAt = int64(1_000)

	cases := []struct {
		now   int64
		stage model.Stage
	}{
		{deployedAt, model.StageFinalityLock},
		{deployedAt + 249_999, model.StageFinalityLock},
		{deployedAt + 250_000, model.StageResolverWithdraw},
		{deployedAt + 550_000, model.StagePublicWithdraw},
		{deployedAt + 850_000, model.StageResolverCancel},
		{deployedAt + 10_000_000, model.StageResolverCancel},
	}
	for _, c := range cases {
		assert.Equal(t, c.stage, DstStage(tl, deployedAt, c.now), "now=%d", c.now)
	}
}

// The stage function must be monotonic: walking the clock forward can only
// move the stage forward through the fixed order.
func TestStageNeverRegresses(t *testing.T) {
	tl := testTimelocks()
	order := map[model.Stage]int{
		model.StageFinalityLock:     0,
		model.StageResolverWithdraw: 1,
		model.StagePublicWithdraw:   2,
		model.StageResolverCancel:   3,
		model.StagePublicCancel:     4,
	}

	prev := -1
	for now := int64(0); now <= 1_300_000; now += 7_919 {
		cur := order[SrcStage(tl, 0, now)]
		assert.GreaterOrEqual(t, cur, prev, "now=%d", now)
		prev = cur
	}

	prev = -1
	for now := int64(0); now <= 900_000; now += 7_919 {
		cur := order[DstStage(tl, 0, now)]
		assert.GreaterOrEqual(t, cur, prev, "now=%d", now)
		prev = cur
	}
}
