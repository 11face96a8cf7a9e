package protocol

import "github.com/cross_escrow/model"

// SrcStage maps the clock onto the five source-side stages. The stage
// function is monotonic in now and never regresses.
func SrcStage(tl model.Timelocks, deployedAt, now int64) model.Stage {
	switch {
	case now < deployedAt+int64(tl.SrcWithdrawal):
		return model.StageFinalityLock
	case now < deployedAt+int64(tl.SrcPublicWithdrawal):
		return model.StageResolverWithdraw
	case now < deployedAt+int64(tl.SrcCancellation):
		return model.StagePublicWithdraw
	case now < deployedAt+int64(tl.SrcPublicCancellation):
		return model.StageResolverCancel
	default:
		return model.StagePublicCancel
	}
}

// DstStage maps the clock onto the four destination-side stages. There is
// no public cancellation on the destination side.
func DstStage(tl model.Timelocks, deployedAt, now int64) model.Stage {
	switch {
	case now < deployedAt+int64(tl.DstWithdrawal):
		return model.StageFinalityLock
	case now < deployedAt+int64(tl.DstPublicWithdrawal):
		return model.StageResolverWithdraw
	case now < deployedAt+int64(tl.DstCancellation):
		return model.StagePublicWithdraw
	default:
		return model.StageResolverCancel
	}
}

// StageFor dispatches on the escrow side.
func StageFor(side model.EscrowSide, tl model.Timelocks, deployedAt, now int64) model.Stage {
	if side == model.EscrowSideSrc {
		return SrcStage(tl, deployedAt, now)
	}
	return DstStage(tl, deployedAt, now)
}
