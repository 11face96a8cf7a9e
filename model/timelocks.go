package model

// Timelocks holds the seven stage offsets of an order, in milliseconds
// relative to the object's DeployedAt. The destination windows always open
// and close before their source counterparts so a resolver who reveals the
// secret on the destination side still has time to claim on the source side.
type Timelocks struct {
	DstWithdrawal       uint64 `json:"dst_withdrawal"`
	DstPublicWithdrawal uint64 `json:"dst_public_withdrawal"`
	DstCancellation     uint64 `json:"dst_cancellation"`

	SrcWithdrawal         uint64 `json:"src_withdrawal"`
	SrcPublicWithdrawal   uint64 `json:"src_public_withdrawal"`
	SrcCancellation       uint64 `json:"src_cancellation"`
	SrcPublicCancellation uint64 `json:"src_public_cancellation"`
}

// Validate checks local monotonicity on both sides and the cross-chain
// ordering of the paired windows.
func (t Timelocks) Validate() error {
	if !(0 < t.DstWithdrawal && t.DstWithdrawal < t.DstPublicWithdrawal && t.DstPublicWithdrawal < t.DstCancellation) {
		return ErrInvalidTimelock
	}
	if !(0 < t.SrcWithdrawal && t.SrcWithdrawal < t.SrcPublicWithdrawal &&
		t.SrcPublicWithdrawal < t.SrcCancellation && t.SrcCancellation < t.SrcPublicCancellation) {
		return ErrInvalidTimelock
	}
	if t.DstWithdrawal >= t.SrcWithdrawal ||
		t.DstPublicWithdrawal >= t.SrcPublicWithdrawal ||
		t.DstCancellation >= t.SrcCancellation {
		return ErrInvalidTimelock
	}
	return nil
}

// Stage is the phase an escrow is in at a given instant. Stages are
// monotonic in time and each entry point accepts a contiguous range of them.
type Stage string

const (
	StageFinalityLock      Stage = "FINALITY_LOCK"
	StageResolverWithdraw  Stage = "RESOLVER_EXCLUSIVE_WITHDRAW"
	StagePublicWithdraw    Stage = "PUBLIC_WITHDRAW"
	StageResolverCancel    Stage = "RESOLVER_EXCLUSIVE_CANCEL"
	StagePublicCancel      Stage = "PUBLIC_CANCEL"
)
