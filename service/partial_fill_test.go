package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cross_escrow/model"
)

const resolver2Addr = "0x5555555555555555555555555555555555555555"

// Partial fill walk from the reference scenario: 1_000_000_000 over 4
// parts, drained 250M + 250M + 500M with secret indices 1, 2 and the final
// 4. The last drain absorbs the remainder.
func TestPartialFillWalletDrains(t *testing.T) {
	f := newFixture(t)

	secrets, err := f.secrets.Generate(4)
	require.NoError(t, err)
	require.Len(t, secrets.Secrets, 5)

	wallet := f.mustCreateWallet(t, "partial", secrets.Hashlock, 4)

	drain := func(caller string, index uint64, amount uint64) (*model.Escrow, error) {
		return f.escrows.CreateEscrowSrc(CreateEscrowSrcParams{
			WalletID:       wallet.ID,
			Caller:         caller,
			Taker:          takerAddr,
			SecretHashlock: secrets.SecretHashes[index],
			SecretIndex:    index,
			MerkleProof:    secrets.Proofs[index],
			Amount:         amount,
			TakingAmount:   1_000_000_000, // covers the scaled curve for every share drained here (at most half the order)
			SafetyDeposit:  safetyDeposit,
			Timelocks:      testTimelocks(),
		})
	}

	esc1, err := drain(resolverAddr, 1, 250_000_000)
	require.NoError(t, err)

	w, err := f.wallets.GetWallet(wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(750_000_000), w.Principal.Amount())
	assert.Equal(t, uint64(1), w.LastUsedIndex)
	assert.True(t, w.IsActive)

	_, err = drain(resolver2Addr, 2, 250_000_000)
	require.NoError(t, err)

	// a remainder-covering fill must present the final secret
	_, err = drain(resolver2Addr, 3, 500_000_000)
	assert.Equal(t, model.ErrInvalidPartialFill, err)

	_, err = drain(resolver2Addr, 4, 500_000_000)
	require.NoError(t, err)

	w, err = f.wallets.GetWallet(wallet.ID)
	require.NoError(t, err)
	assert.True(t, w.Principal.IsZero())
	assert.False(t, w.IsActive)
	assert.Equal(t, uint64(4), w.LastUsedIndex)

	// the drained wallet is closed: replaying a used index rejects on the
	// wallet's status before any index check
	_, err = drain(otherAddr, 1, 250_000_000)
	assert.Equal(t, model.ErrWalletInactive, err)

	// each drained escrow is a single-fill lock on its leaf secret
	f.advance(6 * time.Minute)
	out, err := f.settlement.Withdraw(WithdrawParams{
		EscrowID: esc1.ID, Caller: resolverAddr, Secret: secrets.Secrets[1],
	})
	require.NoError(t, err)
	assert.Equal(t, model.EscrowStatusWithdrawn, out.Status)
}

func TestPartialFillRejectsSkippedValidation(t *testing.T) {
	f := newFixture(t)

	secrets, err := f.secrets.Generate(4)
	require.NoError(t, err)
	wallet := f.mustCreateWallet(t, "partial-bad", secrets.Hashlock, 4)

	// proof for a different index does not verify
	_, err = f.escrows.CreateEscrowSrc(CreateEscrowSrcParams{
		WalletID:       wallet.ID,
		Caller:         resolverAddr,
		Taker:          takerAddr,
		SecretHashlock: secrets.SecretHashes[1],
		SecretIndex:    1,
		MerkleProof:    secrets.Proofs[2],
		Amount:         250_000_000,
		TakingAmount:   1_000_000_000,
		SafetyDeposit:  safetyDeposit,
		Timelocks:      testTimelocks(),
	})
	assert.Equal(t, model.ErrInvalidMerkleProof, err)

	// index above the final secret is out of range
	_, err = f.escrows.CreateEscrowSrc(CreateEscrowSrcParams{
		WalletID:       wallet.ID,
		Caller:         resolverAddr,
		Taker:          takerAddr,
		SecretHashlock: secrets.SecretHashes[4],
		SecretIndex:    5,
		MerkleProof:    secrets.Proofs[4],
		Amount:         250_000_000,
		TakingAmount:   1_000_000_000,
		SafetyDeposit:  safetyDeposit,
		Timelocks:      testTimelocks(),
	})
	assert.Equal(t, model.ErrInvalidPartialFill, err)

	w, err := f.wallets.GetWallet(wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, makingAmount, w.Principal.Amount(), "rejected drains leave the wallet untouched")
}

// A destination escrow in partial-fill mode settles share by share; the
// used index set is strictly additive and the deposit pays out pro rata.
func TestMerkleEscrowShareSettlement(t *testing.T) {
	f := newFixture(t)

	secrets, err := f.secrets.Generate(4)
	require.NoError(t, err)

	dst, err := f.escrows.CreateEscrowDst(CreateEscrowDstParams{
		Caller:            resolverAddr,
		OrderHash:         testOrderHash("merkle-dst"),
		Maker:             makerAddr,
		Hashlock:          secrets.Hashlock,
		PartsAmount:       4,
		Amount:            makingAmount,
		SafetyDeposit:     safetyDeposit,
		Timelocks:         testTimelocks(),
		SrcCancellationTs: f.nowMs() + 900_000,
	})
	require.NoError(t, err)
	assert.True(t, dst.IsMerkle())

	f.advance(5 * time.Minute)

	withdraw := func(index uint64) (*model.Escrow, error) {
		return f.settlement.Withdraw(WithdrawParams{
			EscrowID:    dst.ID,
			Caller:      resolverAddr,
			Secret:      secrets.Secrets[index],
			SecretIndex: &index,
			MerkleProof: secrets.Proofs[index],
		})
	}

	out, err := withdraw(1)
	require.NoError(t, err)
	assert.Equal(t, model.EscrowStatusActive, out.Status)
	assert.Equal(t, uint64(750_000_000), out.Principal.Amount())
	assert.Equal(t, model.IndexSet{1}, out.UsedIndices)

	// replaying a settled index rejects with the state unchanged
	_, err = withdraw(1)
	assert.Equal(t, model.ErrSecretAlreadyUsed, err)
	after, err := f.escrows.GetEscrow(dst.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(750_000_000), after.Principal.Amount())

	for _, idx := range []uint64{0, 2, 3} {
		out, err = withdraw(idx)
		require.NoError(t, err)
	}
	assert.Equal(t, model.EscrowStatusWithdrawn, out.Status)
	assert.True(t, out.Principal.IsZero())
	assert.True(t, out.SafetyDeposit.IsZero())
	assert.ElementsMatch(t, model.IndexSet{0, 1, 2, 3}, out.UsedIndices)

	// every share paid the maker; the deposit streamed to the caller and
	// the last settlement drained the rest of it
	payouts, err := f.store.ListPayoutsByObject(dst.ID)
	require.NoError(t, err)
	var principalSum, depositSum uint64
	for _, p := range payouts {
		switch p.Kind {
		case model.PayoutPrincipal:
			assert.Equal(t, makerAddr, p.Recipient)
			principalSum += p.Amount
		case model.PayoutDeposit:
			assert.Equal(t, resolverAddr, p.Recipient)
			depositSum += p.Amount
		}
	}
	assert.Equal(t, makingAmount, principalSum)
	assert.Equal(t, safetyDeposit, depositSum)
}
