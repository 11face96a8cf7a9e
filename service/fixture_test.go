package service

import (
	"testing"
	"time"

	"github.com/andres-erbsen/clock"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/cross_escrow/model"
	"github.com/cross_escrow/protocol"
	"github.com/cross_escrow/repository"
)

const (
	makerAddr    = "0x1111111111111111111111111111111111111111"
	resolverAddr = "0x2222222222222222222222222222222222222222"
	takerAddr    = "0x3333333333333333333333333333333333333333"
	otherAddr    = "0x4444444444444444444444444444444444444444"
	adminAddr    = "0x0000000000000000000000000000000000000001"
)

const (
	makingAmount  = uint64(1_000_000_000)
	safetyDeposit = uint64(100_000_000)
)

type fixture struct {
	store      *repository.MemoryStore
	mock       *clock.Mock
	wallets    *WalletService
	escrows    *EscrowService
	settlement *SettlementService
	rescue     *RescueService
	admin      *AdminService
	secrets    *SecretService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := zerolog.Nop()
	store := repository.NewMemoryStore()
	mock := clock.NewMock()
	clk := NewLedgerClock(mock)
	locks := NewLockTable()

	admin := NewAdminService(store, logger)
	_, err := admin.EnsureConfig(adminAddr)
	require.NoError(t, err)

	return &fixture{
		store:      store,
		mock:       mock,
		wallets:    NewWalletService(store, clk, logger),
		escrows:    NewEscrowService(store, clk, locks, logger),
		settlement: NewSettlementService(store, clk, locks, logger),
		rescue:     NewRescueService(store, clk, locks, logger),
		admin:      admin,
		secrets:    NewSecretService(),
	}
}

func (f *fixture) advance(d time.Duration) { f.mock.Add(d) }

func (f *fixture) nowMs() int64 { return f.mock.Now().UnixMilli() }

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

func testOrderHash(tag string) []byte {
	return crypto.Keccak256([]byte("order:" + tag))
}

func testSecret(fill byte) []byte {
	s := make([]byte, protocol.SecretLen)
	for i := range s {
		s[i] = fill
	}
	return s
}

func (f *fixture) mustCreateWallet(t *testing.T, tag string, hashlock []byte, partsAmount uint64) *model.Wallet {
	t.Helper()
	p := CreateWalletParams{
		OrderHash:         testOrderHash(tag),
		Maker:             makerAddr,
		MakingAmount:      makingAmount,
		TakingAmountStart: 2_000_000_000,
		TakingAmountEnd:   1_000_000_000,
		AuctionDurationMs: 300_000,
		Hashlock:          hashlock,
		AllowPartialFills: partsAmount > 0,
		PartsAmount:       partsAmount,
		Timelocks:         testTimelocks(),
	}
	w, err := f.wallets.CreateWallet(p)
	require.NoError(t, err)
	return w
}
