package handler

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gin-gonic/gin"

	"github.com/cross_escrow/model"
	"github.com/cross_escrow/service"
)

type WalletHandler struct {
	wallets *service.WalletService
	secrets *service.SecretService
}

func NewWalletHandler(wallets *service.WalletService, secrets *service.SecretService) *WalletHandler {
	return &WalletHandler{wallets: wallets, secrets: secrets}
}

type createWalletRequest struct {
	Caller            string          `json:"caller" binding:"required"`
	OrderHash         string          `json:"order_hash" binding:"required"`
	MakingAmount      string          `json:"making_amount" binding:"required"`
	TakingAmountStart string          `json:"taking_amount_start" binding:"required"`
	TakingAmountEnd   string          `json:"taking_amount_end" binding:"required"`
	AuctionDurationMs uint64          `json:"auction_duration_ms"`
	Hashlock          string          `json:"hashlock" binding:"required"`
	AllowPartialFills bool            `json:"allow_partial_fills"`
	PartsAmount       uint64          `json:"parts_amount"`
	Timelocks         model.Timelocks `json:"timelocks"`
}

// POST /api/v1/wallets
func (h *WalletHandler) CreateWallet(c *gin.Context) {
	var req createWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orderHash, err := parseHex(req.OrderHash)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order_hash"})
		return
	}
	hashlock, err := parseHex(req.Hashlock)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hashlock"})
		return
	}
	making, err := parseAmount(req.MakingAmount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid making_amount"})
		return
	}
	takingStart, err := parseAmount(req.TakingAmountStart)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid taking_amount_start"})
		return
	}
	takingEnd, err := parseAmount(req.TakingAmountEnd)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid taking_amount_end"})
		return
	}

	wallet, err := h.wallets.CreateWallet(service.CreateWalletParams{
		OrderHash:         orderHash,
		Maker:             req.Caller,
		MakingAmount:      making,
		TakingAmountStart: takingStart,
		TakingAmountEnd:   takingEnd,
		AuctionDurationMs: req.AuctionDurationMs,
		Hashlock:          hashlock,
		AllowPartialFills: req.AllowPartialFills,
		PartsAmount:       req.PartsAmount,
		Timelocks:         req.Timelocks,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, wallet)
}

// GET /api/v1/wallets/:id
func (h *WalletHandler) GetWallet(c *gin.Context) {
	wallet, err := h.wallets.GetWallet(c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"wallet":  wallet,
		"balance": wallet.Principal.Amount(),
	})
}

type generateSecretsRequest struct {
	PartsAmount uint64 `json:"parts_amount"`
	Mnemonic    string `json:"mnemonic"`
}

// POST /api/v1/secrets
//
// Resolver-side helper: derives the order's secret set and Merkle material.
// Nothing returned here is stored server-side.
func (h *WalletHandler) GenerateSecrets(c *gin.Context) {
	var req generateSecretsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var out *service.OrderSecrets
	var err error
	if req.Mnemonic != "" {
		out, err = h.secrets.Derive(req.Mnemonic, req.PartsAmount)
	} else {
		out, err = h.secrets.Generate(req.PartsAmount)
	}
	if err != nil {
		writeErr(c, err)
		return
	}

	secrets := make([]string, 0, len(out.Secrets))
	for _, s := range out.Secrets {
		secrets = append(secrets, hexutil.Encode(s))
	}
	hashes := make([]string, 0, len(out.SecretHashes))
	for _, s := range out.SecretHashes {
		hashes = append(hashes, hexutil.Encode(s))
	}
	proofs := make([][]string, 0, len(out.Proofs))
	for _, p := range out.Proofs {
		proofs = append(proofs, encodeProof(p))
	}

	c.JSON(http.StatusOK, gin.H{
		"mnemonic":      out.Mnemonic,
		"secrets":       secrets,
		"secret_hashes": hashes,
		"hashlock":      hexutil.Encode(out.Hashlock),
		"proofs":        proofs,
	})
}
