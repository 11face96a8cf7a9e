package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cross_escrow/model"
	"github.com/cross_escrow/service"
)

type EscrowHandler struct {
	escrows    *service.EscrowService
	settlement *service.SettlementService
	rescue     *service.RescueService
}

func NewEscrowHandler(escrows *service.EscrowService, settlement *service.SettlementService, rescue *service.RescueService) *EscrowHandler {
	return &EscrowHandler{escrows: escrows, settlement: settlement, rescue: rescue}
}

type createEscrowSrcRequest struct {
	Caller         string          `json:"caller" binding:"required"`
	WalletID       string          `json:"wallet_id" binding:"required"`
	Taker          string          `json:"taker" binding:"required"`
	SecretHashlock string          `json:"secret_hashlock" binding:"required"`
	SecretIndex    uint64          `json:"secret_index"`
	MerkleProof    []string        `json:"merkle_proof"`
	Amount         string          `json:"amount" binding:"required"`
	TakingAmount   string          `json:"taking_amount" binding:"required"`
	SafetyDeposit  string          `json:"safety_deposit" binding:"required"`
	Timelocks      model.Timelocks `json:"timelocks"`
}

// POST /api/v1/escrows/src
func (h *EscrowHandler) CreateEscrowSrc(c *gin.Context) {
	var req createEscrowSrcRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashlock, err := parseHex(req.SecretHashlock)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid secret_hashlock"})
		return
	}
	proof, err := parseProof(req.MerkleProof)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid merkle_proof"})
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}
	taking, err := parseAmount(req.TakingAmount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid taking_amount"})
		return
	}
	deposit, err := parseAmount(req.SafetyDeposit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid safety_deposit"})
		return
	}

	escrow, err := h.escrows.CreateEscrowSrc(service.CreateEscrowSrcParams{
		WalletID:       req.WalletID,
		Caller:         req.Caller,
		Taker:          req.Taker,
		SecretHashlock: hashlock,
		SecretIndex:    req.SecretIndex,
		MerkleProof:    proof,
		Amount:         amount,
		TakingAmount:   taking,
		SafetyDeposit:  deposit,
		Timelocks:      req.Timelocks,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, escrow)
}

type createEscrowDstRequest struct {
	Caller            string          `json:"caller" binding:"required"`
	OrderHash         string          `json:"order_hash" binding:"required"`
	Maker             string          `json:"maker" binding:"required"`
	Hashlock          string          `json:"hashlock" binding:"required"`
	PartsAmount       uint64          `json:"parts_amount"`
	Amount            string          `json:"amount" binding:"required"`
	SafetyDeposit     string          `json:"safety_deposit" binding:"required"`
	Timelocks         model.Timelocks `json:"timelocks"`
	SrcCancellationTs int64           `json:"src_cancellation_timestamp" binding:"required"`
}

// POST /api/v1/escrows/dst
func (h *EscrowHandler) CreateEscrowDst(c *gin.Context) {
	var req createEscrowDstRequest
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
	amount, err := parseAmount(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}
	deposit, err := parseAmount(req.SafetyDeposit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid safety_deposit"})
		return
	}

	escrow, err := h.escrows.CreateEscrowDst(service.CreateEscrowDstParams{
		Caller:            req.Caller,
		OrderHash:         orderHash,
		Maker:             req.Maker,
		Hashlock:          hashlock,
		PartsAmount:       req.PartsAmount,
		Amount:            amount,
		SafetyDeposit:     deposit,
		Timelocks:         req.Timelocks,
		SrcCancellationTs: req.SrcCancellationTs,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, escrow)
}

type withdrawRequest struct {
	Caller      string   `json:"caller" binding:"required"`
	Secret      string   `json:"secret" binding:"required"`
	SecretIndex *uint64  `json:"secret_index"`
	MerkleProof []string `json:"merkle_proof"`
}

// POST /api/v1/escrows/:id/withdraw
func (h *EscrowHandler) Withdraw(c *gin.Context) {
	var req withdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	secret, err := parseHex(req.Secret)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid secret"})
		return
	}
	proof, err := parseProof(req.MerkleProof)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid merkle_proof"})
		return
	}

	escrow, err := h.settlement.Withdraw(service.WithdrawParams{
		EscrowID:    c.Param("id"),
		Caller:      req.Caller,
		Secret:      secret,
		SecretIndex: req.SecretIndex,
		MerkleProof: proof,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, escrow)
}

type cancelRequest struct {
	Caller string `json:"caller" binding:"required"`
}

// POST /api/v1/escrows/:id/cancel
func (h *EscrowHandler) Cancel(c *gin.Context) {
	var req cancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	escrow, err := h.settlement.Cancel(service.CancelParams{
		EscrowID: c.Param("id"),
		Caller:   req.Caller,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, escrow)
}

type rescueRequest struct {
	Caller string `json:"caller" binding:"required"`
}

// POST /api/v1/objects/:id/rescue
func (h *EscrowHandler) Rescue(c *gin.Context) {
	var req rescueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.rescue.Rescue(c.Param("id"), req.Caller); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rescued": c.Param("id")})
}

// GET /api/v1/escrows/:id
func (h *EscrowHandler) GetEscrow(c *gin.Context) {
	escrow, err := h.escrows.GetEscrow(c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, escrow)
}

// GET /api/v1/escrows?order_hash=0x...
func (h *EscrowHandler) ListEscrows(c *gin.Context) {
	orderHash, err := parseHex(c.Query("order_hash"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order_hash"})
		return
	}
	list, err := h.escrows.ListByOrderHash(orderHash)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(list), "escrows": list})
}

// GET /api/v1/events?order_hash=0x...&type=EscrowWithdrawn
func (h *EscrowHandler) ListEvents(c *gin.Context) {
	if t := c.Query("type"); t != "" {
		list, err := h.escrows.EventsByType(model.EventType(t))
		if err != nil {
			writeErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"total": len(list), "events": list})
		return
	}

	orderHash, err := parseHex(c.Query("order_hash"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order_hash"})
		return
	}
	list, err := h.escrows.EventsByOrderHash(orderHash)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(list), "events": list})
}

// GET /api/v1/objects/:id/payouts
func (h *EscrowHandler) ListPayouts(c *gin.Context) {
	list, err := h.escrows.PayoutsByObject(c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(list), "payouts": list})
}
