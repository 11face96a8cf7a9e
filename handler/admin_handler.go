package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cross_escrow/service"
)

type AdminHandler struct {
	admin *service.AdminService
}

func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

type updateConfigRequest struct {
	Caller           string `json:"caller" binding:"required"`
	RescueDelayMs    int64  `json:"rescue_delay_ms" binding:"required"`
	MinSafetyDeposit string `json:"min_safety_deposit" binding:"required"`
}

// PUT /api/v1/admin/config
func (h *AdminHandler) UpdateConfig(c *gin.Context) {
	var req updateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	minDeposit, err := parseAmount(req.MinSafetyDeposit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_safety_deposit"})
		return
	}

	cfg, err := h.admin.UpdateConfig(req.Caller, req.RescueDelayMs, minDeposit)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

type registerResolverRequest struct {
	Caller  string `json:"caller" binding:"required"`
	Address string `json:"address" binding:"required"`
	Name    string `json:"name"`
}

// POST /api/v1/admin/resolvers
func (h *AdminHandler) RegisterResolver(c *gin.Context) {
	var req registerResolverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	r, err := h.admin.RegisterResolver(req.Caller, req.Address, req.Name)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// GET /api/v1/admin/resolvers
func (h *AdminHandler) ListResolvers(c *gin.Context) {
	list, err := h.admin.ListResolvers()
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(list), "resolvers": list})
}
