package router

import (
	"github.com/gin-gonic/gin"

	"github.com/cross_escrow/handler"
)

func SetupRouter(walletHandler *handler.WalletHandler, escrowHandler *handler.EscrowHandler, adminHandler *handler.AdminHandler) *gin.Engine {
	r := gin.Default()

	api := r.Group("/api/v1")
	{
		api.POST("/wallets", walletHandler.CreateWallet)
		api.GET("/wallets/:id", walletHandler.GetWallet)
		api.POST("/secrets", walletHandler.GenerateSecrets)

		api.POST("/escrows/src", escrowHandler.CreateEscrowSrc)
		api.POST("/escrows/dst", escrowHandler.CreateEscrowDst)
		api.GET("/escrows", escrowHandler.ListEscrows)
		api.GET("/escrows/:id", escrowHandler.GetEscrow)
		api.POST("/escrows/:id/withdraw", escrowHandler.Withdraw)
		api.POST("/escrows/:id/cancel", escrowHandler.Cancel)

		api.POST("/objects/:id/rescue", escrowHandler.Rescue)
		api.GET("/objects/:id/payouts", escrowHandler.ListPayouts)
		api.GET("/events", escrowHandler.ListEvents)

		api.PUT("/admin/config", adminHandler.UpdateConfig)
		api.POST("/admin/resolvers", adminHandler.RegisterResolver)
		api.GET("/admin/resolvers", adminHandler.ListResolvers)
	}

	return r
}
