package routes

import (
	"payeezy_gateway/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathTransactions = "/transactions"
)

func addPaymentRoutes(rg *gin.RouterGroup, paymentHandler *handlers.PaymentHandler) {
	transactions := rg.Group(PathTransactions)
	{
		transactions.POST("", paymentHandler.Purchase)
		transactions.POST("/:transaction_id/refund", paymentHandler.Refund)
		transactions.POST("/:transaction_id/void", paymentHandler.Void)
		transactions.GET("/:transaction_id", paymentHandler.GetTransaction)
	}
}
