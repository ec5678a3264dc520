package routes

import (
	"github.com/RichardAwuor/Collarless/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

func addMpesaRoutes(rg *gin.RouterGroup, stkHandler *handlers.STKPaymentHandler, callbackHandler *handlers.MpesaCallbackHandler) {
	mpesa := rg.Group("/mpesa")

	mpesa.POST("/stkpush", stkHandler.InitiatePush)
	mpesa.GET("/payments/:attempt_id", stkHandler.GetPaymentStatus)
	mpesa.POST("/callback", callbackHandler.HandleCallback)
}
