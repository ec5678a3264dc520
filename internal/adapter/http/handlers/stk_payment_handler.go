package handlers

import (
	"errors"
	"log"
	"net/http"

	request "github.com/RichardAwuor/Collarless/internal/adapter/http/dto/request"
	response "github.com/RichardAwuor/Collarless/internal/adapter/http/dto/response"
	"github.com/RichardAwuor/Collarless/internal/usecase"
	"github.com/RichardAwuor/Collarless/internal/usecase/interfaces"
	"github.com/RichardAwuor/Collarless/pkg"

	"github.com/gin-gonic/gin"
)

// STKPaymentHandler handles HTTP requests for push payment initiation and
// status polling.

type STKPaymentHandler struct {
	usecase usecase.IPaymentInitiationUseCase
}

func NewSTKPaymentHandler(uc usecase.IPaymentInitiationUseCase) *STKPaymentHandler {
	return &STKPaymentHandler{usecase: uc}
}

// InitiatePush triggers the STK push prompt on the payer's phone and
// records the attempt. A 200 here means accepted-pending, never paid.
func (h *STKPaymentHandler) InitiatePush(c *gin.Context) {
	var req request.STKPushInitiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[mpesa][handler] initiate invalid body err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	attempt, err := h.usecase.InitiatePush(c.Request.Context(), req.ToIntent())
	if err != nil {
		log.Printf("[mpesa][handler] initiate failed err=%v", err)
		appErr := mapSTKPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[mpesa][handler] initiate accepted attempt_id=%s state=%s", attempt.ID, attempt.State)

	c.JSON(http.StatusOK, response.FromPaymentAttempt(attempt))
}

// GetPaymentStatus returns the full attempt record for polling clients.
func (h *STKPaymentHandler) GetPaymentStatus(c *gin.Context) {
	attemptID := c.Param("attempt_id")

	attempt, err := h.usecase.GetByID(c.Request.Context(), attemptID)
	if err != nil {
		log.Printf("[mpesa][handler] status failed attempt_id=%s err=%v", attemptID, err)
		appErr := mapSTKPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPaymentAttempt(attempt))
}

func mapSTKPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidIntent), errors.Is(err, usecase.ErrInvalidAttemptID):
		return pkg.NewDomainErrorSimple("INVALID_INTENT", "Invalid payment intent", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrAttemptNotFound):
		return pkg.NewDomainErrorSimple("ATTEMPT_NOT_FOUND", "Payment attempt not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrCorrelationKeyConflict):
		return pkg.NewDomainErrorSimple("CORRELATION_KEY_CONFLICT", "Gateway returned an identifier already in use", http.StatusConflict)
	case errors.Is(err, interfaces.ErrGatewayRejected):
		return pkg.NewDomainErrorSimple("GATEWAY_REJECTED", "Payment gateway rejected the request", http.StatusUnprocessableEntity)
	case errors.Is(err, interfaces.ErrIndeterminateSend):
		return pkg.NewDomainErrorSimple("INDETERMINATE_SEND", "Could not confirm delivery to the payment gateway; the outcome is unknown", http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
