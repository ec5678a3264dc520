package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	request "github.com/RichardAwuor/Collarless/internal/adapter/http/dto/request"
	response "github.com/RichardAwuor/Collarless/internal/adapter/http/dto/response"
	"github.com/RichardAwuor/Collarless/internal/usecase"
	"github.com/RichardAwuor/Collarless/pkg"

	"github.com/gin-gonic/gin"
)

// MpesaCallbackHandler receives the gateway's deferred result deliveries.
//
// The gateway retries on anything that is not a 2xx, so every acknowledged
// disposition (resolved, duplicate, orphan, late) answers 200; only a
// failed authenticity check answers non-2xx.

type MpesaCallbackHandler struct {
	usecase usecase.ICallbackUseCase
}

func NewMpesaCallbackHandler(uc usecase.ICallbackUseCase) *MpesaCallbackHandler {
	return &MpesaCallbackHandler{usecase: uc}
}

func (h *MpesaCallbackHandler) HandleCallback(c *gin.Context) {
	token := c.Query("token")

	raw, err := c.GetRawData()
	if err != nil {
		log.Printf("[mpesa][handler] callback body read failed err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	// A malformed body still goes through the usecase: the token check
	// must run first, and an authenticated-but-unmatchable delivery is
	// acknowledged as an orphan rather than retried forever.
	var envelope request.MpesaCallbackEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		log.Printf("[mpesa][handler] callback body not parseable body_len=%d", len(raw))
	}

	outcome, err := h.usecase.HandleCallback(c.Request.Context(), token, envelope.ToResult(), raw)
	if err != nil {
		if errors.Is(err, usecase.ErrUnauthorizedCallback) {
			appErr := pkg.NewDomainErrorSimple("UNAUTHORIZED_CALLBACK", "Callback rejected", http.StatusUnauthorized)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		log.Printf("[mpesa][handler] callback processing failed checkout_request_id=%s err=%v", envelope.Body.StkCallback.CheckoutRequestID, err)
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	if receipt := envelope.ReceiptNumber(); receipt != "" {
		log.Printf("[mpesa][handler] callback acknowledged outcome=%s receipt=%s", outcome, receipt)
	} else {
		log.Printf("[mpesa][handler] callback acknowledged outcome=%s", outcome)
	}
	c.JSON(http.StatusOK, response.AcceptedCallbackAck())
}
