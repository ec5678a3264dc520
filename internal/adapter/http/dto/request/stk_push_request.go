package request

import (
	"strings"

	"github.com/RichardAwuor/Collarless/internal/domain/entities"
)

// STKPushInitiateRequest is the caller-facing payload for starting a push
// payment. Amount is whole KES; phone_number is the payer MSISDN in
// 254XXXXXXXXX form.

type STKPushInitiateRequest struct {
	Amount           int64  `json:"amount" binding:"required"`
	PhoneNumber      string `json:"phone_number" binding:"required"`
	AccountReference string `json:"account_reference" binding:"required"`
	Description      string `json:"description"`
}

func (r STKPushInitiateRequest) ToIntent() entities.PaymentIntent {
	desc := strings.TrimSpace(r.Description)
	if desc == "" {
		desc = "Subscription"
	}
	return entities.PaymentIntent{
		Amount:           r.Amount,
		PhoneNumber:      strings.TrimSpace(r.PhoneNumber),
		AccountReference: strings.TrimSpace(r.AccountReference),
		Description:      desc,
	}
}
