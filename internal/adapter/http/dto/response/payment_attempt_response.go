package response

import (
	"time"

	"github.com/RichardAwuor/Collarless/internal/domain/entities"
)

// PaymentAttemptResponse is the polled view of one attempt. State PENDING
// means "prompt delivered, outcome not known yet"; clients keep polling
// until a terminal state appears.

type PaymentAttemptResponse struct {
	AttemptID         string `json:"attempt_id"`
	State             string `json:"state"`
	FailureReason     string `json:"failure_reason,omitempty"`
	FailureDetail     string `json:"failure_detail,omitempty"`
	CorrelationKey    string `json:"correlation_key,omitempty"`
	MerchantRequestID string `json:"merchant_request_id,omitempty"`

	Amount           int64  `json:"amount"`
	PhoneNumber      string `json:"phone_number"`
	AccountReference string `json:"account_reference"`
	Description      string `json:"description"`

	RequestTimestamp time.Time `json:"request_timestamp"`
	Deadline         time.Time `json:"deadline"`

	CallbackPayloadRaw     string `json:"callback_payload_raw,omitempty"`
	LateCallbackPayloadRaw string `json:"late_callback_payload_raw,omitempty"`
	CallbackReceivedCount  int    `json:"callback_received_count"`
}

func FromPaymentAttempt(a entities.PaymentAttempt) PaymentAttemptResponse {
	return PaymentAttemptResponse{
		AttemptID:              a.ID,
		State:                  string(a.State),
		FailureReason:          string(a.FailureReason),
		FailureDetail:          a.FailureDetail,
		CorrelationKey:         a.CorrelationKey,
		MerchantRequestID:      a.MerchantRequestID,
		Amount:                 a.Intent.Amount,
		PhoneNumber:            a.Intent.PhoneNumber,
		AccountReference:       a.Intent.AccountReference,
		Description:            a.Intent.Description,
		RequestTimestamp:       a.RequestTimestamp,
		Deadline:               a.Deadline,
		CallbackPayloadRaw:     string(a.CallbackPayloadRaw),
		LateCallbackPayloadRaw: string(a.LateCallbackPayloadRaw),
		CallbackReceivedCount:  a.CallbackReceivedCount,
	}
}

// CallbackAck is the body the gateway expects back for an accepted
// delivery. Anything with a 2xx status stops its retry loop.

type CallbackAck struct {
	ResultCode int    `json:"ResultCode"`
	ResultDesc string `json:"ResultDesc"`
}

func AcceptedCallbackAck() CallbackAck {
	return CallbackAck{ResultCode: 0, ResultDesc: "Accepted"}
}
