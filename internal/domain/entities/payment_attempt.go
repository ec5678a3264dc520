package entities

import (
	"encoding/json"
	"time"
)

// AttemptState represents the lifecycle of an STK push payment attempt.
//
// Domain notes:
//   - The ledger is the source of truth for attempt state.
//   - Transitions only move forward; terminal states never regress.
//   - Succeeded/Failed are set by the callback reconciler, TimedOut by the
//     expiry sweeper. Whichever wins the compare-and-swap first is final.

type AttemptState string

const (
	AttemptStateCreated   AttemptState = "CREATED"
	AttemptStateSubmitted AttemptState = "SUBMITTED"
	AttemptStatePending   AttemptState = "PENDING"
	AttemptStateSucceeded AttemptState = "SUCCEEDED"
	AttemptStateFailed    AttemptState = "FAILED"
	AttemptStateTimedOut  AttemptState = "TIMED_OUT"
)

// FailureReason distinguishes why an attempt ended in FAILED.
//
// ReasonIndeterminateSend marks a transport failure before any
// acknowledgment: the gateway may or may not have received the request and
// the outcome must never be assumed successful.

type FailureReason string

const (
	ReasonGatewayRejected   FailureReason = "gateway_rejected"
	ReasonIndeterminateSend FailureReason = "indeterminate_send"
	ReasonCallbackDeclined  FailureReason = "callback_declined"
)

var attemptTransitions = map[AttemptState][]AttemptState{
	AttemptStateCreated:   {AttemptStateSubmitted},
	AttemptStateSubmitted: {AttemptStatePending, AttemptStateFailed},
	AttemptStatePending:   {AttemptStateSucceeded, AttemptStateFailed, AttemptStateTimedOut},
}

// CanTransition reports whether from -> to is an edge of the attempt state
// machine. Terminal states have no outgoing edges.
func CanTransition(from, to AttemptState) bool {
	for _, next := range attemptTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the state admits no further transitions.
func IsTerminal(s AttemptState) bool {
	switch s {
	case AttemptStateSucceeded, AttemptStateFailed, AttemptStateTimedOut:
		return true
	}
	return false
}

// PaymentIntent is the caller-supplied payment order. Immutable once
// submitted; the attempt keeps its own copy.
//
// Amount is in whole KES (M-Pesa does not accept decimals on STK push).

type PaymentIntent struct {
	Amount           int64  `json:"amount"`
	PhoneNumber      string `json:"phone_number"`
	AccountReference string `json:"account_reference"`
	Description      string `json:"description"`
}

// PaymentAttempt is the ledger entity for one STK push attempt.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (correlation_key-index): correlation_key
//   - GSI2 (state-index): state (PK) + deadline (SK), for the expiry sweep
//
// CorrelationKey is the Daraja CheckoutRequestID returned by the
// synchronous acknowledgment; it is the only key under which a callback
// can be matched, is unique per attempt and never reassigned.
//
// Callback payload:
//   - CallbackPayloadRaw keeps the original stkCallback body (JSON) for audit.
//   - LateCallbackPayloadRaw holds a callback that lost the race against a
//     local timeout; kept for audit, never authoritative.

type PaymentAttempt struct {
	ID                string        `json:"id"`
	CorrelationKey    string        `json:"correlation_key,omitempty"`
	MerchantRequestID string        `json:"merchant_request_id,omitempty"`
	Intent            PaymentIntent `json:"intent"`
	State             AttemptState  `json:"state"`
	FailureReason     FailureReason `json:"failure_reason,omitempty"`

	// FailureDetail preserves the synchronous error that caused a FAILED
	// state (gateway errorCode/errorMessage, transport error) or the
	// decline description from a callback; empty otherwise.
	FailureDetail string `json:"failure_detail,omitempty"`

	RequestTimestamp time.Time `json:"request_timestamp"`
	Deadline         time.Time `json:"deadline"`

	CallbackPayloadRaw     json.RawMessage `json:"callback_payload_raw,omitempty"`
	LateCallbackPayloadRaw json.RawMessage `json:"late_callback_payload_raw,omitempty"`
	CallbackReceivedCount  int             `json:"callback_received_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
