package interfaces

import (
	"context"
	"encoding/json"
	"time"

	"github.com/RichardAwuor/Collarless/internal/domain/entities"
)

// IPaymentLedgerRepository abstracts the durable attempt ledger (DynamoDB in
// production, in-memory for local runs and tests).
//
// Conventions shared by all implementations:
//   - Lookups return a zero-value attempt (ID == "") when nothing matches.
//   - Transition is compare-and-swap: it applies only while the stored state
//     equals from, and returns a zero-value attempt (nil error) when the
//     condition fails. That conditional check is the sole synchronization
//     point between the callback reconciler and the expiry sweeper.

type IPaymentLedgerRepository interface {
	Create(ctx context.Context, a entities.PaymentAttempt) (entities.PaymentAttempt, error)
	GetByID(ctx context.Context, id string) (entities.PaymentAttempt, error)
	GetByCorrelationKey(ctx context.Context, key string) (entities.PaymentAttempt, error)

	// AttachCorrelationKey stores the gateway-issued identifiers on the
	// attempt. It applies only while the attempt has no correlation key yet;
	// a zero-value return means the attempt was missing or already attached.
	AttachCorrelationKey(ctx context.Context, id, merchantRequestID, correlationKey string) (entities.PaymentAttempt, error)

	// Transition performs the CAS state change, attaching the callback
	// payload, failure reason and failure detail when provided.
	Transition(ctx context.Context, id string, from, to entities.AttemptState, payload json.RawMessage, reason entities.FailureReason, detail string) (entities.PaymentAttempt, error)

	// RecordDuplicateCallback increments callback_received_count without
	// touching state. A non-nil latePayload is attached for audit (the
	// late-arriving correction case).
	RecordDuplicateCallback(ctx context.Context, id string, latePayload json.RawMessage) (entities.PaymentAttempt, error)

	// ListExpiredPending returns attempts still PENDING whose deadline
	// passed before now, bounded by limit.
	ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]entities.PaymentAttempt, error)
}
