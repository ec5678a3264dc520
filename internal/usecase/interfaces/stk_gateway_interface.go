package interfaces

import (
	"context"
	"errors"
	"time"

	"github.com/RichardAwuor/Collarless/internal/domain/entities"
)

// Error vocabulary of the gateway contract. Implementations wrap these so
// callers can classify with errors.Is without knowing the provider.
var (
	// ErrGatewayRejected: the gateway answered synchronously with a
	// structured decline (bad credentials, malformed fields, pre-check
	// failure). No callback will ever arrive for the attempt.
	ErrGatewayRejected = errors.New("gateway rejected request")

	// ErrIndeterminateSend: the transport failed before any acknowledgment
	// was received. The gateway may or may not have seen the request; the
	// outcome is unknown and must never be treated as success.
	ErrIndeterminateSend = errors.New("send outcome indeterminate")
)

// IPushRequestBuilder derives a signed STK push payload from an intent plus
// the merchant credential material the implementation carries.
//
// Build is pure given its inputs: the same intent and instant always
// produce the same request, which is what makes signature derivation
// replayable in tests.
type IPushRequestBuilder interface {
	Build(intent entities.PaymentIntent, at time.Time) (entities.STKPushRequest, error)
}

// ISTKGateway performs the synchronous leg of the push protocol.
//
// Send returns the acknowledgment on acceptance. Errors are classified by
// the implementation: a structured gateway rejection and a transport
// failure before any acknowledgment are distinct conditions and must stay
// distinguishable via errors.Is.
type ISTKGateway interface {
	Send(ctx context.Context, req entities.STKPushRequest) (entities.STKPushAck, error)
}

// IPaymentEffect is the downstream hook fired when an attempt resolves to
// SUCCEEDED (e.g. activating the provider subscription the payment bought).
//
// The reconciler guarantees at most one invocation per attempt and retries
// failures independently of the gateway acknowledgment; implementations
// must tolerate being retried.
type IPaymentEffect interface {
	OnPaymentSucceeded(ctx context.Context, attemptID string, intent entities.PaymentIntent, result entities.CallbackResult) error
}
