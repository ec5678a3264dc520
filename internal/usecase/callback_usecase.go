package usecase

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/RichardAwuor/Collarless/internal/domain/entities"
	"github.com/RichardAwuor/Collarless/internal/usecase/interfaces"
)

var ErrUnauthorizedCallback = errors.New("unauthorized callback")

// CallbackOutcome describes what the reconciler did with one delivery.
// Every outcome except an authentication failure is acknowledged to the
// gateway with a 2xx so it stops retrying.

type CallbackOutcome string

const (
	// the callback resolved a live attempt to a terminal state
	CallbackOutcomeResolved CallbackOutcome = "resolved"
	// replay of an already-resolved attempt; counted, state untouched
	CallbackOutcomeDuplicate CallbackOutcome = "duplicate"
	// no attempt matches the correlation key
	CallbackOutcomeOrphan CallbackOutcome = "orphan"
	// the sweeper won the race; result kept for audit only
	CallbackOutcomeLate CallbackOutcome = "late"
)

// effect retry schedule: exponential backoff, bounded
const (
	effectMaxAttempts = 5
	effectBaseDelay   = 500 * time.Millisecond
	effectMaxDelay    = 30 * time.Second
)

// ICallbackUseCase turns an inbound, untrusted gateway callback into at
// most one terminal state transition.

type ICallbackUseCase interface {
	HandleCallback(ctx context.Context, token string, result entities.CallbackResult, raw json.RawMessage) (CallbackOutcome, error)
}

type CallbackUseCase struct {
	ledger              interfaces.IPaymentLedgerRepository
	effect              interfaces.IPaymentEffect
	callbackToken       string
	lateSuccessResolves bool

	// dispatch runs the effect hook; swapped to a synchronous variant in
	// tests. Defaults to an async goroutine with backoff retries.
	dispatch func(attempt entities.PaymentAttempt, result entities.CallbackResult)
}

var _ ICallbackUseCase = (*CallbackUseCase)(nil)

func NewCallbackUseCase(ledger interfaces.IPaymentLedgerRepository, effect interfaces.IPaymentEffect, callbackToken string, lateSuccessResolves bool) *CallbackUseCase {
	u := &CallbackUseCase{
		ledger:              ledger,
		effect:              effect,
		callbackToken:       callbackToken,
		lateSuccessResolves: lateSuccessResolves,
	}
	u.dispatch = u.dispatchEffectAsync
	return u
}

func (u *CallbackUseCase) HandleCallback(ctx context.Context, token string, result entities.CallbackResult, raw json.RawMessage) (CallbackOutcome, error) {
	// Daraja does not sign callbacks; authenticity rides on the secret
	// path token registered with the callback URL. An unconfigured token
	// rejects everything rather than accepting everything.
	if u.callbackToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(u.callbackToken)) != 1 {
		log.Printf("[mpesa][callback] unauthorized delivery checkout_request_id=%s", result.CheckoutRequestID)
		return "", ErrUnauthorizedCallback
	}

	if result.CheckoutRequestID == "" {
		log.Printf("[mpesa][callback] delivery without correlation key; acknowledging")
		return CallbackOutcomeOrphan, nil
	}

	attempt, err := u.ledger.GetByCorrelationKey(ctx, result.CheckoutRequestID)
	if err != nil {
		return "", err
	}
	if attempt.ID == "" {
		// Legitimate: the gateway may redeliver long after retention, or
		// the key belongs to another environment. Acknowledge so the
		// gateway stops retrying.
		log.Printf("[mpesa][callback] orphan delivery checkout_request_id=%s result_code=%d", result.CheckoutRequestID, result.ResultCode)
		return CallbackOutcomeOrphan, nil
	}

	if entities.IsTerminal(attempt.State) {
		return u.handleTerminal(ctx, attempt, result, raw)
	}

	if attempt.State == entities.AttemptStatePending {
		return u.resolvePending(ctx, attempt, result, raw)
	}

	// Delivery raced the initiation bookkeeping (attempt still SUBMITTED).
	// The gateway will not redeliver once acknowledged, so the reconciler
	// promotes the attempt to PENDING itself and resolves it; whichever of
	// the two writers loses the CAS converges on the other's state.
	log.Printf("[mpesa][callback] early delivery attempt_id=%s state=%s", attempt.ID, attempt.State)
	promoted, err := u.ledger.Transition(ctx, attempt.ID, entities.AttemptStateSubmitted, entities.AttemptStatePending, nil, "", "")
	if err != nil {
		return "", err
	}
	if promoted.ID == "" {
		current, err := u.ledger.GetByID(ctx, attempt.ID)
		if err != nil {
			return "", err
		}
		if entities.IsTerminal(current.State) {
			return u.handleTerminal(ctx, current, result, raw)
		}
		if current.State != entities.AttemptStatePending {
			if _, err := u.ledger.RecordDuplicateCallback(ctx, attempt.ID, nil); err != nil {
				return "", err
			}
			return CallbackOutcomeDuplicate, nil
		}
		promoted = current
	}
	return u.resolvePending(ctx, promoted, result, raw)
}

func (u *CallbackUseCase) resolvePending(ctx context.Context, attempt entities.PaymentAttempt, result entities.CallbackResult, raw json.RawMessage) (CallbackOutcome, error) {
	to := entities.AttemptStateFailed
	reason := entities.ReasonCallbackDeclined
	detail := result.ResultDesc
	if result.Succeeded() {
		to = entities.AttemptStateSucceeded
		reason = ""
		detail = ""
	}

	resolved, err := u.ledger.Transition(ctx, attempt.ID, entities.AttemptStatePending, to, raw, reason, detail)
	if err != nil {
		return "", err
	}
	if resolved.ID == "" {
		// Another writer got there first. Only a sweeper timeout makes this
		// a late delivery worth archiving; losing to a concurrent duplicate
		// resolution is just a replay.
		current, err := u.ledger.GetByID(ctx, attempt.ID)
		if err != nil {
			return "", err
		}
		if current.State == entities.AttemptStateTimedOut {
			log.Printf("[mpesa][callback] late delivery attempt_id=%s result_code=%d", attempt.ID, result.ResultCode)
			if _, err := u.ledger.RecordDuplicateCallback(ctx, attempt.ID, raw); err != nil {
				return "", err
			}
			return CallbackOutcomeLate, nil
		}
		log.Printf("[mpesa][callback] duplicate resolution attempt_id=%s state=%s", attempt.ID, current.State)
		if _, err := u.ledger.RecordDuplicateCallback(ctx, attempt.ID, nil); err != nil {
			return "", err
		}
		return CallbackOutcomeDuplicate, nil
	}

	log.Printf("[mpesa][callback] resolved attempt_id=%s state=%s result_code=%d callbacks=%d", resolved.ID, resolved.State, result.ResultCode, resolved.CallbackReceivedCount)
	if to == entities.AttemptStateSucceeded {
		// Only the CAS winner reaches this point, which is what bounds the
		// effect to one invocation per attempt.
		u.dispatch(resolved, result)
	}
	return CallbackOutcomeResolved, nil
}

func (u *CallbackUseCase) handleTerminal(ctx context.Context, attempt entities.PaymentAttempt, result entities.CallbackResult, raw json.RawMessage) (CallbackOutcome, error) {
	if u.lateSuccessResolves && attempt.State == entities.AttemptStateTimedOut && result.Succeeded() {
		// Opt-in policy: eventual correctness beats the timeout's
		// finality. The CAS still bounds the effect to one firing.
		resolved, err := u.ledger.Transition(ctx, attempt.ID, entities.AttemptStateTimedOut, entities.AttemptStateSucceeded, raw, "", "")
		if err != nil {
			return "", err
		}
		if resolved.ID != "" {
			log.Printf("[mpesa][callback] late success superseded timeout attempt_id=%s", resolved.ID)
			u.dispatch(resolved, result)
			return CallbackOutcomeResolved, nil
		}
	}

	var latePayload json.RawMessage
	if attempt.State == entities.AttemptStateTimedOut {
		latePayload = raw
	}
	counted, err := u.ledger.RecordDuplicateCallback(ctx, attempt.ID, latePayload)
	if err != nil {
		return "", err
	}
	log.Printf("[mpesa][callback] duplicate delivery attempt_id=%s state=%s callbacks=%d", attempt.ID, attempt.State, counted.CallbackReceivedCount)
	return CallbackOutcomeDuplicate, nil
}

// dispatchEffectAsync fires the downstream hook off the callback path so
// the gateway gets its acknowledgment promptly, retrying failures with
// exponential backoff. Exhausting the retries is logged and dropped; the
// collaborator owns further recovery.
func (u *CallbackUseCase) dispatchEffectAsync(attempt entities.PaymentAttempt, result entities.CallbackResult) {
	if u.effect == nil {
		return
	}
	go func() {
		delay := effectBaseDelay
		for i := 1; i <= effectMaxAttempts; i++ {
			err := u.effect.OnPaymentSucceeded(context.Background(), attempt.ID, attempt.Intent, result)
			if err == nil {
				return
			}
			log.Printf("[mpesa][callback] effect invocation failed attempt_id=%s try=%d err=%v", attempt.ID, i, err)
			if i == effectMaxAttempts {
				return
			}
			time.Sleep(delay)
			if delay *= 2; delay > effectMaxDelay {
				delay = effectMaxDelay
			}
		}
	}()
}
