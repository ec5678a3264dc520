package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/RichardAwuor/Collarless/internal/domain/entities"
	"github.com/RichardAwuor/Collarless/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidIntent          = errors.New("invalid payment intent")
	ErrInvalidAttemptID       = errors.New("invalid attempt id")
	ErrAttemptNotFound        = errors.New("payment attempt not found")
	ErrCorrelationKeyConflict = errors.New("correlation key already attached to another attempt")
)

// IPaymentInitiationUseCase covers the synchronous leg of the push
// protocol: validate, sign, send, and record the attempt as PENDING.
//
// A PENDING return means "the payer was prompted", not "the payer paid";
// the real outcome arrives later through the callback reconciler.

type IPaymentInitiationUseCase interface {
	InitiatePush(ctx context.Context, intent entities.PaymentIntent) (entities.PaymentAttempt, error)
	GetByID(ctx context.Context, id string) (entities.PaymentAttempt, error)
}

type PaymentInitiationUseCase struct {
	ledger        interfaces.IPaymentLedgerRepository
	builder       interfaces.IPushRequestBuilder
	gateway       interfaces.ISTKGateway
	timeoutWindow time.Duration
}

var _ IPaymentInitiationUseCase = (*PaymentInitiationUseCase)(nil)

func NewPaymentInitiationUseCase(ledger interfaces.IPaymentLedgerRepository, builder interfaces.IPushRequestBuilder, gateway interfaces.ISTKGateway, timeoutWindow time.Duration) *PaymentInitiationUseCase {
	return &PaymentInitiationUseCase{ledger: ledger, builder: builder, gateway: gateway, timeoutWindow: timeoutWindow}
}

func (u *PaymentInitiationUseCase) InitiatePush(ctx context.Context, intent entities.PaymentIntent) (entities.PaymentAttempt, error) {
	log.Printf("[mpesa][usecase] initiate start amount=%d phone=%s ref=%q", intent.Amount, intent.PhoneNumber, intent.AccountReference)
	if u.ledger == nil {
		return entities.PaymentAttempt{}, errors.New("payment ledger not configured")
	}
	if u.builder == nil || u.gateway == nil {
		return entities.PaymentAttempt{}, errors.New("payment gateway not configured")
	}

	now := time.Now().UTC()
	req, err := u.builder.Build(intent, now)
	if err != nil {
		// Fails before any ledger write or network call.
		log.Printf("[mpesa][usecase] initiate invalid intent err=%v", err)
		return entities.PaymentAttempt{}, fmt.Errorf("%w: %v", ErrInvalidIntent, err)
	}

	attempt := entities.PaymentAttempt{
		ID:               uuid.NewString(),
		Intent:           intent,
		State:            entities.AttemptStateCreated,
		RequestTimestamp: now,
		Deadline:         now.Add(u.timeoutWindow),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if _, err := u.ledger.Create(ctx, attempt); err != nil {
		log.Printf("[mpesa][usecase] initiate ledger create failed attempt_id=%s err=%v", attempt.ID, err)
		return entities.PaymentAttempt{}, err
	}
	if _, err := u.ledger.Transition(ctx, attempt.ID, entities.AttemptStateCreated, entities.AttemptStateSubmitted, nil, "", ""); err != nil {
		return entities.PaymentAttempt{}, err
	}

	ack, err := u.gateway.Send(ctx, req)
	if err != nil {
		reason := entities.ReasonGatewayRejected
		if errors.Is(err, interfaces.ErrIndeterminateSend) {
			reason = entities.ReasonIndeterminateSend
		}
		log.Printf("[mpesa][usecase] initiate send failed attempt_id=%s reason=%s err=%v", attempt.ID, reason, err)
		// Keep the gateway's own words on the record, not just the enum.
		if _, ferr := u.ledger.Transition(ctx, attempt.ID, entities.AttemptStateSubmitted, entities.AttemptStateFailed, nil, reason, err.Error()); ferr != nil {
			log.Printf("[mpesa][usecase] initiate failure bookkeeping failed attempt_id=%s err=%v", attempt.ID, ferr)
		}
		return entities.PaymentAttempt{}, err
	}

	// A correlation key is never shared between attempts. If the gateway
	// handed out one we already know, report the collision instead of
	// overwriting either attempt.
	if existing, err := u.ledger.GetByCorrelationKey(ctx, ack.CheckoutRequestID); err != nil {
		return entities.PaymentAttempt{}, err
	} else if existing.ID != "" && existing.ID != attempt.ID {
		log.Printf("[mpesa][usecase] correlation key collision attempt_id=%s other_attempt_id=%s checkout_request_id=%s", attempt.ID, existing.ID, ack.CheckoutRequestID)
		if _, ferr := u.ledger.Transition(ctx, attempt.ID, entities.AttemptStateSubmitted, entities.AttemptStateFailed, nil, entities.ReasonGatewayRejected, ErrCorrelationKeyConflict.Error()); ferr != nil {
			log.Printf("[mpesa][usecase] collision bookkeeping failed attempt_id=%s err=%v", attempt.ID, ferr)
		}
		return entities.PaymentAttempt{}, ErrCorrelationKeyConflict
	}

	attached, err := u.ledger.AttachCorrelationKey(ctx, attempt.ID, ack.MerchantRequestID, ack.CheckoutRequestID)
	if err != nil {
		return entities.PaymentAttempt{}, err
	}
	if attached.ID == "" {
		return entities.PaymentAttempt{}, ErrCorrelationKeyConflict
	}

	pending, err := u.ledger.Transition(ctx, attempt.ID, entities.AttemptStateSubmitted, entities.AttemptStatePending, nil, "", "")
	if err != nil {
		return entities.PaymentAttempt{}, err
	}
	if pending.ID == "" {
		// A callback can beat the PENDING bookkeeping: the reconciler
		// promotes SUBMITTED itself and may already have resolved the
		// attempt. Return whatever the ledger holds now.
		return u.GetByID(ctx, attempt.ID)
	}
	log.Printf("[mpesa][usecase] initiate accepted attempt_id=%s checkout_request_id=%s state=%s", pending.ID, pending.CorrelationKey, pending.State)
	return pending, nil
}

func (u *PaymentInitiationUseCase) GetByID(ctx context.Context, id string) (entities.PaymentAttempt, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.PaymentAttempt{}, ErrInvalidAttemptID
	}

	a, err := u.ledger.GetByID(ctx, id)
	if err != nil {
		return entities.PaymentAttempt{}, err
	}
	if a.ID == "" {
		return entities.PaymentAttempt{}, ErrAttemptNotFound
	}
	return a, nil
}
