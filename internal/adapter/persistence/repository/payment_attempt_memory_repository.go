package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/RichardAwuor/Collarless/internal/domain/entities"
	"github.com/RichardAwuor/Collarless/internal/usecase/interfaces"
)

var ErrAttemptAlreadyExists = errors.New("payment attempt already exists")

// PaymentAttemptMemoryRepository is a mutex-guarded ledger used for local
// runs (LEDGER_BACKEND=memory) and for tests that need a real CAS rather
// than a mock.
//
// Semantics mirror the DynamoDB repository: zero-value attempt on
// not-found, zero-value attempt (nil error) when a conditional update does
// not apply.

type PaymentAttemptMemoryRepository struct {
	mu       sync.Mutex
	attempts map[string]entities.PaymentAttempt
	byKey    map[string]string
}

var _ interfaces.IPaymentLedgerRepository = (*PaymentAttemptMemoryRepository)(nil)

func NewPaymentAttemptMemoryRepository() *PaymentAttemptMemoryRepository {
	return &PaymentAttemptMemoryRepository{
		attempts: make(map[string]entities.PaymentAttempt),
		byKey:    make(map[string]string),
	}
}

func (r *PaymentAttemptMemoryRepository) Create(_ context.Context, a entities.PaymentAttempt) (entities.PaymentAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.attempts[a.ID]; exists {
		return entities.PaymentAttempt{}, ErrAttemptAlreadyExists
	}
	r.attempts[a.ID] = a
	return a, nil
}

func (r *PaymentAttemptMemoryRepository) GetByID(_ context.Context, id string) (entities.PaymentAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.attempts[id], nil
}

func (r *PaymentAttemptMemoryRepository) GetByCorrelationKey(_ context.Context, key string) (entities.PaymentAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byKey[key]
	if !ok {
		return entities.PaymentAttempt{}, nil
	}
	return r.attempts[id], nil
}

func (r *PaymentAttemptMemoryRepository) AttachCorrelationKey(_ context.Context, id, merchantRequestID, correlationKey string) (entities.PaymentAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.attempts[id]
	if !ok || a.CorrelationKey != "" {
		return entities.PaymentAttempt{}, nil
	}
	a.CorrelationKey = correlationKey
	a.MerchantRequestID = merchantRequestID
	a.UpdatedAt = time.Now().UTC()
	r.attempts[id] = a
	r.byKey[correlationKey] = id
	return a, nil
}

func (r *PaymentAttemptMemoryRepository) Transition(_ context.Context, id string, from, to entities.AttemptState, payload json.RawMessage, reason entities.FailureReason, detail string) (entities.PaymentAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.attempts[id]
	if !ok || a.State != from {
		// CAS lost: another writer got there first.
		return entities.PaymentAttempt{}, nil
	}
	a.State = to
	if reason != "" {
		a.FailureReason = reason
	}
	if detail != "" {
		a.FailureDetail = detail
	}
	if payload != nil {
		a.CallbackPayloadRaw = payload
		a.CallbackReceivedCount++
	}
	a.UpdatedAt = time.Now().UTC()
	r.attempts[id] = a
	return a, nil
}

func (r *PaymentAttemptMemoryRepository) RecordDuplicateCallback(_ context.Context, id string, latePayload json.RawMessage) (entities.PaymentAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.attempts[id]
	if !ok {
		return entities.PaymentAttempt{}, nil
	}
	a.CallbackReceivedCount++
	if latePayload != nil {
		a.LateCallbackPayloadRaw = latePayload
	}
	a.UpdatedAt = time.Now().UTC()
	r.attempts[id] = a
	return a, nil
}

func (r *PaymentAttemptMemoryRepository) ListExpiredPending(_ context.Context, now time.Time, limit int) ([]entities.PaymentAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]entities.PaymentAttempt, 0)
	for _, a := range r.attempts {
		if a.State == entities.AttemptStatePending && a.Deadline.Before(now) {
			out = append(out, a)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}
