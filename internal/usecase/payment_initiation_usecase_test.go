package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/RichardAwuor/Collarless/internal/domain/entities"
	"github.com/RichardAwuor/Collarless/internal/usecase/interfaces"
	mock_interfaces "github.com/RichardAwuor/Collarless/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func testIntent() entities.PaymentIntent {
	return entities.PaymentIntent{
		Amount:           1500,
		PhoneNumber:      "254712345678",
		AccountReference: "ORDER-42",
		Description:      "Subscription",
	}
}

func testAck() entities.STKPushAck {
	return entities.STKPushAck{
		MerchantRequestID:   "m-1",
		CheckoutRequestID:   "ws_CO_1",
		ResponseCode:        "0",
		ResponseDescription: "Success. Request accepted for processing",
	}
}

func TestPaymentInitiationUseCase_InitiatePush(t *testing.T) {
	t.Run("accepted and pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		ledger := mock_interfaces.NewMockIPaymentLedgerRepository(ctrl)
		builder := mock_interfaces.NewMockIPushRequestBuilder(ctrl)
		gateway := mock_interfaces.NewMockISTKGateway(ctrl)
		uc := NewPaymentInitiationUseCase(ledger, builder, gateway, 2*time.Minute)

		var createdID string
		builder.EXPECT().Build(testIntent(), gomock.Any()).Return(entities.STKPushRequest{Timestamp: "20260315090405"}, nil)
		ledger.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, a entities.PaymentAttempt) (entities.PaymentAttempt, error) {
				if a.ID == "" {
					t.Fatalf("attempt must get an id before storage")
				}
				if a.State != entities.AttemptStateCreated {
					t.Fatalf("attempt must be created in CREATED, got %s", a.State)
				}
				if !a.Deadline.After(a.RequestTimestamp) {
					t.Fatalf("deadline must lie after the request timestamp")
				}
				createdID = a.ID
				return a, nil
			})
		ledger.EXPECT().Transition(gomock.Any(), gomock.Any(), entities.AttemptStateCreated, entities.AttemptStateSubmitted, nil, entities.FailureReason(""), "").DoAndReturn(
			func(_ context.Context, id string, _, _ entities.AttemptState, _ []byte, _ entities.FailureReason, _ string) (entities.PaymentAttempt, error) {
				return entities.PaymentAttempt{ID: id, State: entities.AttemptStateSubmitted}, nil
			})
		gateway.EXPECT().Send(gomock.Any(), gomock.Any()).Return(testAck(), nil)
		ledger.EXPECT().GetByCorrelationKey(gomock.Any(), "ws_CO_1").Return(entities.PaymentAttempt{}, nil)
		ledger.EXPECT().AttachCorrelationKey(gomock.Any(), gomock.Any(), "m-1", "ws_CO_1").DoAndReturn(
			func(_ context.Context, id, m, k string) (entities.PaymentAttempt, error) {
				return entities.PaymentAttempt{ID: id, MerchantRequestID: m, CorrelationKey: k, State: entities.AttemptStateSubmitted}, nil
			})
		ledger.EXPECT().Transition(gomock.Any(), gomock.Any(), entities.AttemptStateSubmitted, entities.AttemptStatePending, nil, entities.FailureReason(""), "").DoAndReturn(
			func(_ context.Context, id string, _, _ entities.AttemptState, _ []byte, _ entities.FailureReason, _ string) (entities.PaymentAttempt, error) {
				return entities.PaymentAttempt{ID: id, CorrelationKey: "ws_CO_1", State: entities.AttemptStatePending}, nil
			})

		attempt, err := uc.InitiatePush(context.Background(), testIntent())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if attempt.State != entities.AttemptStatePending {
			t.Fatalf("expected PENDING, got %s", attempt.State)
		}
		if attempt.ID != createdID {
			t.Fatalf("returned attempt id mismatch: %s vs %s", attempt.ID, createdID)
		}
		if attempt.CorrelationKey != "ws_CO_1" {
			t.Fatalf("correlation key not attached: %+v", attempt)
		}
	})

	t.Run("invalid intent fails before any ledger write", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		ledger := mock_interfaces.NewMockIPaymentLedgerRepository(ctrl)
		builder := mock_interfaces.NewMockIPushRequestBuilder(ctrl)
		gateway := mock_interfaces.NewMockISTKGateway(ctrl)
		uc := NewPaymentInitiationUseCase(ledger, builder, gateway, 2*time.Minute)

		builder.EXPECT().Build(gomock.Any(), gomock.Any()).Return(entities.STKPushRequest{}, errors.New("amount must be positive"))
		// no ledger or gateway expectations: nothing else may run

		_, err := uc.InitiatePush(context.Background(), entities.PaymentIntent{Amount: -1})
		if !errors.Is(err, ErrInvalidIntent) {
			t.Fatalf("expected ErrInvalidIntent, got %v", err)
		}
	})

	t.Run("gateway rejection records FAILED with gateway_rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		ledger := mock_interfaces.NewMockIPaymentLedgerRepository(ctrl)
		builder := mock_interfaces.NewMockIPushRequestBuilder(ctrl)
		gateway := mock_interfaces.NewMockISTKGateway(ctrl)
		uc := NewPaymentInitiationUseCase(ledger, builder, gateway, 2*time.Minute)

		builder.EXPECT().Build(gomock.Any(), gomock.Any()).Return(entities.STKPushRequest{}, nil)
		ledger.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, a entities.PaymentAttempt) (entities.PaymentAttempt, error) { return a, nil })
		ledger.EXPECT().Transition(gomock.Any(), gomock.Any(), entities.AttemptStateCreated, entities.AttemptStateSubmitted, nil, entities.FailureReason(""), "").Return(entities.PaymentAttempt{ID: "att-1", State: entities.AttemptStateSubmitted}, nil)
		sendErr := fmt.Errorf("%w: Invalid Amount (400.002.02)", interfaces.ErrGatewayRejected)
		gateway.EXPECT().Send(gomock.Any(), gomock.Any()).Return(entities.STKPushAck{}, sendErr)
		// the gateway's own error text must land on the record, not just the enum
		ledger.EXPECT().Transition(gomock.Any(), gomock.Any(), entities.AttemptStateSubmitted, entities.AttemptStateFailed, nil, entities.ReasonGatewayRejected, sendErr.Error()).Return(entities.PaymentAttempt{ID: "att-1", State: entities.AttemptStateFailed}, nil)

		_, err := uc.InitiatePush(context.Background(), testIntent())
		if !errors.Is(err, interfaces.ErrGatewayRejected) {
			t.Fatalf("expected ErrGatewayRejected, got %v", err)
		}
	})

	t.Run("transport failure records FAILED with indeterminate_send", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		ledger := mock_interfaces.NewMockIPaymentLedgerRepository(ctrl)
		builder := mock_interfaces.NewMockIPushRequestBuilder(ctrl)
		gateway := mock_interfaces.NewMockISTKGateway(ctrl)
		uc := NewPaymentInitiationUseCase(ledger, builder, gateway, 2*time.Minute)

		builder.EXPECT().Build(gomock.Any(), gomock.Any()).Return(entities.STKPushRequest{}, nil)
		ledger.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, a entities.PaymentAttempt) (entities.PaymentAttempt, error) { return a, nil })
		ledger.EXPECT().Transition(gomock.Any(), gomock.Any(), entities.AttemptStateCreated, entities.AttemptStateSubmitted, nil, entities.FailureReason(""), "").Return(entities.PaymentAttempt{ID: "att-1", State: entities.AttemptStateSubmitted}, nil)
		gateway.EXPECT().Send(gomock.Any(), gomock.Any()).Return(entities.STKPushAck{}, interfaces.ErrIndeterminateSend)
		ledger.EXPECT().Transition(gomock.Any(), gomock.Any(), entities.AttemptStateSubmitted, entities.AttemptStateFailed, nil, entities.ReasonIndeterminateSend, interfaces.ErrIndeterminateSend.Error()).Return(entities.PaymentAttempt{ID: "att-1", State: entities.AttemptStateFailed}, nil)

		_, err := uc.InitiatePush(context.Background(), testIntent())
		if !errors.Is(err, interfaces.ErrIndeterminateSend) {
			t.Fatalf("expected ErrIndeterminateSend, got %v", err)
		}
	})

	t.Run("correlation key collision", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		ledger := mock_interfaces.NewMockIPaymentLedgerRepository(ctrl)
		builder := mock_interfaces.NewMockIPushRequestBuilder(ctrl)
		gateway := mock_interfaces.NewMockISTKGateway(ctrl)
		uc := NewPaymentInitiationUseCase(ledger, builder, gateway, 2*time.Minute)

		builder.EXPECT().Build(gomock.Any(), gomock.Any()).Return(entities.STKPushRequest{}, nil)
		ledger.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, a entities.PaymentAttempt) (entities.PaymentAttempt, error) { return a, nil })
		ledger.EXPECT().Transition(gomock.Any(), gomock.Any(), entities.AttemptStateCreated, entities.AttemptStateSubmitted, nil, entities.FailureReason(""), "").Return(entities.PaymentAttempt{ID: "att-1", State: entities.AttemptStateSubmitted}, nil)
		gateway.EXPECT().Send(gomock.Any(), gomock.Any()).Return(testAck(), nil)
		ledger.EXPECT().GetByCorrelationKey(gomock.Any(), "ws_CO_1").Return(entities.PaymentAttempt{ID: "other-attempt", CorrelationKey: "ws_CO_1"}, nil)
		ledger.EXPECT().Transition(gomock.Any(), gomock.Any(), entities.AttemptStateSubmitted, entities.AttemptStateFailed, nil, entities.ReasonGatewayRejected, ErrCorrelationKeyConflict.Error()).Return(entities.PaymentAttempt{ID: "att-1", State: entities.AttemptStateFailed}, nil)

		_, err := uc.InitiatePush(context.Background(), testIntent())
		if !errors.Is(err, ErrCorrelationKeyConflict) {
			t.Fatalf("expected ErrCorrelationKeyConflict, got %v", err)
		}
	})

	t.Run("callback beats pending bookkeeping", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		ledger := mock_interfaces.NewMockIPaymentLedgerRepository(ctrl)
		builder := mock_interfaces.NewMockIPushRequestBuilder(ctrl)
		gateway := mock_interfaces.NewMockISTKGateway(ctrl)
		uc := NewPaymentInitiationUseCase(ledger, builder, gateway, 2*time.Minute)

		builder.EXPECT().Build(gomock.Any(), gomock.Any()).Return(entities.STKPushRequest{}, nil)
		ledger.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, a entities.PaymentAttempt) (entities.PaymentAttempt, error) { return a, nil })
		ledger.EXPECT().Transition(gomock.Any(), gomock.Any(), entities.AttemptStateCreated, entities.AttemptStateSubmitted, nil, entities.FailureReason(""), "").Return(entities.PaymentAttempt{ID: "att-1", State: entities.AttemptStateSubmitted}, nil)
		gateway.EXPECT().Send(gomock.Any(), gomock.Any()).Return(testAck(), nil)
		ledger.EXPECT().GetByCorrelationKey(gomock.Any(), "ws_CO_1").Return(entities.PaymentAttempt{}, nil)
		ledger.EXPECT().AttachCorrelationKey(gomock.Any(), gomock.Any(), "m-1", "ws_CO_1").DoAndReturn(
			func(_ context.Context, id, m, k string) (entities.PaymentAttempt, error) {
				return entities.PaymentAttempt{ID: id, CorrelationKey: k, State: entities.AttemptStateSubmitted}, nil
			})
		// PENDING CAS misses: the callback already resolved the attempt
		ledger.EXPECT().Transition(gomock.Any(), gomock.Any(), entities.AttemptStateSubmitted, entities.AttemptStatePending, nil, entities.FailureReason(""), "").Return(entities.PaymentAttempt{}, nil)
		ledger.EXPECT().GetByID(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, id string) (entities.PaymentAttempt, error) {
				return entities.PaymentAttempt{ID: id, CorrelationKey: "ws_CO_1", State: entities.AttemptStateSucceeded}, nil
			})

		attempt, err := uc.InitiatePush(context.Background(), testIntent())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if attempt.State != entities.AttemptStateSucceeded {
			t.Fatalf("expected the resolved record, got %s", attempt.State)
		}
	})

	t.Run("ledger not configured", func(t *testing.T) {
		uc := NewPaymentInitiationUseCase(nil, nil, nil, 2*time.Minute)
		_, err := uc.InitiatePush(context.Background(), testIntent())
		if err == nil || err.Error() != "payment ledger not configured" {
			t.Fatalf("expected ledger not configured error, got %v", err)
		}
	})
}

func TestPaymentInitiationUseCase_GetByID(t *testing.T) {
	t.Run("blank id", func(t *testing.T) {
		uc := NewPaymentInitiationUseCase(nil, nil, nil, 0)
		_, err := uc.GetByID(context.Background(), "  ")
		if !errors.Is(err, ErrInvalidAttemptID) {
			t.Fatalf("expected ErrInvalidAttemptID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		ledger := mock_interfaces.NewMockIPaymentLedgerRepository(ctrl)
		uc := NewPaymentInitiationUseCase(ledger, nil, nil, 0)

		ledger.EXPECT().GetByID(gomock.Any(), "att-1").Return(entities.PaymentAttempt{}, nil)
		_, err := uc.GetByID(context.Background(), "att-1")
		if !errors.Is(err, ErrAttemptNotFound) {
			t.Fatalf("expected ErrAttemptNotFound, got %v", err)
		}
	})

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		ledger := mock_interfaces.NewMockIPaymentLedgerRepository(ctrl)
		uc := NewPaymentInitiationUseCase(ledger, nil, nil, 0)

		ledger.EXPECT().GetByID(gomock.Any(), "att-1").Return(entities.PaymentAttempt{ID: "att-1", State: entities.AttemptStatePending}, nil)
		got, err := uc.GetByID(context.Background(), "att-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != "att-1" {
			t.Fatalf("unexpected attempt: %+v", got)
		}
	})
}
