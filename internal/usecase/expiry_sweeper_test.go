package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/RichardAwuor/Collarless/internal/domain/entities"
	mock_interfaces "github.com/RichardAwuor/Collarless/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestExpirySweeper_SweepOnce(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	t.Run("times out expired attempts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		ledger := mock_interfaces.NewMockIPaymentLedgerRepository(ctrl)
		s := NewExpirySweeper(ledger, time.Second, 25)

		expired := []entities.PaymentAttempt{
			{ID: "att-1", State: entities.AttemptStatePending, Deadline: now.Add(-time.Minute)},
			{ID: "att-2", State: entities.AttemptStatePending, Deadline: now.Add(-2 * time.Minute)},
		}
		ledger.EXPECT().ListExpiredPending(gomock.Any(), now, 25).Return(expired, nil)
		ledger.EXPECT().Transition(gomock.Any(), "att-1", entities.AttemptStatePending, entities.AttemptStateTimedOut, nil, entities.FailureReason(""), "").
			Return(entities.PaymentAttempt{ID: "att-1", State: entities.AttemptStateTimedOut, Deadline: expired[0].Deadline}, nil)
		ledger.EXPECT().Transition(gomock.Any(), "att-2", entities.AttemptStatePending, entities.AttemptStateTimedOut, nil, entities.FailureReason(""), "").
			Return(entities.PaymentAttempt{ID: "att-2", State: entities.AttemptStateTimedOut, Deadline: expired[1].Deadline}, nil)

		swept, err := s.SweepOnce(context.Background(), now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if swept != 2 {
			t.Fatalf("expected 2 swept, got %d", swept)
		}
	})

	t.Run("lost race is skipped silently", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		ledger := mock_interfaces.NewMockIPaymentLedgerRepository(ctrl)
		s := NewExpirySweeper(ledger, time.Second, 25)

		expired := []entities.PaymentAttempt{
			{ID: "att-1", State: entities.AttemptStatePending, Deadline: now.Add(-time.Minute)},
			{ID: "att-2", State: entities.AttemptStatePending, Deadline: now.Add(-time.Minute)},
		}
		ledger.EXPECT().ListExpiredPending(gomock.Any(), now, 25).Return(expired, nil)
		// att-1: a callback resolved it between the scan and the CAS
		ledger.EXPECT().Transition(gomock.Any(), "att-1", entities.AttemptStatePending, entities.AttemptStateTimedOut, nil, entities.FailureReason(""), "").
			Return(entities.PaymentAttempt{}, nil)
		ledger.EXPECT().Transition(gomock.Any(), "att-2", entities.AttemptStatePending, entities.AttemptStateTimedOut, nil, entities.FailureReason(""), "").
			Return(entities.PaymentAttempt{ID: "att-2", State: entities.AttemptStateTimedOut, Deadline: expired[1].Deadline}, nil)

		swept, err := s.SweepOnce(context.Background(), now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if swept != 1 {
			t.Fatalf("expected 1 swept, got %d", swept)
		}
	})

	t.Run("transition error does not stop the batch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		ledger := mock_interfaces.NewMockIPaymentLedgerRepository(ctrl)
		s := NewExpirySweeper(ledger, time.Second, 25)

		expired := []entities.PaymentAttempt{
			{ID: "att-1", State: entities.AttemptStatePending, Deadline: now.Add(-time.Minute)},
			{ID: "att-2", State: entities.AttemptStatePending, Deadline: now.Add(-time.Minute)},
		}
		ledger.EXPECT().ListExpiredPending(gomock.Any(), now, 25).Return(expired, nil)
		ledger.EXPECT().Transition(gomock.Any(), "att-1", entities.AttemptStatePending, entities.AttemptStateTimedOut, nil, entities.FailureReason(""), "").
			Return(entities.PaymentAttempt{}, errors.New("dynamodb throttled"))
		ledger.EXPECT().Transition(gomock.Any(), "att-2", entities.AttemptStatePending, entities.AttemptStateTimedOut, nil, entities.FailureReason(""), "").
			Return(entities.PaymentAttempt{ID: "att-2", State: entities.AttemptStateTimedOut, Deadline: expired[1].Deadline}, nil)

		swept, err := s.SweepOnce(context.Background(), now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if swept != 1 {
			t.Fatalf("expected 1 swept, got %d", swept)
		}
	})

	t.Run("list error propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		ledger := mock_interfaces.NewMockIPaymentLedgerRepository(ctrl)
		s := NewExpirySweeper(ledger, time.Second, 25)

		ledger.EXPECT().ListExpiredPending(gomock.Any(), now, 25).Return(nil, errors.New("dynamodb unavailable"))

		if _, err := s.SweepOnce(context.Background(), now); err == nil {
			t.Fatalf("expected the list error to propagate")
		}
	})

	t.Run("nothing expired", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		ledger := mock_interfaces.NewMockIPaymentLedgerRepository(ctrl)
		s := NewExpirySweeper(ledger, time.Second, 25)

		ledger.EXPECT().ListExpiredPending(gomock.Any(), now, 25).Return(nil, nil)

		swept, err := s.SweepOnce(context.Background(), now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if swept != 0 {
			t.Fatalf("expected 0 swept, got %d", swept)
		}
	})
}

// End to end against the in-memory semantics: a sweep over a ledger mock is
// covered above; the timer loop itself just needs to stop on cancellation.
func TestExpirySweeper_Run_StopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ledger := mock_interfaces.NewMockIPaymentLedgerRepository(ctrl)
	ledger.EXPECT().ListExpiredPending(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	s := NewExpirySweeper(ledger, 5*time.Millisecond, 25)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("sweeper did not stop after cancellation")
	}
}
