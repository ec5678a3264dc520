package usecase

import (
	"context"
	"log"
	"time"

	"github.com/RichardAwuor/Collarless/internal/domain/entities"
	"github.com/RichardAwuor/Collarless/internal/usecase/interfaces"
)

// ExpirySweeper closes PENDING attempts whose callback never arrived, so
// nothing polls a dead attempt forever.
//
// It only ever performs the PENDING -> TIMED_OUT edge, through the same
// CAS the reconciler uses; losing the race to a callback is the expected
// case and is skipped without noise.

type ExpirySweeper struct {
	ledger    interfaces.IPaymentLedgerRepository
	interval  time.Duration
	batchSize int
}

func NewExpirySweeper(ledger interfaces.IPaymentLedgerRepository, interval time.Duration, batchSize int) *ExpirySweeper {
	return &ExpirySweeper{ledger: ledger, interval: interval, batchSize: batchSize}
}

func (s *ExpirySweeper) Run(ctx context.Context) {
	log.Printf("[mpesa][sweeper] started interval=%s batch_size=%d", s.interval, s.batchSize)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[mpesa][sweeper] stopped")
			return
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx, time.Now().UTC()); err != nil {
				log.Printf("[mpesa][sweeper] sweep failed err=%v", err)
			}
		}
	}
}

// SweepOnce times out every expired PENDING attempt it can claim and
// returns how many it closed.
func (s *ExpirySweeper) SweepOnce(ctx context.Context, now time.Time) (int, error) {
	expired, err := s.ledger.ListExpiredPending(ctx, now, s.batchSize)
	if err != nil {
		return 0, err
	}

	swept := 0
	for _, a := range expired {
		closed, err := s.ledger.Transition(ctx, a.ID, entities.AttemptStatePending, entities.AttemptStateTimedOut, nil, "", "")
		if err != nil {
			log.Printf("[mpesa][sweeper] transition failed attempt_id=%s err=%v", a.ID, err)
			continue
		}
		if closed.ID == "" {
			// a callback resolved it between the scan and the CAS
			continue
		}
		swept++
		log.Printf("[mpesa][sweeper] timed out attempt_id=%s deadline=%s", closed.ID, closed.Deadline.Format(time.RFC3339))
	}
	return swept, nil
}
