package subscriptions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/RichardAwuor/Collarless/internal/domain/entities"
	"github.com/RichardAwuor/Collarless/internal/usecase/interfaces"
)

// SubscriptionActivator is the downstream effect for a succeeded payment:
// it tells the marketplace backend to activate the provider subscription
// the payment bought.
//
// The reconciler retries failed invocations, so activation must be
// idempotent on the receiving side; the attempt id doubles as the
// idempotency key.

type SubscriptionActivator struct {
	activateURL string
	client      *http.Client
}

var _ interfaces.IPaymentEffect = (*SubscriptionActivator)(nil)

func NewSubscriptionActivator(activateURL string) *SubscriptionActivator {
	return &SubscriptionActivator{
		activateURL: activateURL,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

type activationRequest struct {
	AttemptID        string `json:"attempt_id"`
	AccountReference string `json:"account_reference"`
	PhoneNumber      string `json:"phone_number"`
	Amount           int64  `json:"amount"`
	ResultDesc       string `json:"result_desc"`
}

func (a *SubscriptionActivator) OnPaymentSucceeded(ctx context.Context, attemptID string, intent entities.PaymentIntent, result entities.CallbackResult) error {
	if a.activateURL == "" {
		// No activation endpoint configured (e.g. local runs); the
		// payment result itself is still durable in the ledger.
		log.Printf("[mpesa][effect] activation skipped (no endpoint) attempt_id=%s ref=%s", attemptID, intent.AccountReference)
		return nil
	}

	body, err := json.Marshal(activationRequest{
		AttemptID:        attemptID,
		AccountReference: intent.AccountReference,
		PhoneNumber:      intent.PhoneNumber,
		Amount:           intent.Amount,
		ResultDesc:       result.ResultDesc,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.activateURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("subscription activation rejected: status %d", resp.StatusCode)
	}
	log.Printf("[mpesa][effect] subscription activated attempt_id=%s ref=%s", attemptID, intent.AccountReference)
	return nil
}
