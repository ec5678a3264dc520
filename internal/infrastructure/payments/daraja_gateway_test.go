package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RichardAwuor/Collarless/internal/domain/entities"
	"github.com/RichardAwuor/Collarless/internal/usecase/interfaces"
)

func testRequest() entities.STKPushRequest {
	return entities.STKPushRequest{
		BusinessShortCode: "174379",
		Password:          DerivePassword("174379", "test-passkey", "20260315090405"),
		Timestamp:         "20260315090405",
		TransactionType:   "CustomerPayBillOnline",
		Amount:            "1500",
		PartyA:            "254712345678",
		PartyB:            "174379",
		PhoneNumber:       "254712345678",
		CallBackURL:       "https://example.com/v1/mpesa/callback?token=s3cret",
		AccountReference:  "ORDER-42",
		TransactionDesc:   "Subscription",
	}
}

func gatewayWithServer(t *testing.T, handler http.HandlerFunc) *DarajaGateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := testConfig()
	cfg.BaseURL = srv.URL
	cfg.HTTPTimeout = 2 * time.Second
	return NewDarajaGateway(cfg)
}

func TestDarajaGateway_Send_Accepted(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "")
	t.Setenv("DARAJA_MOCK", "")

	var gotAuth, gotPath string
	g := gatewayWithServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		var req entities.STKPushRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("body not decodable: %v", err)
		}
		if req.Password == "" || req.Timestamp == "" {
			t.Errorf("request missing credential fields")
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(entities.STKPushAck{
			MerchantRequestID:   "29115-34620561-1",
			CheckoutRequestID:   "ws_CO_191220191020363925",
			ResponseCode:        "0",
			ResponseDescription: "Success. Request accepted for processing",
			CustomerMessage:     "Success. Request accepted for processing",
		})
	})

	ack, err := g.Send(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ack.CheckoutRequestID != "ws_CO_191220191020363925" {
		t.Fatalf("unexpected checkout request id: %s", ack.CheckoutRequestID)
	}
	if ack.MerchantRequestID != "29115-34620561-1" {
		t.Fatalf("unexpected merchant request id: %s", ack.MerchantRequestID)
	}
	if gotPath != "/mpesa/stkpush/v1/processrequest" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	// no consumer credentials configured: password doubles as bearer token
	if gotAuth != "Bearer "+testRequest().Password {
		t.Fatalf("unexpected authorization header: %s", gotAuth)
	}
}

func TestDarajaGateway_Send_StructuredRejection(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "")
	t.Setenv("DARAJA_MOCK", "")

	g := gatewayWithServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"requestId":"1234-5678","errorCode":"400.002.02","errorMessage":"Bad Request - Invalid Timestamp"}`))
	})

	_, err := g.Send(context.Background(), testRequest())
	if !errors.Is(err, interfaces.ErrGatewayRejected) {
		t.Fatalf("expected ErrGatewayRejected, got %v", err)
	}
	if errors.Is(err, interfaces.ErrIndeterminateSend) {
		t.Fatalf("a structured rejection must not be classified as indeterminate")
	}
}

func TestDarajaGateway_Send_UnparseableRejection(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "")
	t.Setenv("DARAJA_MOCK", "")

	g := gatewayWithServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("upstream unavailable"))
	})

	_, err := g.Send(context.Background(), testRequest())
	if !errors.Is(err, interfaces.ErrGatewayRejected) {
		t.Fatalf("expected ErrGatewayRejected, got %v", err)
	}
}

func TestDarajaGateway_Send_TransportFailure(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "")
	t.Setenv("DARAJA_MOCK", "")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	cfg := testConfig()
	cfg.BaseURL = srv.URL
	cfg.HTTPTimeout = 2 * time.Second
	srv.Close() // connection refused from here on

	g := NewDarajaGateway(cfg)
	_, err := g.Send(context.Background(), testRequest())
	if !errors.Is(err, interfaces.ErrIndeterminateSend) {
		t.Fatalf("expected ErrIndeterminateSend, got %v", err)
	}
	if errors.Is(err, interfaces.ErrGatewayRejected) {
		t.Fatalf("a transport failure must not be classified as a rejection")
	}
}

func TestDarajaGateway_Send_OAuthToken(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "")
	t.Setenv("DARAJA_MOCK", "")

	tokenFetches := 0
	var mux http.ServeMux
	mux.HandleFunc("/oauth/v1/generate", func(w http.ResponseWriter, r *http.Request) {
		tokenFetches++
		user, pass, ok := r.BasicAuth()
		if !ok || user != "ck" || pass != "cs" {
			t.Errorf("expected basic auth ck:cs, got %s:%s", user, pass)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-123","expires_in":"3599"}`))
	})
	mux.HandleFunc("/mpesa/stkpush/v1/processrequest", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("expected Bearer tok-123, got %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"MerchantRequestID":"m-1","CheckoutRequestID":"ws_CO_1","ResponseCode":"0","ResponseDescription":"ok","CustomerMessage":"ok"}`))
	})

	srv := httptest.NewServer(&mux)
	t.Cleanup(srv.Close)

	cfg := testConfig()
	cfg.BaseURL = srv.URL
	cfg.ConsumerKey = "ck"
	cfg.ConsumerSecret = "cs"
	cfg.HTTPTimeout = 2 * time.Second
	g := NewDarajaGateway(cfg)

	for i := 0; i < 3; i++ {
		if _, err := g.Send(context.Background(), testRequest()); err != nil {
			t.Fatalf("send %d failed: %v", i, err)
		}
	}
	if tokenFetches != 1 {
		t.Fatalf("expected a single token fetch across sends, got %d", tokenFetches)
	}
}

func TestDarajaGateway_Send_OAuthTransportFailure(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "")
	t.Setenv("DARAJA_MOCK", "")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	cfg := testConfig()
	cfg.BaseURL = srv.URL
	cfg.ConsumerKey = "ck"
	cfg.ConsumerSecret = "cs"
	cfg.HTTPTimeout = 2 * time.Second
	srv.Close() // connection refused from here on

	// The token fetch fails before anything is submitted, so the error must
	// read as a safe-to-retry rejection, not an indeterminate send.
	g := NewDarajaGateway(cfg)
	_, err := g.Send(context.Background(), testRequest())
	if !errors.Is(err, interfaces.ErrGatewayRejected) {
		t.Fatalf("expected ErrGatewayRejected, got %v", err)
	}
	if errors.Is(err, interfaces.ErrIndeterminateSend) {
		t.Fatalf("a pre-submission failure must not be classified as indeterminate")
	}
}

func TestDarajaGateway_MockMode(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "true")

	g := NewDarajaGateway(testConfig())
	ack, err := g.Send(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ack.CheckoutRequestID == "" {
		t.Fatalf("mock ack must carry a checkout request id")
	}
	if ack.ResponseCode != "0" {
		t.Fatalf("mock ack must be accepted, got response code %s", ack.ResponseCode)
	}

	other, err := g.Send(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if other.CheckoutRequestID == ack.CheckoutRequestID {
		t.Fatalf("mock checkout request ids must be unique per send")
	}
}
