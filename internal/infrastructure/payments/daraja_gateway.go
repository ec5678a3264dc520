package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/RichardAwuor/Collarless/internal/domain/entities"
	"github.com/RichardAwuor/Collarless/internal/usecase/interfaces"

	"github.com/google/uuid"
)

const (
	stkPushPath = "/mpesa/stkpush/v1/processrequest"
	oauthPath   = "/oauth/v1/generate?grant_type=client_credentials"

	// refresh the cached token this long before it actually expires
	tokenExpirySlack = 30 * time.Second
)

// darajaErrorResponse is the structured rejection body. The gateway returns
// it with non-2xx statuses, so it must be parsed regardless of status code.
type darajaErrorResponse struct {
	RequestID    string `json:"requestId"`
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

type oauthResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

// DarajaGateway sends STK push requests over HTTPS and classifies the
// synchronous response.
//
// Error contract (see interfaces):
//   - structured decline        => wraps interfaces.ErrGatewayRejected
//   - push transport failure    => wraps interfaces.ErrIndeterminateSend
//   - oauth failure (pre-send)  => wraps interfaces.ErrGatewayRejected

type DarajaGateway struct {
	cfg      DarajaConfig
	client   *http.Client
	mockMode bool

	tokenMu    sync.Mutex
	token      string
	tokenUntil time.Time
}

var _ interfaces.ISTKGateway = (*DarajaGateway)(nil)

func NewDarajaGateway(cfg DarajaConfig) *DarajaGateway {
	if isDarajaMockEnabled() {
		log.Printf("[mpesa][gateway] mock mode enabled")
		return &DarajaGateway{cfg: cfg, mockMode: true}
	}
	return &DarajaGateway{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

func (g *DarajaGateway) Send(ctx context.Context, req entities.STKPushRequest) (entities.STKPushAck, error) {
	if g.mockMode {
		ack := entities.STKPushAck{
			MerchantRequestID:   uuid.NewString(),
			CheckoutRequestID:   "ws_CO_" + req.Timestamp + "_" + uuid.NewString()[:8],
			ResponseCode:        "0",
			ResponseDescription: "Success. Request accepted for processing",
			CustomerMessage:     "Success. Request accepted for processing",
		}
		log.Printf("[mpesa][gateway] mock push accepted checkout_request_id=%s", ack.CheckoutRequestID)
		return ack, nil
	}

	token, err := g.accessToken(ctx, req)
	if err != nil {
		return entities.STKPushAck{}, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return entities.STKPushAck{}, err
	}

	log.Printf("[mpesa][gateway] push start shortcode=%s amount=%s", req.BusinessShortCode, req.Amount)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL+stkPushPath, bytes.NewReader(body))
	if err != nil {
		return entities.STKPushAck{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		// No acknowledgment was received; the outcome is unknown.
		log.Printf("[mpesa][gateway] push transport failure err=%v", err)
		return entities.STKPushAck{}, fmt.Errorf("%w: %v", interfaces.ErrIndeterminateSend, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[mpesa][gateway] push response read failure err=%v", err)
		return entities.STKPushAck{}, fmt.Errorf("%w: %v", interfaces.ErrIndeterminateSend, err)
	}

	var ack entities.STKPushAck
	if err := json.Unmarshal(raw, &ack); err == nil && ack.CheckoutRequestID != "" && ack.ResponseCode == "0" {
		log.Printf("[mpesa][gateway] push accepted checkout_request_id=%s merchant_request_id=%s", ack.CheckoutRequestID, ack.MerchantRequestID)
		return ack, nil
	}

	var gwErr darajaErrorResponse
	if err := json.Unmarshal(raw, &gwErr); err == nil && gwErr.ErrorCode != "" {
		log.Printf("[mpesa][gateway] push rejected status=%d error_code=%s error_message=%s", resp.StatusCode, gwErr.ErrorCode, gwErr.ErrorMessage)
		return entities.STKPushAck{}, fmt.Errorf("%w: %s (%s)", interfaces.ErrGatewayRejected, gwErr.ErrorMessage, gwErr.ErrorCode)
	}

	log.Printf("[mpesa][gateway] push rejected status=%d body_len=%d", resp.StatusCode, len(raw))
	return entities.STKPushAck{}, fmt.Errorf("%w: status %d", interfaces.ErrGatewayRejected, resp.StatusCode)
}

// accessToken returns a cached OAuth bearer token, fetching a fresh one
// when missing or close to expiry. Without consumer credentials it falls
// back to the sandbox shortcut of using the request password directly.
func (g *DarajaGateway) accessToken(ctx context.Context, req entities.STKPushRequest) (string, error) {
	if g.cfg.ConsumerKey == "" || g.cfg.ConsumerSecret == "" {
		return req.Password, nil
	}

	g.tokenMu.Lock()
	defer g.tokenMu.Unlock()

	if g.token != "" && time.Now().Before(g.tokenUntil) {
		return g.token, nil
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.cfg.BaseURL+oauthPath, nil)
	if err != nil {
		return "", err
	}
	httpReq.SetBasicAuth(g.cfg.ConsumerKey, g.cfg.ConsumerSecret)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		// The push itself was never sent, so retrying is safe; this must
		// not read as an indeterminate submission.
		return "", fmt.Errorf("%w: token fetch: %v", interfaces.ErrGatewayRejected, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: token fetch: %v", interfaces.ErrGatewayRejected, err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("[mpesa][gateway] token fetch rejected status=%d", resp.StatusCode)
		return "", fmt.Errorf("%w: oauth status %d", interfaces.ErrGatewayRejected, resp.StatusCode)
	}

	var tok oauthResponse
	if err := json.Unmarshal(raw, &tok); err != nil || tok.AccessToken == "" {
		return "", fmt.Errorf("%w: malformed oauth response", interfaces.ErrGatewayRejected)
	}

	ttl := 3600
	if n, err := strconv.Atoi(tok.ExpiresIn); err == nil && n > 0 {
		ttl = n
	}

	g.token = tok.AccessToken
	g.tokenUntil = time.Now().Add(time.Duration(ttl)*time.Second - tokenExpirySlack)
	log.Printf("[mpesa][gateway] token refreshed ttl=%ds", ttl)
	return g.token, nil
}

func isDarajaMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "DARAJA_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
