package payments

import (
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/RichardAwuor/Collarless/internal/domain/entities"
	"github.com/RichardAwuor/Collarless/internal/usecase/interfaces"
)

// DarajaTimestampLayout is the YYYYMMDDHHmmss format the gateway expects,
// both inside the request body and as input to the password derivation.
const DarajaTimestampLayout = "20060102150405"

// Daraja field length limits for STK push.
const (
	maxAccountReferenceLen = 12
	maxTransactionDescLen  = 13
)

var ErrInvalidIntent = errors.New("invalid payment intent")

// Safaricom MSISDN in international format, no plus sign.
var phonePattern = regexp.MustCompile(`^254[0-9]{9}$`)

// DarajaRequestBuilder derives signed STK push payloads from payment
// intents. Build is a pure function of config, intent and the supplied
// instant; it never performs I/O.

type DarajaRequestBuilder struct {
	cfg DarajaConfig
}

var _ interfaces.IPushRequestBuilder = (*DarajaRequestBuilder)(nil)

func NewDarajaRequestBuilder(cfg DarajaConfig) *DarajaRequestBuilder {
	return &DarajaRequestBuilder{cfg: cfg}
}

func (b *DarajaRequestBuilder) Build(intent entities.PaymentIntent, at time.Time) (entities.STKPushRequest, error) {
	if err := validateIntent(intent); err != nil {
		return entities.STKPushRequest{}, err
	}

	timestamp := at.UTC().Format(DarajaTimestampLayout)
	return entities.STKPushRequest{
		BusinessShortCode: b.cfg.BusinessShortCode,
		Password:          DerivePassword(b.cfg.BusinessShortCode, b.cfg.Passkey, timestamp),
		Timestamp:         timestamp,
		TransactionType:   b.cfg.TransactionType,
		Amount:            strconv.FormatInt(intent.Amount, 10),
		PartyA:            intent.PhoneNumber,
		PartyB:            b.cfg.PartyB,
		PhoneNumber:       intent.PhoneNumber,
		CallBackURL:       b.cfg.CallbackURL,
		AccountReference:  intent.AccountReference,
		TransactionDesc:   intent.Description,
	}, nil
}

// DerivePassword computes the STK push request signature. Deterministic for
// a fixed (shortcode, passkey, timestamp) triple, which is what makes
// signed requests replayable in tests.
func DerivePassword(shortCode, passkey, timestamp string) string {
	return base64.StdEncoding.EncodeToString([]byte(shortCode + passkey + timestamp))
}

func validateIntent(intent entities.PaymentIntent) error {
	if intent.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidIntent)
	}
	if !phonePattern.MatchString(intent.PhoneNumber) {
		return fmt.Errorf("%w: phone number must match 254XXXXXXXXX", ErrInvalidIntent)
	}
	ref := strings.TrimSpace(intent.AccountReference)
	if ref == "" || len(ref) > maxAccountReferenceLen {
		return fmt.Errorf("%w: account reference must be 1-%d characters", ErrInvalidIntent, maxAccountReferenceLen)
	}
	desc := strings.TrimSpace(intent.Description)
	if desc == "" || len(desc) > maxTransactionDescLen {
		return fmt.Errorf("%w: description must be 1-%d characters", ErrInvalidIntent, maxTransactionDescLen)
	}
	return nil
}
