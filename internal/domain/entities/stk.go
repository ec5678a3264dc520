package entities

// STKPushRequest is the outbound Daraja STK push payload. Field names match
// the gateway's JSON contract exactly.
//
// Password is base64(BusinessShortCode + Passkey + Timestamp); Timestamp is
// YYYYMMDDHHmmss. The pair must be derived together or the gateway rejects
// the request with an authentication error.

type STKPushRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            string `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

// STKPushAck is the synchronous acknowledgment.
//
// CheckoutRequestID is the correlation key every later callback carries.
// ResponseCode "0" means accepted-for-processing, not paid: the user has
// only been prompted on their phone at this point.

type STKPushAck struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

// CallbackResult is the reconciler-facing view of one stkCallback body.
// ResultCode 0 means the payer approved and funds moved; any other code is
// a decline (cancelled prompt, wrong PIN, insufficient funds, expiry).

type CallbackResult struct {
	MerchantRequestID string
	CheckoutRequestID string
	ResultCode        int
	ResultDesc        string
}

// Succeeded reports whether the callback resolves the attempt to SUCCEEDED.
func (r CallbackResult) Succeeded() bool {
	return r.ResultCode == 0
}
