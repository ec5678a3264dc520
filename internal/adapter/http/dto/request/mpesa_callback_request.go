package request

import (
	"fmt"

	"github.com/RichardAwuor/Collarless/internal/domain/entities"
)

// MpesaCallbackEnvelope is the gateway-initiated POST body, exactly as
// Daraja delivers it:
//
//	{"Body":{"stkCallback":{"MerchantRequestID":...,"CheckoutRequestID":...,
//	  "ResultCode":0,"ResultDesc":"...","CallbackMetadata":{"Item":[...]}}}}
//
// CallbackMetadata is only present on success and carries amount, receipt
// number, transaction date and phone number as loosely typed name/value
// pairs.

type MpesaCallbackEnvelope struct {
	Body struct {
		StkCallback StkCallback `json:"stkCallback"`
	} `json:"Body"`
}

type StkCallback struct {
	MerchantRequestID string            `json:"MerchantRequestID"`
	CheckoutRequestID string            `json:"CheckoutRequestID"`
	ResultCode        int               `json:"ResultCode"`
	ResultDesc        string            `json:"ResultDesc"`
	CallbackMetadata  *CallbackMetadata `json:"CallbackMetadata,omitempty"`
}

type CallbackMetadata struct {
	Item []CallbackMetadataItem `json:"Item"`
}

type CallbackMetadataItem struct {
	Name  string      `json:"Name"`
	Value interface{} `json:"Value,omitempty"`
}

func (e MpesaCallbackEnvelope) ToResult() entities.CallbackResult {
	cb := e.Body.StkCallback
	return entities.CallbackResult{
		MerchantRequestID: cb.MerchantRequestID,
		CheckoutRequestID: cb.CheckoutRequestID,
		ResultCode:        cb.ResultCode,
		ResultDesc:        cb.ResultDesc,
	}
}

// ReceiptNumber extracts the MpesaReceiptNumber metadata item, empty when
// absent (declines carry no metadata).
func (e MpesaCallbackEnvelope) ReceiptNumber() string {
	meta := e.Body.StkCallback.CallbackMetadata
	if meta == nil {
		return ""
	}
	for _, item := range meta.Item {
		if item.Name == "MpesaReceiptNumber" && item.Value != nil {
			return fmt.Sprintf("%v", item.Value)
		}
	}
	return ""
}
