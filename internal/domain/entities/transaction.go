package entities

import (
	"encoding/json"
	"time"
)

// TransactionType is the provider operation a payload requests.

type TransactionType string

const (
	TransactionTypePurchase TransactionType = "purchase"
	TransactionTypeRefund   TransactionType = "refund"
	TransactionTypeVoid     TransactionType = "void"
)

// Order carries the amount to charge. OrderID becomes the provider merchant_ref
// when present.
type Order struct {
	OrderID  string  `json:"order_id,omitempty"`
	Amount   float64 `json:"amount" validate:"gt=0"`
	Currency string  `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
}

// CreditCard is the card presented for a purchase. ExpirationYear accepts both
// two- and four-digit years.
type CreditCard struct {
	CardNumber      string `json:"card_number" validate:"required,number,min=12,max=19"`
	CardHolder      string `json:"card_holder" validate:"required"`
	ExpirationMonth int    `json:"expiration_month" validate:"min=1,max=12"`
	ExpirationYear  int    `json:"expiration_year" validate:"expyear"`
	CVV             string `json:"cvv" validate:"required,number,min=3,max=4"`
}

// Prospect is the optional billing contact attached to a purchase.
type Prospect struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address1  string `json:"address1"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Country   string `json:"country,omitempty"`
}

// TransactionOptions parameterize refund and void calls.
//
// TransactionTag is issued by the provider with the original transaction and
// must be kept by the caller; the gateway never stores it.
type TransactionOptions struct {
	OrderID        string  `json:"order_id,omitempty"`
	Amount         float64 `json:"amount,omitempty"`
	Currency       string  `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
	TransactionTag string  `json:"transaction_tag,omitempty"`
}

// TransactionResult is the provider response normalized for callers.
// Raw keeps the untouched response body.
type TransactionResult struct {
	TransactionID  string          `json:"transaction_id"`
	TransactionTag string          `json:"transaction_tag,omitempty"`
	MerchantRef    string          `json:"merchant_ref,omitempty"`
	AuthCode       string          `json:"auth_code,omitempty"`
	Status         string          `json:"status"`
	Raw            json.RawMessage `json:"raw,omitempty"`
}

// Statuses written to a cached purchase once a later refund or void is
// approved.
const (
	ReferenceStatusVoided            = "voided"
	ReferenceStatusRefunded          = "refunded"
	ReferenceStatusPartiallyRefunded = "partially_refunded"
)

// TransactionReference is what the service caches after each call so that a
// later refund or void only needs the transaction id.
//
// Storage model (DynamoDB):
//   - PK: transaction_id
//
// Storage model (Redis):
//   - key: payeezy:txn:<transaction_id>, JSON value

type TransactionReference struct {
	TransactionID  string          `json:"transaction_id"`
	TransactionTag string          `json:"transaction_tag"`
	MerchantRef    string          `json:"merchant_ref,omitempty"`
	Type           TransactionType `json:"type"`
	Amount         float64         `json:"amount,omitempty"`
	Currency       string          `json:"currency,omitempty"`
	RefundedAmount float64         `json:"refunded_amount,omitempty"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}

// RemainingAmount is what is still refundable on a cached purchase.
func (r TransactionReference) RemainingAmount() float64 {
	if r.RefundedAmount >= r.Amount {
		return 0
	}
	return r.Amount - r.RefundedAmount
}
