package response

import (
	"encoding/json"
	"time"

	"payeezy_gateway/internal/domain/entities"
	"payeezy_gateway/internal/infrastructure/logger"
)

type TransactionResponse struct {
	TransactionID  string `json:"transaction_id"`
	TransactionTag string `json:"transaction_tag,omitempty"`
	MerchantRef    string `json:"merchant_ref,omitempty"`
	AuthCode       string `json:"auth_code,omitempty"`
	Status         string `json:"status"`

	ProviderResponse map[string]interface{} `json:"provider_response,omitempty"`
}

type TransactionReferenceResponse struct {
	TransactionID  string    `json:"transaction_id"`
	TransactionTag string    `json:"transaction_tag"`
	MerchantRef    string    `json:"merchant_ref,omitempty"`
	Type           string    `json:"type"`
	Amount         float64   `json:"amount,omitempty"`
	Currency       string    `json:"currency,omitempty"`
	RefundedAmount float64   `json:"refunded_amount,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// FromTransactionResult masks card data and credentials echoed by the provider.
func FromTransactionResult(r entities.TransactionResult) TransactionResponse {
	var parsed map[string]interface{}
	if len(r.Raw) > 0 {
		_ = json.Unmarshal(r.Raw, &parsed)
	}
	return TransactionResponse{
		TransactionID:    r.TransactionID,
		TransactionTag:   r.TransactionTag,
		MerchantRef:      r.MerchantRef,
		AuthCode:         r.AuthCode,
		Status:           r.Status,
		ProviderResponse: logger.MaskJSON(parsed),
	}
}

func FromTransactionReference(ref entities.TransactionReference) TransactionReferenceResponse {
	return TransactionReferenceResponse{
		TransactionID:  ref.TransactionID,
		TransactionTag: ref.TransactionTag,
		MerchantRef:    ref.MerchantRef,
		Type:           string(ref.Type),
		Amount:         ref.Amount,
		Currency:       ref.Currency,
		RefundedAmount: ref.RefundedAmount,
		Status:         ref.Status,
		CreatedAt:      ref.CreatedAt,
	}
}
