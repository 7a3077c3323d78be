package request

import (
	"strings"

	"payeezy_gateway/internal/domain/entities"
)

// PurchaseRequest is the body of POST /transactions.
//
// Only shape checks happen here; card-level validation is done by the gateway
// before anything is sent to the provider.

type PurchaseRequest struct {
	Order          OrderRequest      `json:"order"`
	CreditCard     CreditCardRequest `json:"credit_card"`
	BillingAddress *ProspectRequest  `json:"billing_address,omitempty"`
}

type OrderRequest struct {
	OrderID  string  `json:"order_id"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Currency string  `json:"currency" binding:"omitempty,len=3"`
}

type CreditCardRequest struct {
	CardNumber      string `json:"card_number" binding:"required"`
	CardHolder      string `json:"card_holder" binding:"required"`
	ExpirationMonth int    `json:"expiration_month" binding:"required,min=1,max=12"`
	ExpirationYear  int    `json:"expiration_year"`
	CVV             string `json:"cvv" binding:"required"`
}

type ProspectRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address1  string `json:"address1"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
}

// RefundRequest is the body of POST /transactions/:transaction_id/refund.
// Amount, currency and tag fall back to the cached reference when omitted.
type RefundRequest struct {
	OrderID        string  `json:"order_id"`
	Amount         float64 `json:"amount" binding:"omitempty,gt=0"`
	Currency       string  `json:"currency" binding:"omitempty,len=3"`
	TransactionTag string  `json:"transaction_tag"`
}

// VoidRequest is the body of POST /transactions/:transaction_id/void.
type VoidRequest struct {
	OrderID        string `json:"order_id"`
	TransactionTag string `json:"transaction_tag"`
}

func (r PurchaseRequest) ToEntities() (entities.Order, entities.CreditCard, *entities.Prospect) {
	order := entities.Order{
		OrderID:  strings.TrimSpace(r.Order.OrderID),
		Amount:   r.Order.Amount,
		Currency: strings.ToUpper(strings.TrimSpace(r.Order.Currency)),
	}
	card := entities.CreditCard{
		CardNumber:      stripCardNumber(r.CreditCard.CardNumber),
		CardHolder:      strings.TrimSpace(r.CreditCard.CardHolder),
		ExpirationMonth: r.CreditCard.ExpirationMonth,
		ExpirationYear:  r.CreditCard.ExpirationYear,
		CVV:             strings.TrimSpace(r.CreditCard.CVV),
	}

	var prospect *entities.Prospect
	if r.BillingAddress != nil {
		prospect = &entities.Prospect{
			FirstName: strings.TrimSpace(r.BillingAddress.FirstName),
			LastName:  strings.TrimSpace(r.BillingAddress.LastName),
			Address1:  strings.TrimSpace(r.BillingAddress.Address1),
			City:      strings.TrimSpace(r.BillingAddress.City),
			State:     strings.TrimSpace(r.BillingAddress.State),
			Zip:       strings.TrimSpace(r.BillingAddress.Zip),
			Country:   strings.ToUpper(strings.TrimSpace(r.BillingAddress.Country)),
		}
	}
	return order, card, prospect
}

func (r RefundRequest) ToOptions() entities.TransactionOptions {
	return entities.TransactionOptions{
		OrderID:        strings.TrimSpace(r.OrderID),
		Amount:         r.Amount,
		Currency:       strings.ToUpper(strings.TrimSpace(r.Currency)),
		TransactionTag: strings.TrimSpace(r.TransactionTag),
	}
}

func (r VoidRequest) ToOptions() entities.TransactionOptions {
	return entities.TransactionOptions{
		OrderID:        strings.TrimSpace(r.OrderID),
		TransactionTag: strings.TrimSpace(r.TransactionTag),
	}
}

// stripCardNumber removes the spaces and dashes people type in card numbers.
func stripCardNumber(number string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(number))
}
