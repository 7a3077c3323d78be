package payments

import (
	"errors"
	"fmt"
	"strings"

	"payeezy_gateway/internal/domain/entities"

	"github.com/go-playground/validator/v10"
)

const (
	payeezyMethodCreditCard = "credit_card"
	defaultCurrencyCode     = "USD"
	defaultCountryCode      = "US"
)

// payeezyTransactionPayload is the body of POST /transactions. Field order is
// the wire order; the encoded bytes are what gets signed.
type payeezyTransactionPayload struct {
	MerchantRef     string                   `json:"merchant_ref"`
	TransactionType entities.TransactionType `json:"transaction_type"`
	Method          string                   `json:"method"`
	Amount          *float64                 `json:"amount,omitempty"`
	CurrencyCode    string                   `json:"currency_code,omitempty"`
	CreditCard      *payeezyCreditCard       `json:"credit_card,omitempty"`
	BillingAddress  *payeezyBillingAddress   `json:"billing_address,omitempty"`
	TransactionTag  string                   `json:"transaction_tag,omitempty"`
	TransactionID   string                   `json:"transaction_id,omitempty"`
}

type payeezyCreditCard struct {
	Type           string `json:"type"`
	CardholderName string `json:"cardholder_name"`
	CardNumber     string `json:"card_number"`
	ExpDate        string `json:"exp_date"`
	CVV            string `json:"cvv"`
}

type payeezyBillingAddress struct {
	Name          string `json:"name"`
	Street        string `json:"street"`
	City          string `json:"city"`
	StateProvince string `json:"state_province"`
	ZipPostalCode string `json:"zip_postal_code"`
	Country       string `json:"country"`
}

var validate = newPayeezyValidator()

func newPayeezyValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("expyear", func(fl validator.FieldLevel) bool {
		y := fl.Field().Int()
		return (y >= 0 && y <= 99) || (y >= 2000 && y <= 9999)
	})
	return v
}

func buildPurchasePayload(order entities.Order, card entities.CreditCard, prospect *entities.Prospect, merchantRef string) payeezyTransactionPayload {
	amount := order.Amount
	p := payeezyTransactionPayload{
		MerchantRef:     merchantRefOrDefault(order.OrderID, merchantRef),
		TransactionType: entities.TransactionTypePurchase,
		Method:          payeezyMethodCreditCard,
		Amount:          &amount,
		CurrencyCode:    currencyOrDefault(order.Currency),
		CreditCard: &payeezyCreditCard{
			Type:           DetectCardBrand(card.CardNumber),
			CardholderName: card.CardHolder,
			CardNumber:     card.CardNumber,
			ExpDate:        formatExpDate(card.ExpirationMonth, card.ExpirationYear),
			CVV:            card.CVV,
		},
	}
	if prospect != nil {
		country := strings.TrimSpace(prospect.Country)
		if country == "" {
			country = defaultCountryCode
		}
		p.BillingAddress = &payeezyBillingAddress{
			Name:          strings.TrimSpace(prospect.FirstName + " " + prospect.LastName),
			Street:        prospect.Address1,
			City:          prospect.City,
			StateProvince: prospect.State,
			ZipPostalCode: prospect.Zip,
			Country:       country,
		}
	}
	return p
}

func buildRefundPayload(transactionID string, opts entities.TransactionOptions, merchantRef string) payeezyTransactionPayload {
	amount := opts.Amount
	return payeezyTransactionPayload{
		MerchantRef:     merchantRefOrDefault(opts.OrderID, merchantRef),
		TransactionType: entities.TransactionTypeRefund,
		Method:          payeezyMethodCreditCard,
		Amount:          &amount,
		CurrencyCode:    currencyOrDefault(opts.Currency),
		TransactionTag:  opts.TransactionTag,
		TransactionID:   transactionID,
	}
}

// Voids cancel the whole original transaction, so no amount is sent.
func buildVoidPayload(transactionID string, opts entities.TransactionOptions, merchantRef string) payeezyTransactionPayload {
	return payeezyTransactionPayload{
		MerchantRef:     merchantRefOrDefault(opts.OrderID, merchantRef),
		TransactionType: entities.TransactionTypeVoid,
		Method:          payeezyMethodCreditCard,
		TransactionTag:  opts.TransactionTag,
		TransactionID:   transactionID,
	}
}

// formatExpDate renders MMYY.
func formatExpDate(month, year int) string {
	return fmt.Sprintf("%02d%02d", month, year%100)
}

func merchantRefOrDefault(orderID, generated string) string {
	if id := strings.TrimSpace(orderID); id != "" {
		return id
	}
	return generated
}

func currencyOrDefault(currency string) string {
	if c := strings.TrimSpace(currency); c != "" {
		return strings.ToUpper(c)
	}
	return defaultCurrencyCode
}

func validatePurchase(order entities.Order, card entities.CreditCard) error {
	if err := validate.Struct(order); err != nil {
		return toValidationError("order", err)
	}
	if err := validate.Struct(card); err != nil {
		return toValidationError("credit_card", err)
	}
	return nil
}

func validateReference(transactionID string, opts entities.TransactionOptions) error {
	if strings.TrimSpace(transactionID) == "" {
		return &ValidationError{Field: "transaction_id", Reason: "is required"}
	}
	if strings.TrimSpace(opts.TransactionTag) == "" {
		return &ValidationError{Field: "transaction_tag", Reason: "is required"}
	}
	if err := validate.Struct(opts); err != nil {
		return toValidationError("options", err)
	}
	return nil
}

func validateRefund(transactionID string, opts entities.TransactionOptions) error {
	if err := validateReference(transactionID, opts); err != nil {
		return err
	}
	if opts.Amount <= 0 {
		return &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	return nil
}

func toValidationError(scope string, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ValidationError{
			Field:  scope + "." + toSnakeCase(fe.Field()),
			Reason: "failed " + fe.Tag() + " check",
		}
	}
	return &ValidationError{Field: scope, Reason: err.Error()}
}

func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && !(s[i-1] >= 'A' && s[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
