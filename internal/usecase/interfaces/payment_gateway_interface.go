package interfaces

import (
	"context"

	"payeezy_gateway/internal/domain/entities"
)

// IPaymentGateway abstracts external payment providers (e.g. Payeezy).
//
// Each provider adapter implements the same capability set; the service never
// depends on a concrete provider.
//
//go:generate mockgen -source=payment_gateway_interface.go -destination=mocks/mock_payment_gateway_interface.go -package=mock_interfaces
type IPaymentGateway interface {
	Name() string
	SubmitPurchase(ctx context.Context, order entities.Order, card entities.CreditCard, prospect *entities.Prospect) (entities.TransactionResult, error)
	Refund(ctx context.Context, transactionID string, opts entities.TransactionOptions) (entities.TransactionResult, error)
	Void(ctx context.Context, transactionID string, opts entities.TransactionOptions) (entities.TransactionResult, error)
}
