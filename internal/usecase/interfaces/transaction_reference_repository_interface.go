package interfaces

import (
	"context"

	"payeezy_gateway/internal/domain/entities"
)

// ITransactionReferenceRepository caches the provider handles (transaction id
// and tag) a later refund or void needs. Backed by DynamoDB or Redis.
//
// Save overwrites the record with the same transaction id; the use case relies
// on that to move a purchase to voided or (partially) refunded.
//
// GetByTransactionID returns a zero value and nil error when nothing is cached.
//
//go:generate mockgen -source=transaction_reference_repository_interface.go -destination=mocks/mock_transaction_reference_repository_interface.go -package=mock_interfaces
type ITransactionReferenceRepository interface {
	Save(ctx context.Context, ref entities.TransactionReference) error
	GetByTransactionID(ctx context.Context, transactionID string) (entities.TransactionReference, error)
}
