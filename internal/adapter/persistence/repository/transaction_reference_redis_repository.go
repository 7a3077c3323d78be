package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"payeezy_gateway/internal/domain/entities"
	"payeezy_gateway/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

const transactionReferenceKeyPrefix = "payeezy:txn:"

// TransactionReferenceRedisRepository stores transaction references as JSON
// strings. A zero ttl keeps keys forever.
type TransactionReferenceRedisRepository struct {
	client redis.Cmdable
	ttl    time.Duration
}

var _ interfaces.ITransactionReferenceRepository = (*TransactionReferenceRedisRepository)(nil)

func NewTransactionReferenceRedisRepository(client redis.Cmdable, ttl time.Duration) *TransactionReferenceRedisRepository {
	return &TransactionReferenceRedisRepository{client: client, ttl: ttl}
}

func (r *TransactionReferenceRedisRepository) Save(ctx context.Context, ref entities.TransactionReference) error {
	b, err := json.Marshal(ref)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, transactionReferenceKey(ref.TransactionID), b, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis SET error: %w", err)
	}
	return nil
}

func (r *TransactionReferenceRedisRepository) GetByTransactionID(ctx context.Context, transactionID string) (entities.TransactionReference, error) {
	raw, err := r.client.Get(ctx, transactionReferenceKey(transactionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return entities.TransactionReference{}, nil
	}
	if err != nil {
		return entities.TransactionReference{}, fmt.Errorf("redis GET error: %w", err)
	}

	var ref entities.TransactionReference
	if err := json.Unmarshal(raw, &ref); err != nil {
		return entities.TransactionReference{}, err
	}
	return ref, nil
}

func transactionReferenceKey(transactionID string) string {
	return transactionReferenceKeyPrefix + transactionID
}
