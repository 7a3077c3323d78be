package repository

import (
	"context"
	"time"

	"payeezy_gateway/internal/domain/entities"
	"payeezy_gateway/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultTransactionsTableName = "payeezy_transactions"

type transactionReferenceItem struct {
	TransactionID  string  `dynamodbav:"transaction_id"`
	TransactionTag string  `dynamodbav:"transaction_tag"`
	MerchantRef    string  `dynamodbav:"merchant_ref,omitempty"`
	Type           string  `dynamodbav:"type"`
	Amount         float64 `dynamodbav:"amount,omitempty"`
	Currency       string  `dynamodbav:"currency,omitempty"`
	RefundedAmount float64 `dynamodbav:"refunded_amount,omitempty"`
	Status         string  `dynamodbav:"status"`
	CreatedAt      string  `dynamodbav:"created_at"`
}

// DynamoDBItemAPI is the subset of *dynamodb.Client the repository calls.
type DynamoDBItemAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// TransactionReferenceDynamoRepository stores transaction references in DynamoDB.
//
// Table requirements:
//   - PK: transaction_id (string)

type TransactionReferenceDynamoRepository struct {
	ddb       DynamoDBItemAPI
	tableName string
}

var _ interfaces.ITransactionReferenceRepository = (*TransactionReferenceDynamoRepository)(nil)

func NewTransactionReferenceDynamoRepository(ddb DynamoDBItemAPI, tableName string) *TransactionReferenceDynamoRepository {
	if tableName == "" {
		tableName = defaultTransactionsTableName
	}
	return &TransactionReferenceDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *TransactionReferenceDynamoRepository) Save(ctx context.Context, ref entities.TransactionReference) error {
	av, err := attributevalue.MarshalMap(toTransactionReferenceItem(ref))
	if err != nil {
		return err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}

func (r *TransactionReferenceDynamoRepository) GetByTransactionID(ctx context.Context, transactionID string) (entities.TransactionReference, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"transaction_id": &types.AttributeValueMemberS{Value: transactionID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.TransactionReference{}, err
	}
	if len(out.Item) == 0 {
		return entities.TransactionReference{}, nil
	}

	var it transactionReferenceItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.TransactionReference{}, err
	}
	return fromTransactionReferenceItem(it), nil
}

func toTransactionReferenceItem(ref entities.TransactionReference) transactionReferenceItem {
	return transactionReferenceItem{
		TransactionID:  ref.TransactionID,
		TransactionTag: ref.TransactionTag,
		MerchantRef:    ref.MerchantRef,
		Type:           string(ref.Type),
		Amount:         ref.Amount,
		Currency:       ref.Currency,
		RefundedAmount: ref.RefundedAmount,
		Status:         ref.Status,
		CreatedAt:      ref.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromTransactionReferenceItem(it transactionReferenceItem) entities.TransactionReference {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	return entities.TransactionReference{
		TransactionID:  it.TransactionID,
		TransactionTag: it.TransactionTag,
		MerchantRef:    it.MerchantRef,
		Type:           entities.TransactionType(it.Type),
		Amount:         it.Amount,
		Currency:       it.Currency,
		RefundedAmount: it.RefundedAmount,
		Status:         it.Status,
		CreatedAt:      createdAt,
	}
}
