package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"payeezy_gateway/internal/domain/entities"
	"payeezy_gateway/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var (
	ErrInvalidTransactionID         = errors.New("invalid transaction_id")
	ErrTransactionTagRequired       = errors.New("transaction_tag required")
	ErrTransactionReferenceNotFound = errors.New("transaction reference not found")
	ErrPaymentGatewayNotConfigured  = errors.New("payment gateway not configured")
	ErrReferenceStoreNotConfigured  = errors.New("transaction reference store not configured")
	ErrTransactionNotRefundable     = errors.New("transaction already voided or fully refunded")
)

const (
	defaultCurrency = "USD"
	approvedStatus  = "approved"
)

// IPaymentUseCase is the caller of the payment gateway.
//
// Besides forwarding calls it keeps the provider transaction tag of every
// successful transaction, so refunds and voids can be requested with the
// transaction id alone.

type IPaymentUseCase interface {
	Purchase(ctx context.Context, order entities.Order, card entities.CreditCard, prospect *entities.Prospect) (entities.TransactionResult, error)
	Refund(ctx context.Context, transactionID string, opts entities.TransactionOptions) (entities.TransactionResult, error)
	Void(ctx context.Context, transactionID string, opts entities.TransactionOptions) (entities.TransactionResult, error)
	GetReference(ctx context.Context, transactionID string) (entities.TransactionReference, error)
}

type PaymentUseCase struct {
	gateway interfaces.IPaymentGateway
	refs    interfaces.ITransactionReferenceRepository
	log     *zap.Logger
	now     func() time.Time
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

// NewPaymentUseCase wires the use case. refs may be nil, in which case callers
// must always send the transaction tag themselves.
func NewPaymentUseCase(gateway interfaces.IPaymentGateway, refs interfaces.ITransactionReferenceRepository, log *zap.Logger) *PaymentUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &PaymentUseCase{gateway: gateway, refs: refs, log: log, now: time.Now}
}

func (u *PaymentUseCase) Purchase(ctx context.Context, order entities.Order, card entities.CreditCard, prospect *entities.Prospect) (entities.TransactionResult, error) {
	if u.gateway == nil {
		u.log.Error("gateway not configured")
		return entities.TransactionResult{}, ErrPaymentGatewayNotConfigured
	}
	u.log.Info("purchase start", zap.String("order_id", order.OrderID), zap.String("provider", u.gateway.Name()))

	result, err := u.gateway.SubmitPurchase(ctx, order, card, prospect)
	if err != nil {
		u.log.Warn("purchase failed", zap.String("order_id", order.OrderID), zap.Error(err))
		return entities.TransactionResult{}, err
	}

	u.remember(ctx, entities.TransactionReference{
		TransactionID:  result.TransactionID,
		TransactionTag: result.TransactionTag,
		MerchantRef:    result.MerchantRef,
		Type:           entities.TransactionTypePurchase,
		Amount:         order.Amount,
		Currency:       currencyOrDefault(order.Currency),
		Status:         result.Status,
	})
	u.log.Info("purchase success",
		zap.String("transaction_id", result.TransactionID),
		zap.String("status", result.Status),
	)
	return result, nil
}

func (u *PaymentUseCase) Refund(ctx context.Context, transactionID string, opts entities.TransactionOptions) (entities.TransactionResult, error) {
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return entities.TransactionResult{}, ErrInvalidTransactionID
	}
	if u.gateway == nil {
		u.log.Error("gateway not configured", zap.String("transaction_id", transactionID))
		return entities.TransactionResult{}, ErrPaymentGatewayNotConfigured
	}

	opts, original, err := u.resolveOptions(ctx, transactionID, opts, true)
	if err != nil {
		return entities.TransactionResult{}, err
	}
	u.log.Info("refund start", zap.String("transaction_id", transactionID), zap.Float64("amount", opts.Amount))

	result, err := u.gateway.Refund(ctx, transactionID, opts)
	if err != nil {
		u.log.Warn("refund failed", zap.String("transaction_id", transactionID), zap.Error(err))
		return entities.TransactionResult{}, err
	}

	u.remember(ctx, entities.TransactionReference{
		TransactionID:  result.TransactionID,
		TransactionTag: result.TransactionTag,
		MerchantRef:    result.MerchantRef,
		Type:           entities.TransactionTypeRefund,
		Amount:         opts.Amount,
		Currency:       currencyOrDefault(opts.Currency),
		Status:         result.Status,
	})
	u.markOriginal(ctx, transactionID, original, result, func(ref *entities.TransactionReference) {
		ref.RefundedAmount += opts.Amount
		if ref.RefundedAmount >= ref.Amount {
			ref.Status = entities.ReferenceStatusRefunded
		} else {
			ref.Status = entities.ReferenceStatusPartiallyRefunded
		}
	})
	u.log.Info("refund success", zap.String("transaction_id", transactionID), zap.String("refund_id", result.TransactionID))
	return result, nil
}

func (u *PaymentUseCase) Void(ctx context.Context, transactionID string, opts entities.TransactionOptions) (entities.TransactionResult, error) {
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return entities.TransactionResult{}, ErrInvalidTransactionID
	}
	if u.gateway == nil {
		u.log.Error("gateway not configured", zap.String("transaction_id", transactionID))
		return entities.TransactionResult{}, ErrPaymentGatewayNotConfigured
	}

	opts, original, err := u.resolveOptions(ctx, transactionID, opts, false)
	if err != nil {
		return entities.TransactionResult{}, err
	}
	u.log.Info("void start", zap.String("transaction_id", transactionID))

	result, err := u.gateway.Void(ctx, transactionID, opts)
	if err != nil {
		u.log.Warn("void failed", zap.String("transaction_id", transactionID), zap.Error(err))
		return entities.TransactionResult{}, err
	}

	u.remember(ctx, entities.TransactionReference{
		TransactionID:  result.TransactionID,
		TransactionTag: result.TransactionTag,
		MerchantRef:    result.MerchantRef,
		Type:           entities.TransactionTypeVoid,
		Status:         result.Status,
	})
	u.markOriginal(ctx, transactionID, original, result, func(ref *entities.TransactionReference) {
		ref.Status = entities.ReferenceStatusVoided
	})
	u.log.Info("void success", zap.String("transaction_id", transactionID), zap.String("void_id", result.TransactionID))
	return result, nil
}

func (u *PaymentUseCase) GetReference(ctx context.Context, transactionID string) (entities.TransactionReference, error) {
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return entities.TransactionReference{}, ErrInvalidTransactionID
	}
	if u.refs == nil {
		return entities.TransactionReference{}, ErrReferenceStoreNotConfigured
	}

	ref, err := u.refs.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return entities.TransactionReference{}, err
	}
	if ref.TransactionID == "" {
		return entities.TransactionReference{}, ErrTransactionReferenceNotFound
	}
	return ref, nil
}

// resolveOptions fills the transaction tag, and for refunds the amount and
// currency, from the cached reference when the caller left them out. The
// loaded reference is returned (zero value when no lookup happened).
func (u *PaymentUseCase) resolveOptions(ctx context.Context, transactionID string, opts entities.TransactionOptions, isRefund bool) (entities.TransactionOptions, entities.TransactionReference, error) {
	opts.TransactionTag = strings.TrimSpace(opts.TransactionTag)
	opts.Currency = strings.TrimSpace(opts.Currency)
	needTag := opts.TransactionTag == ""
	needAmount := isRefund && opts.Amount <= 0
	needCurrency := isRefund && opts.Currency == ""
	if !needTag && !needAmount && !needCurrency {
		return opts, entities.TransactionReference{}, nil
	}

	if u.refs == nil {
		if needTag {
			u.log.Warn("transaction tag missing and no reference store", zap.String("transaction_id", transactionID))
			return opts, entities.TransactionReference{}, ErrTransactionTagRequired
		}
		return opts, entities.TransactionReference{}, nil
	}

	ref, err := u.refs.GetByTransactionID(ctx, transactionID)
	if err != nil {
		u.log.Error("reference lookup failed", zap.String("transaction_id", transactionID), zap.Error(err))
		return opts, entities.TransactionReference{}, err
	}
	if ref.TransactionID == "" {
		if needTag {
			u.log.Warn("reference not found", zap.String("transaction_id", transactionID))
			return opts, entities.TransactionReference{}, ErrTransactionReferenceNotFound
		}
		return opts, entities.TransactionReference{}, nil
	}

	if ref.Status == entities.ReferenceStatusVoided || (isRefund && ref.Status == entities.ReferenceStatusRefunded) {
		u.log.Warn("transaction not refundable", zap.String("transaction_id", transactionID), zap.String("status", ref.Status))
		return opts, ref, ErrTransactionNotRefundable
	}

	if needTag {
		opts.TransactionTag = ref.TransactionTag
	}
	if needAmount {
		opts.Amount = ref.RemainingAmount()
	}
	if needCurrency {
		opts.Currency = ref.Currency
	}
	return opts, ref, nil
}

// markOriginal records an approved refund or void on the cached reference of
// the original transaction.
func (u *PaymentUseCase) markOriginal(ctx context.Context, transactionID string, original entities.TransactionReference, result entities.TransactionResult, apply func(*entities.TransactionReference)) {
	if u.refs == nil || !strings.EqualFold(result.Status, approvedStatus) {
		return
	}
	if original.TransactionID == "" {
		ref, err := u.refs.GetByTransactionID(ctx, transactionID)
		if err != nil {
			u.log.Error("reference lookup failed", zap.String("transaction_id", transactionID), zap.Error(err))
			return
		}
		if ref.TransactionID == "" {
			return
		}
		original = ref
	}

	apply(&original)
	if err := u.refs.Save(ctx, original); err != nil {
		u.log.Error("reference update failed",
			zap.String("transaction_id", original.TransactionID),
			zap.String("status", original.Status),
			zap.Error(err),
		)
	}
}

func (u *PaymentUseCase) remember(ctx context.Context, ref entities.TransactionReference) {
	if u.refs == nil || ref.TransactionID == "" {
		return
	}
	ref.CreatedAt = u.now().UTC()
	// Save errors are not returned: the provider transaction already exists.
	if err := u.refs.Save(ctx, ref); err != nil {
		u.log.Error("reference save failed",
			zap.String("transaction_id", ref.TransactionID),
			zap.String("type", string(ref.Type)),
			zap.Error(err),
		)
	}
}

func currencyOrDefault(currency string) string {
	if c := strings.TrimSpace(currency); c != "" {
		return strings.ToUpper(c)
	}
	return defaultCurrency
}
