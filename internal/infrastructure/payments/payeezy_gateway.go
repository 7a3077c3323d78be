package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"payeezy_gateway/internal/domain/entities"
	"payeezy_gateway/internal/infrastructure/logger"

	"go.uber.org/zap"
)

const (
	PayeezyProviderName = "payeezy"

	payeezyTransactionsPath = "/transactions"
	maxResponseBodyBytes    = 1 << 20
)

// PayeezyGateway talks to the Payeezy REST API. All fields are set at
// construction and never mutated, so one instance can serve concurrent callers.
type PayeezyGateway struct {
	cfg            PayeezyConfig
	baseURL        string
	httpClient     *http.Client
	log            *zap.Logger
	now            func() time.Time
	newMerchantRef func() string
}

type payeezyTransactionResponse struct {
	TransactionID     string         `json:"transaction_id"`
	TransactionTag    flexibleString `json:"transaction_tag"`
	AuthorizationNum  string         `json:"authorization_num"`
	TransactionStatus string         `json:"transaction_status"`
	MerchantRef       string         `json:"merchant_ref"`
}

// flexibleString accepts both JSON strings and numbers; the provider has sent
// transaction_tag as either.
type flexibleString string

func (s *flexibleString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexibleString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = flexibleString(n.String())
	return nil
}

func NewPayeezyGateway(cfg PayeezyConfig, opts ...PayeezyOption) (*PayeezyGateway, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	baseURL, err := cfg.resolveBaseURL()
	if err != nil {
		return nil, err
	}

	g := &PayeezyGateway{
		cfg:            cfg,
		baseURL:        baseURL,
		httpClient:     http.DefaultClient,
		log:            zap.NewNop(),
		now:            time.Now,
		newMerchantRef: defaultMerchantRef,
	}
	for _, opt := range opts {
		opt(g)
	}

	if cfg.Mock {
		g.log.Info("mock mode enabled")
	} else {
		g.log.Info("payeezy client initialized",
			zap.String("base_url", g.baseURL),
			zap.String("api_key", logger.MaskAPIKey(cfg.APIKey)),
		)
	}
	return g, nil
}

func (g *PayeezyGateway) Name() string {
	return PayeezyProviderName
}

// SubmitPurchase authorizes and captures order.Amount on card. prospect is
// optional and becomes the billing address.
func (g *PayeezyGateway) SubmitPurchase(ctx context.Context, order entities.Order, card entities.CreditCard, prospect *entities.Prospect) (entities.TransactionResult, error) {
	if err := validatePurchase(order, card); err != nil {
		g.log.Warn("purchase rejected", zap.Error(err))
		return entities.TransactionResult{}, err
	}
	payload := buildPurchasePayload(order, card, prospect, g.newMerchantRef())
	g.log.Info("purchase start",
		zap.String("merchant_ref", payload.MerchantRef),
		zap.String("card", logger.MaskPAN(card.CardNumber)),
		zap.String("card_type", payload.CreditCard.Type),
		zap.Float64("amount", order.Amount),
		zap.String("currency", payload.CurrencyCode),
	)
	return g.send(ctx, payload)
}

// Refund returns opts.Amount of a settled transaction. opts.TransactionTag must
// be the tag the provider returned with the original transaction.
func (g *PayeezyGateway) Refund(ctx context.Context, transactionID string, opts entities.TransactionOptions) (entities.TransactionResult, error) {
	if err := validateRefund(transactionID, opts); err != nil {
		g.log.Warn("refund rejected", zap.String("transaction_id", transactionID), zap.Error(err))
		return entities.TransactionResult{}, err
	}
	payload := buildRefundPayload(transactionID, opts, g.newMerchantRef())
	g.log.Info("refund start",
		zap.String("merchant_ref", payload.MerchantRef),
		zap.String("transaction_id", transactionID),
		zap.Float64("amount", opts.Amount),
		zap.String("currency", payload.CurrencyCode),
	)
	return g.send(ctx, payload)
}

// Void cancels the full original transaction.
func (g *PayeezyGateway) Void(ctx context.Context, transactionID string, opts entities.TransactionOptions) (entities.TransactionResult, error) {
	if err := validateReference(transactionID, opts); err != nil {
		g.log.Warn("void rejected", zap.String("transaction_id", transactionID), zap.Error(err))
		return entities.TransactionResult{}, err
	}
	payload := buildVoidPayload(transactionID, opts, g.newMerchantRef())
	g.log.Info("void start",
		zap.String("merchant_ref", payload.MerchantRef),
		zap.String("transaction_id", transactionID),
	)
	return g.send(ctx, payload)
}

func (g *PayeezyGateway) send(ctx context.Context, payload payeezyTransactionPayload) (entities.TransactionResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return entities.TransactionResult{}, g.fail(payload, &SerializationError{Err: err})
	}

	if g.cfg.Mock {
		return g.mockResponse(payload)
	}

	timestamp := g.now().UnixMilli()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+payeezyTransactionsPath, bytes.NewReader(body))
	if err != nil {
		return entities.TransactionResult{}, g.fail(payload, err)
	}
	// Lower-case header names as documented by the provider.
	req.Header.Set("Content-Type", "application/json")
	req.Header["apikey"] = []string{g.cfg.APIKey}
	req.Header["token"] = []string{g.cfg.MerchantToken}
	req.Header["timestamp"] = []string{strconv.FormatInt(timestamp, 10)}
	req.Header["hmac"] = []string{g.Sign(body, timestamp)}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return entities.TransactionResult{}, g.fail(payload, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if err != nil {
		return entities.TransactionResult{}, g.fail(payload, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return entities.TransactionResult{}, g.fail(payload, &TransportError{StatusCode: resp.StatusCode, Body: raw})
	}

	result, err := normalizeResponse(raw, payload.MerchantRef)
	if err != nil {
		return entities.TransactionResult{}, g.fail(payload, err)
	}
	g.log.Info("transaction success",
		zap.String("transaction_type", string(payload.TransactionType)),
		zap.String("merchant_ref", result.MerchantRef),
		zap.String("transaction_id", result.TransactionID),
		zap.String("status", result.Status),
	)
	return result, nil
}

func (g *PayeezyGateway) fail(payload payeezyTransactionPayload, err error) error {
	fields := []zap.Field{
		zap.String("transaction_type", string(payload.TransactionType)),
		zap.String("merchant_ref", payload.MerchantRef),
		zap.Error(err),
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		fields = append(fields, zap.Int("status", transportErr.StatusCode))
		var body map[string]any
		if json.Unmarshal(transportErr.Body, &body) == nil {
			fields = append(fields, zap.Any("response", logger.MaskJSON(body)))
		}
	}
	g.log.Error("transaction failed", fields...)
	return fmt.Errorf("payeezy: process %s transaction: %w", payload.TransactionType, err)
}

// normalizeResponse maps the provider body onto a TransactionResult.
// fallbackRef is used when the provider does not echo merchant_ref.
func normalizeResponse(raw []byte, fallbackRef string) (entities.TransactionResult, error) {
	var resp payeezyTransactionResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return entities.TransactionResult{}, &SerializationError{Err: err}
	}
	ref := resp.MerchantRef
	if ref == "" {
		ref = fallbackRef
	}
	return entities.TransactionResult{
		TransactionID:  resp.TransactionID,
		TransactionTag: string(resp.TransactionTag),
		MerchantRef:    ref,
		AuthCode:       resp.AuthorizationNum,
		Status:         resp.TransactionStatus,
		Raw:            json.RawMessage(raw),
	}, nil
}

func (g *PayeezyGateway) mockResponse(payload payeezyTransactionPayload) (entities.TransactionResult, error) {
	g.log.Info("mock transaction start",
		zap.String("transaction_type", string(payload.TransactionType)),
		zap.String("merchant_ref", payload.MerchantRef),
	)

	now := g.now().UTC()
	id := strconv.FormatInt(now.UnixNano(), 10)
	resp := map[string]any{
		"correlation_id":     id,
		"transaction_status": "approved",
		"validation_status":  "success",
		"transaction_type":   payload.TransactionType,
		"transaction_id":     id,
		"transaction_tag":    strconv.FormatInt(now.UnixMilli(), 10),
		"method":             payload.Method,
		"bank_resp_code":     "100",
		"bank_message":       "Approved",
		"merchant_ref":       payload.MerchantRef,
	}
	if payload.TransactionType == entities.TransactionTypePurchase {
		resp["authorization_num"] = fmt.Sprintf("MOCK%06d", now.Nanosecond()%1000000)
	}
	if payload.Amount != nil {
		resp["amount"] = *payload.Amount
		resp["currency"] = payload.CurrencyCode
	}

	b, err := json.Marshal(resp)
	if err != nil {
		return entities.TransactionResult{}, g.fail(payload, &SerializationError{Err: err})
	}
	result, err := normalizeResponse(b, payload.MerchantRef)
	if err != nil {
		return entities.TransactionResult{}, g.fail(payload, err)
	}
	g.log.Info("mock transaction success", zap.String("transaction_id", result.TransactionID))
	return result, nil
}
