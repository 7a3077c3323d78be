package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"payeezy_gateway/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testConfig(baseURL string) PayeezyConfig {
	return PayeezyConfig{
		APIKey:        "api-key",
		APISecret:     "api-secret",
		MerchantToken: "fdoa-token",
		BaseURL:       baseURL,
	}
}

func testCard() entities.CreditCard {
	return entities.CreditCard{
		CardNumber:      "4111111111111111",
		CardHolder:      "J Doe",
		ExpirationMonth: 9,
		ExpirationYear:  2026,
		CVV:             "123",
	}
}

func newTestGateway(t *testing.T, baseURL string) *PayeezyGateway {
	t.Helper()
	g, err := NewPayeezyGateway(testConfig(baseURL),
		WithClock(func() time.Time { return fixedNow }),
		WithMerchantRefGenerator(func() string { return "generated-ref" }),
	)
	require.NoError(t, err)
	return g
}

type capturedRequest struct {
	method  string
	path    string
	headers http.Header
	body    []byte
}

func newProviderServer(t *testing.T, status int, respBody string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.headers = r.Header.Clone()
		captured.body = b
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(respBody))
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

func TestNewPayeezyGateway_Configuration(t *testing.T) {
	cases := []struct {
		name  string
		cfg   PayeezyConfig
		field string
	}{
		{"missing api key", PayeezyConfig{APISecret: "s", MerchantToken: "t"}, "api_key"},
		{"missing api secret", PayeezyConfig{APIKey: "k", MerchantToken: "t"}, "api_secret"},
		{"missing merchant token", PayeezyConfig{APIKey: "k", APISecret: "s"}, "merchant_token"},
		{"unknown environment", PayeezyConfig{APIKey: "k", APISecret: "s", MerchantToken: "t", Environment: "staging"}, "environment"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := NewPayeezyGateway(tc.cfg)
			require.Error(t, err)
			assert.Nil(t, g)

			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tc.field, cfgErr.Field)
		})
	}
}

func TestNewPayeezyGateway_BaseURL(t *testing.T) {
	creds := PayeezyConfig{APIKey: "k", APISecret: "s", MerchantToken: "t"}

	g, err := NewPayeezyGateway(creds)
	require.NoError(t, err)
	assert.Equal(t, "https://api-cert.payeezy.com/v1", g.baseURL)

	creds.Environment = "Production"
	g, err = NewPayeezyGateway(creds)
	require.NoError(t, err)
	assert.Equal(t, "https://api.payeezy.com/v1", g.baseURL)

	creds.BaseURL = "http://localhost:9999/v1/"
	g, err = NewPayeezyGateway(creds)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999/v1", g.baseURL)
	assert.Equal(t, PayeezyProviderName, g.Name())
}

func TestDetectCardBrand(t *testing.T) {
	cases := map[string]string{
		"4111111111111111": CardBrandVisa,
		"4012888888881881": CardBrandVisa,
		"5105105105105100": CardBrandMastercard,
		"5555555555554444": CardBrandMastercard,
		"378282246310005":  CardBrandAmex,
		"341111111111111":  CardBrandAmex,
		"6011111111111117": CardBrandDiscover,
		"6500000000000002": CardBrandDiscover,
		"5000000000000000": CardBrandUnknown,
		"5600000000000000": CardBrandUnknown,
		"3530111333300000": CardBrandUnknown,
		"6012000000000000": CardBrandUnknown,
		"":                 CardBrandUnknown,
	}
	for number, want := range cases {
		assert.Equal(t, want, DetectCardBrand(number), "number %q", number)
	}
}

func TestSign(t *testing.T) {
	g := newTestGateway(t, "http://unused")
	body := []byte(`{"merchant_ref":"r1","transaction_type":"purchase"}`)
	ts := fixedNow.UnixMilli()

	mac := hmac.New(sha256.New, []byte("api-secret"))
	mac.Write([]byte("api-key" + strconv.FormatInt(ts, 10) + "fdoa-token" + string(body)))
	want := hex.EncodeToString(mac.Sum(nil))

	assert.Equal(t, want, g.Sign(body, ts))
	assert.Equal(t, g.Sign(body, ts), g.Sign(body, ts))

	base := signPayeezyMessage("api-secret", "api-key", "fdoa-token", body, ts)
	variants := []string{
		signPayeezyMessage("other-secret", "api-key", "fdoa-token", body, ts),
		signPayeezyMessage("api-secret", "other-key", "fdoa-token", body, ts),
		signPayeezyMessage("api-secret", "api-key", "other-token", body, ts),
		signPayeezyMessage("api-secret", "api-key", "fdoa-token", []byte(`{"transaction_type":"purchase","merchant_ref":"r1"}`), ts),
		signPayeezyMessage("api-secret", "api-key", "fdoa-token", body, ts+1),
	}
	for i, v := range variants {
		assert.NotEqual(t, base, v, "variant %d", i)
	}
}

func TestBuildPurchasePayload(t *testing.T) {
	p := buildPurchasePayload(entities.Order{Amount: 100, Currency: "USD"}, testCard(), nil, "generated-ref")

	b, err := json.Marshal(p)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "generated-ref", got["merchant_ref"])
	assert.Equal(t, "purchase", got["transaction_type"])
	assert.Equal(t, "credit_card", got["method"])
	assert.Equal(t, float64(100), got["amount"])
	assert.Equal(t, "USD", got["currency_code"])
	assert.NotContains(t, got, "billing_address")
	assert.NotContains(t, got, "transaction_tag")

	card, ok := got["credit_card"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "visa", card["type"])
	assert.Equal(t, "0926", card["exp_date"])
	assert.Equal(t, "J Doe", card["cardholder_name"])
	assert.Equal(t, "4111111111111111", card["card_number"])
	assert.Equal(t, "123", card["cvv"])
}

func TestBuildPurchasePayload_OrderIDAndProspect(t *testing.T) {
	prospect := &entities.Prospect{FirstName: "Jane", LastName: "Doe", Address1: "1 Main St", City: "Austin", State: "TX", Zip: "73301"}
	p := buildPurchasePayload(entities.Order{OrderID: "order-7", Amount: 5}, testCard(), prospect, "generated-ref")

	assert.Equal(t, "order-7", p.MerchantRef)
	assert.Equal(t, "USD", p.CurrencyCode)
	require.NotNil(t, p.BillingAddress)
	assert.Equal(t, payeezyBillingAddress{
		Name:          "Jane Doe",
		Street:        "1 Main St",
		City:          "Austin",
		StateProvince: "TX",
		ZipPostalCode: "73301",
		Country:       "US",
	}, *p.BillingAddress)
}

func TestFormatExpDate(t *testing.T) {
	assert.Equal(t, "0926", formatExpDate(9, 2026))
	assert.Equal(t, "1205", formatExpDate(12, 5))
	assert.Equal(t, "0130", formatExpDate(1, 30))
}

func TestBuildRefundAndVoidPayloads(t *testing.T) {
	opts := entities.TransactionOptions{Amount: 12.5, TransactionTag: "2264297225"}

	refund, err := json.Marshal(buildRefundPayload("ET1", opts, "generated-ref"))
	require.NoError(t, err)
	var r map[string]any
	require.NoError(t, json.Unmarshal(refund, &r))
	assert.Equal(t, "refund", r["transaction_type"])
	assert.Equal(t, float64(12.5), r["amount"])
	assert.Equal(t, "USD", r["currency_code"])
	assert.Equal(t, "2264297225", r["transaction_tag"])
	assert.Equal(t, "ET1", r["transaction_id"])
	assert.NotContains(t, r, "credit_card")

	void, err := json.Marshal(buildVoidPayload("ET1", opts, "generated-ref"))
	require.NoError(t, err)
	var v map[string]any
	require.NoError(t, json.Unmarshal(void, &v))
	assert.Equal(t, "void", v["transaction_type"])
	assert.NotContains(t, v, "credit_card")
	assert.NotContains(t, v, "amount")
	assert.NotContains(t, v, "currency_code")
	assert.Equal(t, "generated-ref", v["merchant_ref"])
}

func TestSubmitPurchase_SignsAndNormalizes(t *testing.T) {
	srv, captured := newProviderServer(t, http.StatusCreated,
		`{"transaction_id":"T1","transaction_tag":2264297225,"authorization_num":"A1","transaction_status":"approved","validation_status":"success"}`)
	g := newTestGateway(t, srv.URL+"/v1")

	result, err := g.SubmitPurchase(context.Background(), entities.Order{Amount: 100, Currency: "USD"}, testCard(), nil)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, captured.method)
	assert.Equal(t, "/v1/transactions", captured.path)
	assert.Equal(t, "application/json", captured.headers.Get("Content-Type"))
	assert.Equal(t, "api-key", captured.headers.Get("apikey"))
	assert.Equal(t, "fdoa-token", captured.headers.Get("token"))
	assert.Equal(t, strconv.FormatInt(fixedNow.UnixMilli(), 10), captured.headers.Get("timestamp"))
	assert.Equal(t, g.Sign(captured.body, fixedNow.UnixMilli()), captured.headers.Get("hmac"))

	var sent map[string]any
	require.NoError(t, json.Unmarshal(captured.body, &sent))
	assert.Equal(t, "generated-ref", sent["merchant_ref"])
	assert.Contains(t, sent, "credit_card")

	assert.Equal(t, "T1", result.TransactionID)
	assert.Equal(t, "2264297225", result.TransactionTag)
	assert.Equal(t, "A1", result.AuthCode)
	assert.Equal(t, "approved", result.Status)
	assert.Equal(t, "generated-ref", result.MerchantRef)
	assert.JSONEq(t, `{"transaction_id":"T1","transaction_tag":2264297225,"authorization_num":"A1","transaction_status":"approved","validation_status":"success"}`, string(result.Raw))
}

func TestSubmitPurchase_DefaultMerchantRefIsUnique(t *testing.T) {
	srv, _ := newProviderServer(t, http.StatusOK, `{"transaction_id":"T1","transaction_status":"approved"}`)
	g, err := NewPayeezyGateway(testConfig(srv.URL))
	require.NoError(t, err)

	first, err := g.SubmitPurchase(context.Background(), entities.Order{Amount: 1}, testCard(), nil)
	require.NoError(t, err)
	second, err := g.SubmitPurchase(context.Background(), entities.Order{Amount: 1}, testCard(), nil)
	require.NoError(t, err)

	assert.NotEmpty(t, first.MerchantRef)
	assert.NotEqual(t, first.MerchantRef, second.MerchantRef)
}

func TestSubmitPurchase_NonSuccessStatus(t *testing.T) {
	srv, _ := newProviderServer(t, http.StatusUnauthorized, `{"code":"401","message":"HMAC validation Failure"}`)
	g := newTestGateway(t, srv.URL)

	result, err := g.SubmitPurchase(context.Background(), entities.Order{Amount: 100}, testCard(), nil)
	require.Error(t, err)
	assert.Equal(t, entities.TransactionResult{}, result)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusUnauthorized, transportErr.StatusCode)
	assert.Contains(t, err.Error(), "status=401")
}

func TestSubmitPurchase_MalformedResponse(t *testing.T) {
	srv, _ := newProviderServer(t, http.StatusOK, `<html>oops</html>`)
	g := newTestGateway(t, srv.URL)

	_, err := g.SubmitPurchase(context.Background(), entities.Order{Amount: 100}, testCard(), nil)
	var serErr *SerializationError
	require.ErrorAs(t, err, &serErr)
}

func TestSubmitPurchase_ValidationStopsBeforeSending(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	t.Cleanup(srv.Close)
	g := newTestGateway(t, srv.URL)

	cases := []struct {
		name  string
		order entities.Order
		card  func(c *entities.CreditCard)
		field string
	}{
		{"zero amount", entities.Order{Amount: 0}, func(*entities.CreditCard) {}, "order.amount"},
		{"bad currency", entities.Order{Amount: 1, Currency: "US"}, func(*entities.CreditCard) {}, "order.currency"},
		{"letters in card number", entities.Order{Amount: 1}, func(c *entities.CreditCard) { c.CardNumber = "4111abcd11111111" }, "credit_card.card_number"},
		{"short card number", entities.Order{Amount: 1}, func(c *entities.CreditCard) { c.CardNumber = "4111" }, "credit_card.card_number"},
		{"missing holder", entities.Order{Amount: 1}, func(c *entities.CreditCard) { c.CardHolder = "" }, "credit_card.card_holder"},
		{"month 13", entities.Order{Amount: 1}, func(c *entities.CreditCard) { c.ExpirationMonth = 13 }, "credit_card.expiration_month"},
		{"three digit year", entities.Order{Amount: 1}, func(c *entities.CreditCard) { c.ExpirationYear = 226 }, "credit_card.expiration_year"},
		{"short cvv", entities.Order{Amount: 1}, func(c *entities.CreditCard) { c.CVV = "12" }, "credit_card.cvv"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			card := testCard()
			tc.card(&card)
			_, err := g.SubmitPurchase(context.Background(), tc.order, card, nil)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
	assert.Equal(t, int32(0), calls.Load())
}

func TestRefund(t *testing.T) {
	srv, captured := newProviderServer(t, http.StatusCreated,
		`{"transaction_id":"R1","transaction_tag":"99","transaction_status":"approved","merchant_ref":"refund-ref"}`)
	g := newTestGateway(t, srv.URL)

	result, err := g.Refund(context.Background(), "T1", entities.TransactionOptions{Amount: 10, Currency: "eur", TransactionTag: "42"})
	require.NoError(t, err)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(captured.body, &sent))
	assert.Equal(t, "refund", sent["transaction_type"])
	assert.Equal(t, "EUR", sent["currency_code"])
	assert.Equal(t, "42", sent["transaction_tag"])
	assert.Equal(t, "T1", sent["transaction_id"])
	assert.NotContains(t, sent, "credit_card")

	assert.Equal(t, "R1", result.TransactionID)
	assert.Equal(t, "99", result.TransactionTag)
	assert.Equal(t, "refund-ref", result.MerchantRef)
}

func TestRefund_Validation(t *testing.T) {
	g := newTestGateway(t, "http://127.0.0.1:1")
	cases := []struct {
		name  string
		id    string
		opts  entities.TransactionOptions
		field string
	}{
		{"missing id", " ", entities.TransactionOptions{Amount: 1, TransactionTag: "1"}, "transaction_id"},
		{"missing tag", "T1", entities.TransactionOptions{Amount: 1}, "transaction_tag"},
		{"missing amount", "T1", entities.TransactionOptions{TransactionTag: "1"}, "amount"},
		{"bad currency", "T1", entities.TransactionOptions{Amount: 1, TransactionTag: "1", Currency: "EURO"}, "options.currency"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := g.Refund(context.Background(), tc.id, tc.opts)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}

func TestVoid(t *testing.T) {
	srv, captured := newProviderServer(t, http.StatusCreated, `{"transaction_id":"V1","transaction_status":"approved"}`)
	g := newTestGateway(t, srv.URL)

	result, err := g.Void(context.Background(), "T1", entities.TransactionOptions{TransactionTag: "42", Amount: 99})
	require.NoError(t, err)
	assert.Equal(t, "V1", result.TransactionID)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(captured.body, &sent))
	assert.Equal(t, "void", sent["transaction_type"])
	assert.NotContains(t, sent, "amount")
	assert.NotContains(t, sent, "credit_card")

	_, err = g.Void(context.Background(), "T1", entities.TransactionOptions{})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "transaction_tag", vErr.Field)
}

func TestSend_ContextCanceled(t *testing.T) {
	srv, _ := newProviderServer(t, http.StatusOK, `{}`)
	g := newTestGateway(t, srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.SubmitPurchase(ctx, entities.Order{Amount: 1}, testCard(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestMockMode(t *testing.T) {
	g, err := NewPayeezyGateway(PayeezyConfig{Mock: true}, WithMerchantRefGenerator(func() string { return "mock-ref" }))
	require.NoError(t, err)

	result, err := g.SubmitPurchase(context.Background(), entities.Order{Amount: 10}, testCard(), nil)
	require.NoError(t, err)
	assert.Equal(t, "approved", result.Status)
	assert.NotEmpty(t, result.TransactionID)
	assert.NotEmpty(t, result.TransactionTag)
	assert.NotEmpty(t, result.AuthCode)
	assert.Equal(t, "mock-ref", result.MerchantRef)

	_, err = g.Void(context.Background(), "T1", entities.TransactionOptions{})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestFlexibleString(t *testing.T) {
	var resp payeezyTransactionResponse
	require.NoError(t, json.Unmarshal([]byte(`{"transaction_tag":"abc"}`), &resp))
	assert.Equal(t, flexibleString("abc"), resp.TransactionTag)

	require.NoError(t, json.Unmarshal([]byte(`{"transaction_tag":12345678901}`), &resp))
	assert.Equal(t, flexibleString("12345678901"), resp.TransactionTag)

	resp = payeezyTransactionResponse{}
	require.NoError(t, json.Unmarshal([]byte(`{"transaction_tag":null}`), &resp))
	assert.Equal(t, flexibleString(""), resp.TransactionTag)

	assert.Error(t, json.Unmarshal([]byte(`{"transaction_tag":{}}`), &resp))
}

func TestNormalizeResponse(t *testing.T) {
	result, err := normalizeResponse([]byte(`{"transaction_id":"T1","authorization_num":"A1","transaction_status":"approved"}`), "ref")
	require.NoError(t, err)
	assert.Equal(t, "T1", result.TransactionID)
	assert.Equal(t, "A1", result.AuthCode)
	assert.Equal(t, "approved", result.Status)
	assert.Equal(t, "ref", result.MerchantRef)

	_, err = normalizeResponse(nil, "ref")
	var serErr *SerializationError
	require.ErrorAs(t, err, &serErr)
}

func TestSubmitPurchase_TwoDigitYearZero(t *testing.T) {
	srv, captured := newProviderServer(t, http.StatusCreated, `{"transaction_id":"T1","transaction_status":"approved"}`)
	g := newTestGateway(t, srv.URL)

	card := testCard()
	card.ExpirationMonth = 12
	card.ExpirationYear = 0
	_, err := g.SubmitPurchase(context.Background(), entities.Order{Amount: 1}, card, nil)
	require.NoError(t, err)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(captured.body, &sent))
	assert.Equal(t, "1200", sent["credit_card"].(map[string]any)["exp_date"])
}
