package handlers

import (
	"errors"
	"io"
	"net/http"
	"net/url"

	"payeezy_gateway/internal/adapter/http/dto/request"
	"payeezy_gateway/internal/adapter/http/dto/response"
	"payeezy_gateway/internal/infrastructure/payments"
	"payeezy_gateway/internal/usecase"
	"payeezy_gateway/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler handles HTTP requests for gateway transactions.

type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
	log     *zap.Logger
}

func NewPaymentHandler(uc usecase.IPaymentUseCase, log *zap.Logger) *PaymentHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &PaymentHandler{usecase: uc, log: log}
}

// Purchase godoc
// @Summary      Submit a purchase
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        request  body      request.PurchaseRequest  true  "Order, card and optional billing address"
// @Success      200      {object}  response.TransactionResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      402      {object}  pkg.HTTPError
// @Failure      502      {object}  pkg.HTTPError
// @Router       /transactions [post]
func (h *PaymentHandler) Purchase(c *gin.Context) {
	var req request.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("purchase invalid payload", zap.Error(err))
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	order, card, prospect := req.ToEntities()
	result, err := h.usecase.Purchase(c.Request.Context(), order, card, prospect)
	if err != nil {
		h.log.Warn("purchase failed", zap.String("order_id", order.OrderID), zap.Error(err))
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	h.log.Info("purchase success", zap.String("transaction_id", result.TransactionID), zap.String("status", result.Status))

	c.JSON(http.StatusOK, response.FromTransactionResult(result))
}

// Refund godoc
// @Summary      Refund a transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        transaction_id  path      string                 true   "Provider transaction id"
// @Param        request         body      request.RefundRequest  false  "Refund options"
// @Success      200             {object}  response.TransactionResponse
// @Failure      400             {object}  pkg.HTTPError
// @Failure      404             {object}  pkg.HTTPError
// @Failure      409             {object}  pkg.HTTPError
// @Failure      502             {object}  pkg.HTTPError
// @Router       /transactions/{transaction_id}/refund [post]
func (h *PaymentHandler) Refund(c *gin.Context) {
	transactionID := c.Param("transaction_id")
	var req request.RefundRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		h.log.Warn("refund invalid payload", zap.String("transaction_id", transactionID), zap.Error(err))
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	result, err := h.usecase.Refund(c.Request.Context(), transactionID, req.ToOptions())
	if err != nil {
		h.log.Warn("refund failed", zap.String("transaction_id", transactionID), zap.Error(err))
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	h.log.Info("refund success", zap.String("transaction_id", transactionID), zap.String("refund_id", result.TransactionID))

	c.JSON(http.StatusOK, response.FromTransactionResult(result))
}

// Void godoc
// @Summary      Void a transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        transaction_id  path      string               true   "Provider transaction id"
// @Param        request         body      request.VoidRequest  false  "Void options"
// @Success      200             {object}  response.TransactionResponse
// @Failure      400             {object}  pkg.HTTPError
// @Failure      404             {object}  pkg.HTTPError
// @Failure      409             {object}  pkg.HTTPError
// @Failure      502             {object}  pkg.HTTPError
// @Router       /transactions/{transaction_id}/void [post]
func (h *PaymentHandler) Void(c *gin.Context) {
	transactionID := c.Param("transaction_id")
	var req request.VoidRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		h.log.Warn("void invalid payload", zap.String("transaction_id", transactionID), zap.Error(err))
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	result, err := h.usecase.Void(c.Request.Context(), transactionID, req.ToOptions())
	if err != nil {
		h.log.Warn("void failed", zap.String("transaction_id", transactionID), zap.Error(err))
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	h.log.Info("void success", zap.String("transaction_id", transactionID), zap.String("void_id", result.TransactionID))

	c.JSON(http.StatusOK, response.FromTransactionResult(result))
}

// GetTransaction godoc
// @Summary      Get the cached reference of a transaction
// @Tags         transactions
// @Produce      json
// @Param        transaction_id  path      string  true  "Provider transaction id"
// @Success      200             {object}  response.TransactionReferenceResponse
// @Failure      404             {object}  pkg.HTTPError
// @Failure      503             {object}  pkg.HTTPError
// @Router       /transactions/{transaction_id} [get]
func (h *PaymentHandler) GetTransaction(c *gin.Context) {
	transactionID := c.Param("transaction_id")

	ref, err := h.usecase.GetReference(c.Request.Context(), transactionID)
	if err != nil {
		h.log.Warn("get transaction failed", zap.String("transaction_id", transactionID), zap.Error(err))
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromTransactionReference(ref))
}

// bindOptionalJSON accepts an empty body as the zero request.
func bindOptionalJSON(c *gin.Context, obj any) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func mapPaymentError(err error) *pkg.AppError {
	var (
		validationErr    *payments.ValidationError
		transportErr     *payments.TransportError
		serializationErr *payments.SerializationError
		configErr        *payments.ConfigurationError
		urlErr           *url.Error
	)

	switch {
	case errors.Is(err, usecase.ErrInvalidTransactionID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid transaction id", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrTransactionTagRequired):
		return pkg.NewDomainErrorSimple("TRANSACTION_TAG_REQUIRED", "transaction_tag is required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrTransactionReferenceNotFound):
		return pkg.NewDomainErrorSimple("TRANSACTION_NOT_FOUND", "Transaction not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrTransactionNotRefundable):
		return pkg.NewDomainErrorSimple("TRANSACTION_NOT_REFUNDABLE", "Transaction already voided or fully refunded", http.StatusConflict)
	case errors.As(err, &validationErr):
		return pkg.NewDomainError("INVALID_REQUEST", "Invalid "+validationErr.Field, err, http.StatusBadRequest)
	case errors.As(err, &transportErr):
		if transportErr.StatusCode >= http.StatusBadRequest && transportErr.StatusCode < http.StatusInternalServerError {
			return pkg.NewDomainError("PAYMENT_DECLINED", "Payment provider rejected the transaction", err, http.StatusPaymentRequired)
		}
		return pkg.NewDomainError("PAYMENT_PROVIDER_ERROR", "Payment provider error", err, http.StatusBadGateway)
	case errors.As(err, &urlErr):
		return pkg.NewDomainError("PAYMENT_PROVIDER_UNREACHABLE", "Payment provider unreachable", err, http.StatusBadGateway)
	case errors.As(err, &serializationErr):
		return pkg.NewDomainError("PAYMENT_PROVIDER_ERROR", "Invalid payment provider response", err, http.StatusBadGateway)
	case errors.As(err, &configErr),
		errors.Is(err, usecase.ErrPaymentGatewayNotConfigured),
		errors.Is(err, usecase.ErrReferenceStoreNotConfigured):
		return pkg.NewDomainError("SERVICE_UNAVAILABLE", "Payment service not configured", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
