package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brewlabs/coffee-store-api/internal/clients/vnpay"
	ordersapp "github.com/brewlabs/coffee-store-api/internal/domains/orders/application"
	ordersports "github.com/brewlabs/coffee-store-api/internal/domains/orders/ports"
	paymentsapp "github.com/brewlabs/coffee-store-api/internal/domains/payments/application"
	paymentsports "github.com/brewlabs/coffee-store-api/internal/domains/payments/ports"
	apierrors "github.com/brewlabs/coffee-store-api/internal/shared/errors"
)

// PaymentAPI wires HTTP transport with the payments bounded context service.
type PaymentAPI struct {
	service paymentsports.Service
}

// NewPaymentAPI creates a PaymentAPI backed by the provided service.
func NewPaymentAPI(service paymentsports.Service) PaymentAPI {
	return PaymentAPI{service: service}
}

type paymentURLResponse struct {
	PaymentURL string `json:"paymentUrl"`
}

// Get /v1/orders/:orderId/payment-url
// Builds a signed gateway redirect URL for a pending order.
func (api *PaymentAPI) GetPaymentURL(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "orderId")
	if !ok {
		return
	}
	paymentURL, err := api.service.GetPaymentURL(c.Request.Context(), orderID, c.ClientIP())
	if err != nil {
		if errors.Is(err, paymentsapp.ErrOrderNotPayable) {
			respondProblem(c, apierrors.ErrBusinessRule.WithDetail(err.Error()))
			return
		}
		respondProblem(c, apierrors.ErrInternal.WithDetail(err.Error()))
		return
	}
	c.JSON(http.StatusOK, paymentURLResponse{PaymentURL: paymentURL})
}

// Get /v1/payments/vnpay/ipn
// Gateway-facing callback. The response body follows the VNPay IPN contract,
// not the problem-details format: the gateway retries until it sees RspCode 00.
func (api *PaymentAPI) VNPayIPN(c *gin.Context) {
	err := api.service.ProcessIPN(c.Request.Context(), c.Request.URL.Query())
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"RspCode": "00", "Message": "Confirm Success"})
		return
	}
	switch {
	case errors.Is(err, vnpay.ErrBadSignature):
		c.JSON(http.StatusOK, gin.H{"RspCode": "97", "Message": "Invalid Checksum"})
	case errors.Is(err, vnpay.ErrPaymentFailed):
		// A failed transaction is still a valid notification; acknowledging
		// it stops the gateway from retrying.
		c.JSON(http.StatusOK, gin.H{"RspCode": "00", "Message": "Confirm Success"})
	case errors.Is(err, ordersports.ErrNotFound), errors.Is(err, paymentsapp.ErrInvalidCallback):
		c.JSON(http.StatusOK, gin.H{"RspCode": "01", "Message": "Order not found"})
	case errors.Is(err, ordersapp.ErrBusinessRule):
		c.JSON(http.StatusOK, gin.H{"RspCode": "02", "Message": "Order already confirmed"})
	default:
		c.JSON(http.StatusOK, gin.H{"RspCode": "99", "Message": "Unknown error"})
	}
}
