package httpapi

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	ordershttpmapper "github.com/brewlabs/coffee-store-api/internal/domains/orders/adapters/http/mapper"
)

// signIPNQuery reproduces the gateway's signature so tests can stand in for
// VNPay's callback.
func signIPNQuery(secret string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, url.QueryEscape(key)+"="+url.QueryEscape(params[key]))
	}
	payload := strings.Join(pairs, "&")
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(payload))
	return payload + "&vnp_SecureHash=" + hex.EncodeToString(mac.Sum(nil))
}

func (f *apiFixture) createPendingOrder(t *testing.T, adminToken, customerToken string) ordershttpmapper.Order {
	t.Helper()
	espresso := f.seedProduct(t, adminToken, "Espresso", "3.50")
	created := f.do(t, http.MethodPost, "/v1/orders", customerToken, map[string]any{
		"items": []map[string]any{{"productId": espresso.ID, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	var order ordershttpmapper.Order
	decodeInto(t, created, &order)

	submitted := f.do(t, http.MethodPatch, fmt.Sprintf("/v1/orders/%s/status", order.ID), customerToken, map[string]string{
		"status": "pending",
	})
	require.Equal(t, http.StatusOK, submitted.Code, submitted.Body.String())
	decodeInto(t, submitted, &order)
	return order
}

func TestPaymentURLAndIPNCompleteTheOrder(t *testing.T) {
	fixture := newAPIFixture(t)
	adminToken := fixture.loginAs(t, "admin@example.com", "admin")
	customerToken := fixture.loginAs(t, "customer@example.com", "customer")
	order := fixture.createPendingOrder(t, adminToken, customerToken)

	urlResponse := fixture.do(t, http.MethodGet, fmt.Sprintf("/v1/orders/%s/payment-url", order.ID), customerToken, nil)
	require.Equal(t, http.StatusOK, urlResponse.Code, urlResponse.Body.String())
	var body paymentURLResponse
	decodeInto(t, urlResponse, &body)
	redirect, err := url.Parse(body.PaymentURL)
	require.NoError(t, err)
	require.Equal(t, order.ID.String(), redirect.Query().Get("vnp_TxnRef"))
	require.Equal(t, "700", redirect.Query().Get("vnp_Amount"))

	callback := signIPNQuery(testGatewaySecret, map[string]string{
		"vnp_Amount":            "700",
		"vnp_OrderInfo":         order.ID.String(),
		"vnp_PayDate":           "20240301103217",
		"vnp_ResponseCode":      "00",
		"vnp_TmnCode":           "TESTTMN",
		"vnp_TransactionNo":     "14226112",
		"vnp_TransactionStatus": "00",
		"vnp_TxnRef":            order.ID.String(),
	})
	ipn := fixture.do(t, http.MethodGet, "/v1/payments/vnpay/ipn?"+callback, "", nil)
	require.Equal(t, http.StatusOK, ipn.Code)
	require.Contains(t, ipn.Body.String(), `"RspCode":"00"`)

	fetched := fixture.do(t, http.MethodGet, fmt.Sprintf("/v1/orders/%s", order.ID), customerToken, nil)
	require.Equal(t, http.StatusOK, fetched.Code, fetched.Body.String())
	var completed ordershttpmapper.Order
	decodeInto(t, fetched, &completed)
	require.Equal(t, "completed", completed.Status)
	require.NotNil(t, completed.Payment)
	require.Equal(t, "7", completed.Payment.Amount.String())

	// The gateway retries callbacks; a duplicate must not pay the order twice.
	replay := fixture.do(t, http.MethodGet, "/v1/payments/vnpay/ipn?"+callback, "", nil)
	require.Equal(t, http.StatusOK, replay.Code)
	require.Contains(t, replay.Body.String(), `"RspCode":"02"`)
}

func TestPaymentURLRequiresPendingOrder(t *testing.T) {
	fixture := newAPIFixture(t)
	adminToken := fixture.loginAs(t, "admin@example.com", "admin")
	customerToken := fixture.loginAs(t, "customer@example.com", "customer")
	espresso := fixture.seedProduct(t, adminToken, "Espresso", "3.50")

	created := fixture.do(t, http.MethodPost, "/v1/orders", customerToken, map[string]any{
		"items": []map[string]any{{"productId": espresso.ID, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, created.Code)
	var order ordershttpmapper.Order
	decodeInto(t, created, &order)

	response := fixture.do(t, http.MethodGet, fmt.Sprintf("/v1/orders/%s/payment-url", order.ID), customerToken, nil)
	require.Equal(t, http.StatusBadRequest, response.Code, response.Body.String())
	require.Contains(t, response.Body.String(), "pending")
}

func TestIPNRejectsTamperedSignatures(t *testing.T) {
	fixture := newAPIFixture(t)
	adminToken := fixture.loginAs(t, "admin@example.com", "admin")
	customerToken := fixture.loginAs(t, "customer@example.com", "customer")
	order := fixture.createPendingOrder(t, adminToken, customerToken)

	callback := signIPNQuery("wrong-secret", map[string]string{
		"vnp_Amount":            "700",
		"vnp_OrderInfo":         order.ID.String(),
		"vnp_ResponseCode":      "00",
		"vnp_TransactionStatus": "00",
		"vnp_TxnRef":            order.ID.String(),
	})
	ipn := fixture.do(t, http.MethodGet, "/v1/payments/vnpay/ipn?"+callback, "", nil)
	require.Equal(t, http.StatusOK, ipn.Code)
	require.Contains(t, ipn.Body.String(), `"RspCode":"97"`)

	fetched := fixture.do(t, http.MethodGet, fmt.Sprintf("/v1/orders/%s", order.ID), customerToken, nil)
	var unchanged ordershttpmapper.Order
	decodeInto(t, fetched, &unchanged)
	require.Equal(t, "pending", unchanged.Status)
}
