package vnpay

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrBadSignature  = errors.New("vnpay signature verification failed")
	ErrPaymentFailed = errors.New("vnpay reported an unsuccessful payment")
	ErrMissingField  = errors.New("vnpay callback is missing a required field")
	ErrNotConfigured = errors.New("vnpay client not configured")
)

const (
	version       = "2.1.0"
	commandPay    = "pay"
	currencyVND   = "VND"
	localeDefault = "vn"
	dateLayout    = "20060102150405"
)

// Client builds signed VNPay payment URLs and verifies IPN callbacks. All
// signatures are HMAC-SHA512 over the sorted, URL-encoded parameter string,
// per the VNPay v2.1.0 gateway contract.
type Client struct {
	tmnCode    string
	hashSecret []byte
	baseURL    string
	returnURL  string
	now        func() time.Time
}

// NewClient validates the gateway credentials.
func NewClient(tmnCode, hashSecret, baseURL, returnURL string) (*Client, error) {
	tmnCode = strings.TrimSpace(tmnCode)
	hashSecret = strings.TrimSpace(hashSecret)
	baseURL = strings.TrimSpace(baseURL)
	if tmnCode == "" || hashSecret == "" || baseURL == "" {
		return nil, errors.New("vnpay tmn code, hash secret, and base URL are required")
	}
	return &Client{
		tmnCode:    tmnCode,
		hashSecret: []byte(hashSecret),
		baseURL:    baseURL,
		returnURL:  strings.TrimSpace(returnURL),
		now:        time.Now,
	}, nil
}

// PaymentRequest carries everything a payment URL needs. OrderInfo is the
// order id and comes back verbatim in the IPN callback.
type PaymentRequest struct {
	TxnRef    string
	Amount    decimal.Decimal
	OrderInfo string
	IPAddress string
}

// PaymentURL builds the signed redirect URL for the gateway. The amount is
// sent in minor units (amount times 100).
func (c *Client) PaymentURL(request PaymentRequest) (string, error) {
	if c == nil || len(c.hashSecret) == 0 {
		return "", ErrNotConfigured
	}
	if request.TxnRef == "" || request.OrderInfo == "" {
		return "", errors.New("vnpay txn ref and order info are required")
	}
	now := c.now()
	params := map[string]string{
		"vnp_Version":    version,
		"vnp_Command":    commandPay,
		"vnp_TmnCode":    c.tmnCode,
		"vnp_Amount":     request.Amount.Mul(decimal.NewFromInt(100)).Truncate(0).String(),
		"vnp_CreateDate": now.Format(dateLayout),
		"vnp_ExpireDate": now.Add(15 * time.Minute).Format(dateLayout),
		"vnp_CurrCode":   currencyVND,
		"vnp_IpAddr":     request.IPAddress,
		"vnp_Locale":     localeDefault,
		"vnp_OrderInfo":  request.OrderInfo,
		"vnp_OrderType":  "other",
		"vnp_ReturnUrl":  c.returnURL,
		"vnp_TxnRef":     request.TxnRef,
	}
	query := canonicalQuery(params)
	signature := c.sign(query)
	return c.baseURL + "?" + query + "&vnp_SecureHash=" + signature, nil
}

// IPNResult is the verified outcome of a gateway callback.
type IPNResult struct {
	OrderInfo string
	TxnRef    string
	// Amount is in major units; the gateway reports minor units.
	Amount        decimal.Decimal
	BankCode      string
	TransactionID string
	ResponseCode  string
	PaidAt        time.Time
}

// VerifyIPN checks the callback signature and payment outcome. The returned
// result is only meaningful when the error is nil.
func (c *Client) VerifyIPN(query url.Values) (*IPNResult, error) {
	if c == nil || len(c.hashSecret) == 0 {
		return nil, ErrNotConfigured
	}
	received := query.Get("vnp_SecureHash")
	if received == "" {
		return nil, fmt.Errorf("%w: vnp_SecureHash", ErrMissingField)
	}
	params := make(map[string]string, len(query))
	for key := range query {
		if key == "vnp_SecureHash" || key == "vnp_SecureHashType" {
			continue
		}
		if strings.HasPrefix(key, "vnp_") {
			params[key] = query.Get(key)
		}
	}
	expected := c.sign(canonicalQuery(params))
	if !hmac.Equal([]byte(strings.ToLower(received)), []byte(expected)) {
		return nil, ErrBadSignature
	}

	responseCode := query.Get("vnp_ResponseCode")
	if responseCode != "00" || query.Get("vnp_TransactionStatus") != "00" {
		return nil, fmt.Errorf("%w: response code %s", ErrPaymentFailed, responseCode)
	}

	rawAmount := query.Get("vnp_Amount")
	if rawAmount == "" {
		return nil, fmt.Errorf("%w: vnp_Amount", ErrMissingField)
	}
	minor, err := strconv.ParseInt(rawAmount, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: vnp_Amount", ErrMissingField)
	}
	orderInfo := query.Get("vnp_OrderInfo")
	if orderInfo == "" {
		return nil, fmt.Errorf("%w: vnp_OrderInfo", ErrMissingField)
	}

	paidAt := c.now().UTC()
	if payDate := query.Get("vnp_PayDate"); payDate != "" {
		if parsed, err := time.Parse(dateLayout, payDate); err == nil {
			paidAt = parsed
		}
	}

	return &IPNResult{
		OrderInfo:     orderInfo,
		TxnRef:        query.Get("vnp_TxnRef"),
		Amount:        decimal.NewFromInt(minor).Div(decimal.NewFromInt(100)),
		BankCode:      query.Get("vnp_BankCode"),
		TransactionID: query.Get("vnp_TransactionNo"),
		ResponseCode:  responseCode,
		PaidAt:        paidAt,
	}, nil
}

// canonicalQuery sorts keys and URL-encodes pairs exactly the way the
// gateway computes its own signature.
func canonicalQuery(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for key, value := range params {
		if value == "" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var builder strings.Builder
	for i, key := range keys {
		if i > 0 {
			builder.WriteByte('&')
		}
		builder.WriteString(url.QueryEscape(key))
		builder.WriteByte('=')
		builder.WriteString(url.QueryEscape(params[key]))
	}
	return builder.String()
}

func (c *Client) sign(payload string) string {
	mac := hmac.New(sha512.New, c.hashSecret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
