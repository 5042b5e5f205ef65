// Package gateway talks to the payment provider. It only creates remote
// orders and checks the signatures the provider hands back to the client
// after checkout; money never moves through this service.
package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"movie-booking/pkg/utils"

	razorpayutils "github.com/razorpay/razorpay-go/utils"
	"go.uber.org/zap"
)

var (
	ErrNotConfigured    = errors.New("payment gateway credentials are not configured")
	ErrUnavailable      = errors.New("payment gateway temporarily unavailable")
	ErrInvalidSignature = errors.New("payment signature mismatch")
)

// OrderRequest is what the provider needs to open an order. Amount is in
// the smallest currency unit (paise for INR).
type OrderRequest struct {
	Amount   int64
	Currency string
	Receipt  string
}

type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Gateway is the payment bridge used by the booking and order services.
type Gateway interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
	VerifySignature(orderID, paymentID, signature string) error
	KeyID() string
	Currency() string
}

// APIError is a non-2xx answer from the provider.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("gateway returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("gateway returned status %d: %s: %s", e.StatusCode, e.Code, e.Description)
}

// New builds the gateway for config. Without credentials every call fails
// with ErrNotConfigured, so the server can still serve the catalog.
func New(config utils.PaymentConfig, log *zap.Logger) Gateway {
	if !config.Enabled() {
		log.Warn("Payment gateway credentials missing; payment endpoints will fail",
			zap.String("base_url", config.BaseURL),
		)
		return &disabled{currency: config.Currency}
	}

	return NewBreaker(NewRazorpay(config, log), log)
}

// Sign computes the checkout signature for an order/payment pair, the value
// the provider's checkout returns as razorpay_signature.
func Sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func verify(orderID, paymentID, signature, secret string) error {
	params := map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}
	if !razorpayutils.VerifyPaymentSignature(params, signature, secret) {
		return ErrInvalidSignature
	}
	return nil
}

type disabled struct {
	currency string
}

func (d *disabled) CreateOrder(context.Context, OrderRequest) (*Order, error) {
	return nil, ErrNotConfigured
}

func (d *disabled) VerifySignature(string, string, string) error {
	return ErrNotConfigured
}

func (d *disabled) KeyID() string { return "" }

func (d *disabled) Currency() string { return d.currency }
