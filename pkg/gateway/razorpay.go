package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

const maxReceiptLen = 40

type Razorpay struct {
	keyID     string
	keySecret string
	baseURL   string
	currency  string
	client    *http.Client
	log       *zap.Logger
}

type razorpayOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type razorpayErrorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func NewRazorpay(config utils.PaymentConfig, log *zap.Logger) *Razorpay {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Razorpay{
		keyID:     config.KeyID,
		keySecret: config.KeySecret,
		baseURL:   strings.TrimRight(config.BaseURL, "/"),
		currency:  config.Currency,
		client:    &http.Client{Timeout: timeout},
		log:       log.With(zap.String("gateway", "razorpay")),
	}
}

func (r *Razorpay) KeyID() string { return r.keyID }

func (r *Razorpay) Currency() string { return r.currency }

// CreateOrder opens a remote order. The receipt is truncated to the
// provider's 40 character limit.
func (r *Razorpay) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("create gateway order: amount must be positive, got %d", req.Amount)
	}
	if req.Currency == "" {
		req.Currency = r.currency
	}
	if len(req.Receipt) > maxReceiptLen {
		req.Receipt = req.Receipt[:maxReceiptLen]
	}

	body, err := json.Marshal(razorpayOrderRequest{
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
	})
	if err != nil {
		return nil, fmt.Errorf("encode gateway order: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build gateway request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(r.keyID, r.keySecret)

	resp, err := r.client.Do(httpReq)
	if err != nil {
		r.log.Error("Gateway request failed",
			zap.Error(err),
			zap.String("receipt", req.Receipt),
		)
		return nil, fmt.Errorf("call gateway: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read gateway response: %w", err)
	}

	if resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errResp razorpayErrorResponse
		if json.Unmarshal(respBody, &errResp) == nil {
			apiErr.Code = errResp.Error.Code
			apiErr.Description = errResp.Error.Description
		}

		r.log.Warn("Gateway rejected order",
			zap.Int("status_code", resp.StatusCode),
			zap.String("code", apiErr.Code),
			zap.String("description", apiErr.Description),
			zap.String("receipt", req.Receipt),
		)
		return nil, apiErr
	}

	var order Order
	if err := json.Unmarshal(respBody, &order); err != nil {
		return nil, fmt.Errorf("decode gateway order: %w", err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("decode gateway order: response has no id")
	}

	r.log.Info("Gateway order created",
		zap.String("gateway_order_id", order.ID),
		zap.Int64("amount", order.Amount),
		zap.String("receipt", order.Receipt),
	)

	return &order, nil
}

// VerifySignature checks the hex HMAC-SHA256 of "order_id|payment_id"
// returned by checkout.
func (r *Razorpay) VerifySignature(orderID, paymentID, signature string) error {
	return verify(orderID, paymentID, signature, r.keySecret)
}
