package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/StoicRounin/paystack-gateway/internal/config"
	"github.com/StoicRounin/paystack-gateway/internal/observability/tracing"
	paymentdomain "github.com/StoicRounin/paystack-gateway/internal/payment/domain"
	"go.uber.org/zap"
)

// Client talks to the Paystack transaction API. The secret key is supplied
// per call because it resolves from store-scoped settings.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

func NewClient(cfg config.Config, log *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.Paystack.BaseURL, "/"),
		httpClient: tracing.WrapHTTPClient(&http.Client{Timeout: cfg.Paystack.Timeout}),
		log:        log.Named("paystack.client"),
	}
}

var _ paymentdomain.ProviderClient = (*Client)(nil)

type initializePayload struct {
	Email     string            `json:"email"`
	Amount    int64             `json:"amount"`
	Reference string            `json:"reference"`
	Currency  string            `json:"currency,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

type initializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status        string `json:"status"`
		Amount        int64  `json:"amount"`
		Authorization struct {
			AuthorizationCode string `json:"authorization_code"`
		} `json:"authorization"`
	} `json:"data"`
}

// Initialize performs the one-shot transaction-initialize call.
func (c *Client) Initialize(ctx context.Context, secretKey string, req paymentdomain.TransactionInitRequest) (*paymentdomain.InitializeResult, error) {
	payload := initializePayload{
		Email:     req.Email,
		Amount:    req.AmountMinorUnits,
		Reference: req.Reference,
		Currency:  req.Currency,
		Metadata:  req.Metadata,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode initialize payload: %w", err)
	}

	var decoded initializeResponse
	if err := c.do(ctx, http.MethodPost, "/transaction/initialize", secretKey, bytes.NewReader(body), &decoded); err != nil {
		return nil, err
	}

	return &paymentdomain.InitializeResult{
		Success:          decoded.Status,
		AuthorizationURL: decoded.Data.AuthorizationURL,
		AccessCode:       decoded.Data.AccessCode,
		Message:          decoded.Message,
	}, nil
}

// Verify performs the one-shot transaction-verify call for a reference.
func (c *Client) Verify(ctx context.Context, secretKey string, reference string) (*paymentdomain.VerificationResult, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, paymentdomain.ErrInvalidReference
	}

	var decoded verifyResponse
	path := "/transaction/verify/" + url.PathEscape(reference)
	if err := c.do(ctx, http.MethodGet, path, secretKey, nil, &decoded); err != nil {
		return nil, err
	}

	return &paymentdomain.VerificationResult{
		Verified:          decoded.Status,
		AmountMinorUnits:  decoded.Data.Amount,
		AuthorizationCode: decoded.Data.Authorization.AuthorizationCode,
		Message:           decoded.Message,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path, secretKey string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(secretKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		c.log.Warn("provider returned error status",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
	}

	// Declines and bad requests still come back as JSON with status=false,
	// so the body is decoded regardless of the HTTP status code.
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response (http %d): %w", method, path, resp.StatusCode, err)
	}
	return nil
}
