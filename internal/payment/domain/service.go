package domain

import (
	"context"
	"errors"
)

// Delivery names the transport a verification outcome arrived on.
const (
	DeliveryCallback = "callback"
	DeliveryWebhook  = "webhook"
)

// AttributeOrderTotalSent is the generic order attribute recording the
// rounded total actually transmitted to the provider.
const AttributeOrderTotalSent = "order_total_sent_to_paystack"

// CheckoutRedirect is where the customer's browser goes after initiation.
type CheckoutRedirect struct {
	URL string
}

// CallbackResult tells the transport layer where to send the browser after a
// callback was reconciled. Webhook deliveries ignore it.
type CallbackResult struct {
	OrderID     string
	RedirectURL string
}

type Service interface {
	// InitiateCheckout builds and sends the transaction-initialize request
	// for the referenced order. On provider failure the customer returns
	// to returnTo (the page they came from) with no order mutation.
	InitiateCheckout(ctx context.Context, reference string, returnTo string) (CheckoutRedirect, error)

	// CompleteCallback reconciles a browser redirect carrying a
	// transaction reference and reports the follow-up redirect.
	CompleteCallback(ctx context.Context, reference string) (CallbackResult, error)

	// CompleteWebhook reconciles an asynchronous delivery of the same
	// outcome. The response body stays empty either way.
	CompleteWebhook(ctx context.Context, reference string) error

	// CancelReturn resolves the customer's most recent order in the store
	// and reports where to send the browser.
	CancelReturn(ctx context.Context, storeID, customerID int64) (CheckoutRedirect, error)

	// HandlingFee computes the configured additional fee for an amount.
	HandlingFee(ctx context.Context, storeID int64, amount float64) (float64, error)
}

var (
	// ErrGatewayNotConfigured is a configuration fault: no secret key for
	// the store scope. Fatal for the request, no order mutation.
	ErrGatewayNotConfigured = errors.New("gateway_not_configured")
	ErrInvalidReference     = errors.New("invalid_reference")
	ErrNilOrder             = errors.New("nil_order")
)
