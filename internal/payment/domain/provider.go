package domain

import "context"

// TransactionInitRequest is the outbound transaction-initialize payload.
// Amount is expressed in the provider's minor currency unit.
type TransactionInitRequest struct {
	Email            string
	Reference        string
	AmountMinorUnits int64
	Currency         string
	Metadata         map[string]string
}

// InitializeResult is the provider's answer to a transaction initialize.
type InitializeResult struct {
	Success          bool
	AuthorizationURL string
	AccessCode       string
	Message          string
}

// VerificationResult is the provider's answer to a transaction verify.
// It is ephemeral; only its effects reach the order.
type VerificationResult struct {
	Verified          bool
	AmountMinorUnits  int64
	AuthorizationCode string
	Message           string
}

// ProviderClient is the boundary to the hosted-checkout provider. Both calls
// are one-shot; the gateway defines no retry policy.
type ProviderClient interface {
	Initialize(ctx context.Context, secretKey string, req TransactionInitRequest) (*InitializeResult, error)
	Verify(ctx context.Context, secretKey string, reference string) (*VerificationResult, error)
}
