package events

// Payment event types published for host-platform consumption.
const (
	EventPaymentVerified = "payment.verified"
	EventPaymentFailed   = "payment.failed"
)

// PaymentPayload captures the outcome of one verification.
type PaymentPayload struct {
	Reference         string `json:"reference"`
	OrderID           string `json:"order_id"`
	AmountMinorUnits  int64  `json:"amount_minor_units"`
	AuthorizationCode string `json:"authorization_code,omitempty"`
	Message           string `json:"message,omitempty"`
}

// ToMap converts a payload into an outbox-friendly map.
func (p PaymentPayload) ToMap() map[string]any {
	out := map[string]any{
		"reference":          p.Reference,
		"order_id":           p.OrderID,
		"amount_minor_units": p.AmountMinorUnits,
	}
	if p.AuthorizationCode != "" {
		out["authorization_code"] = p.AuthorizationCode
	}
	if p.Message != "" {
		out["message"] = p.Message
	}
	return out
}
