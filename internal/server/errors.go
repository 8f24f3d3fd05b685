package server

import (
	"errors"
	"net/http"

	paymentdomain "github.com/StoicRounin/paystack-gateway/internal/payment/domain"
	settingsdomain "github.com/StoicRounin/paystack-gateway/internal/settings/domain"
	"github.com/gin-gonic/gin"
)

type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *apiError) Error() string { return e.Message }

var (
	ErrNotFound = &apiError{
		Status:  http.StatusNotFound,
		Code:    "not_found",
		Message: "resource not found",
	}
	ErrTooManyRequests = &apiError{
		Status:  http.StatusTooManyRequests,
		Code:    "rate_limited",
		Message: "too many requests",
	}
)

func invalidRequestError() *apiError {
	return &apiError{
		Status:  http.StatusBadRequest,
		Code:    "invalid_request",
		Message: "request body or parameters are invalid",
	}
}

func newValidationError(field, code, message string) *apiError {
	return &apiError{
		Status:  http.StatusBadRequest,
		Code:    code,
		Message: message,
		Field:   field,
	}
}

// AbortWithError translates service errors into the JSON error envelope.
// Unrecognized errors surface as an opaque 500.
func AbortWithError(c *gin.Context, err error) {
	var api *apiError
	if errors.As(err, &api) {
		c.AbortWithStatusJSON(api.Status, gin.H{"error": api})
		return
	}

	switch {
	case errors.Is(err, paymentdomain.ErrInvalidReference):
		api = &apiError{Status: http.StatusBadRequest, Code: "invalid_reference", Message: "transaction reference is invalid"}
	case errors.Is(err, paymentdomain.ErrGatewayNotConfigured):
		api = &apiError{Status: http.StatusServiceUnavailable, Code: "gateway_not_configured", Message: "payment gateway is not configured"}
	case errors.Is(err, settingsdomain.ErrInvalidStore):
		api = &apiError{Status: http.StatusBadRequest, Code: "invalid_store", Message: "store id is invalid"}
	default:
		api = &apiError{Status: http.StatusInternalServerError, Code: "internal_error", Message: "internal server error"}
	}
	c.AbortWithStatusJSON(api.Status, gin.H{"error": api})
}
