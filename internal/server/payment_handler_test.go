package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/StoicRounin/paystack-gateway/internal/config"
	paymentdomain "github.com/StoicRounin/paystack-gateway/internal/payment/domain"
	settingsdomain "github.com/StoicRounin/paystack-gateway/internal/settings/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zaptest"
)

type stubPaymentService struct {
	lastReference string
	lastDelivery  string
	checkoutURL   string
	callback      paymentdomain.CallbackResult
	cancel        paymentdomain.CheckoutRedirect
	fee           float64
	err           error
}

func (s *stubPaymentService) InitiateCheckout(_ context.Context, reference, _ string) (paymentdomain.CheckoutRedirect, error) {
	s.lastReference = reference
	return paymentdomain.CheckoutRedirect{URL: s.checkoutURL}, s.err
}

func (s *stubPaymentService) CompleteCallback(_ context.Context, reference string) (paymentdomain.CallbackResult, error) {
	s.lastReference = reference
	s.lastDelivery = paymentdomain.DeliveryCallback
	return s.callback, s.err
}

func (s *stubPaymentService) CompleteWebhook(_ context.Context, reference string) error {
	s.lastReference = reference
	s.lastDelivery = paymentdomain.DeliveryWebhook
	return s.err
}

func (s *stubPaymentService) CancelReturn(context.Context, int64, int64) (paymentdomain.CheckoutRedirect, error) {
	return s.cancel, s.err
}

func (s *stubPaymentService) HandlingFee(context.Context, int64, float64) (float64, error) {
	return s.fee, s.err
}

type stubSettingsService struct {
	settings settingsdomain.Settings
	saved    *settingsdomain.Settings
}

func (s *stubSettingsService) Load(context.Context, int64) (settingsdomain.Settings, error) {
	return s.settings, nil
}

func (s *stubSettingsService) Overrides(context.Context, int64) (settingsdomain.Overrides, error) {
	return settingsdomain.Overrides{}, nil
}

func (s *stubSettingsService) Save(_ context.Context, _ int64, settings settingsdomain.Settings, _ settingsdomain.Overrides) error {
	s.saved = &settings
	return nil
}

func setupHandlerTest(t *testing.T, payments paymentdomain.Service, settings settingsdomain.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	server := NewServer(Params{
		Cfg:         config.Config{Addr: ":0", StoreBaseURL: "https://shop.example.com"},
		Log:         zaptest.NewLogger(t),
		PaymentSvc:  payments,
		SettingsSvc: settings,
	})
	engine := gin.New()
	server.RegisterRoutes(engine)
	return engine
}

func TestCallbackRedirects(t *testing.T) {
	stub := &stubPaymentService{callback: paymentdomain.CallbackResult{
		OrderID:     "42",
		RedirectURL: "https://shop.example.com/checkout/completed/42",
	}}
	engine := setupHandlerTest(t, stub, &stubSettingsService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/plugins/paystack/callback?trxref=ref-1", nil)
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if location := rec.Header().Get("Location"); location != stub.callback.RedirectURL {
		t.Errorf("location = %q", location)
	}
	if stub.lastReference != "ref-1" {
		t.Errorf("reference = %q", stub.lastReference)
	}
}

func TestCallbackAcceptsReferenceParam(t *testing.T) {
	stub := &stubPaymentService{callback: paymentdomain.CallbackResult{RedirectURL: "https://shop.example.com"}}
	engine := setupHandlerTest(t, stub, &stubSettingsService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/plugins/paystack/callback?reference=ref-2", nil)
	engine.ServeHTTP(rec, req)

	if stub.lastReference != "ref-2" {
		t.Errorf("reference = %q", stub.lastReference)
	}
}

func TestNotifyRespondsEmpty(t *testing.T) {
	stub := &stubPaymentService{}
	engine := setupHandlerTest(t, stub, &stubSettingsService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/plugins/paystack/notify?trxref=ref-3", nil)
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}
	if stub.lastDelivery != paymentdomain.DeliveryWebhook {
		t.Errorf("delivery = %q", stub.lastDelivery)
	}
}

func TestCheckoutRedirectsToAuthorizationURL(t *testing.T) {
	stub := &stubPaymentService{checkoutURL: "https://checkout.paystack.com/abc"}
	engine := setupHandlerTest(t, stub, &stubSettingsService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/plugins/paystack/checkout/ref-4", nil)
	req.Header.Set("Referer", "https://shop.example.com/cart")
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if location := rec.Header().Get("Location"); location != stub.checkoutURL {
		t.Errorf("location = %q", location)
	}
	if stub.lastReference != "ref-4" {
		t.Errorf("reference = %q", stub.lastReference)
	}
}

func TestCheckoutUnknownReferenceRedirectsHome(t *testing.T) {
	stub := &stubPaymentService{err: paymentdomain.ErrInvalidReference}
	engine := setupHandlerTest(t, stub, &stubSettingsService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/plugins/paystack/checkout/ref-missing", nil)
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if location := rec.Header().Get("Location"); location != "https://shop.example.com" {
		t.Errorf("location = %q", location)
	}
}

func TestCheckoutNotConfigured(t *testing.T) {
	stub := &stubPaymentService{err: paymentdomain.ErrGatewayNotConfigured}
	engine := setupHandlerTest(t, stub, &stubSettingsService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/plugins/paystack/checkout/ref-5", nil)
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestCancelRedirects(t *testing.T) {
	stub := &stubPaymentService{cancel: paymentdomain.CheckoutRedirect{URL: "https://shop.example.com/orderdetails/9"}}
	engine := setupHandlerTest(t, stub, &stubSettingsService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/plugins/paystack/cancel?store_id=1&customer_id=9", nil)
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if location := rec.Header().Get("Location"); location != stub.cancel.URL {
		t.Errorf("location = %q", location)
	}
}

func TestHandlingFeeEndpoint(t *testing.T) {
	stub := &stubPaymentService{fee: 2.5}
	engine := setupHandlerTest(t, stub, &stubSettingsService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/plugins/paystack/fee?store_id=1&amount=100", nil)
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Data struct {
			Fee float64 `json:"fee"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Fee != 2.5 {
		t.Errorf("fee = %v", resp.Data.Fee)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/plugins/paystack/fee?store_id=1&amount=abc", nil)
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSaveSettings(t *testing.T) {
	settings := &stubSettingsService{}
	engine := setupHandlerTest(t, &stubPaymentService{}, settings)

	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"settings":{"use_sandbox":true,"test_secret_key":"sk_test_abc","currency":"GHS"},"overrides":{}}`)
	req := httptest.NewRequest(http.MethodPut, "/admin/paystack/settings?store_id=0", body)
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if settings.saved == nil || !settings.saved.UseSandbox || settings.saved.TestSecretKey != "sk_test_abc" {
		t.Errorf("saved = %+v", settings.saved)
	}
}

func TestSettingsRejectsNegativeStore(t *testing.T) {
	engine := setupHandlerTest(t, &stubPaymentService{}, &stubSettingsService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/paystack/settings?store_id=-1", nil)
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
