package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/StoicRounin/paystack-gateway/internal/clock"
	"github.com/StoicRounin/paystack-gateway/internal/config"
	"github.com/StoicRounin/paystack-gateway/internal/events"
	"github.com/StoicRounin/paystack-gateway/internal/observability/metrics"
	orderdomain "github.com/StoicRounin/paystack-gateway/internal/order/domain"
	paymentdomain "github.com/StoicRounin/paystack-gateway/internal/payment/domain"
	settingsdomain "github.com/StoicRounin/paystack-gateway/internal/settings/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Cfg      config.Config
	Settings settingsdomain.Service
	Orders   orderdomain.Repository
	Provider paymentdomain.ProviderClient
	Outbox   *events.Outbox
	Metrics  *metrics.PaymentMetrics `optional:"true"`
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	clock        clock.Clock
	settings     settingsdomain.Service
	orders       orderdomain.Repository
	provider     paymentdomain.ProviderClient
	outbox       *events.Outbox
	metrics      *metrics.PaymentMetrics
	builder      *RequestBuilder
	storeBaseURL string
}

func NewService(p Params) paymentdomain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("payment.service"),
		genID:        p.GenID,
		clock:        p.Clock,
		settings:     p.Settings,
		orders:       p.Orders,
		provider:     p.Provider,
		outbox:       p.Outbox,
		metrics:      p.Metrics,
		builder:      NewRequestBuilder(p.Cfg),
		storeBaseURL: strings.TrimRight(p.Cfg.StoreBaseURL, "/"),
	}
}

func (s *Service) InitiateCheckout(ctx context.Context, reference string, returnTo string) (paymentdomain.CheckoutRedirect, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return paymentdomain.CheckoutRedirect{}, paymentdomain.ErrInvalidReference
	}

	order, err := s.orders.FindByGUID(ctx, s.db, reference)
	if err != nil {
		return paymentdomain.CheckoutRedirect{}, err
	}
	if order == nil {
		return paymentdomain.CheckoutRedirect{}, paymentdomain.ErrInvalidReference
	}
	if order.IsPaid() {
		return paymentdomain.CheckoutRedirect{URL: s.completedURL(order)}, nil
	}

	settings, err := s.settings.Load(ctx, order.StoreID)
	if err != nil {
		return paymentdomain.CheckoutRedirect{}, err
	}
	if strings.TrimSpace(settings.SecretKey()) == "" {
		return paymentdomain.CheckoutRedirect{}, paymentdomain.ErrGatewayNotConfigured
	}

	built, err := s.builder.Build(order, settings)
	if err != nil {
		return paymentdomain.CheckoutRedirect{}, err
	}

	// The transmitted total is recorded before the provider call so a later
	// verification can cross-check against what was actually sent.
	if err := s.orders.SaveAttribute(ctx, s.db, order.ID, paymentdomain.AttributeOrderTotalSent, formatAmount(built.SentTotal), s.clock.Now()); err != nil {
		return paymentdomain.CheckoutRedirect{}, err
	}

	result, err := s.provider.Initialize(ctx, settings.SecretKey(), built.Init)
	if err != nil {
		s.log.Error("transaction initialize failed",
			zap.String("reference", reference),
			zap.Error(err),
		)
		s.metrics.InitializeFailed(ctx)
		return paymentdomain.CheckoutRedirect{URL: s.fallbackURL(returnTo)}, nil
	}
	if !result.Success {
		s.log.Warn("transaction initialize declined",
			zap.String("reference", reference),
			zap.String("message", result.Message),
		)
		s.metrics.InitializeFailed(ctx)
		return paymentdomain.CheckoutRedirect{URL: s.fallbackURL(returnTo)}, nil
	}

	return paymentdomain.CheckoutRedirect{URL: result.AuthorizationURL}, nil
}

func (s *Service) CompleteCallback(ctx context.Context, reference string) (paymentdomain.CallbackResult, error) {
	order, _, err := s.reconcile(ctx, reference, paymentdomain.DeliveryCallback)
	if err != nil {
		return paymentdomain.CallbackResult{}, err
	}
	if order == nil {
		return paymentdomain.CallbackResult{RedirectURL: s.storeBaseURL}, nil
	}

	// The completed page is shown either way; the order's payment status
	// tells the customer whether the payment went through.
	return paymentdomain.CallbackResult{
		OrderID:     order.ID.String(),
		RedirectURL: s.completedURL(order),
	}, nil
}

func (s *Service) CompleteWebhook(ctx context.Context, reference string) error {
	_, _, err := s.reconcile(ctx, reference, paymentdomain.DeliveryWebhook)
	return err
}

// reconcile verifies a transaction reference against the provider and applies
// the outcome to the order. Redelivered references converge to the same
// state: the paid transition and the outbox event both apply once.
func (s *Service) reconcile(ctx context.Context, reference string, delivery string) (*orderdomain.Order, bool, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, false, paymentdomain.ErrInvalidReference
	}

	order, err := s.orders.FindByGUID(ctx, s.db, reference)
	if err != nil {
		return nil, false, err
	}
	if order == nil {
		// Unknown references stay invisible to the caller; the counter is
		// the only trace they leave.
		s.log.Warn("no order for transaction reference",
			zap.String("reference", reference),
			zap.String("delivery", delivery),
		)
		s.metrics.OrderNotFound(ctx, delivery)
		return nil, false, nil
	}

	settings, err := s.settings.Load(ctx, order.StoreID)
	if err != nil {
		return nil, false, err
	}
	if strings.TrimSpace(settings.SecretKey()) == "" {
		return nil, false, paymentdomain.ErrGatewayNotConfigured
	}

	result, err := s.provider.Verify(ctx, settings.SecretKey(), reference)
	if err != nil {
		// A failed verify call is an unverified result; the flow still
		// completes for the customer and the order stays unpaid.
		s.log.Error("transaction verify failed",
			zap.String("reference", reference),
			zap.String("delivery", delivery),
			zap.Error(err),
		)
		result = &paymentdomain.VerificationResult{Message: "Verification request failed."}
	}

	verified := result.Verified
	message := strings.TrimSpace(result.Message)
	if verified && settings.StrictAmountCheck {
		if ok, detail := s.amountMatches(ctx, order, result.AmountMinorUnits); !ok {
			verified = false
			message = detail
		}
	}

	// Every delivery leaves a note carrying the provider's message and
	// applies the CAS authorization write; only the paid transition and
	// the outbox rows are once-only.
	now := s.clock.Now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		note := &orderdomain.OrderNote{
			ID:        s.genID.Generate(),
			OrderID:   order.ID,
			Note:      fmt.Sprintf("Paystack verification. Transaction reference: %s. Verified: %t. Message: %s", reference, verified, message),
			CreatedAt: now,
		}
		if err := s.orders.AddNote(ctx, tx, note); err != nil {
			return err
		}
		if err := s.orders.SetAuthorization(ctx, tx, order.ID, reference, result.AuthorizationCode, now); err != nil {
			return err
		}

		if verified {
			if _, err := s.orders.MarkPaid(ctx, tx, order.ID, now); err != nil {
				return err
			}
			return s.outbox.PublishTx(ctx, tx, events.Event{
				StoreID: order.StoreID,
				Type:    events.EventPaymentVerified,
				Payload: events.PaymentPayload{
					Reference:         reference,
					OrderID:           order.ID.String(),
					AmountMinorUnits:  result.AmountMinorUnits,
					AuthorizationCode: result.AuthorizationCode,
				}.ToMap(),
				DedupeKey: reference + ":" + events.EventPaymentVerified,
			})
		}
		return s.outbox.PublishTx(ctx, tx, events.Event{
			StoreID: order.StoreID,
			Type:    events.EventPaymentFailed,
			Payload: events.PaymentPayload{
				Reference: reference,
				OrderID:   order.ID.String(),
				Message:   message,
			}.ToMap(),
			DedupeKey: reference + ":" + events.EventPaymentFailed,
		})
	})
	if err != nil {
		return order, false, err
	}

	if !verified {
		s.log.Warn("transaction not verified",
			zap.String("reference", reference),
			zap.String("delivery", delivery),
			zap.String("message", message),
		)
		s.metrics.VerificationFailed(ctx, delivery)
	}
	return order, verified, nil
}

// amountMatches compares the provider-reported amount against the total
// recorded at initiation. A missing recorded total counts as a match.
func (s *Service) amountMatches(ctx context.Context, order *orderdomain.Order, reportedMinorUnits int64) (bool, string) {
	raw, err := s.orders.Attribute(ctx, s.db, order.ID, paymentdomain.AttributeOrderTotalSent)
	if err != nil || strings.TrimSpace(raw) == "" {
		return true, ""
	}
	sent, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return true, ""
	}
	expected := minorUnits(sent)
	if expected == reportedMinorUnits {
		return true, ""
	}
	return false, fmt.Sprintf("Amount mismatch: sent %d, provider reported %d.", expected, reportedMinorUnits)
}

func (s *Service) CancelReturn(ctx context.Context, storeID, customerID int64) (paymentdomain.CheckoutRedirect, error) {
	if storeID <= 0 || customerID <= 0 {
		return paymentdomain.CheckoutRedirect{URL: s.storeBaseURL}, nil
	}

	order, err := s.orders.LatestForCustomer(ctx, s.db, storeID, customerID)
	if err != nil {
		return paymentdomain.CheckoutRedirect{}, err
	}
	if order == nil {
		return paymentdomain.CheckoutRedirect{URL: s.storeBaseURL}, nil
	}
	return paymentdomain.CheckoutRedirect{URL: s.orderDetailsURL(order)}, nil
}

func (s *Service) HandlingFee(ctx context.Context, storeID int64, amount float64) (float64, error) {
	settings, err := s.settings.Load(ctx, storeID)
	if err != nil {
		return 0, err
	}
	if settings.AdditionalFeePercentage {
		return round2(amount * settings.AdditionalFee / 100), nil
	}
	return round2(settings.AdditionalFee), nil
}

func (s *Service) completedURL(order *orderdomain.Order) string {
	return s.storeBaseURL + "/checkout/completed/" + order.ID.String()
}

func (s *Service) orderDetailsURL(order *orderdomain.Order) string {
	return s.storeBaseURL + "/orderdetails/" + order.ID.String()
}

func (s *Service) fallbackURL(returnTo string) string {
	returnTo = strings.TrimSpace(returnTo)
	if returnTo == "" {
		return s.storeBaseURL + "/checkout"
	}
	return returnTo
}
