package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/StoicRounin/paystack-gateway/internal/config"
	orderdomain "github.com/StoicRounin/paystack-gateway/internal/order/domain"
	paymentdomain "github.com/StoicRounin/paystack-gateway/internal/payment/domain"
	settingsdomain "github.com/StoicRounin/paystack-gateway/internal/settings/domain"
)

// RequestBuilder assembles the transaction-initialize payload for an order.
// All money values round to two decimals before they are formatted or summed.
// The charged amount is always the rounded order total in minor units; the
// per-line breakdown only shapes the metadata and the recorded sent total.
type RequestBuilder struct {
	publicBaseURL string
	storeBaseURL  string
}

func NewRequestBuilder(cfg config.Config) *RequestBuilder {
	return &RequestBuilder{
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		storeBaseURL:  strings.TrimRight(cfg.StoreBaseURL, "/"),
	}
}

// BuiltRequest pairs the outbound payload with the major-unit total it
// represents. The total is persisted on the order for later cross-checks.
type BuiltRequest struct {
	Init      paymentdomain.TransactionInitRequest
	SentTotal float64
}

// Build produces the initialize request for an order under the given store
// settings. With product details enabled the total is recomputed from the
// rounded per-line prices; otherwise the rounded order total is sent as one
// line.
func (b *RequestBuilder) Build(order *orderdomain.Order, settings settingsdomain.Settings) (BuiltRequest, error) {
	if order == nil {
		return BuiltRequest{}, paymentdomain.ErrNilOrder
	}

	metadata := map[string]string{
		"currency_code": settings.Currency,
		"invoice":       order.CustomOrderNumber,
		"custom":        order.OrderGUID,
		"return":        b.publicBaseURL + "/plugins/paystack/callback",
		"notify_url":    b.publicBaseURL + "/plugins/paystack/notify",
		"cancel_return": fmt.Sprintf("%s/plugins/paystack/cancel?store_id=%d&customer_id=%d", b.publicBaseURL, order.StoreID, order.CustomerID),
	}
	b.addAddress(metadata, order)

	var sentTotal float64
	if settings.PassProductDetails {
		sentTotal = b.addItemDetails(metadata, order)
	} else {
		sentTotal = round2(order.OrderTotal)
		metadata["item_name_1"] = "Order number " + order.CustomOrderNumber
		metadata["amount_1"] = formatAmount(sentTotal)
		metadata["quantity_1"] = "1"
	}

	email := strings.TrimSpace(order.CustomerEmail)
	if email == "" {
		email = order.BillingAddress().Email
	}

	return BuiltRequest{
		Init: paymentdomain.TransactionInitRequest{
			Email:            email,
			Reference:        order.OrderGUID,
			AmountMinorUnits: minorUnits(order.OrderTotal),
			Currency:         settings.Currency,
			Metadata:         metadata,
		},
		SentTotal: sentTotal,
	}, nil
}

// addItemDetails writes one metadata line per order line and returns the
// rounded cart total. When per-line rounding overshoots the order total, the
// difference surfaces as discount_amount_cart and comes off the total.
func (b *RequestBuilder) addItemDetails(metadata map[string]string, order *orderdomain.Order) float64 {
	var cartTotal float64
	var roundedCartTotal float64
	line := 0

	addLine := func(name string, amount float64, quantity int) {
		line++
		metadata["item_name_"+strconv.Itoa(line)] = name
		metadata["amount_"+strconv.Itoa(line)] = formatAmount(amount)
		metadata["quantity_"+strconv.Itoa(line)] = strconv.Itoa(quantity)
	}

	for _, item := range order.Items {
		roundedUnitPrice := round2(item.UnitPriceExclTax)
		addLine(item.ProductName, roundedUnitPrice, item.Quantity)
		cartTotal += item.PriceExclTax
		roundedCartTotal += roundedUnitPrice * float64(item.Quantity)
	}

	for _, attribute := range order.CheckoutAttributes {
		roundedPrice := round2(attribute.Price)
		if roundedPrice > 0 {
			addLine(attribute.Name, roundedPrice, 1)
		}
		cartTotal += attribute.Price
		roundedCartTotal += roundedPrice
	}

	if roundedShipping := round2(order.ShippingExclTax); roundedShipping > 0 {
		addLine("Shipping fee", roundedShipping, 1)
		cartTotal += order.ShippingExclTax
		roundedCartTotal += roundedShipping
	}

	if roundedFee := round2(order.PaymentFeeExclTax); roundedFee > 0 {
		addLine("Payment method fee", roundedFee, 1)
		cartTotal += order.PaymentFeeExclTax
		roundedCartTotal += roundedFee
	}

	if roundedTax := round2(order.OrderTax); roundedTax > 0 {
		addLine("Tax amount", roundedTax, 1)
		cartTotal += order.OrderTax
		roundedCartTotal += roundedTax
	}

	if cartTotal > order.OrderTotal {
		discount := round2(cartTotal - order.OrderTotal)
		roundedCartTotal -= discount
		metadata["discount_amount_cart"] = formatAmount(discount)
	}

	return round2(roundedCartTotal)
}

func (b *RequestBuilder) addAddress(metadata map[string]string, order *orderdomain.Order) {
	if order.ShippingRequired {
		metadata["no_shipping"] = "2"
		metadata["address_override"] = "1"
	} else {
		metadata["no_shipping"] = "1"
		metadata["address_override"] = "0"
	}

	// Absent fields stay empty rather than dropping the keys.
	address := order.BillingAddress()
	metadata["first_name"] = address.FirstName
	metadata["last_name"] = address.LastName
	metadata["address1"] = address.Address1
	metadata["address2"] = address.Address2
	metadata["city"] = address.City
	metadata["state"] = address.StateProvince
	metadata["country"] = address.Country
	metadata["zip"] = address.ZipPostalCode
	metadata["email"] = address.Email
	metadata["phonenumber"] = address.PhoneNumber
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func formatAmount(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

// minorUnits converts a rounded major-unit amount to the provider's minor
// currency unit.
func minorUnits(value float64) int64 {
	return int64(math.Round(round2(value) * 100))
}
