package service

import (
	"testing"

	"github.com/StoicRounin/paystack-gateway/internal/config"
	orderdomain "github.com/StoicRounin/paystack-gateway/internal/order/domain"
	paymentdomain "github.com/StoicRounin/paystack-gateway/internal/payment/domain"
	settingsdomain "github.com/StoicRounin/paystack-gateway/internal/settings/domain"
	"gorm.io/datatypes"
)

func testBuilder() *RequestBuilder {
	cfg := config.Config{
		PublicBaseURL: "https://pay.example.com/",
		StoreBaseURL:  "https://shop.example.com",
	}
	return NewRequestBuilder(cfg)
}

func testSettings() settingsdomain.Settings {
	return settingsdomain.Settings{Currency: "GHS"}
}

func testOrder() *orderdomain.Order {
	return &orderdomain.Order{
		ID:                42,
		OrderGUID:         "07a4c8e6-4f0d-4b7e-9a51-6f2d3c1b0a99",
		CustomOrderNumber: "1042",
		StoreID:           3,
		CustomerID:        77,
		CustomerEmail:     "buyer@example.com",
		OrderTotal:        1999.995,
		ShippingRequired:  true,
		ShippingAddress: datatypes.NewJSONType(orderdomain.Address{
			FirstName:     "Ama",
			LastName:      "Mensah",
			Email:         "ama@example.com",
			PhoneNumber:   "+233200000000",
			Address1:      "12 High St",
			City:          "Accra",
			StateProvince: "Greater Accra",
			Country:       "GH",
			ZipPostalCode: "GA-100",
		}),
	}
}

func TestBuildOrderTotalMode(t *testing.T) {
	builder := testBuilder()
	order := testOrder()

	built, err := builder.Build(order, testSettings())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	// 1999.995 rounds up to 2000.00 before the minor-unit conversion.
	if built.SentTotal != 2000 {
		t.Errorf("sent total = %v, want 2000", built.SentTotal)
	}
	if built.Init.AmountMinorUnits != 200000 {
		t.Errorf("amount = %d, want 200000", built.Init.AmountMinorUnits)
	}
	if built.Init.Reference != order.OrderGUID {
		t.Errorf("reference = %q", built.Init.Reference)
	}
	if built.Init.Email != "buyer@example.com" {
		t.Errorf("email = %q", built.Init.Email)
	}

	meta := built.Init.Metadata
	if meta["amount_1"] != "2000.00" {
		t.Errorf("amount_1 = %q", meta["amount_1"])
	}
	if meta["item_name_1"] != "Order number 1042" {
		t.Errorf("item_name_1 = %q", meta["item_name_1"])
	}
	if meta["invoice"] != "1042" || meta["custom"] != order.OrderGUID {
		t.Errorf("invoice/custom = %q/%q", meta["invoice"], meta["custom"])
	}
	if meta["currency_code"] != "GHS" {
		t.Errorf("currency_code = %q", meta["currency_code"])
	}
	if meta["return"] != "https://pay.example.com/plugins/paystack/callback" {
		t.Errorf("return = %q", meta["return"])
	}
	if meta["notify_url"] != "https://pay.example.com/plugins/paystack/notify" {
		t.Errorf("notify_url = %q", meta["notify_url"])
	}
	if meta["cancel_return"] != "https://pay.example.com/plugins/paystack/cancel?store_id=3&customer_id=77" {
		t.Errorf("cancel_return = %q", meta["cancel_return"])
	}
}

func TestBuildItemizedModeSumsRoundedLines(t *testing.T) {
	builder := testBuilder()
	order := testOrder()
	order.OrderTotal = 125.50
	order.OrderTax = 5.25
	order.ShippingExclTax = 10
	order.PaymentFeeExclTax = 1.50
	order.Items = []orderdomain.OrderItem{
		{ProductName: "Blue mug", Quantity: 2, UnitPriceExclTax: 24.125, PriceExclTax: 48.25},
		{ProductName: "Tea sampler", Quantity: 1, UnitPriceExclTax: 55.375, PriceExclTax: 55.375},
	}
	order.CheckoutAttributes = datatypes.NewJSONSlice([]orderdomain.CheckoutAttribute{
		{Name: "Gift wrap", Price: 5.10},
	})

	settings := testSettings()
	settings.PassProductDetails = true

	built, err := builder.Build(order, settings)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	meta := built.Init.Metadata
	if meta["item_name_1"] != "Blue mug" || meta["amount_1"] != "24.13" || meta["quantity_1"] != "2" {
		t.Errorf("line 1 = %q %q %q", meta["item_name_1"], meta["amount_1"], meta["quantity_1"])
	}
	if meta["item_name_2"] != "Tea sampler" || meta["amount_2"] != "55.38" {
		t.Errorf("line 2 = %q %q", meta["item_name_2"], meta["amount_2"])
	}
	if meta["item_name_3"] != "Gift wrap" || meta["amount_3"] != "5.10" {
		t.Errorf("line 3 = %q %q", meta["item_name_3"], meta["amount_3"])
	}
	if meta["item_name_4"] != "Shipping fee" || meta["amount_4"] != "10.00" {
		t.Errorf("line 4 = %q %q", meta["item_name_4"], meta["amount_4"])
	}
	if meta["item_name_5"] != "Payment method fee" || meta["amount_5"] != "1.50" {
		t.Errorf("line 5 = %q %q", meta["item_name_5"], meta["amount_5"])
	}
	if meta["item_name_6"] != "Tax amount" || meta["amount_6"] != "5.25" {
		t.Errorf("line 6 = %q %q", meta["item_name_6"], meta["amount_6"])
	}

	// Rounded line sum: 24.13*2 + 55.38 + 5.10 + 10.00 + 1.50 + 5.25 = 125.49.
	// The unrounded cart total (125.475) stays under the order total, so no
	// discount applies.
	if _, ok := meta["discount_amount_cart"]; ok {
		t.Errorf("unexpected discount_amount_cart = %q", meta["discount_amount_cart"])
	}
	if built.SentTotal != 125.49 {
		t.Errorf("sent total = %v, want 125.49", built.SentTotal)
	}
	// The charge follows the order total, not the per-line sum.
	if built.Init.AmountMinorUnits != 12550 {
		t.Errorf("amount = %d, want 12550", built.Init.AmountMinorUnits)
	}
}

func TestBuildChargesRoundedOrderTotal(t *testing.T) {
	builder := testBuilder()
	order := testOrder()
	order.OrderTotal = 10.01
	order.Items = []orderdomain.OrderItem{
		{ProductName: "Sticker", Quantity: 1, UnitPriceExclTax: 10.004, PriceExclTax: 10.004},
	}

	settings := testSettings()
	settings.PassProductDetails = true

	built, err := builder.Build(order, settings)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	// Per-line rounding sums to 10.00, but the customer owes the order
	// total of 10.01.
	if built.SentTotal != 10 {
		t.Errorf("sent total = %v, want 10", built.SentTotal)
	}
	if built.Init.AmountMinorUnits != 1001 {
		t.Errorf("amount = %d, want 1001", built.Init.AmountMinorUnits)
	}
}

func TestBuildItemizedModeAppliesCartDiscount(t *testing.T) {
	builder := testBuilder()
	order := testOrder()
	order.OrderTotal = 90
	order.Items = []orderdomain.OrderItem{
		{ProductName: "Kettle", Quantity: 1, UnitPriceExclTax: 100, PriceExclTax: 100},
	}

	settings := testSettings()
	settings.PassProductDetails = true

	built, err := builder.Build(order, settings)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	meta := built.Init.Metadata
	if meta["discount_amount_cart"] != "10.00" {
		t.Errorf("discount_amount_cart = %q", meta["discount_amount_cart"])
	}
	if built.SentTotal != 90 {
		t.Errorf("sent total = %v, want 90", built.SentTotal)
	}
	if built.Init.AmountMinorUnits != 9000 {
		t.Errorf("amount = %d, want 9000", built.Init.AmountMinorUnits)
	}
}

func TestBuildAddressMetadata(t *testing.T) {
	builder := testBuilder()
	order := testOrder()

	built, err := builder.Build(order, testSettings())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	meta := built.Init.Metadata
	if meta["no_shipping"] != "2" || meta["address_override"] != "1" {
		t.Errorf("shipping flags = %q/%q", meta["no_shipping"], meta["address_override"])
	}
	if meta["first_name"] != "Ama" || meta["city"] != "Accra" || meta["zip"] != "GA-100" {
		t.Errorf("address fields = %q/%q/%q", meta["first_name"], meta["city"], meta["zip"])
	}
	if meta["phonenumber"] != "+233200000000" {
		t.Errorf("phonenumber = %q", meta["phonenumber"])
	}

	order.ShippingRequired = false
	built, err = builder.Build(order, testSettings())
	if err != nil {
		t.Fatalf("build without shipping: %v", err)
	}
	meta = built.Init.Metadata
	if meta["no_shipping"] != "1" || meta["address_override"] != "0" {
		t.Errorf("shipping flags = %q/%q", meta["no_shipping"], meta["address_override"])
	}
	if meta["first_name"] != "Ama" {
		t.Errorf("first_name = %q", meta["first_name"])
	}
}

func TestBuildEmitsEmptyAddressFields(t *testing.T) {
	builder := testBuilder()
	order := testOrder()
	order.ShippingRequired = false
	order.ShippingAddress = datatypes.NewJSONType(orderdomain.Address{})

	built, err := builder.Build(order, testSettings())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	meta := built.Init.Metadata
	for _, key := range []string{"first_name", "last_name", "address1", "address2", "city", "state", "country", "zip", "email", "phonenumber"} {
		value, ok := meta[key]
		if !ok {
			t.Errorf("missing address key %q", key)
			continue
		}
		if value != "" {
			t.Errorf("%s = %q, want empty", key, value)
		}
	}
}

func TestBuildNilOrder(t *testing.T) {
	if _, err := testBuilder().Build(nil, testSettings()); err != paymentdomain.ErrNilOrder {
		t.Errorf("err = %v, want ErrNilOrder", err)
	}
}
