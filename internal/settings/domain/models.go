package domain

import "time"

// Setting is one name/value row scoped to a store. Store 0 holds the
// defaults; any other store id overrides individual names.
type Setting struct {
	StoreID   int64     `gorm:"primaryKey"`
	Name      string    `gorm:"primaryKey;type:text"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Setting) TableName() string { return "payment_settings" }

// DefaultStoreScope is the store id carrying the default settings.
const DefaultStoreScope int64 = 0

const (
	NameUseSandbox              = "use_sandbox"
	NameLiveSecretKey           = "live_secret_key"
	NameTestSecretKey           = "test_secret_key"
	NamePassProductDetails      = "pass_product_details"
	NameAdditionalFee           = "additional_fee"
	NameAdditionalFeePercentage = "additional_fee_percentage"
	NameStrictAmountCheck       = "strict_amount_check"
	NameCurrency                = "currency"
)

// Settings is the resolved gateway configuration for one store scope.
type Settings struct {
	UseSandbox              bool    `json:"use_sandbox"`
	LiveSecretKey           string  `json:"live_secret_key"`
	TestSecretKey           string  `json:"test_secret_key"`
	PassProductDetails      bool    `json:"pass_product_details"`
	AdditionalFee           float64 `json:"additional_fee"`
	AdditionalFeePercentage bool    `json:"additional_fee_percentage"`
	StrictAmountCheck       bool    `json:"strict_amount_check"`
	Currency                string  `json:"currency"`
}

// SecretKey returns the active provider key. Exactly one of the two keys is
// in play, selected by the sandbox flag.
func (s Settings) SecretKey() string {
	if s.UseSandbox {
		return s.TestSecretKey
	}
	return s.LiveSecretKey
}

// Overrides flags which fields a non-default store scope carries itself.
type Overrides struct {
	UseSandbox              bool `json:"use_sandbox"`
	LiveSecretKey           bool `json:"live_secret_key"`
	TestSecretKey           bool `json:"test_secret_key"`
	PassProductDetails      bool `json:"pass_product_details"`
	AdditionalFee           bool `json:"additional_fee"`
	AdditionalFeePercentage bool `json:"additional_fee_percentage"`
	StrictAmountCheck       bool `json:"strict_amount_check"`
	Currency                bool `json:"currency"`
}
