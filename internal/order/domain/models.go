package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// PaymentStatus values for an order. The transition is one-way.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// Address is the host platform's address projection, stored as JSON on the
// order. Absent fields stay empty.
type Address struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phone_number"`
	Address1      string `json:"address1"`
	Address2      string `json:"address2"`
	City          string `json:"city"`
	StateProvince string `json:"state_province"`
	Country       string `json:"country"`
	ZipPostalCode string `json:"zip_postal_code"`
}

// CheckoutAttribute is a priced attribute the host already resolved for the
// order (gift wrap and the like).
type CheckoutAttribute struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Order is the host platform's order as this gateway sees it. The GUID is
// the provider-facing transaction reference.
type Order struct {
	ID                         snowflake.ID                          `gorm:"primaryKey"`
	OrderGUID                  string                                `gorm:"column:order_guid;type:text;not null;uniqueIndex"`
	CustomOrderNumber          string                                `gorm:"type:text;not null"`
	StoreID                    int64                                 `gorm:"not null;index:idx_orders_store_customer"`
	CustomerID                 int64                                 `gorm:"not null;index:idx_orders_store_customer"`
	CustomerEmail              string                                `gorm:"type:text;not null;default:''"`
	Currency                   string                                `gorm:"type:text;not null;default:''"`
	OrderTotal                 float64                               `gorm:"not null;default:0"`
	OrderTax                   float64                               `gorm:"not null;default:0"`
	ShippingExclTax            float64                               `gorm:"not null;default:0"`
	PaymentFeeExclTax          float64                               `gorm:"not null;default:0"`
	ShippingRequired           bool                                  `gorm:"not null;default:true"`
	PickupInStore              bool                                  `gorm:"not null;default:false"`
	ShippingAddress            datatypes.JSONType[Address]           `gorm:"type:jsonb"`
	PickupAddress              datatypes.JSONType[Address]           `gorm:"type:jsonb"`
	CheckoutAttributes         datatypes.JSONSlice[CheckoutAttribute] `gorm:"type:jsonb"`
	PaymentStatus              string                                `gorm:"type:text;not null;default:'pending'"`
	PaidAt                     *time.Time                            `gorm:""`
	AuthorizationTransactionID string                                `gorm:"type:text;not null;default:''"`
	AuthorizationCode          string                                `gorm:"type:text;not null;default:''"`
	CreatedAt                  time.Time                             `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt                  time.Time                             `gorm:"not null;default:CURRENT_TIMESTAMP"`

	Items []OrderItem `gorm:"foreignKey:OrderID"`
}

// TableName sets the database table name.
func (Order) TableName() string { return "orders" }

// IsPaid reports whether the order already completed its paid transition.
func (o *Order) IsPaid() bool {
	return o != nil && o.PaidAt != nil
}

// BillingAddress picks the address the provider metadata should carry,
// depending on the order's delivery mode.
func (o *Order) BillingAddress() Address {
	if o == nil {
		return Address{}
	}
	if o.PickupInStore {
		return o.PickupAddress.Data()
	}
	return o.ShippingAddress.Data()
}

// OrderItem is one purchased line of an order.
type OrderItem struct {
	ID               snowflake.ID `gorm:"primaryKey"`
	OrderID          snowflake.ID `gorm:"not null;index"`
	ProductName      string       `gorm:"type:text;not null"`
	Quantity         int          `gorm:"not null;default:1"`
	UnitPriceExclTax float64      `gorm:"not null;default:0"`
	PriceExclTax     float64      `gorm:"not null;default:0"`
}

// TableName sets the database table name.
func (OrderItem) TableName() string { return "order_items" }

// OrderNote is one append-only note on an order. Notes written by this
// gateway are never shown to the customer.
type OrderNote struct {
	ID                snowflake.ID `gorm:"primaryKey"`
	OrderID           snowflake.ID `gorm:"not null;index"`
	Note              string       `gorm:"type:text;not null"`
	DisplayToCustomer bool         `gorm:"not null;default:false"`
	CreatedAt         time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (OrderNote) TableName() string { return "order_notes" }

// OrderAttribute is a generic name/value side channel on an order.
type OrderAttribute struct {
	OrderID   snowflake.ID `gorm:"primaryKey"`
	Name      string       `gorm:"primaryKey;type:text"`
	Value     string       `gorm:"type:text;not null"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (OrderAttribute) TableName() string { return "order_attributes" }
