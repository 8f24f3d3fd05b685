package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	// FindByGUID resolves an order by its provider-facing reference.
	// Returns nil without error when no order matches.
	FindByGUID(ctx context.Context, db *gorm.DB, guid string) (*Order, error)
	// LatestForCustomer returns the customer's most recent order in the
	// store, or nil when none exists.
	LatestForCustomer(ctx context.Context, db *gorm.DB, storeID, customerID int64) (*Order, error)
	AddNote(ctx context.Context, db *gorm.DB, note *OrderNote) error
	// SaveAttribute upserts a generic attribute value on the order.
	SaveAttribute(ctx context.Context, db *gorm.DB, orderID snowflake.ID, name, value string, now time.Time) error
	Attribute(ctx context.Context, db *gorm.DB, orderID snowflake.ID, name string) (string, error)
	// SetAuthorization records the provider authorization once. The write
	// is compare-and-set keyed by the transaction id, so a redelivery with
	// the same reference is a no-op and a conflicting one changes nothing.
	SetAuthorization(ctx context.Context, db *gorm.DB, orderID snowflake.ID, transactionID, code string, now time.Time) error
	// MarkPaid performs the one-way paid transition. Reports whether this
	// call transitioned the order; already-paid orders return false, nil.
	MarkPaid(ctx context.Context, db *gorm.DB, orderID snowflake.ID, paidAt time.Time) (bool, error)
}

var (
	ErrInvalidOrder = errors.New("invalid_order")
)
