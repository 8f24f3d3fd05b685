package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	orderdomain "github.com/StoicRounin/paystack-gateway/internal/order/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct{}

func Provide() orderdomain.Repository {
	return &repository{}
}

func (r *repository) FindByGUID(ctx context.Context, db *gorm.DB, guid string) (*orderdomain.Order, error) {
	guid = strings.TrimSpace(guid)
	if guid == "" {
		return nil, orderdomain.ErrInvalidOrder
	}

	var order orderdomain.Order
	err := db.WithContext(ctx).
		Preload("Items").
		Where("order_guid = ?", guid).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *repository) LatestForCustomer(ctx context.Context, db *gorm.DB, storeID, customerID int64) (*orderdomain.Order, error) {
	var order orderdomain.Order
	err := db.WithContext(ctx).
		Where("store_id = ? AND customer_id = ?", storeID, customerID).
		Order("created_at DESC").
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *repository) AddNote(ctx context.Context, db *gorm.DB, note *orderdomain.OrderNote) error {
	if note == nil || note.OrderID == 0 {
		return orderdomain.ErrInvalidOrder
	}
	return db.WithContext(ctx).Create(note).Error
}

func (r *repository) SaveAttribute(ctx context.Context, db *gorm.DB, orderID snowflake.ID, name, value string, now time.Time) error {
	name = strings.TrimSpace(name)
	if orderID == 0 || name == "" {
		return orderdomain.ErrInvalidOrder
	}
	attribute := orderdomain.OrderAttribute{
		OrderID:   orderID,
		Name:      name,
		Value:     value,
		UpdatedAt: now,
	}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&attribute).Error
}

func (r *repository) Attribute(ctx context.Context, db *gorm.DB, orderID snowflake.ID, name string) (string, error) {
	var attribute orderdomain.OrderAttribute
	err := db.WithContext(ctx).
		Where("order_id = ? AND name = ?", orderID, strings.TrimSpace(name)).
		First(&attribute).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return attribute.Value, nil
}

func (r *repository) SetAuthorization(ctx context.Context, db *gorm.DB, orderID snowflake.ID, transactionID, code string, now time.Time) error {
	transactionID = strings.TrimSpace(transactionID)
	if orderID == 0 || transactionID == "" {
		return orderdomain.ErrInvalidOrder
	}
	return db.WithContext(ctx).Exec(
		`UPDATE orders
		 SET authorization_transaction_id = ?, authorization_code = ?, updated_at = ?
		 WHERE id = ?
		   AND (authorization_transaction_id = '' OR authorization_transaction_id = ?)`,
		transactionID,
		code,
		now,
		orderID,
		transactionID,
	).Error
}

func (r *repository) MarkPaid(ctx context.Context, db *gorm.DB, orderID snowflake.ID, paidAt time.Time) (bool, error) {
	if orderID == 0 {
		return false, orderdomain.ErrInvalidOrder
	}
	result := db.WithContext(ctx).Exec(
		`UPDATE orders
		 SET payment_status = ?, paid_at = ?, updated_at = ?
		 WHERE id = ? AND paid_at IS NULL`,
		orderdomain.PaymentStatusPaid,
		paidAt,
		paidAt,
		orderID,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
