package models

import (
	"time"

	"github.com/flaboy/aira-checkout/pkg/migration"
	"github.com/shopspring/decimal"
)

type OrderItem struct {
	ID          uint            `gorm:"primaryKey"`
	OrderID     uint            `gorm:"index;not null"`
	ProductID   string          `gorm:"size:64"`
	ProductName string          `gorm:"size:255"`
	Quantity    int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2)"`
	SellerID    string          `gorm:"size:64"`

	CreatedAt time.Time
}

func (i *OrderItem) TableName() string {
	return "ar_checkout_order_items"
}

func init() {
	migration.RegisterAutoMigrateModels(&OrderItem{})
}
