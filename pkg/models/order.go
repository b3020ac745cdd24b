package models

import (
	"encoding/json"
	"time"

	"github.com/flaboy/aira-checkout/pkg/migration"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type Order struct {
	ID     uint        `gorm:"primaryKey"`
	UserID string      `gorm:"size:64;index"`
	Status OrderStatus `gorm:"size:20;default:'pending'"`

	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2)"`

	// 收货地址JSON，由结账上下文原样传入
	ShippingAddress json.RawMessage `gorm:"type:text"`

	OrderNumber string `gorm:"size:64;uniqueIndex"`

	// 支付意向ID，订单创建的幂等键
	PaymentIntentID string `gorm:"size:128;uniqueIndex"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (o *Order) TableName() string {
	return "ar_checkout_orders"
}

func init() {
	migration.RegisterAutoMigrateModels(&Order{})
}
