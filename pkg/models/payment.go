package models

import (
	"time"

	"github.com/flaboy/aira-checkout/pkg/migration"
	"github.com/shopspring/decimal"
)

type PaymentRecord struct {
	ID      uint `gorm:"primaryKey"`
	OrderID uint `gorm:"index;not null"`

	// 外部支付网关的意向ID
	GatewayIntentID string `gorm:"size:128;index"`

	Status string `gorm:"size:32"` // succeeded, processing等，持久化时网关的状态

	Amount   decimal.Decimal `gorm:"type:decimal(12,2)"`
	Currency string          `gorm:"size:10;default:'usd'"` // 小写货币代码

	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

func (p *PaymentRecord) TableName() string {
	return "ar_payments"
}

func init() {
	migration.RegisterAutoMigrateModels(&PaymentRecord{})
}
