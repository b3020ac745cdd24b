package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutSucceededEvent 结账成功事件：订单图完整落库后发出
type CheckoutSucceededEvent struct {
	AttemptID       string           `json:"attempt_id"`
	OrderID         uint             `json:"order_id"`
	OrderHashID     string           `json:"order_hash_id"`
	OrderNumber     string           `json:"order_number"`
	PaymentIntentID string           `json:"payment_intent_id"`
	Amount          *decimal.Decimal `json:"amount"`
	Currency        string           `json:"currency"`
	CustomerID      string           `json:"customer_id"`
	CompletedAt     time.Time        `json:"completed_at"`
}

// CheckoutFailedEvent 结账失败事件，Kind对应错误分类
type CheckoutFailedEvent struct {
	AttemptID       string    `json:"attempt_id"`
	PaymentIntentID string    `json:"payment_intent_id"`
	Kind            string    `json:"kind"`
	Message         string    `json:"message"`
	FailedAt        time.Time `json:"failed_at"`
}
