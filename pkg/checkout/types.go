package checkout

import (
	"github.com/flaboy/aira-checkout/pkg/gateway/types"
	"github.com/flaboy/aira-checkout/pkg/models"
	"github.com/shopspring/decimal"
)

type CheckoutItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	SellerID    string          `json:"seller_id,omitempty"`
}

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// CheckoutContext 一次结账尝试的输入，由调用方提供一次
// 除账单地址可在确认前覆盖外，其余字段只读
type CheckoutContext struct {
	Items           []CheckoutItem  `json:"items"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Currency        string          `json:"currency"`
	CustomerID      string          `json:"customer_id"`
	CustomerEmail   string          `json:"customer_email"`
	CustomerName    string          `json:"customer_name"`
	ShippingAddress Address         `json:"shipping_address"`
	BillingAddress  *Address        `json:"billing_address,omitempty"`
}

// IntentCreator 意向创建依赖，生产实现为gateway.Client()
type IntentCreator interface {
	CreatePaymentIntent(amountMinor int64, currency string, metadata map[string]string) (*types.IntentHandle, error)
}

// Confirmer 网关确认操作，由调用方提供。确认可能包含带外的二次验证，
// 超时契约由网关持有，这里不附加应用层超时
type Confirmer interface {
	Confirm(handle *types.IntentHandle, billing *types.BillingDetails) (*types.ConfirmResult, error)
}

// OrderStore 订单图持久化依赖，生产实现为orders.Store
type OrderStore interface {
	Persist(order *models.Order, items []models.OrderItem, payment *models.PaymentRecord) (uint, error)
}
