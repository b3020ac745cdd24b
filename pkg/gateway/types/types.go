package types

import (
	"fmt"
	"time"
)

// 支付意向生命周期状态，由外部网关负责推进，这里只做观察
const (
	IntentStatusRequiresPaymentMethod = "requires_payment_method"
	IntentStatusRequiresConfirmation  = "requires_confirmation"
	IntentStatusProcessing            = "processing"
	IntentStatusSucceeded             = "succeeded"
	IntentStatusRequiresAction        = "requires_action"
	IntentStatusCanceled              = "canceled"
)

// 意向创建的网络超时
const RequestTimeout = 15 * time.Second

type CreateIntentRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type CreateIntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
	Error           string `json:"error,omitempty"`
}

// IntentHandle 一次结账尝试持有的意向句柄，ID在尝试生命周期内不变
type IntentHandle struct {
	PaymentIntentID string `json:"payment_intent_id"`
	ClientSecret    string `json:"client_secret"`
}

// BillingDetails 确认时提交给网关的账单信息
type BillingDetails struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// ConfirmResult 网关确认调用的结果，Status 取意向状态集
type ConfirmResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// TransportError 意向创建的统一错误：传输失败、非成功响应、
// 响应缺少clientSecret都折叠成这一种错误，不存在部分成功的结果
type TransportError struct {
	Message string
}

func (e *TransportError) Error() string {
	return e.Message
}

func NewTransportError(format string, args ...interface{}) *TransportError {
	return &TransportError{Message: fmt.Sprintf(format, args...)}
}
