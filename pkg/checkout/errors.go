package checkout

import "fmt"

type ErrorKind string

const (
	ErrorKindValidation         ErrorKind = "validation"
	ErrorKindGatewayTransport   ErrorKind = "gateway_transport"
	ErrorKindGatewayConfirm     ErrorKind = "gateway_confirm"
	ErrorKindPersistence        ErrorKind = "persistence"
	ErrorKindPartialPersistence ErrorKind = "partial_persistence"
)

// Error 结账错误，Message保留触发错误的网关/存储原始信息用于诊断
type Error struct {
	Kind     ErrorKind
	IntentID string
	Message  string
}

func (e *Error) Error() string {
	if e.IntentID != "" {
		return fmt.Sprintf("checkout %s error (payment intent %s): %s", e.Kind, e.IntentID, e.Message)
	}
	return fmt.Sprintf("checkout %s error: %s", e.Kind, e.Message)
}

// UserMessage 面向用户的提示。确认成功之后的持久化失败意味着款项已被扣取，
// 提示绝不能让用户以为支付失败，而是引导其携带意向ID联系客服
func (e *Error) UserMessage() string {
	switch e.Kind {
	case ErrorKindPersistence, ErrorKindPartialPersistence:
		return fmt.Sprintf(
			"Your payment was received, but we could not finish creating your order. "+
				"Please contact support and reference payment %s.", e.IntentID)
	default:
		return e.Message
	}
}
