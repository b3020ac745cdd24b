package checkout

import (
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/flaboy/aira-checkout/pkg/currency"
	"github.com/flaboy/aira-checkout/pkg/database"
	"github.com/flaboy/aira-checkout/pkg/errors"
	"github.com/flaboy/aira-checkout/pkg/events"
	"github.com/flaboy/aira-checkout/pkg/gateway"
	gwtypes "github.com/flaboy/aira-checkout/pkg/gateway/types"
	"github.com/flaboy/aira-checkout/pkg/models"
	"github.com/flaboy/aira-checkout/pkg/orders"
	"github.com/flaboy/aira-checkout/pkg/types"
	"github.com/google/uuid"
)

// Orchestrator 驱动一次结账尝试的状态机：
// Idle → Initializing → Ready → Confirming → Persisting → {Succeeded | Failed}
// 状态只通过显式的触发方法推进，与任何渲染周期无关
type Orchestrator struct {
	mu        sync.Mutex
	state     State
	attemptID string
	checkout  *CheckoutContext
	handle    *gwtypes.IntentHandle
	orderID   uint
	lastErr   *Error
	cancelled bool
	listener  PhaseListener

	intents   IntentCreator
	confirmer Confirmer
	store     OrderStore
}

// New 创建一次结账尝试的编排器。confirmer由调用方提供，
// 意向创建和持久化默认使用全局网关客户端与订单存储
func New(checkout *CheckoutContext, confirmer Confirmer) *Orchestrator {
	return &Orchestrator{
		state:     StateIdle,
		attemptID: uuid.NewString(),
		checkout:  checkout,
		confirmer: confirmer,
		intents:   gateway.Client(),
		store:     orders.NewStore(database.Database()),
	}
}

// SetPhaseListener 设置相变监听器。监听器在持有内部锁时被同步调用，
// 不能再回调编排器本身
func (o *Orchestrator) SetPhaseListener(listener PhaseListener) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.listener = listener
}

// State 当前状态
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// AttemptID 本次尝试的ID
func (o *Orchestrator) AttemptID() string {
	return o.attemptID
}

// ClientSecret Ready之后可用的客户端密钥
func (o *Orchestrator) ClientSecret() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.handle == nil {
		return ""
	}
	return o.handle.ClientSecret
}

// OrderID 成功后的订单ID
func (o *Orchestrator) OrderID() uint {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.orderID
}

// LastError 最近一次导致Failed的错误
func (o *Orchestrator) LastError() *Error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}

// Cancel 放弃本次尝试。尚未返回的意向创建结果将被丢弃，不再推进状态，
// 取消不需要对网关做任何清理调用
func (o *Orchestrator) Cancel() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cancelled = true
}

// Start 开始结账尝试：换算网关金额并创建支付意向
// 每次尝试最多触发一次，重复调用是no-op，因此一次尝试最多创建一个意向
func (o *Orchestrator) Start() error {
	o.mu.Lock()
	if o.state != StateIdle {
		o.mu.Unlock()
		return nil
	}

	if err := o.validate(); err != nil {
		// 校验失败不污染状态，也绝不触达网关
		o.mu.Unlock()
		return err
	}

	o.transitionLocked(StateInitializing)
	amountMinor := currency.ToMinorUnits(o.checkout.TotalAmount, o.checkout.Currency)
	currencyLower := strings.ToLower(o.checkout.Currency)
	metadata := map[string]string{
		"attempt_id":  o.attemptID,
		"customer_id": o.checkout.CustomerID,
	}
	o.mu.Unlock()

	handle, err := o.intents.CreatePaymentIntent(amountMinor, currencyLower, metadata)

	o.mu.Lock()
	if o.cancelled {
		// 尝试已放弃，丢弃迟到的结果
		o.mu.Unlock()
		slog.Info("[Checkout] Intent result discarded after cancellation", "attemptId", o.attemptID)
		return nil
	}
	if err != nil {
		return o.failLocked(ErrorKindGatewayTransport, "", err.Error())
	}

	o.handle = handle
	o.transitionLocked(StateReady)
	o.mu.Unlock()
	return nil
}

// Submit 用户显式提交：确认支付，成功后持久化订单图
// Ready之前的提交是no-op，Confirming期间的重复提交被拒绝而不是排队
func (o *Orchestrator) Submit(billing *gwtypes.BillingDetails, sameAsShipping bool) error {
	o.mu.Lock()
	switch {
	case o.state == StateConfirming || o.state == StatePersisting:
		o.mu.Unlock()
		return errors.ErrAlreadySubmitted
	case o.state.Terminal():
		o.mu.Unlock()
		return errors.ErrAttemptTerminated
	case o.state != StateReady || o.handle == nil:
		o.mu.Unlock()
		return nil
	}

	handle := o.handle
	billing = o.resolveBilling(billing, sameAsShipping)
	o.transitionLocked(StateConfirming)
	o.mu.Unlock()

	result, err := o.confirmer.Confirm(handle, billing)

	o.mu.Lock()
	if err != nil {
		return o.failLocked(ErrorKindGatewayConfirm, handle.PaymentIntentID, err.Error())
	}
	if result.Status != gwtypes.IntentStatusSucceeded && result.Status != gwtypes.IntentStatusProcessing {
		// 非成功/非处理中的终态直接失败，不做任何持久化
		message := result.Error
		if message == "" {
			message = "payment not completed, status: " + result.Status
		}
		return o.failLocked(ErrorKindGatewayConfirm, handle.PaymentIntentID, message)
	}

	o.transitionLocked(StatePersisting)
	o.mu.Unlock()

	order, items, payment := o.buildOrderGraph(handle, result.Status)
	orderID, err := o.store.Persist(order, items, payment)

	o.mu.Lock()
	if err != nil {
		kind := ErrorKindPersistence
		var partial *orders.PartialPersistError
		if stderrors.As(err, &partial) {
			kind = ErrorKindPartialPersistence
		}
		return o.failLocked(kind, handle.PaymentIntentID, err.Error())
	}

	o.orderID = orderID
	o.transitionLocked(StateSucceeded)
	amount := o.checkout.TotalAmount
	event := &types.CheckoutSucceededEvent{
		AttemptID:       o.attemptID,
		OrderID:         orderID,
		OrderHashID:     orders.EncodeOrderID(orderID),
		OrderNumber:     order.OrderNumber,
		PaymentIntentID: handle.PaymentIntentID,
		Amount:          &amount,
		Currency:        payment.Currency,
		CustomerID:      o.checkout.CustomerID,
		CompletedAt:     time.Now(),
	}
	o.mu.Unlock()

	if err := events.EmitCheckoutSucceeded(event); err != nil {
		slog.Error("[Checkout] Failed to emit succeeded event", "attemptId", o.attemptID, "error", err)
	}
	return nil
}

// validate 提交前的客户端字段校验，校验失败绝不触达网关
// 调用时必须持有锁
func (o *Orchestrator) validate() error {
	if len(o.checkout.Items) == 0 {
		return &Error{Kind: ErrorKindValidation, Message: "your cart is empty"}
	}
	if !o.checkout.TotalAmount.IsPositive() {
		return &Error{Kind: ErrorKindValidation, Message: "order total must be greater than zero"}
	}
	if o.checkout.CustomerID == "" || o.checkout.CustomerEmail == "" {
		return &Error{Kind: ErrorKindValidation, Message: "customer information is incomplete"}
	}
	if o.checkout.ShippingAddress.Street == "" {
		return &Error{Kind: ErrorKindValidation, Message: "shipping address is required"}
	}
	if o.checkout.Currency == "" {
		o.checkout.Currency = "USD"
	}
	return nil
}

// resolveBilling 账单地址策略：勾选"与收货地址相同"时账单即收货地址，
// 否则原样使用调用方提供的覆盖值
func (o *Orchestrator) resolveBilling(billing *gwtypes.BillingDetails, sameAsShipping bool) *gwtypes.BillingDetails {
	if !sameAsShipping && billing != nil {
		return billing
	}

	address := o.checkout.ShippingAddress
	if !sameAsShipping && o.checkout.BillingAddress != nil {
		address = *o.checkout.BillingAddress
	}

	return &gwtypes.BillingDetails{
		Name:       o.checkout.CustomerName,
		Email:      o.checkout.CustomerEmail,
		Street:     address.Street,
		City:       address.City,
		State:      address.State,
		PostalCode: address.PostalCode,
		Country:    address.Country,
	}
}

// buildOrderGraph 由结账上下文构造订单、明细和支付记录
func (o *Orchestrator) buildOrderGraph(handle *gwtypes.IntentHandle, confirmStatus string) (*models.Order, []models.OrderItem, *models.PaymentRecord) {
	shippingJSON, _ := json.Marshal(o.checkout.ShippingAddress)

	order := &models.Order{
		UserID:          o.checkout.CustomerID,
		Status:          models.OrderStatusPending,
		TotalAmount:     o.checkout.TotalAmount,
		ShippingAddress: shippingJSON,
		OrderNumber:     orders.NewOrderNumber(),
		PaymentIntentID: handle.PaymentIntentID,
	}

	items := make([]models.OrderItem, 0, len(o.checkout.Items))
	for _, item := range o.checkout.Items {
		items = append(items, models.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			SellerID:    item.SellerID,
		})
	}

	payment := &models.PaymentRecord{
		GatewayIntentID: handle.PaymentIntentID,
		Status:          confirmStatus,
		Amount:          o.checkout.TotalAmount,
		Currency:        strings.ToLower(o.checkout.Currency),
	}
	if confirmStatus == gwtypes.IntentStatusSucceeded {
		now := time.Now()
		payment.CompletedAt = &now
	}

	return order, items, payment
}

// failLocked 记录错误并进入Failed终态，调用时必须持有锁，返回时释放锁
func (o *Orchestrator) failLocked(kind ErrorKind, intentID, message string) error {
	checkoutErr := &Error{Kind: kind, IntentID: intentID, Message: message}
	o.lastErr = checkoutErr
	o.transitionLocked(StateFailed)
	event := &types.CheckoutFailedEvent{
		AttemptID:       o.attemptID,
		PaymentIntentID: intentID,
		Kind:            string(kind),
		Message:         message,
		FailedAt:        time.Now(),
	}
	o.mu.Unlock()

	if err := events.EmitCheckoutFailed(event); err != nil {
		slog.Error("[Checkout] Failed to emit failed event", "attemptId", o.attemptID, "error", err)
	}
	return checkoutErr
}

// transitionLocked 推进状态并同步通知监听器，调用时必须持有锁
func (o *Orchestrator) transitionLocked(to State) {
	from := o.state
	o.state = to
	slog.Info("[Checkout] Phase transition", "attemptId", o.attemptID, "from", from, "to", to)
	if o.listener != nil {
		o.listener(from, to)
	}
}
