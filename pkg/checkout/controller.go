package checkout

import (
	"sync"

	"github.com/flaboy/aira-checkout/pkg/errors"
	gwtypes "github.com/flaboy/aira-checkout/pkg/gateway/types"
	"github.com/flaboy/aira-checkout/pkg/orders"
	"github.com/flaboy/pin"
)

// Controller 结账HTTP入口。每个结账会话持有一次活跃的尝试，
// 终态之后需要带renew重新开始
type Controller struct {
	mu        sync.Mutex
	sessions  map[string]*Orchestrator
	confirmer Confirmer
}

func NewController(confirmer Confirmer) *Controller {
	return &Controller{
		sessions:  make(map[string]*Orchestrator),
		confirmer: confirmer,
	}
}

func (cc *Controller) HandleRequest(c *pin.Context, path string) error {
	switch path {
	case "session/start":
		return cc.handleStart(c)
	case "session/submit":
		return cc.handleSubmit(c)
	case "session/cancel":
		return cc.handleCancel(c)
	case "session/status":
		return cc.handleStatus(c)
	default:
		c.JSON(404, map[string]string{"error": "Not found"})
		return nil
	}
}

type startRequest struct {
	SessionID string          `json:"session_id"`
	Renew     bool            `json:"renew"`
	Checkout  CheckoutContext `json:"checkout"`
}

// handleStart 开始（或重入）会话的结账尝试
func (cc *Controller) handleStart(c *pin.Context) error {
	var req startRequest
	if err := c.BindJSON(&req); err != nil {
		return err
	}
	if req.SessionID == "" {
		return errors.ErrSessionRequired
	}

	cc.mu.Lock()
	orchestrator, exists := cc.sessions[req.SessionID]
	if exists && req.Renew && orchestrator.State().Terminal() {
		// 终态的尝试不可复用，换一个全新的尝试和全新的意向
		exists = false
	}
	if !exists {
		orchestrator = New(&req.Checkout, cc.confirmer)
		cc.sessions[req.SessionID] = orchestrator
	}
	cc.mu.Unlock()

	if err := orchestrator.Start(); err != nil {
		if checkoutErr, ok := err.(*Error); ok {
			return c.Render(failurePayload(orchestrator, checkoutErr))
		}
		return err
	}

	return c.Render(statusPayload(orchestrator))
}

type submitRequest struct {
	SessionID      string                  `json:"session_id"`
	SameAsShipping bool                    `json:"same_as_shipping"`
	Billing        *gwtypes.BillingDetails `json:"billing,omitempty"`
}

// handleSubmit 用户显式提交支付
func (cc *Controller) handleSubmit(c *pin.Context) error {
	var req submitRequest
	if err := c.BindJSON(&req); err != nil {
		return err
	}

	orchestrator, err := cc.session(req.SessionID)
	if err != nil {
		return err
	}

	if err := orchestrator.Submit(req.Billing, req.SameAsShipping); err != nil {
		if checkoutErr, ok := err.(*Error); ok {
			return c.Render(failurePayload(orchestrator, checkoutErr))
		}
		return err
	}

	return c.Render(statusPayload(orchestrator))
}

type sessionRequest struct {
	SessionID string `json:"session_id"`
}

// handleCancel 放弃会话当前的尝试
func (cc *Controller) handleCancel(c *pin.Context) error {
	var req sessionRequest
	if err := c.BindJSON(&req); err != nil {
		return err
	}

	orchestrator, err := cc.session(req.SessionID)
	if err != nil {
		return err
	}

	orchestrator.Cancel()
	return c.Render(map[string]interface{}{"cancelled": true})
}

// handleStatus 查询会话当前尝试的状态
func (cc *Controller) handleStatus(c *pin.Context) error {
	var req sessionRequest
	if err := c.BindJSON(&req); err != nil {
		return err
	}

	orchestrator, err := cc.session(req.SessionID)
	if err != nil {
		return err
	}

	if lastErr := orchestrator.LastError(); lastErr != nil {
		return c.Render(failurePayload(orchestrator, lastErr))
	}
	return c.Render(statusPayload(orchestrator))
}

func (cc *Controller) session(sessionID string) (*Orchestrator, error) {
	if sessionID == "" {
		return nil, errors.ErrSessionRequired
	}

	cc.mu.Lock()
	defer cc.mu.Unlock()
	orchestrator, exists := cc.sessions[sessionID]
	if !exists {
		return nil, errors.ErrSessionNotFound
	}
	return orchestrator, nil
}

func statusPayload(o *Orchestrator) map[string]interface{} {
	payload := map[string]interface{}{
		"attempt_id": o.AttemptID(),
		"state":      o.State(),
	}
	if secret := o.ClientSecret(); secret != "" {
		payload["client_secret"] = secret
	}
	if orderID := o.OrderID(); orderID != 0 {
		payload["order_hash_id"] = orders.EncodeOrderID(orderID)
	}
	return payload
}

func failurePayload(o *Orchestrator, checkoutErr *Error) map[string]interface{} {
	return map[string]interface{}{
		"attempt_id":        o.AttemptID(),
		"state":             o.State(),
		"error_kind":        checkoutErr.Kind,
		"message":           checkoutErr.UserMessage(),
		"payment_intent_id": checkoutErr.IntentID,
	}
}
