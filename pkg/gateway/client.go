package gateway

import (
	"log/slog"
	"strings"

	"github.com/flaboy/aira-checkout/pkg/config"
	"github.com/flaboy/aira-checkout/pkg/gateway/types"
)

// GatewayClient 支付网关客户端，持有当前配置选中的传输
type GatewayClient struct {
	transport IntentTransport
}

// 进程级单例。构造是单次赋值且幂等：首个调用者构造，之后全部复用，
// 不存在重新初始化路径，因此无需加锁
var client *GatewayClient

// Client 获取全局网关客户端，首次调用时惰性构造
func Client() *GatewayClient {
	if client == nil {
		client = &GatewayClient{transport: Get(config.Config.Gateway.Mode)}
	}
	return client
}

// CreatePaymentIntent 创建支付意向。货币统一转为小写后发给网关
// 本客户端不做重试，重试策略属于上层编排器
func (g *GatewayClient) CreatePaymentIntent(amountMinor int64, currency string, metadata map[string]string) (*types.IntentHandle, error) {
	if g.transport == nil {
		return nil, types.NewTransportError("payment gateway transport '%s' not available", config.Config.Gateway.Mode)
	}

	slog.Info("[Gateway] Creating payment intent",
		"transport", g.transport.GetTransportName(),
		"amount", amountMinor,
		"currency", currency)

	handle, err := g.transport.CreateIntent(&types.CreateIntentRequest{
		Amount:   amountMinor,
		Currency: strings.ToLower(currency),
		Metadata: metadata,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("[Gateway] Payment intent created", "paymentIntentId", handle.PaymentIntentID)
	return handle, nil
}
