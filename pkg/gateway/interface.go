package gateway

import (
	"fmt"

	"github.com/flaboy/aira-checkout/pkg/config"
	"github.com/flaboy/aira-checkout/pkg/gateway/devserver"
	"github.com/flaboy/aira-checkout/pkg/gateway/managed"
	"github.com/flaboy/aira-checkout/pkg/gateway/types"
)

type IntentTransport interface {
	// 创建支付意向，只返回完整的句柄或统一错误，不做重试
	CreateIntent(request *types.CreateIntentRequest) (*types.IntentHandle, error)

	// 资源初始化
	Init() error

	// 获取传输名称
	GetTransportName() string
}

var intentTransports map[string]IntentTransport

func Get(mode string) IntentTransport {
	return intentTransports[mode]
}

// Init 注册所有传输并初始化配置选中的那一个
func Init() error {
	intentTransports = make(map[string]IntentTransport)
	intentTransports["dev"] = &devserver.DevServer{}
	intentTransports["managed"] = &managed.Managed{}

	mode := config.Config.Gateway.Mode
	transport := intentTransports[mode]
	if transport == nil {
		return fmt.Errorf("payment gateway transport '%s' not found", mode)
	}

	return transport.Init()
}

// GetAvailableTransports 获取所有已注册的传输模式
func GetAvailableTransports() []string {
	modes := make([]string, 0, len(intentTransports))
	for name := range intentTransports {
		modes = append(modes, name)
	}
	return modes
}
