package commence

import (
	"github.com/flaboy/aira-checkout/pkg/config"
	"github.com/flaboy/aira-checkout/pkg/database"
	"github.com/flaboy/aira-checkout/pkg/events"
	"github.com/flaboy/aira-checkout/pkg/gateway"
)

func Start(cfg *config.CheckoutConfig) error {
	config.Config = cfg

	// 启动服务组件
	if cfg.Database.DSN != "" {
		if err := database.Init(cfg.Database.DSN); err != nil {
			return err
		}
	}

	if err := gateway.Init(); err != nil {
		return err
	}

	if cfg.Events.Enabled {
		publisher, err := events.NewQueuePublisher()
		if err != nil {
			return err
		}
		events.SetEventHandler(publisher)
	}

	return nil
}

// RegisterEventHandler 注册业务系统的事件处理器
func RegisterEventHandler(handler events.EventHandler) {
	events.SetEventHandler(handler)
}
