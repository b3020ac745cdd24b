package events

import "github.com/flaboy/aira-checkout/pkg/types"

type EventHandler interface {
	OnCheckoutSucceeded(event *types.CheckoutSucceededEvent) error
	OnCheckoutFailed(event *types.CheckoutFailedEvent) error
}

var handler EventHandler

func SetEventHandler(h EventHandler) {
	handler = h
}

func EmitCheckoutSucceeded(event *types.CheckoutSucceededEvent) error {
	if handler != nil {
		return handler.OnCheckoutSucceeded(event)
	}
	return nil
}

func EmitCheckoutFailed(event *types.CheckoutFailedEvent) error {
	if handler != nil {
		return handler.OnCheckoutFailed(event)
	}
	return nil
}
