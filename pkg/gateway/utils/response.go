package utils

import (
	"encoding/json"

	"github.com/flaboy/aira-checkout/pkg/gateway/types"
	"github.com/valyala/fasthttp"
)

// ParseIntentResponse 解析意向创建响应，两种传输共用同一响应契约
// 所有失败形态（错误响应体、非成功状态码、缺少clientSecret）折叠为统一错误
func ParseIntentResponse(statusCode int, body []byte) (*types.IntentHandle, error) {
	var response types.CreateIntentResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, types.NewTransportError("invalid payment intent response (status %d): %v", statusCode, err)
	}

	if response.Error != "" {
		return nil, types.NewTransportError("%s", response.Error)
	}

	if statusCode != fasthttp.StatusOK {
		return nil, types.NewTransportError("payment intent request returned status %d", statusCode)
	}

	if response.ClientSecret == "" {
		return nil, types.NewTransportError("payment intent response missing client secret")
	}

	return &types.IntentHandle{
		PaymentIntentID: response.PaymentIntentID,
		ClientSecret:    response.ClientSecret,
	}, nil
}
