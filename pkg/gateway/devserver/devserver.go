package devserver

import (
	"encoding/json"

	"github.com/flaboy/aira-checkout/pkg/config"
	"github.com/flaboy/aira-checkout/pkg/gateway/types"
	"github.com/flaboy/aira-checkout/pkg/gateway/utils"
	"github.com/valyala/fasthttp"
)

// DevServer 本地开发环境的意向创建传输：固定路径的HTTP端点
type DevServer struct {
	url string
}

func (d *DevServer) Init() error {
	d.url = config.Config.Gateway.DevServerURL
	return nil
}

func (d *DevServer) GetTransportName() string {
	return "dev"
}

// CreateIntent 请求本地开发端点创建支付意向
func (d *DevServer) CreateIntent(request *types.CreateIntentRequest) (*types.IntentHandle, error) {
	requestBody, err := json.Marshal(request)
	if err != nil {
		return nil, types.NewTransportError("failed to encode intent request: %v", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(d.url)
	req.Header.SetMethod("POST")
	req.Header.Set("Content-Type", "application/json")
	req.SetBody(requestBody)

	if err := fasthttp.DoTimeout(req, resp, types.RequestTimeout); err != nil {
		return nil, types.NewTransportError("payment intent request failed: %v", err)
	}

	return utils.ParseIntentResponse(resp.StatusCode(), resp.Body())
}
