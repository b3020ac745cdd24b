package managed

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/flaboy/aira-checkout/pkg/config"
	"github.com/flaboy/aira-checkout/pkg/gateway/types"
	"github.com/flaboy/aira-checkout/pkg/gateway/utils"
	"github.com/valyala/fasthttp"
)

// Managed 托管函数传输：按名字调用远程函数，请求和响应契约与dev一致
type Managed struct {
	functionURL string
	token       string
}

func (m *Managed) Init() error {
	baseURL := config.Config.Gateway.FunctionsBaseURL
	if baseURL == "" {
		return fmt.Errorf("gateway functions base URL is not configured")
	}

	m.functionURL = strings.TrimRight(baseURL, "/") + "/" + config.Config.Gateway.FunctionName
	m.token = config.Config.Gateway.FunctionToken
	return nil
}

func (m *Managed) GetTransportName() string {
	return "managed"
}

// CreateIntent 调用托管函数创建支付意向
func (m *Managed) CreateIntent(request *types.CreateIntentRequest) (*types.IntentHandle, error) {
	requestBody, err := json.Marshal(request)
	if err != nil {
		return nil, types.NewTransportError("failed to encode intent request: %v", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(m.functionURL)
	req.Header.SetMethod("POST")
	req.Header.Set("Content-Type", "application/json")
	if m.token != "" {
		req.Header.Set("Authorization", "Bearer "+m.token)
	}
	req.SetBody(requestBody)

	if err := fasthttp.DoTimeout(req, resp, types.RequestTimeout); err != nil {
		return nil, types.NewTransportError("payment intent function call failed: %v", err)
	}

	return utils.ParseIntentResponse(resp.StatusCode(), resp.Body())
}
