package config

type CheckoutConfig struct {
	// 数据库配置
	Database struct {
		DSN string `cfg:"DSN"`
	} `cfg:"DATABASE"`

	// 支付网关配置
	Gateway struct {
		// 传输模式：dev（本地开发服务）或 managed（托管函数）
		Mode string `cfg:"MODE" default:"dev"`

		// 本地开发服务的固定端点
		DevServerURL string `cfg:"DEV_SERVER_URL" default:"http://localhost:4242/create-payment-intent"`

		// 托管函数配置
		FunctionsBaseURL string `cfg:"FUNCTIONS_BASE_URL"`
		FunctionName     string `cfg:"FUNCTION_NAME" default:"create-payment-intent"`
		FunctionToken    string `cfg:"FUNCTION_TOKEN"`
	} `cfg:"GATEWAY"`

	// 订单事件队列配置（可选）
	Events struct {
		Enabled      bool   `cfg:"ENABLED" default:"false"`
		AWSRegion    string `cfg:"AWS_REGION"`
		AWSAccessKey string `cfg:"AWS_ACCESS_KEY"`
		AWSSecret    string `cfg:"AWS_SECRET"`
		SQSQueueURL  string `cfg:"SQS_QUEUE_URL"`
	} `cfg:"EVENTS"`
}

var Config *CheckoutConfig
