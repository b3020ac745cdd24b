package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/flaboy/aira-checkout/pkg/config"
	"github.com/flaboy/aira-checkout/pkg/types"
)

// QueuePublisher 把结账事件发布到SQS队列，交给下游履约流水线
type QueuePublisher struct {
	client   *sqs.Client
	queueURL string
}

// NewQueuePublisher 创建SQS事件发布器
func NewQueuePublisher() (*QueuePublisher, error) {
	ctx := context.Background()

	var cfg aws.Config
	var err error

	if config.Config.Events.AWSAccessKey != "" && config.Config.Events.AWSSecret != "" {
		// 使用事件队列专用的AWS凭证
		cfg, err = awsConfig.LoadDefaultConfig(ctx,
			awsConfig.WithRegion(config.Config.Events.AWSRegion),
			awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				config.Config.Events.AWSAccessKey,
				config.Config.Events.AWSSecret,
				"",
			)),
		)
	} else {
		// 回退到默认配置
		cfg, err = awsConfig.LoadDefaultConfig(ctx,
			awsConfig.WithRegion(config.Config.Events.AWSRegion),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &QueuePublisher{
		client:   sqs.NewFromConfig(cfg),
		queueURL: config.Config.Events.SQSQueueURL,
	}, nil
}

func (q *QueuePublisher) OnCheckoutSucceeded(event *types.CheckoutSucceededEvent) error {
	return q.publish("checkout.succeeded", event)
}

func (q *QueuePublisher) OnCheckoutFailed(event *types.CheckoutFailedEvent) error {
	return q.publish("checkout.failed", event)
}

func (q *QueuePublisher) publish(eventType string, event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", eventType, err)
	}

	_, err = q.client.SendMessage(context.Background(), &sqs.SendMessageInput{
		QueueUrl:    aws.String(q.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]sqstypes.MessageAttributeValue{
			"event_type": {
				DataType:    aws.String("String"),
				StringValue: aws.String(eventType),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}

	slog.Info("[Events] Published checkout event", "eventType", eventType)
	return nil
}
