// internal/common/aws/sns.go

// Package aws wraps the AWS SDK clients used for application event
// notifications.
package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSClient carries the narrow publish surface the apply workflow needs.
type SNSClient struct {
	client *sns.Client
}

// NewSNSClient resolves credentials through the default AWS chain. An
// empty region defers to the environment (AWS_REGION / shared config).
func NewSNSClient(ctx context.Context, region string) (*SNSClient, error) {
	var optFns []func(*config.LoadOptions) error
	if region != "" {
		optFns = append(optFns, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, err
	}
	return &SNSClient{client: sns.NewFromConfig(cfg)}, nil
}

// Publish forwards to the underlying SDK client.
func (c *SNSClient) Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error) {
	return c.client.Publish(ctx, input)
}
