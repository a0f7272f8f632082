// internal/apply/publisher.go
package apply

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	stderrors "internmatch/internal/common/errors"
	"internmatch/internal/common/logger"
)

// ApplicationEvent is the payload published after an application is
// recorded.
type ApplicationEvent struct {
	ApplicationID string    `json:"applicationId"`
	StudentID     string    `json:"studentId"`
	PostingID     string    `json:"postingId"`
	AppliedAt     time.Time `json:"appliedAt"`
}

// Publisher delivers application events to interested consumers.
type Publisher interface {
	PublishApplicationEvent(ctx context.Context, event ApplicationEvent) error
}

// snsAPI is the slice of the SNS client the publisher uses.
type snsAPI interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

// SNSPublisher publishes application events to an SNS topic.
type SNSPublisher struct {
	api      snsAPI
	topicARN string
	logger   logger.Logger
}

func NewSNSPublisher(api snsAPI, topicARN string, log logger.Logger) *SNSPublisher {
	return &SNSPublisher{api: api, topicARN: topicARN, logger: log}
}

func (p *SNSPublisher) PublishApplicationEvent(ctx context.Context, event ApplicationEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return stderrors.NewNotificationPublishFailedError(err)
	}

	_, err = p.api.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Subject:  aws.String("internship.application.recorded"),
		Message:  aws.String(string(payload)),
	})
	if err != nil {
		return stderrors.NewNotificationPublishFailedError(err)
	}

	p.logger.Debug("Application event published", map[string]interface{}{
		"applicationId": event.ApplicationID,
		"topicArn":      p.topicARN,
	})
	return nil
}

// NoopPublisher is used when event publishing is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishApplicationEvent(context.Context, ApplicationEvent) error {
	return nil
}
