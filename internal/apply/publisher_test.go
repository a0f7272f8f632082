// internal/apply/publisher_test.go
package apply

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "internmatch/internal/common/errors"
	"internmatch/internal/common/logger"
)

type fakeSNSAPI struct {
	err    error
	inputs []*sns.PublishInput
}

func (f *fakeSNSAPI) Publish(_ context.Context, input *sns.PublishInput) (*sns.PublishOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inputs = append(f.inputs, input)
	return &sns.PublishOutput{}, nil
}

func TestSNSPublisher_PublishApplicationEvent(t *testing.T) {
	api := &fakeSNSAPI{}
	p := NewSNSPublisher(api, "arn:aws:sns:ap-south-1:123456789012:applications", logger.NewNoOpLogger())

	event := ApplicationEvent{
		ApplicationID: "application-1",
		StudentID:     "student-1",
		PostingID:     "posting-1",
		AppliedAt:     time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.PublishApplicationEvent(context.Background(), event))

	require.Len(t, api.inputs, 1)
	input := api.inputs[0]
	assert.Equal(t, "arn:aws:sns:ap-south-1:123456789012:applications", *input.TopicArn)
	assert.Equal(t, "internship.application.recorded", *input.Subject)

	var decoded ApplicationEvent
	require.NoError(t, json.Unmarshal([]byte(*input.Message), &decoded))
	assert.Equal(t, event, decoded)
}

func TestSNSPublisher_PublishFailure(t *testing.T) {
	api := &fakeSNSAPI{err: errors.New("endpoint unreachable")}
	p := NewSNSPublisher(api, "arn:aws:sns:ap-south-1:123456789012:applications", logger.NewNoOpLogger())

	err := p.PublishApplicationEvent(context.Background(), ApplicationEvent{ApplicationID: "application-1"})
	require.Error(t, err)

	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeNotificationPublishFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestNoopPublisher(t *testing.T) {
	assert.NoError(t, NoopPublisher{}.PublishApplicationEvent(context.Background(), ApplicationEvent{}))
}
