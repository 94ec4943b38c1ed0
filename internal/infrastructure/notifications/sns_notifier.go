package notifications

import (
	"context"
	"fmt"
	"time"

	"artisan_escrow/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SNSPublisher is the part of the SNS client the notifier uses.
type SNSPublisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSNotifier publishes notifications to a topic consumed by the
// messaging service.
type SNSNotifier struct {
	client   SNSPublisher
	topicARN string
	now      func() time.Time
}

var _ interfaces.INotificationSink = (*SNSNotifier)(nil)

func NewSNSNotifier(client SNSPublisher, topicARN string) *SNSNotifier {
	return &SNSNotifier{client: client, topicARN: topicARN, now: time.Now}
}

func (n *SNSNotifier) Notify(ctx context.Context, userID, template string, payload map[string]any) error {
	body, err := encode(userID, template, payload, n.now())
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	_, err = n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.topicARN),
		Message:  aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"template": {DataType: aws.String("String"), StringValue: aws.String(template)},
			"user_id":  {DataType: aws.String("String"), StringValue: aws.String(userID)},
		},
	})
	if err != nil {
		return fmt.Errorf("sns publish %s: %w", template, err)
	}
	return nil
}
