package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeSNS struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNS) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("m-1")}, nil
}

func TestSNSNotifier_Notify(t *testing.T) {
	t.Run("publishes envelope with attributes", func(t *testing.T) {
		client := &fakeSNS{}
		n := NewSNSNotifier(client, "arn:aws:sns:us-east-1:000000000000:notifications")
		n.now = func() time.Time { return fixedNow }

		err := n.Notify(context.Background(), "client-1", "funds_held", map[string]any{"amount": 1000})
		require.NoError(t, err)

		require.NotNil(t, client.input)
		assert.Equal(t, "arn:aws:sns:us-east-1:000000000000:notifications", aws.ToString(client.input.TopicArn))
		assert.Equal(t, "funds_held", aws.ToString(client.input.MessageAttributes["template"].StringValue))

		var msg Message
		require.NoError(t, json.Unmarshal([]byte(aws.ToString(client.input.Message)), &msg))
		assert.Equal(t, "client-1", msg.UserID)
		assert.Equal(t, fixedNow, msg.SentAt)
	})

	t.Run("wraps publish error", func(t *testing.T) {
		n := NewSNSNotifier(&fakeSNS{err: errors.New("throttled")}, "arn")
		err := n.Notify(context.Background(), "u", "t", nil)
		assert.ErrorContains(t, err, "throttled")
	})
}

func TestRedisNotifier_Notify(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	sub := client.Subscribe(context.Background(), "notifications")
	defer sub.Close()
	_, err := sub.Receive(context.Background())
	require.NoError(t, err)

	n := NewRedisNotifier(client, "notifications")
	require.NoError(t, n.Notify(context.Background(), "artisan-1", "quote_accepted", map[string]any{"quote_id": "q-1"}))

	select {
	case m := <-sub.Channel():
		var msg Message
		require.NoError(t, json.Unmarshal([]byte(m.Payload), &msg))
		assert.Equal(t, "artisan-1", msg.UserID)
		assert.Equal(t, "quote_accepted", msg.Template)
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
}

func TestLogNotifier_Notify(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	n := NewLogNotifier(zap.New(core))

	require.NoError(t, n.Notify(context.Background(), "u-1", "project_expired", nil))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "project_expired", logs.All()[0].ContextMap()["template"])
}
