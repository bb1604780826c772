package rabbitmq

import (
	"context"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	declared   string
	durable    bool
	declareErr error
	routingKey string
	published  amqp.Publishing
	closed     bool
}

func (f *fakeChannel) QueueDeclare(name string, durable, _, _, _ bool, _ amqp.Table) (amqp.Queue, error) {
	f.declared, f.durable = name, durable
	return amqp.Queue{Name: name}, f.declareErr
}

func (f *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	f.routingKey, f.published = key, msg
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_DeclaresDurableQueueAndPublishesPersistent(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newPublisher(ch, "travel_order_notifications")
	require.NoError(t, err)
	assert.Equal(t, "travel_order_notifications", ch.declared)
	assert.True(t, ch.durable)

	require.NoError(t, p.Publish(context.Background(), "order-1", []byte(`{"order_id":"order-1"}`)))
	assert.Equal(t, "travel_order_notifications", ch.routingKey)
	assert.Equal(t, amqp.Persistent, ch.published.DeliveryMode)
	assert.Equal(t, "application/json", ch.published.ContentType)
	assert.Equal(t, "order-1", ch.published.MessageId)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestPublisher_DeclareFailure(t *testing.T) {
	_, err := newPublisher(&fakeChannel{declareErr: errors.New("access refused")}, "q")
	assert.ErrorContains(t, err, "access refused")
}

func TestPublisher_RequiresQueueName(t *testing.T) {
	_, err := newPublisher(&fakeChannel{}, "")
	assert.Error(t, err)
}
