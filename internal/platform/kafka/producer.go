package kafka

import (
	"context"
	"errors"
	"strings"

	skafka "github.com/segmentio/kafka-go"
)

// Writer is the subset of *kafka.Writer the producer uses.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

// Producer writes keyed messages to a single topic.
type Producer struct {
	writer Writer
}

// NewProducer builds a producer for a comma separated broker list.
func NewProducer(brokers, topic string) (*Producer, error) {
	addrs := splitBrokers(brokers)
	if len(addrs) == 0 {
		return nil, errors.New("kafka brokers not configured")
	}
	if topic == "" {
		return nil, errors.New("kafka topic is empty")
	}
	return &Producer{writer: &skafka.Writer{
		Addr:                   skafka.TCP(addrs...),
		Topic:                  topic,
		Balancer:               &skafka.Hash{},
		RequiredAcks:           skafka.RequireAll,
		AllowAutoTopicCreation: true,
	}}, nil
}

// NewProducerWithWriter allows injecting a test writer.
func NewProducerWithWriter(w Writer) *Producer {
	return &Producer{writer: w}
}

// Publish writes body under key. Messages for one key land on one partition.
func (p *Producer) Publish(ctx context.Context, key string, body []byte) error {
	return p.writer.WriteMessages(ctx, skafka.Message{Key: []byte(key), Value: body})
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

func splitBrokers(raw string) []string {
	var out []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
