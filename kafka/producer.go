package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// ProducerAPI is what the services see; tests substitute a capture double.
type ProducerAPI interface {
	Publish(ctx context.Context, key string, value []byte) error
	Close() error
}

// Producer writes JSON events to a single topic.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &Producer{writer: writer}
}

func (p *Producer) Publish(ctx context.Context, key string, value []byte) error {
	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
