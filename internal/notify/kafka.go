// Package notify hands finished orders to the messaging channel. Delivery
// mechanics and retries live entirely on the consumer side.
package notify

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/leonyu5566/ordering-helper-backend-sub001/internal/order"
)

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) PublishOrderReady(ctx context.Context, evt order.ReadyEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.OrderID),
		Value: payload,
	})
}
