package notify

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/segmentio/kafka-go"

	"clementus360/mood-tracker/types"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publishes alerts to a topic for downstream HR tooling.
type KafkaNotifier struct {
	writer messageWriter
}

type alertEvent struct {
	Recipients []string           `json:"recipients"`
	Alert      types.AlertPayload `json:"alert"`
}

func NewKafkaNotifier(brokers []string, topic string) *KafkaNotifier {
	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.Hash{},
		},
	}
}

func (n *KafkaNotifier) Name() string { return "kafka" }

// Send keys messages by employee so one employee's alerts stay ordered.
func (n *KafkaNotifier) Send(ctx context.Context, payload types.AlertPayload, recipients []string) error {
	data, err := json.Marshal(alertEvent{Recipients: recipients, Alert: payload})
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(payload.EmployeeID, 10)),
		Value: data,
		Headers: []kafka.Header{
			{Key: "status", Value: []byte(payload.Status)},
			{Key: "alert_id", Value: []byte(payload.AlertID)},
		},
	}
	return n.writer.WriteMessages(ctx, msg)
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
