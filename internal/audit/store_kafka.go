package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"consentd/internal/platform/kafka/producer"
)

// kafkaEvent is the wire form of an Event.
type kafkaEvent struct {
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"user_id,omitempty"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
}

// KafkaStore appends events to a Kafka topic. Delivery is asynchronous;
// the producer logs failures instead of surfacing them so the audit trail
// never blocks a consent transition.
type KafkaStore struct {
	producer *producer.Producer
	topic    string
}

func NewKafkaStore(p *producer.Producer, topic string) *KafkaStore {
	return &KafkaStore{producer: p, topic: topic}
}

func (s *KafkaStore) Append(_ context.Context, event Event) error {
	value, err := json.Marshal(kafkaEvent{
		Timestamp: event.Timestamp,
		UserID:    event.UserID,
		Action:    event.Action,
		Detail:    event.Detail,
	})
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	return s.producer.ProduceAsync(&producer.Message{
		Topic: s.topic,
		Key:   []byte(event.Action),
		Value: value,
	})
}
