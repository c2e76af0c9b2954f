package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"vet-clinic/internal/service"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// messageWriter is the subset of *kafka.Writer the publisher needs
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaEventPublisher writes appointment lifecycle events to one topic.
// Messages are keyed by appointment id so events of one appointment stay ordered.
type KafkaEventPublisher struct {
	writer messageWriter
	log    *logrus.Logger
}

func NewKafkaEventPublisher(brokers []string, topic string, log *logrus.Logger) *KafkaEventPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           5 * time.Second,
	}
	return &KafkaEventPublisher{writer: writer, log: log}
}

func (p *KafkaEventPublisher) Publish(ctx context.Context, event service.AppointmentEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.EventType, err)
	}

	msg := kafka.Message{
		Key:   []byte(eventKey(event)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID.String())},
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}
	msg.Headers = InjectTraceHeaders(ctx, msg.Headers)

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Warnf("Failed to publish %s event: %+v", event.EventType, err)
		return err
	}

	p.log.Debugf("Published %s event %s", event.EventType, event.EventID)
	return nil
}

func (p *KafkaEventPublisher) Close() error {
	return p.writer.Close()
}

func eventKey(event service.AppointmentEvent) string {
	if event.AppointmentID != 0 {
		return strconv.Itoa(event.AppointmentID)
	}
	return event.UserID.String() + ":" + event.Title
}
