package leaverequest

import (
	"context"
	"encoding/json"
	"strconv"

	"leave-desk/internal/events"

	"github.com/segmentio/kafka-go"
)

type EventPublisher interface {
	PublishLifecycle(ctx context.Context, event events.LeaveRequestLifecycleEvent) error
}

type noopEventPublisher struct{}

func (noopEventPublisher) PublishLifecycle(context.Context, events.LeaveRequestLifecycleEvent) error {
	return nil
}

func NewNoopEventPublisher() EventPublisher {
	return noopEventPublisher{}
}

type kafkaEventPublisher struct {
	writer *kafka.Writer
}

func NewKafkaEventPublisher(writer *kafka.Writer) EventPublisher {
	return &kafkaEventPublisher{writer: writer}
}

func (p *kafkaEventPublisher) PublishLifecycle(
	ctx context.Context,
	event events.LeaveRequestLifecycleEvent,
) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: events.LeaveRequestLifecycleTopic,
		Key:   []byte(strconv.FormatUint(uint64(event.LeaveRequestID), 10)),
		Value: payload,
	})
}
