package events

import (
	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
)

type Publisher interface {
	Publish(event *Event) error
}

type QueuePublisher struct {
	queue rmq.Queue
}

func NewQueuePublisher(connection rmq.Connection) (*QueuePublisher, error) {
	queue, err := connection.OpenQueue(QueueName)
	if err != nil {
		return nil, err
	}

	return &QueuePublisher{queue: queue}, nil
}

func (p *QueuePublisher) Publish(event *Event) error {
	payload, err := event.Marshal()
	if err != nil {
		return err
	}

	return p.queue.PublishBytes(payload)
}

// Emit publishes the event when a publisher is configured. Failures are logged
// and never fail the operation that produced the event.
func Emit(publisher Publisher, event *Event) {
	if publisher == nil {
		return
	}

	if err := publisher.Publish(event); err != nil {
		log.Error().Err(err).Str("type", string(event.Type)).Msg("Failed to publish event")
	}
}
