package events

import (
	"encoding/json"

	"github.com/adjust/rmq/v5"
	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
)

type BatchConsumer struct {
	Handle func(event *Event)
}

func NewBatchConsumer() *BatchConsumer {
	return &BatchConsumer{Handle: logEvent}
}

func logEvent(event *Event) {
	log.Info().Str("type", string(event.Type)).Time("timestamp", event.Timestamp).Msg("Timetable event")
	log.Debug().Msg(pretty.Sprint(event.Body))
}

func (c *BatchConsumer) Consume(batch rmq.Deliveries) {
	payloads := batch.Payloads()

	for _, payload := range payloads {
		var event Event
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			log.Error().Err(err).Msg("Failed to decode event")
			continue
		}

		c.Handle(&event)
	}

	if ackErrors := batch.Ack(); len(ackErrors) > 0 {
		for _, err := range ackErrors {
			log.Error().Err(err).Msg("Failed to ack event")
		}
	}
}
