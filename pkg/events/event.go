package events

import (
	"encoding/json"
	"time"
)

const QueueName = "timetable-events"

type EventType string

const (
	EventTypeTrainCreated          EventType = "TrainCreated"
	EventTypeTrainUpdated          EventType = "TrainUpdated"
	EventTypeTrainRetimed          EventType = "TrainRetimed"
	EventTypeStationCreated        EventType = "StationCreated"
	EventTypeStationUpdated        EventType = "StationUpdated"
	EventTypeObservationsGenerated EventType = "ObservationsGenerated"
)

type Event struct {
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Body      map[string]interface{} `json:"body"`
}

func NewEvent(eventType EventType, body map[string]interface{}) *Event {
	return &Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Body:      body,
	}
}

func (e *Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}
