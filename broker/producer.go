package broker

import (
	"encoding/json"
	"log"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/thinkstack/models"
)

// Producer publishes note lifecycle events to NATS. Publication is
// best-effort: the API never fails a request because the broker is down.
type Producer struct {
	nc *nats.Conn
}

func NewProducer(url string) (*Producer, error) {
	nc, err := nats.Connect(url, nats.Name("thinkstack-notes"))
	if err != nil {
		return nil, err
	}
	log.Printf("Connected to NATS at %s", url)
	return &Producer{nc: nc}, nil
}

// Publish sends a lifecycle event for the given note. Safe to call on a nil
// producer, which is how the service behaves when NATS is unavailable.
func (p *Producer) Publish(event EventType, note models.Note) {
	if p == nil || p.nc == nil {
		return
	}

	payload, err := json.Marshal(Event{
		Type:      event,
		NoteID:    note.ID,
		Timestamp: time.Now().UTC(),
		Data:      note.ToResponse(),
	})
	if err != nil {
		log.Printf("Failed to encode %s event: %v", event, err)
		return
	}

	if err := p.nc.Publish(NoteEventsSubject, payload); err != nil {
		log.Printf("Failed to publish %s event: %v", event, err)
	}
}

func (p *Producer) Close() {
	if p == nil || p.nc == nil {
		return
	}
	if err := p.nc.Drain(); err != nil {
		log.Printf("Failed to drain NATS connection: %v", err)
	}
}
