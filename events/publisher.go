package events

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"
)

// ChangeMessage is the envelope published on every record mutation so
// the public site can rebuild what it shows.
type ChangeMessage struct {
	Entity    string      `json:"entity"` // "journalists" or "countries"
	Action    string      `json:"action"` // "created", "updated", "deleted"
	ID        string      `json:"id"`
	Record    interface{} `json:"record,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
}

// Publisher pushes record-change messages to NATS. All methods are
// nil-safe so the service runs unchanged with events disabled.
type Publisher struct {
	conn *nats.Conn
}

// Connect opens the NATS connection. An empty URL returns a nil
// publisher, which disables publishing.
func Connect(url string) (*Publisher, error) {
	if url == "" {
		return nil, nil
	}
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	log.Printf("[INFO] Connected to NATS at %s", url)
	return &Publisher{conn: nc}, nil
}

func (p *Publisher) Close() {
	if p != nil && p.conn != nil {
		p.conn.Close()
	}
}

// PublishChange sends a change message on memorial.<entity>.<action>.
// Publish failures are logged and swallowed; a record write never
// fails because the bus is down.
func (p *Publisher) PublishChange(entity, action, id string, record interface{}) {
	if p == nil || p.conn == nil {
		return
	}

	msg := ChangeMessage{
		Entity:    entity,
		Action:    action,
		ID:        id,
		Record:    record,
		Timestamp: time.Now(),
		Source:    "memorial-admin",
		Version:   "1.0",
	}

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[ERROR] Failed to marshal change message: %v", err)
		return
	}

	subject := fmt.Sprintf("memorial.%s.%s", entity, action)
	if err := p.conn.Publish(subject, data); err != nil {
		log.Printf("[ERROR] Failed to publish change to NATS subject=%s: %v", subject, err)
		return
	}

	log.Printf("[INFO] Published %s for %s id=%s", action, entity, id)
}
