package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"academy/internal/platform/kafka/producer"
	"academy/pkg/requestcontext"
)

// Publisher emits enrollment events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}

// Kafka publishes events to the enrollment topic, keyed by institution so
// per-institution ordering is preserved.
type Kafka struct {
	producer *producer.Producer
}

// NewKafka constructs a Kafka-backed publisher.
func NewKafka(p *producer.Producer) *Kafka {
	return &Kafka{producer: p}
}

// Emit publishes the event synchronously. Request metadata from the context
// is stamped onto the event before encoding.
func (k *Kafka) Emit(ctx context.Context, event Event) error {
	enrich(ctx, &event)

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	return k.producer.Produce(ctx, &producer.Message{
		Topic: Topic,
		Key:   []byte(event.InstitutionID.String()),
		Value: value,
		Headers: map[string]string{
			"action": string(event.Action),
		},
	})
}

// InMemory collects events for tests and for running without a broker.
type InMemory struct {
	mu     sync.Mutex
	events []Event
}

// NewInMemory creates an in-memory publisher.
func NewInMemory() *InMemory {
	return &InMemory{}
}

// Emit records the event.
func (m *InMemory) Emit(ctx context.Context, event Event) error {
	enrich(ctx, &event)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

// Events returns a snapshot of everything emitted so far.
func (m *InMemory) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

func enrich(ctx context.Context, event *Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.ClientIP == "" {
		event.ClientIP = requestcontext.ClientIP(ctx)
	}
	if event.UserAgent == "" {
		event.UserAgent = requestcontext.UserAgent(ctx)
	}
}
