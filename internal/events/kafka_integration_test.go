//go:build integration

package events_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"academy/internal/events"
	"academy/internal/platform/kafka/producer"
	id "academy/pkg/domain"
	"academy/pkg/testutil/containers"
)

type KafkaPublisherSuite struct {
	suite.Suite
	kafka    *containers.KafkaContainer
	producer *producer.Producer
}

func TestKafkaPublisherSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaPublisherSuite))
}

func (s *KafkaPublisherSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.kafka = mgr.GetKafka(s.T())

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	p, err := producer.New(producer.Config{
		Brokers:         s.kafka.Brokers,
		Acks:            "all",
		Retries:         3,
		DeliveryTimeout: 10 * time.Second,
	}, logger)
	s.Require().NoError(err)
	s.producer = p
}

func (s *KafkaPublisherSuite) TearDownSuite() {
	if s.producer != nil {
		s.producer.Close()
	}
}

// TestEmitRoundTrip publishes an enrollment event and consumes it back,
// verifying the key, the action header and the payload.
func (s *KafkaPublisherSuite) TestEmitRoundTrip() {
	ctx := context.Background()
	publisher := events.NewKafka(s.producer)

	institutionID := id.InstitutionID(uuid.New())
	studentID := id.AccountID(uuid.New())

	err := publisher.Emit(ctx, events.Event{
		Action:        events.ActionInstitutionEnrolled,
		InstitutionID: institutionID,
		ActorID:       studentID,
		Amount:        100,
	})
	s.Require().NoError(err)

	consumer, err := s.kafka.NewConsumer(ctx, "test-group-"+uuid.NewString(), events.Topic)
	s.Require().NoError(err)
	defer consumer.Close()

	record := s.kafka.WaitForMessage(ctx, consumer, 30*time.Second, func(r *kgo.Record) bool {
		return string(r.Key) == institutionID.String()
	})
	s.Require().NotNil(record, "expected the emitted event on the topic")

	var actionHeader string
	for _, h := range record.Headers {
		if h.Key == "action" {
			actionHeader = string(h.Value)
		}
	}
	s.Equal(string(events.ActionInstitutionEnrolled), actionHeader)

	var event events.Event
	s.Require().NoError(json.Unmarshal(record.Value, &event))
	s.Equal(events.ActionInstitutionEnrolled, event.Action)
	s.Equal(institutionID, event.InstitutionID)
	s.Equal(studentID, event.ActorID)
	s.Equal(uint64(100), event.Amount)
	s.False(event.Timestamp.IsZero())
}

// TestPerInstitutionOrdering verifies events for one institution land in
// emission order; they share a key and therefore a partition.
func (s *KafkaPublisherSuite) TestPerInstitutionOrdering() {
	ctx := context.Background()
	publisher := events.NewKafka(s.producer)
	institutionID := id.InstitutionID(uuid.New())

	actions := []events.Action{
		events.ActionInstitutionInitialized,
		events.ActionCourseCreated,
		events.ActionInstitutionEnrolled,
		events.ActionCourseEnrolled,
	}
	for _, action := range actions {
		s.Require().NoError(publisher.Emit(ctx, events.Event{
			Action:        action,
			InstitutionID: institutionID,
		}))
	}

	consumer, err := s.kafka.NewConsumer(ctx, "test-group-"+uuid.NewString(), events.Topic)
	s.Require().NoError(err)
	defer consumer.Close()

	var got []events.Action
	deadline := time.Now().Add(30 * time.Second)
	for len(got) < len(actions) && time.Now().Before(deadline) {
		record := s.kafka.WaitForMessage(ctx, consumer, 5*time.Second, func(r *kgo.Record) bool {
			return string(r.Key) == institutionID.String()
		})
		if record == nil {
			continue
		}
		var event events.Event
		s.Require().NoError(json.Unmarshal(record.Value, &event))
		got = append(got, event.Action)
	}

	s.Equal(actions, got)
}
