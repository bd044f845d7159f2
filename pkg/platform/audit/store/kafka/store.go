// Package kafka forwards audit events to a Kafka topic with franz-go.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "medhope/pkg/platform/audit"
)

// Store implements audit.Store by producing one record per event, keyed by
// case ID so a case's history stays ordered within a partition.
type Store struct {
	client *kgo.Client
	topic  string
}

// payload is the JSON value published for each event.
type payload struct {
	Category  string `json:"category"`
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
	CaseID    string `json:"case_id,omitempty"`
	Subject   string `json:"subject,omitempty"`
	ActorID   string `json:"actor_id,omitempty"`
	TargetID  string `json:"target_id,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Amount    string `json:"amount,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// New connects to the given brokers. Extra kgo options are appended last.
func New(brokers []string, topic string, opts ...kgo.Opt) (*Store, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka: at least one broker is required")
	}
	if topic == "" {
		return nil, errors.New("kafka: topic is required")
	}
	base := []kgo.Opt{
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerLinger(5 * time.Millisecond),
	}
	client, err := kgo.NewClient(append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &Store{client: client, topic: topic}, nil
}

// EnsureTopic creates the audit topic if it does not exist yet.
func (s *Store) EnsureTopic(ctx context.Context, partitions int32, replicationFactor int16) error {
	adm := kadm.NewClient(s.client)
	resp, err := adm.CreateTopics(ctx, partitions, replicationFactor, nil, s.topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", s.topic, err)
	}
	for _, r := range resp {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", r.Topic, r.Err)
		}
	}
	return nil
}

// Append produces the event and waits for the broker ack.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	p := payload{
		Category:  string(event.Category),
		Timestamp: event.Timestamp.UTC().Format(time.RFC3339Nano),
		Action:    event.Action,
		Subject:   event.Subject,
		Reason:    event.Reason,
		Amount:    event.Amount,
		RequestID: event.RequestID,
	}
	if !event.CaseID.IsNil() {
		p.CaseID = event.CaseID.String()
	}
	if !event.ActorID.IsNil() {
		p.ActorID = event.ActorID.String()
	}
	if !event.TargetID.IsNil() {
		p.TargetID = event.TargetID.String()
	}
	value, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(p.CaseID),
		Value: value,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

// Ping checks broker connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// Close flushes pending records and closes the client.
func (s *Store) Close() {
	s.client.Close()
}
