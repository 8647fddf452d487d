// Package redpanda publishes match lifecycle events to Redpanda/Kafka for the
// notification system.
package redpanda

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"

	"github.com/fairyhunter13/career-match/internal/domain"
	obsctx "github.com/fairyhunter13/career-match/internal/observability"
)

// DefaultTopic receives one record per persisted match.
const DefaultTopic = "match-recorded"

// producerClient is the subset of *kgo.Client the publisher needs.
type producerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// Publisher implements domain.MatchEvents.
type Publisher struct {
	client producerClient
	topic  string
}

// NewPublisher connects an idempotent producer to brokers and makes sure topic exists.
func NewPublisher(ctx context.Context, brokers []string, topic string) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("op=redpanda.NewPublisher: no seed brokers provided")
	}
	if topic == "" {
		topic = DefaultTopic
	}
	slog.Info("creating match event publisher", slog.Any("brokers", brokers), slog.String("topic", topic))

	kt := kotel.NewKotel(kotel.WithTracer(kotel.NewTracer(kotel.TracerProvider(otel.GetTracerProvider()))))
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.RequestRetries(10),
		kgo.ProducerBatchMaxBytes(1000000),
		kgo.DialTimeout(10*time.Second),
		kgo.WithHooks(kt.Hooks()...),
	)
	if err != nil {
		return nil, fmt.Errorf("op=redpanda.NewPublisher: %w", err)
	}

	if err := createTopicIfNotExists(ctx, client, topic, 1, 1); err != nil {
		// the broker may auto-create or the topic may be managed elsewhere
		slog.Warn("failed to ensure topic", slog.String("topic", topic), slog.Any("error", err))
	}
	return &Publisher{client: client, topic: topic}, nil
}

// PublishMatchRecorded produces ev synchronously, keyed by user id so a
// user's events stay ordered.
func (p *Publisher) PublishMatchRecorded(ctx domain.Context, ev domain.MatchRecordedEvent) error {
	rec, err := buildRecord(ctx, p.topic, ev)
	if err != nil {
		return err
	}
	if err := p.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return fmt.Errorf("op=redpanda.publish: %w", err)
	}
	slog.Debug("match event published", slog.String("match_id", ev.MatchID), slog.String("topic", p.topic))
	return nil
}

// Close flushes and closes the client.
func (p *Publisher) Close() error {
	if p != nil && p.client != nil {
		p.client.Close()
	}
	return nil
}

func buildRecord(ctx context.Context, topic string, ev domain.MatchRecordedEvent) (*kgo.Record, error) {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("op=redpanda.publish: marshal: %w", err)
	}
	rec := &kgo.Record{
		Topic: topic,
		Key:   []byte(ev.UserID),
		Value: b,
		Headers: []kgo.RecordHeader{
			{Key: "event_type", Value: []byte("match.recorded")},
			{Key: "match_id", Value: []byte(ev.MatchID)},
			{Key: "match_type", Value: []byte(ev.MatchType)},
			{Key: "score", Value: []byte(strconv.Itoa(ev.Score))},
		},
	}
	if rid := obsctx.RequestIDFromContext(ctx); rid != "" {
		rec.Headers = append(rec.Headers, kgo.RecordHeader{Key: "request_id", Value: []byte(rid)})
	}
	return rec, nil
}
