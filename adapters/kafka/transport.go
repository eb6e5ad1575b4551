// Package kafka relays finalized quote submissions onto a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"quote-calculator/core/types"
)

// StatusAccepted is reported once the broker acknowledged the record
const StatusAccepted = http.StatusAccepted

// messageWriter is the part of *kafka.Writer the transport needs
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Config configures the Kafka relay
type Config struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// Transport publishes one message per submission
type Transport struct {
	writer     messageWriter
	topic      string
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
}

// NewWriter builds a synchronous writer that waits for the leader ack
func NewWriter(cfg Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: cfg.WriteTimeout,
		MaxAttempts:  1,
	}
}

// New creates a Kafka transport for cfg
func New(cfg Config) *Transport {
	return newTransport(NewWriter(cfg), cfg.Topic)
}

func newTransport(w messageWriter, topic string) *Transport {
	return &Transport{
		writer:     w,
		topic:      topic,
		tracer:     otel.Tracer("quote-calculator/kafka"),
		propagator: otel.GetTextMapPropagator(),
	}
}

// Post writes record to the topic keyed by service kind. A broker ack is
// reported as 202; anything else is a transport error.
func (t *Transport) Post(ctx context.Context, record types.SubmissionRecord) (types.RelayResponse, error) {
	ctx, span := t.tracer.Start(ctx, "kafka.Post", trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(attribute.String("messaging.destination", t.topic)))
	defer span.End()

	value, err := json.Marshal(record)
	if err != nil {
		return types.RelayResponse{}, fmt.Errorf("failed to encode record: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(record.Service.String()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
		},
	}
	t.propagator.Inject(ctx, HeaderCarrier{headers: &msg.Headers})

	if err := t.writer.WriteMessages(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "write failed")
		return types.RelayResponse{}, fmt.Errorf("kafka write: %w", err)
	}

	return types.RelayResponse{StatusCode: StatusAccepted}, nil
}

// Close flushes and closes the writer
func (t *Transport) Close() error {
	return t.writer.Close()
}

// HeaderCarrier adapts Kafka message headers to a propagation.TextMapCarrier
type HeaderCarrier struct {
	headers *[]kafka.Header
}

// NewHeaderCarrier wraps headers for injection or extraction
func NewHeaderCarrier(headers *[]kafka.Header) HeaderCarrier {
	return HeaderCarrier{headers: headers}
}

// Get returns the first value for key
func (c HeaderCarrier) Get(key string) string {
	for _, h := range *c.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

// Set replaces key or appends it
func (c HeaderCarrier) Set(key, value string) {
	for i, h := range *c.headers {
		if h.Key == key {
			(*c.headers)[i].Value = []byte(value)
			return
		}
	}
	*c.headers = append(*c.headers, kafka.Header{Key: key, Value: []byte(value)})
}

// Keys lists the header keys
func (c HeaderCarrier) Keys() []string {
	keys := make([]string, 0, len(*c.headers))
	for _, h := range *c.headers {
		keys = append(keys, h.Key)
	}
	return keys
}
