package datasync

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

// Topic is the Kafka topic carrying change events for deployments that
// already run a broker.
const Topic = "laroza.data-sync"

// KafkaTransport is an optional broker-backed transport. Every instance
// consumes with a unique group ID so each process observes every event.
type KafkaTransport struct {
	writer *kafka.Writer
	reader *kafka.Reader
	origin string
}

// NewKafkaTransport creates a transport against the given brokers.
func NewKafkaTransport(brokers []string) *KafkaTransport {
	origin := uuid.NewString()
	return &KafkaTransport{
		origin: origin,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  Topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			Topic:   Topic,
			GroupID: "laroza-sync-" + origin,
			MaxWait: time.Second,
		}),
	}
}

func (t *KafkaTransport) Start(ctx context.Context, deliver func(Event)) error {
	go func() {
		for {
			msg, err := t.reader.ReadMessage(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
					return
				}
				log.Warn().Err(err).Str("topic", Topic).Msg("kafka read failed")
				continue
			}
			origin, ev, err := decodeEnvelope(msg.Value)
			if err != nil {
				log.Warn().Err(err).Str("topic", Topic).Msg("dropping sync message")
				continue
			}
			if origin == t.origin {
				continue
			}
			deliver(ev)
		}
	}()
	return nil
}

func (t *KafkaTransport) Publish(ctx context.Context, ev Event) error {
	return t.writer.WriteMessages(ctx, kafka.Message{Value: encodeEnvelope(t.origin, ev)})
}

func (t *KafkaTransport) Close() error {
	werr := t.writer.Close()
	rerr := t.reader.Close()
	if werr != nil {
		return werr
	}
	return rerr
}
