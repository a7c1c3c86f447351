package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jmehdipour/custgen/internal/model"
	"github.com/segmentio/kafka-go"
)

type Config struct {
	Brokers      []string
	Topic        string
	BatchSize    int           // default 500
	BatchTimeout time.Duration // default 200ms
	RequiredAcks int           // -1 all, 0 none, 1 leader
}

type Message = kafka.Message

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer is a thin wrapper around segmentio/kafka-go Writer.
type Producer struct {
	w         messageWriter
	batchSize int
}

func NewProducerFromConfig(c Config) *Producer {
	bs := c.BatchSize
	if bs <= 0 {
		bs = 500
	}
	bt := c.BatchTimeout
	if bt <= 0 {
		bt = 200 * time.Millisecond
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(c.Brokers...),
		Topic:        c.Topic,
		Balancer:     &kafka.Hash{}, // same customer_id, same partition
		BatchSize:    bs,
		BatchTimeout: bt,
		RequiredAcks: kafka.RequiredAcks(c.RequiredAcks),
	}
	return &Producer{w: w, batchSize: bs}
}

// EncodeRecord keys the message by customer_id and carries the record as JSON.
func EncodeRecord(c model.Customer) (Message, error) {
	v, err := json.Marshal(c)
	if err != nil {
		return Message{}, err
	}
	return Message{
		Key:   []byte(strconv.FormatInt(c.CustomerID, 10)),
		Value: v,
		Headers: []kafka.Header{
			{Key: "status", Value: []byte(c.Status.String())},
		},
	}, nil
}

// Publish writes records in order, batchSize messages per call.
// It returns the number of messages acknowledged before the first failure.
func (p *Producer) Publish(ctx context.Context, records []model.Customer) (int64, error) {
	var sent int64
	batch := make([]Message, 0, p.batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := p.w.WriteMessages(ctx, batch...); err != nil {
			return fmt.Errorf("write messages: %w", err)
		}
		sent += int64(len(batch))
		batch = batch[:0]
		return nil
	}

	for _, c := range records {
		m, err := EncodeRecord(c)
		if err != nil {
			return sent, fmt.Errorf("encode customer %d: %w", c.CustomerID, err)
		}
		batch = append(batch, m)
		if len(batch) >= p.batchSize {
			if err := flush(); err != nil {
				return sent, err
			}
		}
	}
	if err := flush(); err != nil {
		return sent, err
	}
	return sent, nil
}

func (p *Producer) Close() error { return p.w.Close() }
