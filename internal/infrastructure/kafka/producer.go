package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/twmb/franz-go/pkg/kgo"

	"milanfood-backend/internal/domain"
)

const DefaultTopic = "milanfood.orders"

type client interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// Producer publishes each order as one record keyed by order id.
type Producer struct {
	cl    client
	topic string
}

func NewProducer(brokers []string, topic string) (*Producer, error) {
	var seeds []string
	for _, b := range brokers {
		if b = strings.TrimSpace(b); b != "" {
			seeds = append(seeds, b)
		}
	}
	if len(seeds) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}
	if topic == "" {
		topic = DefaultTopic
	}
	cl, err := kgo.NewClient(
		kgo.SeedBrokers(seeds...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, err
	}
	return &Producer{cl: cl, topic: topic}, nil
}

func (p *Producer) Submit(ctx context.Context, o *domain.Order) error {
	value, err := json.Marshal(o)
	if err != nil {
		return err
	}
	return p.produce(ctx, o.OrderID, value, "checkout")
}

// Append publishes a storefront payload unchanged, keyed by its intake id.
func (p *Producer) Append(ctx context.Context, id string, payload json.RawMessage) error {
	return p.produce(ctx, id, payload, "storefront")
}

func (p *Producer) produce(ctx context.Context, key string, value []byte, source string) error {
	rec := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(key),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "content-type", Value: []byte("application/json")},
			{Key: "order-source", Value: []byte(source)},
		},
	}
	return p.cl.ProduceSync(ctx, rec).FirstErr()
}

func (p *Producer) Close() {
	p.cl.Close()
}
