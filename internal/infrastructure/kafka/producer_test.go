package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"milanfood-backend/internal/domain"
)

type fakeClient struct {
	err     error
	records []*kgo.Record
	closed  bool
}

func (f *fakeClient) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	var out kgo.ProduceResults
	for _, r := range rs {
		f.records = append(f.records, r)
		out = append(out, kgo.ProduceResult{Record: r, Err: f.err})
	}
	return out
}

func (f *fakeClient) Close() { f.closed = true }

func TestProducer_Submit(t *testing.T) {
	fc := &fakeClient{}
	p := &Producer{cl: fc, topic: "orders"}

	err := p.Submit(context.Background(), &domain.Order{OrderID: "o-7", PaymentMethod: domain.PaymentCard})
	require.NoError(t, err)
	require.Len(t, fc.records, 1)
	rec := fc.records[0]
	assert.Equal(t, "orders", rec.Topic)
	assert.Equal(t, []byte("o-7"), rec.Key)

	var o domain.Order
	require.NoError(t, json.Unmarshal(rec.Value, &o))
	assert.Equal(t, domain.PaymentCard, o.PaymentMethod)

	p.Close()
	assert.True(t, fc.closed)
}

func TestProducer_Append(t *testing.T) {
	fc := &fakeClient{}
	p := &Producer{cl: fc, topic: "orders"}

	payload := json.RawMessage(`{"subtotal":14000,"total":17000}`)
	require.NoError(t, p.Append(context.Background(), "in-1", payload))
	require.Len(t, fc.records, 1)
	rec := fc.records[0]
	assert.Equal(t, []byte("in-1"), rec.Key)
	assert.Equal(t, []byte(payload), rec.Value)
	assert.Contains(t, rec.Headers, kgo.RecordHeader{Key: "order-source", Value: []byte("storefront")})
}

func TestProducer_SubmitError(t *testing.T) {
	boom := errors.New("broker not available")
	p := &Producer{cl: &fakeClient{err: boom}, topic: "orders"}
	assert.ErrorIs(t, p.Submit(context.Background(), &domain.Order{OrderID: "x"}), boom)
}

func TestNewProducer_NoBrokers(t *testing.T) {
	_, err := NewProducer([]string{" ", ""}, "")
	assert.Error(t, err)
}
