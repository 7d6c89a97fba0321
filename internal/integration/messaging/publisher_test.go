package messaging

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	subject string
	data    string
}

type fakeConn struct {
	messages []published
	err      error
	drained  bool
}

func (c *fakeConn) Publish(subject string, data []byte) error {
	if c.err != nil {
		return c.err
	}
	c.messages = append(c.messages, published{subject: subject, data: string(data)})
	return nil
}

func (c *fakeConn) Drain() error {
	c.drained = true
	return nil
}

func TestNATSPublisher_Publish(t *testing.T) {
	tests := []struct {
		name        string
		prefix      string
		wantSubject string
	}{
		{name: "no prefix", prefix: "", wantSubject: "orders.created"},
		{name: "with prefix", prefix: "staging", wantSubject: "staging.orders.created"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &fakeConn{}
			p := &NATSPublisher{conn: c, prefix: tt.prefix}

			err := p.Publish(context.Background(), "orders.created", map[string]string{"order_number": "ORD-20240612-0001"})
			require.NoError(t, err)

			require.Len(t, c.messages, 1)
			assert.Equal(t, tt.wantSubject, c.messages[0].subject)
			assert.JSONEq(t, `{"order_number":"ORD-20240612-0001"}`, c.messages[0].data)
		})
	}
}

func TestNATSPublisher_Errors(t *testing.T) {
	c := &fakeConn{err: errors.New("connection closed")}
	p := &NATSPublisher{conn: c}

	err := p.Publish(context.Background(), "orders.created", struct{}{})
	assert.ErrorContains(t, err, "connection closed")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Publish(ctx, "orders.created", struct{}{}), context.Canceled)

	require.NoError(t, p.Close())
	assert.True(t, c.drained)
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), "orders.created", nil))
}
