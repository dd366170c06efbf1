package kitchenfeed

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CanteenBooking/pkg/logger"
	"github.com/m04kA/SMC-CanteenBooking/pkg/ptr"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_PublishBookingIssued(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w, topic: "canteen.bookings", log: logger.NewNop()}
	issuedAt := time.Date(2026, 10, 16, 12, 5, 0, 0, time.UTC)

	err := p.PublishBookingIssued(context.Background(), BookingIssued{
		Token:      "tok-1",
		Date:       "2026-10-16",
		Section:    "Afternoon",
		Item:       "VEG COMBO",
		Price:      75,
		PortionKey: ptr.Ptr("PORTION-VC"),
		Remaining:  ptr.Ptr(4),
		IssuedAt:   issuedAt,
	})
	require.NoError(t, err)
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, "2026-10-16:Afternoon", string(msg.Key))
	assert.Equal(t, issuedAt, msg.Time)

	var event Event
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, "booking", event.Entity)
	assert.Equal(t, "issued", event.Action)
	assert.Equal(t, "tok-1", event.ResourceID)
	assert.Equal(t, "canteen.bookings", event.Topic)
	require.NotNil(t, event.Data.Remaining)
	assert.Equal(t, 4, *event.Data.Remaining)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	p := &KafkaPublisher{writer: &fakeWriter{err: errors.New("leader not available")}, log: logger.NewNop()}

	err := p.PublishBookingIssued(context.Background(), BookingIssued{Token: "tok-1"})
	assert.ErrorIs(t, err, ErrPublish)
}

func TestNoopPublisher(t *testing.T) {
	var p NoopPublisher
	assert.NoError(t, p.PublishBookingIssued(context.Background(), BookingIssued{}))
	assert.NoError(t, p.Close())
}
