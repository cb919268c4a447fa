package mq

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	at := time.Date(2025, 6, 10, 11, 0, 0, 0, time.FixedZone("WEST", 3600))

	p, err := encode(Message{
		RoutingKey: "booking.created",
		ID:         "evt-1",
		OccurredAt: at,
		Body:       map[string]int{"bookingId": 7},
	}, "studio-booking")
	require.NoError(t, err)

	assert.Equal(t, "application/json", p.ContentType)
	assert.Equal(t, amqp.Persistent, p.DeliveryMode)
	assert.Equal(t, "evt-1", p.MessageId)
	assert.Equal(t, "booking.created", p.Type)
	assert.Equal(t, "studio-booking", p.AppId)
	assert.Equal(t, time.UTC, p.Timestamp.Location())
	assert.True(t, at.Equal(p.Timestamp))

	var body map[string]int
	require.NoError(t, json.Unmarshal(p.Body, &body))
	assert.Equal(t, 7, body["bookingId"])
}

func TestEncode_Errors(t *testing.T) {
	_, err := encode(Message{Body: 1}, "app")
	assert.ErrorIs(t, err, ErrEmptyKey)

	_, err = encode(Message{RoutingKey: "booking.created", Body: make(chan int)}, "app")
	assert.Error(t, err)
}

func TestEncode_DefaultsTimestamp(t *testing.T) {
	p, err := encode(Message{RoutingKey: "booking.deleted", Body: struct{}{}}, "app")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), p.Timestamp, time.Minute)
}

func TestNopPublisher(t *testing.T) {
	var p NopPublisher
	assert.NoError(t, p.Publish(context.Background(), Message{RoutingKey: "booking.created"}))
	assert.NoError(t, p.Close())
}
