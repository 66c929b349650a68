package sos

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
	"github.com/rotisserie/eris"

	"floodaid/internal/models"
)

// DefaultStream is the Redis stream SOS alerts are published to
const DefaultStream = "sos_alerts"

const maxStreamLen = 1000

// StreamAdder is the subset of the Redis client used to publish alerts
type StreamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// Dispatcher publishes alerts to a Redis stream
type Dispatcher struct {
	client StreamAdder
	stream string
}

// NewDispatcher creates a Dispatcher. An empty stream name uses DefaultStream.
func NewDispatcher(client StreamAdder, stream string) *Dispatcher {
	if stream == "" {
		stream = DefaultStream
	}
	return &Dispatcher{client: client, stream: stream}
}

// Dispatch appends the alert to the stream as JSON under the "data" field
func (d *Dispatcher) Dispatch(ctx context.Context, alert models.SOSAlert) error {
	data, err := json.Marshal(alert)
	if err != nil {
		return eris.Wrap(err, "sos: marshal alert")
	}

	err = d.client.XAdd(ctx, &redis.XAddArgs{
		Stream: d.stream,
		MaxLen: maxStreamLen,
		Approx: true,
		Values: map[string]interface{}{
			"id":   alert.ID,
			"city": alert.City,
			"data": string(data),
		},
	}).Err()
	if err != nil {
		return eris.Wrapf(err, "sos: publish alert %s to stream %s", alert.ID, d.stream)
	}
	return nil
}

// DecodeAlert reads an alert back from a stream message
func DecodeAlert(msg redis.XMessage) (models.SOSAlert, error) {
	var alert models.SOSAlert

	raw, ok := msg.Values["data"].(string)
	if !ok {
		return alert, eris.Errorf("sos: message %s has no data field", msg.ID)
	}
	if err := json.Unmarshal([]byte(raw), &alert); err != nil {
		return alert, eris.Wrapf(err, "sos: decode message %s", msg.ID)
	}
	return alert, nil
}
