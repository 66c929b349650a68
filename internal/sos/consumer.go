package sos

import (
	"context"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"floodaid/internal/models"
)

// DefaultGroup is the consumer group used by the dispatch desk
const DefaultGroup = "dispatch_desk"

// GroupReader is the subset of the Redis client used to consume alerts
type GroupReader interface {
	XGroupCreateMkStream(ctx context.Context, stream, group, start string) *redis.StatusCmd
	XReadGroup(ctx context.Context, a *redis.XReadGroupArgs) *redis.XStreamSliceCmd
	XAck(ctx context.Context, stream, group string, ids ...string) *redis.IntCmd
}

// Handler processes one alert. Returning an error leaves the message
// unacknowledged; it stays pending and is delivered again to the same
// consumer on its next pending pass.
type Handler func(ctx context.Context, alert models.SOSAlert) error

// Consumer reads alerts from a stream through a consumer group
type Consumer struct {
	client   GroupReader
	stream   string
	group    string
	consumer string
	block    time.Duration

	pendingEvery time.Duration
	minBackoff   time.Duration
	maxBackoff   time.Duration
}

// NewConsumer creates a Consumer. Empty stream and group names use the defaults.
func NewConsumer(client GroupReader, stream, group, consumer string) *Consumer {
	if stream == "" {
		stream = DefaultStream
	}
	if group == "" {
		group = DefaultGroup
	}
	return &Consumer{
		client:   client,
		stream:   stream,
		group:    group,
		consumer: consumer,
		block:    5 * time.Second,

		pendingEvery: 30 * time.Second,
		minBackoff:   100 * time.Millisecond,
		maxBackoff:   5 * time.Second,
	}
}

// EnsureGroup creates the consumer group (and the stream) if missing
func (c *Consumer) EnsureGroup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return eris.Wrapf(err, "sos: create consumer group %s on %s", c.group, c.stream)
	}
	return nil
}

// Run reads alerts until ctx is cancelled, passing each to handle and
// acknowledging the ones it accepts. Messages that cannot be decoded are
// acknowledged and dropped. On start and every pendingEvery, the consumer's
// own unacknowledged messages are read again before new ones. Read errors
// back off exponentially up to maxBackoff.
func (c *Consumer) Run(ctx context.Context, handle Handler) error {
	if err := c.EnsureGroup(ctx); err != nil {
		return err
	}

	backoff := c.minBackoff
	var lastPending time.Time

	for {
		pending := time.Since(lastPending) >= c.pendingEvery
		streams, err := c.read(ctx, pending)

		if ctx.Err() != nil {
			return nil
		}
		if err != nil && err != redis.Nil {
			zap.L().Warn("failed to read sos stream",
				zap.String("stream", c.stream),
				zap.Duration("retry_in", backoff),
				zap.Error(err),
			)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > c.maxBackoff {
				backoff = c.maxBackoff
			}
			continue
		}
		backoff = c.minBackoff
		if pending {
			lastPending = time.Now()
		}

		for _, s := range streams {
			for _, msg := range s.Messages {
				c.process(ctx, msg, handle)
			}
		}
	}
}

// read fetches new messages, or this consumer's pending ones when pending is set
func (c *Consumer) read(ctx context.Context, pending bool) ([]redis.XStream, error) {
	args := &redis.XReadGroupArgs{
		Group:    c.group,
		Consumer: c.consumer,
		Streams:  []string{c.stream, ">"},
		Count:    10,
		Block:    c.block,
	}
	if pending {
		args.Streams = []string{c.stream, "0"}
		args.Block = -1
	}
	return c.client.XReadGroup(ctx, args).Result()
}

func (c *Consumer) process(ctx context.Context, msg redis.XMessage, handle Handler) {
	alert, err := DecodeAlert(msg)
	if err != nil {
		zap.L().Warn("dropping undecodable sos message", zap.String("message_id", msg.ID), zap.Error(err))
		c.ack(ctx, msg.ID)
		return
	}

	if err := handle(ctx, alert); err != nil {
		zap.L().Error("sos handler failed", zap.String("alert_id", alert.ID), zap.Error(err))
		return
	}
	c.ack(ctx, msg.ID)
}

func (c *Consumer) ack(ctx context.Context, id string) {
	if err := c.client.XAck(ctx, c.stream, c.group, id).Err(); err != nil {
		zap.L().Warn("failed to ack sos message", zap.String("message_id", id), zap.Error(err))
	}
}
