package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/prasadp25/protecther-hrms-sub001/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	defaultInitialBackoff = 500 * time.Millisecond
	defaultMaxBackoff     = 30 * time.Second
)

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// LifecycleHandler reacts to employee lifecycle events. A failed event is
// retried in place until it succeeds or the consumer stops; later messages
// wait behind it.
type LifecycleHandler interface {
	HandleEmployeeLifecycle(ctx context.Context, event events.EmployeeLifecycleEvent) error
}

type options struct {
	initialBackoff time.Duration
	maxBackoff     time.Duration
}

type Option func(*options)

// WithRetryBackoff sets the delay before the first retry and its cap. The
// delay doubles after every failed attempt.
func WithRetryBackoff(initial, maxDelay time.Duration) Option {
	return func(o *options) {
		o.initialBackoff = initial
		o.maxBackoff = maxDelay
	}
}

func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader MessageReader,
	handler LifecycleHandler,
	logger *zap.Logger,
	opts ...Option,
) {
	o := options{initialBackoff: defaultInitialBackoff, maxBackoff: defaultMaxBackoff}
	for _, opt := range opts {
		opt(&o)
	}

	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeLifecycleEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee lifecycle event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		// Committing a later offset would implicitly commit this one, so the
		// event must succeed before anything else is read.
		if err := handleWithRetry(ctx, handler, event, o, log); err != nil {
			log.Info("employee lifecycle consumer stopped with uncommitted event",
				zap.String("employee_id", event.EmployeeID),
				zap.Int64("offset", msg.Offset),
			)
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
			continue
		}

		log.Debug("employee lifecycle event handled",
			zap.String("event_type", event.EventType),
			zap.String("employee_id", event.EmployeeID),
		)
	}
}

// handleWithRetry returns nil once the handler succeeds, or ctx.Err() if the
// consumer is stopped first.
func handleWithRetry(
	ctx context.Context,
	handler LifecycleHandler,
	event events.EmployeeLifecycleEvent,
	o options,
	log *zap.Logger,
) error {
	backoff := o.initialBackoff
	for attempt := 1; ; attempt++ {
		err := handler.HandleEmployeeLifecycle(ctx, event)
		if err == nil {
			return nil
		}
		log.Error("handle employee lifecycle event failed",
			zap.String("request_id", event.RequestID),
			zap.String("event_type", event.EventType),
			zap.String("employee_id", event.EmployeeID),
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", backoff),
			zap.Error(err),
		)

		if ctx.Err() != nil {
			return ctx.Err()
		}
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
		if backoff > o.maxBackoff {
			backoff = o.maxBackoff
		}
	}
}
