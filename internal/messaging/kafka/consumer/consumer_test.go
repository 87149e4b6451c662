package consumer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prasadp25/protecther-hrms-sub001/internal/events"
	"github.com/prasadp25/protecther-hrms-sub001/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// scriptedReader replays messages then blocks until ctx is cancelled.
type scriptedReader struct {
	messages  []kafkago.Message
	fetched   []string
	committed []string
	cancel    context.CancelFunc
}

func (r *scriptedReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(r.messages) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.messages[0]
	r.messages = r.messages[1:]
	r.fetched = append(r.fetched, string(msg.Key))
	return msg, nil
}

func (r *scriptedReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, string(m.Key))
	}
	return nil
}

// flakyHandler fails the first failures[employeeID] attempts for an employee.
type flakyHandler struct {
	handled  []events.EmployeeLifecycleEvent
	attempts map[string]int
	failures map[string]int
	onFail   func()
}

func (h *flakyHandler) HandleEmployeeLifecycle(ctx context.Context, event events.EmployeeLifecycleEvent) error {
	if h.attempts == nil {
		h.attempts = map[string]int{}
	}
	h.attempts[event.EmployeeID]++
	if h.attempts[event.EmployeeID] <= h.failures[event.EmployeeID] {
		if h.onFail != nil {
			h.onFail()
		}
		return errors.New("db unavailable")
	}
	h.handled = append(h.handled, event)
	return nil
}

func lifecycleMessage(key, employeeID, status string) kafkago.Message {
	return kafkago.Message{
		Key:   []byte(key),
		Value: []byte(`{"event_type":"employee_status_changed","employee_id":"` + employeeID + `","status":"` + status + `"}`),
	}
}

func TestConsumeEmployeeLifecycle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &scriptedReader{
		cancel: cancel,
		messages: []kafkago.Message{
			lifecycleMessage("ok", "e1", "RESIGNED"),
			{Key: []byte("bad-json"), Value: []byte(`{`)},
			lifecycleMessage("retry", "e2", "TERMINATED"),
			lifecycleMessage("after", "e3", "ACTIVE"),
		},
	}
	handler := &flakyHandler{failures: map[string]int{"e2": 2}}

	consumer.ConsumeEmployeeLifecycle(ctx, reader, handler, zap.NewNop(),
		consumer.WithRetryBackoff(time.Millisecond, 2*time.Millisecond))

	assert.Equal(t, 3, handler.attempts["e2"])
	if assert.Len(t, handler.handled, 3) {
		assert.Equal(t, "RESIGNED", handler.handled[0].Status)
		assert.Equal(t, "e2", handler.handled[1].EmployeeID)
		assert.Equal(t, "e3", handler.handled[2].EmployeeID)
	}
	assert.Equal(t, []string{"ok", "bad-json", "retry", "after"}, reader.committed)
}

func TestConsumeEmployeeLifecycle_StopWhileRetryingLeavesEventUncommitted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &scriptedReader{
		cancel: cancel,
		messages: []kafkago.Message{
			lifecycleMessage("ok", "e1", "RESIGNED"),
			lifecycleMessage("stuck", "e2", "TERMINATED"),
			lifecycleMessage("after", "e3", "ACTIVE"),
		},
	}
	handler := &flakyHandler{failures: map[string]int{"e2": 1000}}
	handler.onFail = func() {
		if handler.attempts["e2"] == 3 {
			cancel()
		}
	}

	consumer.ConsumeEmployeeLifecycle(ctx, reader, handler, zap.NewNop(),
		consumer.WithRetryBackoff(time.Millisecond, time.Millisecond))

	assert.Equal(t, 3, handler.attempts["e2"])
	assert.Equal(t, []string{"ok"}, reader.committed)
	assert.Equal(t, []string{"ok", "stuck"}, reader.fetched)
	assert.Zero(t, handler.attempts["e3"])
}
