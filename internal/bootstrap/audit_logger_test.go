package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/prasadp25/protecther-hrms-sub001/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapAuditLogger_Log(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := NewZapAuditLogger(zap.New(core))
	l.now = func() time.Time { return time.Date(2024, 4, 1, 8, 30, 0, 0, time.UTC) }

	ctx := contextutil.WithRequestID(context.Background(), "REQ-9")
	l.Log(ctx, AuditLog{Action: "SERVER_SHUTDOWN", Message: "bye", Meta: map[string]any{"signal": "terminated"}})

	entries := logs.FilterMessage("audit event").All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "audit", entries[0].LoggerName)
		assert.Equal(t, "2024-04-01T08:30:00Z", fields["timestamp"])
		assert.Equal(t, "SERVER_SHUTDOWN", fields["action"])
		assert.Equal(t, "REQ-9", fields["request_id"])
	}
}

func TestZapAuditLogger_NoRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	NewZapAuditLogger(zap.New(core)).Log(context.Background(), AuditLog{Action: "SERVER_START"})

	fields := logs.All()[0].ContextMap()
	_, has := fields["request_id"]
	assert.False(t, has)
}
