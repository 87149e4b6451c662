package app

import (
	"context"

	"github.com/prasadp25/protecther-hrms-sub001/internal/auth"
	"github.com/prasadp25/protecther-hrms-sub001/internal/employee"
	"github.com/prasadp25/protecther-hrms-sub001/internal/salarystructure"
	"github.com/prasadp25/protecther-hrms-sub001/internal/site"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Tables written through raw SQL rather than gorm models.
var rawSchema = []string{
	`CREATE TABLE IF NOT EXISTS hr_counters (
	counter_type VARCHAR(50) PRIMARY KEY,
	last_value   BIGINT NOT NULL DEFAULT 0,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE TABLE IF NOT EXISTS outbox_events (
	id             UUID PRIMARY KEY,
	request_id     VARCHAR(64),
	aggregate_type VARCHAR(50) NOT NULL,
	aggregate_id   UUID NOT NULL,
	event_type     VARCHAR(100) NOT NULL,
	topic          VARCHAR(255) NOT NULL,
	payload        JSONB NOT NULL,
	status         VARCHAR(20) NOT NULL DEFAULT 'pending',
	retry_count    INT NOT NULL DEFAULT 0,
	next_retry_at  TIMESTAMPTZ,
	error_message  TEXT,
	processed_at   TIMESTAMPTZ,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE INDEX IF NOT EXISTS idx_outbox_events_pending
	ON outbox_events (status, next_retry_at, created_at)`,
}

// migrate creates or updates the schema the API and worker use.
func migrate(ctx context.Context, db *gorm.DB, logger *zap.Logger) error {
	db = db.WithContext(ctx)
	if err := db.AutoMigrate(
		&site.Site{},
		&employee.Employee{},
		&salarystructure.SalaryStructure{},
		&auth.User{},
	); err != nil {
		return err
	}
	for _, stmt := range rawSchema {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	logger.Info("database schema migrated")
	return nil
}
