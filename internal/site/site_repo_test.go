package site_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/prasadp25/protecther-hrms-sub001/internal/site"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestSiteRepository_FindAll(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	assert.NoError(t, err)

	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "name", "code", "location", "active"}).
		AddRow(id.String(), "Pune Plant", "PUN", "Chakan", true)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "sites" WHERE "sites"."deleted_at" IS NULL ORDER BY name ASC`)).
		WillReturnRows(rows)

	sites, err := site.NewRepository(db).FindAll(context.Background())

	assert.NoError(t, err)
	if assert.Len(t, sites, 1) {
		assert.Equal(t, id, sites[0].ID)
		assert.Equal(t, "PUN", sites[0].Code)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
