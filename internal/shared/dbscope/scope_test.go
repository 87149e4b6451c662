package dbscope

import (
	"testing"

	"github.com/prasadp25/protecther-hrms-sub001/internal/shared/query"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type row struct {
	ID string
}

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	sqlDB, _, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{DryRun: true})
	assert.NoError(t, err)
	return db
}

func TestScopes_SQL(t *testing.T) {
	db := dryRunDB(t)
	s := query.Default().
		SetSearch("ravi").
		SetSort("name", "ASC").
		SetFilters(map[string]string{"status": "ACTIVE", "bogus": "x"}).
		SetPage(3)

	stmt := db.Table("employees").
		Scopes(
			Search(s.Search, "first_name", "email"),
			Filters(s.Filters, map[string]string{"status": "status"}),
			Sort(s.SortBy, s.SortOrder, map[string]string{"name": "first_name"}, "created_at"),
			Paginate(s),
		).
		Find(&[]row{}).Statement

	sql := stmt.SQL.String()
	assert.Contains(t, sql, "(first_name ILIKE $1 OR email ILIKE $2)")
	assert.Contains(t, sql, "status = $3")
	assert.Contains(t, sql, "ORDER BY first_name ASC")
	assert.Contains(t, sql, "LIMIT $4 OFFSET $5")
	assert.NotContains(t, sql, "bogus")
	assert.Equal(t, "%ravi%", stmt.Vars[0])
}

func TestSort_UnknownFieldFallsBack(t *testing.T) {
	db := dryRunDB(t)

	stmt := db.Table("employees").
		Scopes(Sort("password; DROP TABLE", "ASC", map[string]string{"name": "first_name"}, "created_at")).
		Find(&[]row{}).Statement

	assert.Contains(t, stmt.SQL.String(), "ORDER BY created_at ASC")
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%`, escapeLike("50%"))
	assert.Equal(t, `emp\_01`, escapeLike("emp_01"))
	assert.Equal(t, `a\\b`, escapeLike(`a\b`))
}
