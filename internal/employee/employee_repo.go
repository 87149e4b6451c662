package employee

import (
	"context"
	"database/sql"

	"github.com/prasadp25/protecther-hrms-sub001/internal/shared/dbscope"
	"github.com/prasadp25/protecther-hrms-sub001/internal/shared/query"

	"gorm.io/gorm"
)

// Filter keys accepted by the list endpoint besides status.
var ListFilters = []string{"status", "department", "designation", "site_id"}

var (
	searchColumns = []string{"employee_code", "first_name", "last_name", "email", "phone"}
	sortColumns   = map[string]string{
		"employeeCode":    "employee_code",
		"employee_code":   "employee_code",
		"firstName":       "first_name",
		"first_name":      "first_name",
		"lastName":        "last_name",
		"last_name":       "last_name",
		"designation":     "designation",
		"department":      "department",
		"dateOfJoining":   "date_of_joining",
		"date_of_joining": "date_of_joining",
		"status":          "status",
		"createdAt":       "created_at",
		"created_at":      "created_at",
	}
	filterColumns = map[string]string{
		"status":      "status",
		"department":  "department",
		"designation": "designation",
		"site_id":     "site_id",
	}
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	List(ctx context.Context, state query.State) ([]Employee, int64, error)
	FindOptions(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	Create(ctx context.Context, empl *Employee) error
	Update(ctx context.Context, empl *Employee) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) List(ctx context.Context, state query.State) ([]Employee, int64, error) {
	base := r.conn(ctx).Model(&Employee{}).
		Scopes(
			dbscope.Search(state.Search, searchColumns...),
			dbscope.Filters(state.Filters, filterColumns),
		)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var empls []Employee
	err := base.Session(&gorm.Session{}).
		Scopes(
			dbscope.Sort(state.SortBy, state.SortOrder, sortColumns, "created_at"),
			dbscope.Paginate(state),
		).
		Find(&empls).Error
	return empls, total, err
}

func (r *repository) FindOptions(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.conn(ctx).
		Select("id", "employee_code", "first_name", "last_name").
		Where("status = ?", StatusActive).
		Order("employee_code ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.conn(ctx).First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Create(empl).Error
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Save(empl).Error
}
