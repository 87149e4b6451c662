package salarystructure

import (
	"context"
	"database/sql"

	"github.com/prasadp25/protecther-hrms-sub001/internal/shared/dbscope"
	"github.com/prasadp25/protecther-hrms-sub001/internal/shared/query"

	"gorm.io/gorm"
)

var ListFilters = []string{"employee_id", "is_active"}

var (
	sortColumns = map[string]string{
		"effectiveFrom":  "effective_from",
		"effective_from": "effective_from",
		"basicSalary":    "basic_salary",
		"basic_salary":   "basic_salary",
		"netSalary":      "net_salary",
		"net_salary":     "net_salary",
		"createdAt":      "created_at",
		"created_at":     "created_at",
	}
	filterColumns = map[string]string{
		"employee_id": "employee_id",
		"is_active":   "is_active",
	}
)

//go:generate mockgen -source=salary_structure_repo.go -destination=mock/salary_structure_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	List(ctx context.Context, state query.State) ([]SalaryStructure, int64, error)
	FindByID(ctx context.Context, id string) (*SalaryStructure, error)
	Create(ctx context.Context, s *SalaryStructure) error
	Update(ctx context.Context, s *SalaryStructure) error
	Delete(ctx context.Context, id string) error
	DeactivateByEmployee(ctx context.Context, employeeID string, exceptID string) (int64, error)
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

func (r *repository) List(ctx context.Context, state query.State) ([]SalaryStructure, int64, error) {
	base := r.conn(ctx).Model(&SalaryStructure{}).
		Scopes(dbscope.Filters(state.Filters, filterColumns))

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []SalaryStructure
	err := base.Session(&gorm.Session{}).
		Scopes(
			dbscope.Sort(state.SortBy, state.SortOrder, sortColumns, "effective_from"),
			dbscope.Paginate(state),
		).
		Find(&items).Error
	return items, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*SalaryStructure, error) {
	var s SalaryStructure
	err := r.conn(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) Create(ctx context.Context, s *SalaryStructure) error {
	return r.conn(ctx).Create(s).Error
}

func (r *repository) Update(ctx context.Context, s *SalaryStructure) error {
	return r.conn(ctx).Save(s).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.conn(ctx).Delete(&SalaryStructure{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeactivateByEmployee clears is_active on every active structure of the
// employee except exceptID (which may be empty).
func (r *repository) DeactivateByEmployee(ctx context.Context, employeeID string, exceptID string) (int64, error) {
	q := r.conn(ctx).Model(&SalaryStructure{}).
		Where("employee_id = ? AND is_active = ?", employeeID, true)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	res := q.Update("is_active", false)
	return res.RowsAffected, res.Error
}
