package salarystructure

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/prasadp25/protecther-hrms-sub001/internal/events"
	"github.com/prasadp25/protecther-hrms-sub001/internal/metrics"
	"github.com/prasadp25/protecther-hrms-sub001/internal/salarycalc"
	salarystructureerrors "github.com/prasadp25/protecther-hrms-sub001/internal/salarystructure/errors"
	"github.com/prasadp25/protecther-hrms-sub001/internal/shared/query"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Employee statuses that end every salary structure.
const (
	statusResigned   = "RESIGNED"
	statusTerminated = "TERMINATED"
)

//go:generate mockgen -source=salary_structure_service.go -destination=mock/salary_structure_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, state query.State) ([]SalaryStructureResponse, query.PaginationMeta, error)
	GetByID(ctx context.Context, id string) (SalaryStructureResponse, error)
	Create(ctx context.Context, req SalaryStructureRequest) (SalaryStructureResponse, error)
	Update(ctx context.Context, id string, req SalaryStructureRequest) (SalaryStructureResponse, error)
	Delete(ctx context.Context, id string) error
	HandleEmployeeLifecycle(ctx context.Context, event events.EmployeeLifecycleEvent) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, m *metrics.Metrics, logger ...*zap.Logger) Service {
	l := zap.L().Named("salarystructure.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salarystructure.service")
	}
	return &service{db: db, repo: repo, metrics: m, logger: l}
}

func (s *service) List(ctx context.Context, state query.State) ([]SalaryStructureResponse, query.PaginationMeta, error) {
	items, total, err := s.repo.List(ctx, state)
	if err != nil {
		s.logger.Error("list salary structures failed", zap.Error(err))
		return nil, query.PaginationMeta{}, mapRepositoryError(err)
	}

	return mapToListResponse(items), query.NewPaginationMeta(total, state.Page, state.Limit), nil
}

func (s *service) GetByID(ctx context.Context, id string) (SalaryStructureResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SalaryStructureResponse{}, salarystructureerrors.ErrInvalidSalaryStructureID
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return SalaryStructureResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*item), nil
}

// Create stores a new active structure and deactivates the employee's
// previous ones in the same transaction.
func (s *service) Create(ctx context.Context, req SalaryStructureRequest) (SalaryStructureResponse, error) {
	item, err := buildStructure(req)
	if err != nil {
		return SalaryStructureResponse{}, err
	}
	item.ID = uuid.New()
	item.IsActive = true

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryStructureResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, item); err != nil {
		s.logger.Warn("create salary structure failed", zap.String("employee_id", req.EmployeeID), zap.Error(err))
		return SalaryStructureResponse{}, mapRepositoryError(err)
	}

	replaced, err := qtx.DeactivateByEmployee(ctx, item.EmployeeID.String(), item.ID.String())
	if err != nil {
		return SalaryStructureResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return SalaryStructureResponse{}, err
	}

	s.logger.Info("salary structure created",
		zap.String("salary_structure_id", item.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.Stringer("net_salary", item.NetSalary),
		zap.Int64("replaced", replaced),
	)
	return mapToResponse(*item), nil
}

func (s *service) Update(ctx context.Context, id string, req SalaryStructureRequest) (SalaryStructureResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SalaryStructureResponse{}, salarystructureerrors.ErrInvalidSalaryStructureID
	}

	updated, err := buildStructure(req)
	if err != nil {
		return SalaryStructureResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryStructureResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	existing, err := qtx.FindByID(ctx, id)
	if err != nil {
		return SalaryStructureResponse{}, mapRepositoryError(err)
	}

	updated.ID = existing.ID
	updated.IsActive = existing.IsActive
	updated.CreatedAt = existing.CreatedAt

	if err := qtx.Update(ctx, updated); err != nil {
		return SalaryStructureResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return SalaryStructureResponse{}, err
	}

	return mapToResponse(*updated), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return salarystructureerrors.ErrInvalidSalaryStructureID
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	return nil
}

// HandleEmployeeLifecycle deactivates all structures of an employee who
// resigned or was terminated. Other events are ignored.
func (s *service) HandleEmployeeLifecycle(ctx context.Context, event events.EmployeeLifecycleEvent) error {
	if event.EventType != events.EmployeeStatusChanged {
		return nil
	}
	if event.Status != statusResigned && event.Status != statusTerminated {
		return nil
	}

	n, err := s.repo.DeactivateByEmployee(ctx, event.EmployeeID, "")
	if err != nil {
		s.logger.Error("deactivate salary structures failed",
			zap.String("request_id", event.RequestID),
			zap.String("employee_id", event.EmployeeID),
			zap.Error(err),
		)
		return err
	}

	s.metrics.RecordDeactivated(n)
	s.logger.Info("salary structures deactivated",
		zap.String("request_id", event.RequestID),
		zap.String("employee_id", event.EmployeeID),
		zap.String("status", event.Status),
		zap.Int64("count", n),
	)
	return nil
}

// buildStructure validates the form and computes its totals. Nothing is
// persisted when validation fails.
func buildStructure(req SalaryStructureRequest) (*SalaryStructure, error) {
	if err := salarycalc.Validate(req); err != nil {
		var ve *salarycalc.ValidationError
		if errors.As(err, &ve) {
			return nil, salarystructureerrors.ErrValidation.WithDetails(ve.ByField())
		}
		return nil, err
	}

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return nil, salarystructureerrors.ErrInvalidEmployeeID
	}
	effective, err := req.EffectiveDate()
	if err != nil {
		return nil, salarystructureerrors.ErrValidation
	}

	totals := salarycalc.CalculateTotals(req)
	return &SalaryStructure{
		EmployeeID:          employeeID,
		EffectiveFrom:       effective,
		BasicSalary:         req.BasicSalary,
		HRA:                 req.HRA,
		DA:                  req.DA,
		ConveyanceAllowance: req.ConveyanceAllowance,
		MedicalAllowance:    req.MedicalAllowance,
		SpecialAllowance:    req.SpecialAllowance,
		OtherAllowances:     req.OtherAllowances,
		PFDeduction:         req.PFDeduction,
		ESIDeduction:        req.ESIDeduction,
		ProfessionalTax:     req.ProfessionalTax,
		TDS:                 req.TDS,
		LoanDeduction:       req.LoanDeduction,
		OtherDeductions:     req.OtherDeductions,
		GrossSalary:         totals.GrossSalary,
		TotalDeductions:     totals.TotalDeductions,
		NetSalary:           totals.NetSalary,
		Remarks:             req.Remarks,
	}, nil
}

func mapToResponse(s SalaryStructure) SalaryStructureResponse {
	resp := SalaryStructureResponse{
		ID:            s.ID.String(),
		EmployeeID:    s.EmployeeID.String(),
		EffectiveFrom: s.EffectiveFrom.Format(salarycalc.DateLayout),
		Earnings: salarycalc.Earnings{
			BasicSalary:         s.BasicSalary,
			HRA:                 s.HRA,
			DA:                  s.DA,
			ConveyanceAllowance: s.ConveyanceAllowance,
			MedicalAllowance:    s.MedicalAllowance,
			SpecialAllowance:    s.SpecialAllowance,
			OtherAllowances:     s.OtherAllowances,
		},
		Deductions: salarycalc.Deductions{
			PFDeduction:     s.PFDeduction,
			ESIDeduction:    s.ESIDeduction,
			ProfessionalTax: s.ProfessionalTax,
			TDS:             s.TDS,
			LoanDeduction:   s.LoanDeduction,
			OtherDeductions: s.OtherDeductions,
		},
		Totals: salarycalc.Totals{
			GrossSalary:     s.GrossSalary,
			TotalDeductions: s.TotalDeductions,
			NetSalary:       s.NetSalary,
		},
		Remarks:  s.Remarks,
		IsActive: s.IsActive,
	}
	if !s.CreatedAt.IsZero() {
		resp.CreatedAt = s.CreatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(items []SalaryStructure) []SalaryStructureResponse {
	res := make([]SalaryStructureResponse, len(items))
	for i, item := range items {
		res[i] = mapToResponse(item)
	}
	return res
}
