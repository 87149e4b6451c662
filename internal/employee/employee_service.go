package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	employeeerrors "github.com/prasadp25/protecther-hrms-sub001/internal/employee/errors"
	"github.com/prasadp25/protecther-hrms-sub001/internal/events"
	"github.com/prasadp25/protecther-hrms-sub001/internal/messaging/kafka"
	"github.com/prasadp25/protecther-hrms-sub001/internal/metrics"
	"github.com/prasadp25/protecther-hrms-sub001/internal/shared/contextutil"
	"github.com/prasadp25/protecther-hrms-sub001/internal/shared/counter"
	"github.com/prasadp25/protecther-hrms-sub001/internal/shared/query"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeeOptionsKey = "employees:options"
	dateLayout         = "2006-01-02"
	optionsTTL         = time.Hour
)

// StatusAll is the list filter value meaning "any status".
const StatusAll = "ALL"

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, state query.State) ([]EmployeeResponse, query.PaginationMeta, error)
	GetOptions(ctx context.Context) ([]EmployeeOptionResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Patch(ctx context.Context, id string, req PatchEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	metrics *metrics.Metrics
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, counter, nil, rdb, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	m *metrics.Metrics,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		outbox:  outboxRepo,
		rdb:     rdb,
		metrics: m,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) List(ctx context.Context, state query.State) ([]EmployeeResponse, query.PaginationMeta, error) {
	if strings.EqualFold(state.Filter("status"), StatusAll) {
		filters := make(map[string]string, len(state.Filters))
		for k, v := range state.Filters {
			if k != "status" {
				filters[k] = v
			}
		}
		state.Filters = filters
	}

	s.logger.Debug("list employees requested",
		zap.Int("page", state.Page),
		zap.Int("limit", state.Limit),
		zap.String("search", state.Search),
		zap.String("sort_by", state.SortBy),
		zap.Any("filters", state.Filters),
	)

	empls, total, err := s.repo.List(ctx, state)
	if err != nil {
		s.logger.Error("list employees failed", zap.Error(err))
		return nil, query.PaginationMeta{}, mapRepositoryError(err)
	}

	return mapToListResponse(empls), query.NewPaginationMeta(total, state.Page, state.Limit), nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeOptionResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result(); err == nil {
			var resp []EmployeeOptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(EmployeeOptionsKey, func() (interface{}, error) {
		empls, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeOptionResponse, 0, len(empls))
		for _, e := range empls {
			resp = append(resp, EmployeeOptionResponse{
				ID:           e.ID.String(),
				EmployeeCode: e.EmployeeCode,
				FullName:     e.FullName(),
			})
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, EmployeeOptionsKey, jsonData, optionsTTL).Err(); err != nil {
					s.logger.Warn("cache employee options failed", zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		s.logger.Error("get employee options failed", zap.Error(err))
		return nil, err
	}

	return v.([]EmployeeOptionResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested", zap.String("employee_id", id))
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("get employee by id failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
	)

	empl := &Employee{ID: uuid.New(), Status: StatusActive}
	if err := applyFullRequest(empl, req); err != nil {
		s.logger.Warn("create employee invalid input", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	if empl.EmployeeCode == "" {
		nextVal, err := s.counter.GetNextValue(ctx, counter.EmployeeCode)
		if err != nil {
			s.logger.Error("create employee generate code failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		empl.EmployeeCode = fmt.Sprintf("EMP-%06d", nextVal)
	}

	if err := s.repo.WithTx(tx).Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	event := lifecycleEvent(events.EmployeeCreated, rid, *empl, "")
	if err := enqueueLifecycleEvent(ctx, s.outbox, tx, event); err != nil {
		s.logger.Error("create employee outbox persist failed",
			zap.String("employee_id", empl.ID.String()),
			zap.Error(err),
		)
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_code", empl.EmployeeCode),
	)

	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested", zap.String("employee_id", id))
	return s.mutate(ctx, id, func(empl *Employee) error {
		code := empl.EmployeeCode
		if err := applyFullRequest(empl, req); err != nil {
			return err
		}
		if empl.EmployeeCode == "" {
			empl.EmployeeCode = code
		}
		return nil
	})
}

func (s *service) Patch(ctx context.Context, id string, req PatchEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("patch employee requested", zap.String("employee_id", id))
	return s.mutate(ctx, id, func(empl *Employee) error {
		return applyPatch(empl, req)
	})
}

// Delete is a soft delete: the employee is marked RESIGNED and kept.
func (s *service) Delete(ctx context.Context, id string) error {
	s.logger.Debug("delete employee requested", zap.String("employee_id", id))
	_, err := s.mutate(ctx, id, func(empl *Employee) error {
		empl.Status = StatusResigned
		return nil
	})
	return err
}

// mutate loads the employee inside a transaction, applies fn, saves it and
// queues a status-change event when the status moved.
func (s *service) mutate(ctx context.Context, id string, fn func(*Employee) error) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("update employee fetch existing failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	previous := empl.Status
	if err := fn(empl); err != nil {
		s.logger.Warn("update employee invalid input", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	statusChanged := previous != empl.Status
	if statusChanged {
		event := lifecycleEvent(events.EmployeeStatusChanged, rid, *empl, previous)
		if err := enqueueLifecycleEvent(ctx, s.outbox, tx, event); err != nil {
			s.logger.Error("update employee outbox persist failed", zap.String("employee_id", id), zap.Error(err))
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)
	if statusChanged {
		s.metrics.RecordTransition(previous, empl.Status)
		s.logger.Info("employee status changed",
			zap.String("request_id", rid),
			zap.String("employee_id", id),
			zap.String("from", previous),
			zap.String("to", empl.Status),
		)
	}

	return mapToResponse(*empl), nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", EmployeeOptionsKey),
		)
	}
}

func applyFullRequest(empl *Employee, req CreateEmployeeRequest) error {
	joined, err := time.Parse(dateLayout, req.DateOfJoining)
	if err != nil {
		return employeeerrors.ErrInvalidDate
	}
	dob, err := parseOptionalDate(req.DateOfBirth)
	if err != nil {
		return err
	}
	siteID, err := parseOptionalUUID(req.SiteID)
	if err != nil {
		return err
	}
	if req.Status != "" {
		if !ValidStatus(req.Status) {
			return employeeerrors.ErrInvalidStatus
		}
		empl.Status = req.Status
	}

	empl.EmployeeCode = strings.TrimSpace(req.EmployeeCode)
	empl.FirstName = strings.TrimSpace(req.FirstName)
	empl.LastName = strings.TrimSpace(req.LastName)
	empl.Email = normalizeEmail(req.Email)
	empl.Phone = req.Phone
	empl.DateOfBirth = dob
	empl.Gender = req.Gender
	empl.Address = req.Address
	empl.Designation = req.Designation
	empl.Department = req.Department
	empl.DateOfJoining = joined
	empl.SiteID = siteID
	empl.BankName = req.BankName
	empl.BankAccountNumber = req.BankAccountNumber
	empl.IFSCCode = strings.ToUpper(req.IFSCCode)
	empl.PANNumber = strings.ToUpper(req.PANNumber)
	empl.AadhaarNumber = req.AadhaarNumber
	empl.UANNumber = req.UANNumber
	empl.OfferLetterPath = req.OfferLetterPath
	empl.AadhaarCardPath = req.AadhaarCardPath
	empl.PANCardPath = req.PANCardPath
	return nil
}

func applyPatch(empl *Employee, req PatchEmployeeRequest) error {
	if req.Status != nil {
		if !ValidStatus(*req.Status) {
			return employeeerrors.ErrInvalidStatus
		}
		empl.Status = *req.Status
	}
	if req.DateOfJoining != nil {
		joined, err := time.Parse(dateLayout, *req.DateOfJoining)
		if err != nil {
			return employeeerrors.ErrInvalidDate
		}
		empl.DateOfJoining = joined
	}
	if req.SiteID != nil {
		siteID, err := parseOptionalUUID(*req.SiteID)
		if err != nil {
			return err
		}
		empl.SiteID = siteID
	}

	setString(&empl.FirstName, req.FirstName)
	setString(&empl.LastName, req.LastName)
	if req.Email != nil {
		empl.Email = normalizeEmail(*req.Email)
	}
	setString(&empl.Phone, req.Phone)
	setString(&empl.Address, req.Address)
	setString(&empl.Designation, req.Designation)
	setString(&empl.Department, req.Department)
	setString(&empl.BankName, req.BankName)
	setString(&empl.BankAccountNumber, req.BankAccount)
	setString(&empl.IFSCCode, req.IFSCCode)
	return nil
}

// normalizeEmail lowercases the address and maps blank to nil so employees
// without an email do not collide on the unique index.
func normalizeEmail(v string) *string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return nil
	}
	return &v
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func parseOptionalDate(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, employeeerrors.ErrInvalidDate
	}
	return &t, nil
}

func parseOptionalUUID(v string) (*uuid.UUID, error) {
	if v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil, employeeerrors.ErrInvalidSiteID
	}
	return &id, nil
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:                e.ID.String(),
		EmployeeCode:      e.EmployeeCode,
		FirstName:         e.FirstName,
		LastName:          e.LastName,
		FullName:          e.FullName(),
		Phone:             e.Phone,
		Gender:            e.Gender,
		Address:           e.Address,
		Designation:       e.Designation,
		Department:        e.Department,
		DateOfJoining:     e.DateOfJoining.Format(dateLayout),
		BankName:          e.BankName,
		BankAccountNumber: e.BankAccountNumber,
		IFSCCode:          e.IFSCCode,
		PANNumber:         e.PANNumber,
		AadhaarNumber:     e.AadhaarNumber,
		UANNumber:         e.UANNumber,
		OfferLetterPath:   e.OfferLetterPath,
		AadhaarCardPath:   e.AadhaarCardPath,
		PANCardPath:       e.PANCardPath,
		Status:            e.Status,
	}
	if e.Email != nil {
		resp.Email = *e.Email
	}
	if e.DateOfBirth != nil {
		resp.DateOfBirth = e.DateOfBirth.Format(dateLayout)
	}
	if e.SiteID != nil {
		resp.SiteID = e.SiteID.String()
	}
	if !e.CreatedAt.IsZero() {
		resp.CreatedAt = e.CreatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, 0, len(empls))
	for _, e := range empls {
		resp = append(resp, mapToResponse(e))
	}
	return resp
}
