package site

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	siteerrors "github.com/prasadp25/protecther-hrms-sub001/internal/site/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	SitesCacheKey = "sites:all"
	sitesTTL      = 30 * time.Minute
)

//go:generate mockgen -source=site_service.go -destination=mock/site_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context) ([]SiteResponse, error)
	Create(ctx context.Context, req CreateSiteRequest) (SiteResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("site.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("site.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) GetAll(ctx context.Context) ([]SiteResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, SitesCacheKey).Result(); err == nil {
			var resp []SiteResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(SitesCacheKey, func() (interface{}, error) {
		sites, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(sites)
		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, SitesCacheKey, data, sitesTTL)
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("get sites failed", zap.Error(err))
		return nil, err
	}

	return v.([]SiteResponse), nil
}

func (s *service) Create(ctx context.Context, req CreateSiteRequest) (SiteResponse, error) {
	site := &Site{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(req.Name),
		Code:     strings.ToUpper(strings.TrimSpace(req.Code)),
		Location: req.Location,
		Active:   true,
	}

	if err := s.repo.Create(ctx, site); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return SiteResponse{}, siteerrors.ErrSiteCodeAlreadyExists
		}
		s.logger.Error("create site failed", zap.Error(err))
		return SiteResponse{}, err
	}

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, SitesCacheKey).Err(); err != nil {
			s.logger.Warn("failed to invalidate sites cache", zap.Error(err))
		}
	}

	s.logger.Info("site created", zap.String("site_id", site.ID.String()), zap.String("code", site.Code))
	return mapToResponse(*site), nil
}

func mapToResponse(s Site) SiteResponse {
	return SiteResponse{
		ID:       s.ID.String(),
		Name:     s.Name,
		Code:     s.Code,
		Location: s.Location,
		Active:   s.Active,
	}
}

func mapToListResponse(sites []Site) []SiteResponse {
	res := make([]SiteResponse, len(sites))
	for i, s := range sites {
		res[i] = mapToResponse(s)
	}
	return res
}
