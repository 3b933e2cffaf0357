package service

import (
	"context"
	"time"

	"github.com/activitae/cra-api/internal/modules/model"
	"github.com/activitae/cra-api/internal/modules/repo"
	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const statsCacheKey = "cra:stats"

// Stats are the dashboard aggregates: report counts by status and the
// total of all reported hours.
type Stats struct {
	TotalCRAs  int64                  `json:"total_cras"`
	ByStatus   map[model.Status]int64 `json:"by_status"`
	TotalHours float64                `json:"total_hours"`
}

type StatsService interface {
	Get(ctx context.Context) (*Stats, error)
	// Invalidate drops the cached aggregates; called after every write.
	Invalidate(ctx context.Context)
}

type statsService struct {
	r   repo.CRARepo
	rdb *redis.Client // nil disables caching
	ttl time.Duration
	log *zap.Logger
}

func NewStatsService(r repo.CRARepo, rdb *redis.Client, ttl time.Duration, log *zap.Logger) StatsService {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &statsService{r: r, rdb: rdb, ttl: ttl, log: log}
}

func (s *statsService) Get(ctx context.Context) (*Stats, error) {
	if s.rdb != nil {
		raw, err := s.rdb.Get(ctx, statsCacheKey).Bytes()
		if err == nil {
			var cached Stats
			if err := sonic.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		} else if err != redis.Nil {
			s.log.Warn("stats cache read failed", zap.Error(err))
		}
	}

	byStatus, err := s.r.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	totalHours, err := s.r.SumTotalHours(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		ByStatus:   byStatus,
		TotalHours: totalHours,
	}
	for _, n := range byStatus {
		stats.TotalCRAs += n
	}

	if s.rdb != nil {
		if raw, err := sonic.Marshal(stats); err == nil {
			if err := s.rdb.Set(ctx, statsCacheKey, raw, s.ttl).Err(); err != nil {
				s.log.Warn("stats cache write failed", zap.Error(err))
			}
		}
	}

	return stats, nil
}

func (s *statsService) Invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, statsCacheKey).Err(); err != nil {
		s.log.Warn("stats cache invalidation failed", zap.Error(err))
	}
}
