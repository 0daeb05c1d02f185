package service

import (
	"context"
	"strconv"
	"time"

	"fabcost/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	labourRateCacheKey = "settings:labour_rate"
	labourRateCacheTTL = 4 * time.Hour
)

// LabourRateProvider is the narrow read-side contract costing code depends
// on — a single injected value source instead of an ambient global.
type LabourRateProvider interface {
	LabourRate(ctx context.Context) (int64, error)
}

// RecostTrigger is implemented by the worker dispatcher; nil in unit tests.
type RecostTrigger interface {
	EnqueueRecostSweep(ctx context.Context) error
}

// SettingsService owns the labour-rate singleton: a Redis read-through
// cache over the settings row, invalidated explicitly on update.
type SettingsService struct {
	repo    repository.SettingsRepository
	rdb     *redis.Client
	trigger RecostTrigger
}

func NewSettingsService(repo repository.SettingsRepository, rdb *redis.Client, trigger RecostTrigger) *SettingsService {
	return &SettingsService{repo: repo, rdb: rdb, trigger: trigger}
}

// LabourRate returns cents per hour. Cache errors degrade to a direct read.
func (s *SettingsService) LabourRate(ctx context.Context) (int64, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, labourRateCacheKey).Result(); err == nil {
			if rate, perr := strconv.ParseInt(cached, 10, 64); perr == nil {
				return rate, nil
			}
		}
	}

	rate, err := s.repo.GetLabourRate(ctx)
	if err != nil {
		return 0, err
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, labourRateCacheKey, strconv.FormatInt(rate, 10), labourRateCacheTTL).Err(); err != nil {
			log.Debug().Err(err).Msg("settings: labour rate cache populate failed")
		}
	}
	return rate, nil
}

// UpdateLabourRate writes the new rate, drops the cache, and queues a
// recost sweep so CALCULATED products pick up the change.
func (s *SettingsService) UpdateLabourRate(ctx context.Context, centsPerHour int64) error {
	if err := s.repo.UpdateLabourRate(ctx, centsPerHour); err != nil {
		return err
	}

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, labourRateCacheKey).Err(); err != nil {
			log.Warn().Err(err).Msg("settings: labour rate cache invalidation failed")
		}
	}

	if s.trigger != nil {
		if err := s.trigger.EnqueueRecostSweep(ctx); err != nil {
			log.Error().Err(err).Msg("settings: recost sweep enqueue failed")
		}
	}

	log.Info().Int64("cents_per_hour", centsPerHour).Msg("settings: labour rate updated")
	return nil
}
