package jobs

import (
	"github.com/fenilmodi00/raffle-admin/services"
	"github.com/sirupsen/logrus"
)

type CacheCleanupJob struct {
	CacheService *services.CacheService
}

func NewCacheCleanupJob(cacheService *services.CacheService) *CacheCleanupJob {
	return &CacheCleanupJob{CacheService: cacheService}
}

func (j *CacheCleanupJob) Run() {
	logrus.Info("Starting cache cleanup job")
	evicted := j.CacheService.CleanupExpired()
	logrus.WithField("evicted", evicted).Info("Cache cleanup job completed")
}
