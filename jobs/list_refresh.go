package jobs

import (
	"context"
	"time"

	"github.com/fenilmodi00/raffle-admin/services"
	"github.com/sirupsen/logrus"
)

// ListRefreshJob periodically re-primes the raffle list cache so the list
// page stays warm between merchant visits.
type ListRefreshJob struct {
	RaffleService *services.RaffleService
}

func NewListRefreshJob(raffleService *services.RaffleService) *ListRefreshJob {
	return &ListRefreshJob{RaffleService: raffleService}
}

func (j *ListRefreshJob) Run() {
	logrus.Info("Starting raffle list refresh job")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	raffles, err := j.RaffleService.RefreshRaffleList(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Raffle list refresh job failed")
		return
	}

	logrus.WithField("count", len(raffles)).Info("Raffle list refresh job completed")
}
