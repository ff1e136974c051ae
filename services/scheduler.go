// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartCacheSweeper evicts the match snapshot once it outlives its TTL.
// Eviction only — the next request that needs stats refetches on demand.
func (s *StatsService) StartCacheSweeper() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			if s.Cache.SweepExpired() {
				log.Println("[Sweeper] dropped expired match snapshot")
			}
		}),
	)
}
