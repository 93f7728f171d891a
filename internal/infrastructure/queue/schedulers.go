package queue

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"blogify-backend/internal/config"
	"blogify-backend/internal/shared"
	"blogify-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisAddress string, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

// RegisterJobs registers all recurring jobs.
func (s *Scheduler) RegisterJobs() error {
	return s.registerNotifyNewBlogsJob()
}

// ================================================
// JOB: New-publication digest (every DIGEST_INTERVAL)
// ================================================
// The schedule interval doubles as the lookback window, so each published
// blog lands in exactly one tick. MaxRetry is 0: a failed run is simply
// covered by the next tick instead of replaying a stale window.
func (s *Scheduler) registerNotifyNewBlogsJob() error {
	task := asynq.NewTask(shared.TypeNotifyNewBlogs, nil)

	_, err := s.scheduler.Register(
		fmt.Sprintf("@every %s", s.jobConfig.DigestInterval),
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(0),
		asynq.Timeout(s.jobConfig.DigestInterval),
	)
	if err != nil {
		logger.Error("Failed to register NotifyNewBlogs job", err)
		return err
	}

	logger.Info("Registered NotifyNewBlogs digest", map[string]interface{}{
		"interval": s.jobConfig.DigestInterval.String(),
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
