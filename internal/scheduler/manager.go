package scheduler

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Job is a named periodic task.
type Job interface {
	GetName() string
	GetSchedule() gocron.JobDefinition
	Execute()
}

// Manager owns the gocron scheduler and the registered jobs.
type Manager struct {
	scheduler gocron.Scheduler
}

// Start creates a manager, registers the campaign watch job, and starts the
// scheduler. Returns nil when the interval disables scheduling.
func Start(db *gorm.DB, intervalSeconds int) *Manager {
	if intervalSeconds <= 0 {
		return nil
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Error().Err(err).Msg("Failed to create scheduler")
		return nil
	}
	m := &Manager{scheduler: s}
	m.register(NewCampaignWatchJob(db, time.Duration(intervalSeconds)*time.Second))
	m.scheduler.Start()
	log.Info().Msg("Scheduler started")
	return m
}

func (m *Manager) register(job Job) {
	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Error().Err(err).Str("job", job.GetName()).Msg("Failed to register job")
	}
}

// Stop shuts the scheduler down.
func (m *Manager) Stop() {
	if m == nil {
		return
	}
	if err := m.scheduler.Shutdown(); err != nil {
		log.Error().Err(err).Msg("Failed to shutdown scheduler")
	}
}
