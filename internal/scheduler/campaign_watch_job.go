package scheduler

import (
	"time"

	"agrifund-backend/internal/domain"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CampaignWatchJob periodically reports open campaigns whose deadline has
// passed without the goal being met. Reporting only: refund eligibility is a
// derived predicate, so the job never flips status. Refunds happen through
// the engine when someone calls them.
type CampaignWatchJob struct {
	db       *gorm.DB
	interval time.Duration
}

func NewCampaignWatchJob(db *gorm.DB, interval time.Duration) *CampaignWatchJob {
	return &CampaignWatchJob{db: db, interval: interval}
}

func (j *CampaignWatchJob) GetName() string {
	return "campaign_watch"
}

func (j *CampaignWatchJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(j.interval)
}

func (j *CampaignWatchJob) Execute() {
	now := time.Now()

	var campaigns []domain.Campaign
	err := j.db.Where("status = ? AND end_time <= ? AND amount_raised < funding_goal AND refunded_at IS NULL",
		domain.CampaignStatusOpen, now).Find(&campaigns).Error
	if err != nil {
		log.Error().Err(err).Msg("campaign watch: query failed")
		return
	}
	if len(campaigns) == 0 {
		return
	}

	for _, c := range campaigns {
		log.Info().
			Uint64("campaign_id", c.ID).
			Int64("amount_raised", c.AmountRaised).
			Int64("funding_goal", c.FundingGoal).
			Time("end_time", c.EndTime).
			Msg("campaign watch: refund-eligible campaign")
	}
	log.Info().Int("count", len(campaigns)).Msg("campaign watch: scan complete")
}
