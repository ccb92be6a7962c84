package domain

import (
	"time"
)

// Investment is one investor's cumulative contribution to a campaign.
// At most one row per (campaign, investor); repeat contributions accumulate
// into the same row so amount always equals the sum of accepted transfers.
// Row order doubles as first-contribution order for payout sequencing.
type Investment struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CampaignID uint64    `gorm:"column:campaign_id;not null;uniqueIndex:idx_campaign_investor" json:"campaign_id"`
	InvestorID string    `gorm:"column:investor_id;not null;uniqueIndex:idx_campaign_investor" json:"investor_id"`
	Amount     int64     `gorm:"column:amount;not null" json:"amount"`
	InvestedAt time.Time `gorm:"column:invested_at;not null" json:"invested_at"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Investment) TableName() string {
	return "investments"
}

// Payout is principal plus floor(amount*roi/100), the amount owed to this
// investor at profit distribution.
func (i *Investment) Payout(roi int64) int64 {
	return i.Amount + i.Amount*roi/100
}
