package domain

import (
	"time"
)

// CampaignStatus is the closed three-way campaign state. Status is compared
// against these constants only, never against free-form strings.
type CampaignStatus string

const (
	CampaignStatusOpen   CampaignStatus = "open"   // accepting investments
	CampaignStatusFunded CampaignStatus = "funded" // goal met, awaiting withdrawal
	CampaignStatusClosed CampaignStatus = "closed" // farmer has withdrawn; terminal
)

// Campaign is a farmer's funding campaign. IDs come from the auto-increment
// primary key, so they are monotonic from 1 and never reused.
type Campaign struct {
	ID           uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FarmerID     string         `gorm:"column:farmer_id;not null;index" json:"farmer_id"`
	FundingGoal  int64          `gorm:"column:funding_goal;not null" json:"funding_goal"`
	AmountRaised int64          `gorm:"column:amount_raised;not null;default:0" json:"amount_raised"`
	ROI          int64          `gorm:"column:roi;not null;default:0" json:"roi"`
	EndTime      time.Time      `gorm:"column:end_time;not null" json:"end_time"`
	Status       CampaignStatus `gorm:"column:status;type:varchar(10);not null;default:open" json:"status"`

	// Settlement guards: set once, checked to keep profit return and refund
	// from running twice against the same escrow.
	ProfitsReturnedAt *time.Time `gorm:"column:profits_returned_at" json:"profits_returned_at"`
	RefundedAt        *time.Time `gorm:"column:refunded_at" json:"refunded_at"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Campaign) TableName() string {
	return "campaigns"
}

// RefundEligible reports whether the campaign missed its goal by the
// deadline. Derived, never stored: an unfunded campaign stays open forever
// unless refunded.
func (c *Campaign) RefundEligible(now time.Time) bool {
	return c.Status != CampaignStatusClosed &&
		!now.Before(c.EndTime) &&
		c.AmountRaised < c.FundingGoal
}
