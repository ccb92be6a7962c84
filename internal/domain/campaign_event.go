package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Campaign event types.
const (
	CampaignEventCreated         = "CREATED"
	CampaignEventInvested        = "INVESTED"
	CampaignEventFunded          = "FUNDED"
	CampaignEventWithdrawn       = "WITHDRAWN"
	CampaignEventProfitsReturned = "PROFITS_RETURNED"
	CampaignEventRefunded        = "REFUNDED"
)

// CampaignEvent is an append-only audit row recorded in the same transaction
// as the ledger mutation it describes.
type CampaignEvent struct {
	ID         uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CampaignID uint64         `gorm:"column:campaign_id;not null;index" json:"campaign_id"`
	EventType  string         `gorm:"column:event_type;not null" json:"event_type"`
	Actor      string         `gorm:"column:actor" json:"actor"`
	EventData  datatypes.JSON `gorm:"column:event_data" json:"event_data"`
	CreatedAt  time.Time      `json:"createdAt"`
}

func (CampaignEvent) TableName() string {
	return "campaign_events"
}
