package funding

import (
	"encoding/json"

	"agrifund-backend/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func recordEvent(tx *gorm.DB, campaignID uint64, eventType, actor string, data map[string]interface{}) error {
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return tx.Create(&domain.CampaignEvent{
		CampaignID: campaignID,
		EventType:  eventType,
		Actor:      actor,
		EventData:  datatypes.JSON(b),
	}).Error
}

// EventsOf returns a campaign's audit events in the order they were recorded.
func (s *Service) EventsOf(campaignID uint64) ([]domain.CampaignEvent, error) {
	if _, err := s.campaigns.Get(s.DB, campaignID); err != nil {
		return nil, err
	}
	var events []domain.CampaignEvent
	if err := s.DB.Where("campaign_id = ?", campaignID).Order("id ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
