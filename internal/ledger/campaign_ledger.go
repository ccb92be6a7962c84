package ledger

import (
	"errors"

	"agrifund-backend/internal/domain"

	"gorm.io/gorm"
)

// CampaignLedger is the authoritative store of campaign funding state. All
// campaign reads and writes go through it; no other package touches the rows.
type CampaignLedger struct{}

// Get returns the campaign or domain.ErrCampaignNotFound.
func (CampaignLedger) Get(tx *gorm.DB, id uint64) (*domain.Campaign, error) {
	var c domain.Campaign
	if err := tx.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCampaignNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Create inserts a new campaign. The auto-increment primary key assigns the
// next id: monotonic from 1, one per successful creation, never reused.
func (CampaignLedger) Create(tx *gorm.DB, c *domain.Campaign) error {
	return tx.Create(c).Error
}

// Put persists the full campaign record.
func (CampaignLedger) Put(tx *gorm.DB, c *domain.Campaign) error {
	return tx.Save(c).Error
}
