package domain

import (
	"fmt"
	"time"
)

// Account is a treasury balance row. Addresses are user IDs for people and
// "escrow:campaign:<id>" pseudo-addresses for campaign escrow.
type Account struct {
	Address   string    `gorm:"column:address;primaryKey" json:"address"`
	Balance   int64     `gorm:"column:balance;not null;default:0" json:"balance"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Account) TableName() string {
	return "accounts"
}

// TransferRecord is the audit row written for every completed balance
// movement, in the same transaction as the movement itself.
type TransferRecord struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FromAddress string    `gorm:"column:from_address;not null;index" json:"from_address"`
	ToAddress   string    `gorm:"column:to_address;not null;index" json:"to_address"`
	Amount      int64     `gorm:"column:amount;not null" json:"amount"`
	Memo        string    `gorm:"column:memo" json:"memo"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (TransferRecord) TableName() string {
	return "transfer_records"
}

// EscrowAddress returns the escrow pseudo-address holding a campaign's funds
// between investment and withdrawal/refund.
func EscrowAddress(campaignID uint64) string {
	return fmt.Sprintf("escrow:campaign:%d", campaignID)
}
