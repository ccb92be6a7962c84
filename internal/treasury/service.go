package treasury

import (
	"errors"
	"fmt"

	"agrifund-backend/internal/domain"

	"gorm.io/gorm"
)

// Service is the account-balance ledger behind the funding engine's value
// transfers. Movements run inside the caller's transaction so an escrow
// operation and its transfers commit or roll back together.
type Service struct {
	DB *gorm.DB
}

// Transfer moves amount from one address to another inside tx. Any decline
// (unknown payer, insufficient balance, non-positive amount) wraps
// domain.ErrTransferFailed.
func (s *Service) Transfer(tx *gorm.DB, from, to string, amount int64) error {
	return s.TransferWithMemo(tx, from, to, amount, "")
}

// TransferWithMemo is Transfer with an audit memo on the recorded movement.
func (s *Service) TransferWithMemo(tx *gorm.DB, from, to string, amount int64, memo string) error {
	if amount <= 0 {
		return fmt.Errorf("%w: non-positive amount %d", domain.ErrTransferFailed, amount)
	}
	if from == to {
		return fmt.Errorf("%w: self transfer for %s", domain.ErrTransferFailed, from)
	}

	var payer domain.Account
	if err := tx.Where("address = ?", from).First(&payer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: unknown payer account %s", domain.ErrTransferFailed, from)
		}
		return err
	}
	if payer.Balance < amount {
		return fmt.Errorf("%w: insufficient balance in %s (%d < %d)", domain.ErrTransferFailed, from, payer.Balance, amount)
	}

	payer.Balance -= amount
	if err := tx.Save(&payer).Error; err != nil {
		return err
	}
	if err := credit(tx, to, amount); err != nil {
		return err
	}
	return tx.Create(&domain.TransferRecord{
		FromAddress: from,
		ToAddress:   to,
		Amount:      amount,
		Memo:        memo,
	}).Error
}

// Deposit credits an account from outside the ledger (top-up / faucet).
func (s *Service) Deposit(address string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: deposit amount must be positive", domain.ErrInvalidInput)
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := credit(tx, address, amount); err != nil {
			return err
		}
		return tx.Create(&domain.TransferRecord{
			FromAddress: "deposit",
			ToAddress:   address,
			Amount:      amount,
			Memo:        "deposit",
		}).Error
	})
}

// Balance returns the account's balance; unknown accounts hold zero.
func (s *Service) Balance(address string) (int64, error) {
	var acct domain.Account
	if err := s.DB.Where("address = ?", address).First(&acct).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return acct.Balance, nil
}

// History returns the account's transfer records, newest first.
func (s *Service) History(address string) ([]domain.TransferRecord, error) {
	var records []domain.TransferRecord
	err := s.DB.Where("from_address = ? OR to_address = ?", address, address).
		Order("id DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func credit(tx *gorm.DB, address string, amount int64) error {
	var acct domain.Account
	err := tx.Where("address = ?", address).First(&acct).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&domain.Account{Address: address, Balance: amount}).Error
	}
	acct.Balance += amount
	return tx.Save(&acct).Error
}
