package model

import "time"

// Currency is a closed set of supported account currencies. Which of them a
// deployment actually provisions is configured, one account per currency.
type Currency string

const (
	RUB Currency = "RUB"
	USD Currency = "USD"
	EUR Currency = "EUR"
)

// DefaultCurrencies is the provisioning set used when none is configured.
var DefaultCurrencies = []Currency{RUB, USD, EUR}

// Account holds the balance of one user in one currency, in the smallest
// currency unit. Amount never goes below zero.
type Account struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_user_currency"`
	Currency  Currency  `gorm:"column:currency;type:varchar(3);not null;uniqueIndex:idx_user_currency"`
	Amount    int64     `gorm:"column:amount;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP"`
}

func (Account) TableName() string {
	return "accounts"
}
