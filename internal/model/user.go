package model

import "time"

type User struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Username  string    `gorm:"column:username;type:varchar(64);not null;uniqueIndex"`
	Password  string    `gorm:"column:password;type:varchar(100);not null"`
	Accounts  []Account `gorm:"foreignKey:UserID"`
	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
}

func (User) TableName() string {
	return "users"
}
