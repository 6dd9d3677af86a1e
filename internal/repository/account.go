package repository

import (
	"context"
	"errors"

	"simplebanking/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrAccountNotFound = errors.New("ACCOUNT_NOT_FOUND")

type AccountRepository interface {
	FindByID(id int64) (model.Account, error)
	// FindByIDForUpdate reads the account under a row lock. Must run inside
	// a TxManager transaction.
	FindByIDForUpdate(ctx context.Context, id int64) (model.Account, error)
	UpdateAmount(ctx context.Context, id int64, newAmount int64) error
}

type account struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &account{db: db}
}

func (r *account) FindByID(id int64) (model.Account, error) {
	var acc model.Account
	if err := r.db.First(&acc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Account{}, ErrAccountNotFound
		}
		return model.Account{}, err
	}
	return acc, nil
}

func (r *account) FindByIDForUpdate(ctx context.Context, id int64) (model.Account, error) {
	db := GetTx(ctx, r.db)

	var acc model.Account
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&acc, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Account{}, ErrAccountNotFound
		}
		return model.Account{}, err
	}
	return acc, nil
}

func (r *account) UpdateAmount(ctx context.Context, id int64, newAmount int64) error {
	db := GetTx(ctx, r.db)

	return db.Model(&model.Account{}).
		Where("id = ?", id).
		Update("amount", newAmount).Error
}
