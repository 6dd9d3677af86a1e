package repository

import (
	"context"
	"errors"

	"simplebanking/internal/model"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	ErrUserExists   = errors.New("USER_EXISTS")
	ErrUserNotFound = errors.New("USER_NOT_FOUND")
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(id int64) (model.User, error)
	FindByUsername(username string) (model.User, error)
	FindAll() ([]model.User, error)
	Count() (int64, error)
}

type user struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &user{db: db}
}

func (r *user) Create(ctx context.Context, u *model.User) error {
	db := GetTx(ctx, r.db)

	err := db.Create(u).Error
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrUserExists
	}

	return err
}

func (r *user) FindByID(id int64) (model.User, error) {
	var u model.User
	if err := r.db.Preload("Accounts").First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, err
	}
	return u, nil
}

func (r *user) FindByUsername(username string) (model.User, error) {
	var u model.User
	if err := r.db.Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, err
	}
	return u, nil
}

func (r *user) FindAll() ([]model.User, error) {
	var users []model.User
	if err := r.db.Preload("Accounts").Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *user) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
