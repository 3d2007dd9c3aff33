package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"task-manager/internal/model"
)

// UserRepository handles persisted users and their roles.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Preload("Roles").Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// Create stores a new user, creating any role it names that does not exist yet.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		roles := make([]model.Role, 0, len(user.Roles))
		for _, role := range user.Roles {
			if err := tx.Where(model.Role{Name: role.Name}).FirstOrCreate(&role).Error; err != nil {
				return fmt.Errorf("resolve role %q: %w", role.Name, err)
			}
			roles = append(roles, role)
		}
		user.Roles = roles
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("create user: %w", translate(err))
		}
		return nil
	})
	return err
}

func (r *UserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Preload("Roles").Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
