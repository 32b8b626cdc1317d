package repositories

import (
	"errors"
	"fmt"

	"github.com/tracklite/errs"
	"github.com/tracklite/models"
	"gorm.io/gorm"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail retrieves a user by email.
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, errs.NewNotFound(fmt.Sprintf("user %q not found", email))
	}
	return user, err
}

// FindByID retrieves a user by ID.
func (r *UserRepository) FindByID(id string) (models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, errs.NewNotFound(fmt.Sprintf("user %q not found", id))
	}
	return user, err
}

// Create inserts a new user into the database
func (r *UserRepository) Create(user *models.User) error {
	err := r.db.Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewAlreadyExists(fmt.Sprintf("email %q already registered", user.Email))
	}
	return err
}
