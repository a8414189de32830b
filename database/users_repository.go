// users_repository.go - User accounts stored through GORM

package database // Declares the package name

import ( // Import required packages
	"context"                   // Request-scoped queries
	"errors"                    // errors.Is on gorm errors
	"go-catalog-backend/models" // User model and sentinels
	"strings"                   // Email normalisation

	"gorm.io/gorm" // GORM ORM
)

// UsersRepository is the gorm-backed credential store.
type UsersRepository struct {
	db *gorm.DB
}

// NewUsersRepository - Wraps an open, migrated connection
func NewUsersRepository(db *gorm.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

// FindUserByEmail - Case-insensitive lookup, models.ErrUserNotFound when absent
func (r *UsersRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, models.ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// CreateUser - Inserts user with a lower-cased email
func (r *UsersRepository) CreateUser(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(user.Email)
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrDuplicate
		}
		return err
	}
	return nil
}
