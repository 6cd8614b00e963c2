package repository

import (
	"context"

	"holocron/internal/models"
	"holocron/internal/observability"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByIDWithFavorites(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	defer observability.TrackQuery("get", "users")()

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFoundOr(err, "User")
	}
	return &user, nil
}

func (r *userRepository) GetByIDWithFavorites(ctx context.Context, id uint) (*models.User, error) {
	defer observability.TrackQuery("get_with_favorites", "users")()

	var user models.User
	if err := withFavorites(r.db.WithContext(ctx)).First(&user, id).Error; err != nil {
		return nil, notFoundOr(err, "User")
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	defer observability.TrackQuery("list", "users")()

	users := []models.User{}
	if err := withFavorites(r.db.WithContext(ctx)).Order("id").Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Omit("FavoritePlanets", "FavoriteCharacters").Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("User already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func withFavorites(db *gorm.DB) *gorm.DB {
	return db.
		Preload("FavoriteCharacters", func(db *gorm.DB) *gorm.DB { return db.Order("characters.id") }).
		Preload("FavoritePlanets", func(db *gorm.DB) *gorm.DB { return db.Order("planets.id") })
}
