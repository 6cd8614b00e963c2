package repository

import (
	"context"

	"holocron/internal/models"
	"holocron/internal/observability"

	"gorm.io/gorm"
)

// CharacterRepository defines persistence operations for characters.
type CharacterRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Character, error)
	List(ctx context.Context) ([]models.Character, error)
	Create(ctx context.Context, character *models.Character) error
}

type characterRepository struct {
	db *gorm.DB
}

// NewCharacterRepository returns a new CharacterRepository implementation.
func NewCharacterRepository(db *gorm.DB) CharacterRepository {
	return &characterRepository{db: db}
}

func (r *characterRepository) GetByID(ctx context.Context, id uint) (*models.Character, error) {
	defer observability.TrackQuery("get", "characters")()

	var character models.Character
	if err := r.db.WithContext(ctx).First(&character, id).Error; err != nil {
		return nil, notFoundOr(err, "Character")
	}
	return &character, nil
}

func (r *characterRepository) List(ctx context.Context) ([]models.Character, error) {
	defer observability.TrackQuery("list", "characters")()

	characters := []models.Character{}
	if err := r.db.WithContext(ctx).Order("id").Find(&characters).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return characters, nil
}

func (r *characterRepository) Create(ctx context.Context, character *models.Character) error {
	if err := r.db.WithContext(ctx).Create(character).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Character already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// PlanetRepository defines persistence operations for planets.
type PlanetRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Planet, error)
	List(ctx context.Context) ([]models.Planet, error)
	Create(ctx context.Context, planet *models.Planet) error
}

type planetRepository struct {
	db *gorm.DB
}

// NewPlanetRepository returns a new PlanetRepository implementation.
func NewPlanetRepository(db *gorm.DB) PlanetRepository {
	return &planetRepository{db: db}
}

func (r *planetRepository) GetByID(ctx context.Context, id uint) (*models.Planet, error) {
	defer observability.TrackQuery("get", "planets")()

	var planet models.Planet
	if err := r.db.WithContext(ctx).First(&planet, id).Error; err != nil {
		return nil, notFoundOr(err, "Planet")
	}
	return &planet, nil
}

func (r *planetRepository) List(ctx context.Context) ([]models.Planet, error) {
	defer observability.TrackQuery("list", "planets")()

	planets := []models.Planet{}
	if err := r.db.WithContext(ctx).Order("id").Find(&planets).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return planets, nil
}

func (r *planetRepository) Create(ctx context.Context, planet *models.Planet) error {
	if err := r.db.WithContext(ctx).Create(planet).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Planet already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}
