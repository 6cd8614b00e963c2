package service

import (
	"context"

	"holocron/internal/models"
	"holocron/internal/repository"
)

// CatalogService exposes the read side of characters and planets.
type CatalogService struct {
	characterRepo repository.CharacterRepository
	planetRepo    repository.PlanetRepository
}

func NewCatalogService(characterRepo repository.CharacterRepository, planetRepo repository.PlanetRepository) *CatalogService {
	return &CatalogService{
		characterRepo: characterRepo,
		planetRepo:    planetRepo,
	}
}

func (s *CatalogService) ListCharacters(ctx context.Context) ([]models.Character, error) {
	return s.characterRepo.List(ctx)
}

func (s *CatalogService) GetCharacter(ctx context.Context, id uint) (*models.Character, error) {
	return s.characterRepo.GetByID(ctx, id)
}

func (s *CatalogService) ListPlanets(ctx context.Context) ([]models.Planet, error) {
	return s.planetRepo.List(ctx)
}

func (s *CatalogService) GetPlanet(ctx context.Context, id uint) (*models.Planet, error) {
	return s.planetRepo.GetByID(ctx, id)
}
