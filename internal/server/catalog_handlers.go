package server

import (
	"holocron/internal/models"
	"holocron/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CharactersResponse is the body of GET /characters.
type CharactersResponse struct {
	Msg        string             `json:"msg"`
	Characters []models.Character `json:"characters"`
}

// CharacterResponse is the body of GET /characters/:id.
type CharacterResponse struct {
	Msg       string            `json:"msg"`
	Character *models.Character `json:"character"`
}

// PlanetsResponse is the body of GET /planets.
type PlanetsResponse struct {
	Msg     string          `json:"msg"`
	Planets []models.Planet `json:"planets"`
}

// PlanetResponse is the body of GET /planets/:id.
type PlanetResponse struct {
	Msg    string         `json:"msg"`
	Planet *models.Planet `json:"planet"`
}

// GetCharacters handles GET /characters
// @Summary List characters
// @Tags characters
// @Produce json
// @Success 200 {object} CharactersResponse
// @Router /characters [get]
func (s *Server) GetCharacters(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	characters, err := s.catalogSvc().ListCharacters(ctx)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(CharactersResponse{
		Msg:        "Here's a list of all the characters",
		Characters: characters,
	})
}

// GetCharacter handles GET /characters/:id
// @Summary Get a character
// @Tags characters
// @Produce json
// @Param id path int true "Character ID"
// @Success 200 {object} CharacterResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /characters/{id} [get]
func (s *Server) GetCharacter(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "Character")
	if err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	character, err := s.catalogSvc().GetCharacter(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(CharacterResponse{
		Msg:       "Here's your character",
		Character: character,
	})
}

// GetPlanets handles GET /planets
// @Summary List planets
// @Tags planets
// @Produce json
// @Success 200 {object} PlanetsResponse
// @Router /planets [get]
func (s *Server) GetPlanets(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	planets, err := s.catalogSvc().ListPlanets(ctx)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(PlanetsResponse{
		Msg:     "Here's a list of all the planets",
		Planets: planets,
	})
}

// GetPlanet handles GET /planets/:id
// @Summary Get a planet
// @Tags planets
// @Produce json
// @Param id path int true "Planet ID"
// @Success 200 {object} PlanetResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /planets/{id} [get]
func (s *Server) GetPlanet(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "Planet")
	if err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	planet, err := s.catalogSvc().GetPlanet(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(PlanetResponse{
		Msg:    "Here's your planet",
		Planet: planet,
	})
}

func (s *Server) catalogSvc() *service.CatalogService {
	if s.catalogService == nil {
		s.catalogService = service.NewCatalogService(s.characterRepo, s.planetRepo)
	}
	return s.catalogService
}
