package server

import (
	"holocron/internal/models"
	"holocron/internal/notifications"
	"holocron/internal/service"

	"github.com/gofiber/fiber/v2"
)

// MessageResponse is the body of a successful favorites change.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// AddFavoriteCharacter handles POST /favorite/characters/:id
// @Summary Add a favorite character
// @Tags favorites
// @Accept json
// @Produce json
// @Param id path int true "Character ID"
// @Param request body object{user_id=int} true "User adding the favorite"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /favorite/characters/{id} [post]
func (s *Server) AddFavoriteCharacter(c *fiber.Ctx) error {
	return s.toggleFavorite(c, service.ActionAdd, models.FavoriteKindCharacter)
}

// RemoveFavoriteCharacter handles DELETE /favorite/characters/:id
// @Summary Remove a favorite character
// @Tags favorites
// @Accept json
// @Produce json
// @Param id path int true "Character ID"
// @Param request body object{user_id=int} true "User removing the favorite"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /favorite/characters/{id} [delete]
func (s *Server) RemoveFavoriteCharacter(c *fiber.Ctx) error {
	return s.toggleFavorite(c, service.ActionRemove, models.FavoriteKindCharacter)
}

// AddFavoritePlanet handles POST /favorite/planets/:id
// @Summary Add a favorite planet
// @Tags favorites
// @Accept json
// @Produce json
// @Param id path int true "Planet ID"
// @Param request body object{user_id=int} true "User adding the favorite"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /favorite/planets/{id} [post]
func (s *Server) AddFavoritePlanet(c *fiber.Ctx) error {
	return s.toggleFavorite(c, service.ActionAdd, models.FavoriteKindPlanet)
}

// RemoveFavoritePlanet handles DELETE /favorite/planets/:id
// @Summary Remove a favorite planet
// @Tags favorites
// @Accept json
// @Produce json
// @Param id path int true "Planet ID"
// @Param request body object{user_id=int} true "User removing the favorite"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /favorite/planets/{id} [delete]
func (s *Server) RemoveFavoritePlanet(c *fiber.Ctx) error {
	return s.toggleFavorite(c, service.ActionRemove, models.FavoriteKindPlanet)
}

func (s *Server) toggleFavorite(c *fiber.Ctx, action string, kind models.FavoriteKind) error {
	// user_id is checked before the path id, so an empty body is always a 400.
	userID := parseUserID(c)
	if userID == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewMissingParameterError(service.MissingUserIDMessage))
	}

	targetID, err := s.parseID(c, "id", string(kind))
	if err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	in := service.FavoriteInput{UserID: userID, Kind: kind, TargetID: targetID}
	var res *service.FavoriteResult
	if action == service.ActionAdd {
		res, err = s.favoritesSvc().AddFavorite(ctx, in)
	} else {
		res, err = s.favoritesSvc().RemoveFavorite(ctx, in)
	}
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishUserEvent(c.UserContext(), res.User.ID, favoriteEventType(action, kind), favoriteSummary(res))

	verb := "added"
	if action == service.ActionRemove {
		verb = "deleted"
	}
	return c.JSON(MessageResponse{
		Msg: "Congrats you succesfully " + verb + " your favorite " + string(kind),
	})
}

func favoriteEventType(action string, kind models.FavoriteKind) string {
	switch {
	case action == service.ActionAdd && kind == models.FavoriteKindCharacter:
		return notifications.EventFavoriteCharacterAdded
	case action == service.ActionAdd:
		return notifications.EventFavoritePlanetAdded
	case kind == models.FavoriteKindCharacter:
		return notifications.EventFavoriteCharacterRemoved
	default:
		return notifications.EventFavoritePlanetRemoved
	}
}

func (s *Server) favoritesSvc() *service.FavoriteService {
	if s.favoritesService == nil {
		s.favoritesService = service.NewFavoriteService(s.transactor)
	}
	return s.favoritesService
}
