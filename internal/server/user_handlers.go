package server

import (
	"holocron/internal/models"
	"holocron/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UsersResponse is the body of GET /users.
type UsersResponse struct {
	Msg   string        `json:"msg"`
	Users []models.User `json:"users"`
}

// FavoritesResponse is the body of GET /users/:id/favorites.
type FavoritesResponse struct {
	Msg       string           `json:"msg"`
	Favorites models.Favorites `json:"favorites"`
}

// GetAllUsers handles GET /users
// @Summary List users
// @Description Every user with their favorites nested one level deep. Passwords are never returned.
// @Tags users
// @Produce json
// @Success 200 {object} UsersResponse
// @Router /users [get]
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	users, err := s.userSvc().ListUsers(ctx)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(UsersResponse{
		Msg:   "Here's a list of all the users",
		Users: users,
	})
}

// GetUserFavorites handles GET /users/:id/favorites
// @Summary List a user's favorites
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} FavoritesResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/favorites [get]
func (s *Server) GetUserFavorites(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "User")
	if err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, favorites, err := s.userSvc().GetUserFavorites(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(FavoritesResponse{
		Msg:       "Here's the list of favorites for " + user.Name,
		Favorites: favorites,
	})
}

func (s *Server) userSvc() *service.UserService {
	if s.userService == nil {
		s.userService = service.NewUserService(s.userRepo)
	}
	return s.userService
}
