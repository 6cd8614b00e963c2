package service

import (
	"context"
	"errors"
	"strings"

	"holocron/internal/models"
	"holocron/internal/observability"
	"holocron/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

const (
	ActionAdd    = "add"
	ActionRemove = "remove"
)

// MissingUserIDMessage is returned when a favorites request carries no user_id.
const MissingUserIDMessage = "Please provide an available user_id"

// FavoriteService adds and removes favorites. Each call is one transaction.
type FavoriteService struct {
	tx repository.Transactor
}

// FavoriteInput identifies one (user, target) pair. UserID is nil when the
// request body did not carry one.
type FavoriteInput struct {
	UserID   *uint
	Kind     models.FavoriteKind
	TargetID uint
}

// FavoriteResult describes a committed change.
type FavoriteResult struct {
	User       *models.User
	Kind       models.FavoriteKind
	TargetID   uint
	TargetName string
}

func NewFavoriteService(tx repository.Transactor) *FavoriteService {
	return &FavoriteService{tx: tx}
}

// AddFavorite marks the target as a favorite of the user.
// Fails with CONFLICT when the pair is already favorited.
func (s *FavoriteService) AddFavorite(ctx context.Context, in FavoriteInput) (*FavoriteResult, error) {
	return s.toggle(ctx, ActionAdd, in)
}

// RemoveFavorite unmarks the target. Fails with CONFLICT when the pair is not favorited.
func (s *FavoriteService) RemoveFavorite(ctx context.Context, in FavoriteInput) (*FavoriteResult, error) {
	return s.toggle(ctx, ActionRemove, in)
}

func (s *FavoriteService) toggle(ctx context.Context, action string, in FavoriteInput) (res *FavoriteResult, err error) {
	ctx, finish := observability.StartSpan(ctx, "favorites."+action,
		attribute.String("favorite.kind", string(in.Kind)),
		attribute.Int64("favorite.target_id", int64(in.TargetID)),
	)
	defer func() {
		finish(err)
		observability.FavoriteToggles.WithLabelValues(string(in.Kind), action, resultLabel(err)).Inc()
	}()

	if in.UserID == nil {
		return nil, models.NewMissingParameterError(MissingUserIDMessage)
	}
	if !in.Kind.Valid() {
		return nil, models.NewInternalError(errors.New("unknown favorite kind " + string(in.Kind)))
	}

	err = s.tx.WithinTransaction(ctx, func(repos repository.Repositories) error {
		user, err := repos.Users.GetByID(ctx, *in.UserID)
		if err != nil {
			return err
		}

		var (
			name string
			has  bool
		)
		switch in.Kind {
		case models.FavoriteKindCharacter:
			character, err := repos.Characters.GetByID(ctx, in.TargetID)
			if err != nil {
				return err
			}
			name = character.Name
			has, err = repos.Favorites.HasCharacter(ctx, user.ID, character.ID)
			if err != nil {
				return err
			}
		case models.FavoriteKindPlanet:
			planet, err := repos.Planets.GetByID(ctx, in.TargetID)
			if err != nil {
				return err
			}
			name = planet.Name
			has, err = repos.Favorites.HasPlanet(ctx, user.ID, planet.ID)
			if err != nil {
				return err
			}
		}

		if action == ActionAdd && has {
			return models.NewConflictError(alreadyFavoriteMessage(in.Kind))
		}
		if action == ActionRemove && !has {
			return models.NewConflictError(notFavoriteMessage(in.Kind))
		}

		if err := apply(ctx, repos.Favorites, action, in.Kind, user.ID, in.TargetID); err != nil {
			return err
		}

		res = &FavoriteResult{User: user, Kind: in.Kind, TargetID: in.TargetID, TargetName: name}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func apply(ctx context.Context, favorites repository.FavoriteRepository, action string, kind models.FavoriteKind, userID, targetID uint) error {
	switch {
	case action == ActionAdd && kind == models.FavoriteKindCharacter:
		return favorites.AddCharacter(ctx, userID, targetID)
	case action == ActionAdd && kind == models.FavoriteKindPlanet:
		return favorites.AddPlanet(ctx, userID, targetID)
	case kind == models.FavoriteKindCharacter:
		return favorites.RemoveCharacter(ctx, userID, targetID)
	default:
		return favorites.RemovePlanet(ctx, userID, targetID)
	}
}

func alreadyFavoriteMessage(kind models.FavoriteKind) string {
	return "This " + string(kind) + " is already one of your favorites"
}

func notFavoriteMessage(kind models.FavoriteKind) string {
	return "This " + string(kind) + " is not one of your favorites"
}

// resultLabel turns an error into a low-cardinality metrics label.
func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return strings.ToLower(appErr.Code)
	}
	return "error"
}
