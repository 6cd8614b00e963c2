// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"context"
	"fmt"
	"log"

	"holocron/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers     int
	MaxFavorites int
	ShouldClean  bool
	FixturesPath string
	SkipBcrypt   bool
	RandSeed     int64
}

// Result summarizes a seeding run.
type Result struct {
	Users      int
	Characters int
	Planets    int
}

// Seed loads the catalog fixtures, then creates NumUsers users with random favorites.
func Seed(ctx context.Context, db *gorm.DB, opts Options) (*Result, error) {
	log.Printf("🌱 Starting database seeding with %d users...", opts.NumUsers)

	if opts.ShouldClean {
		if err := ClearAll(db); err != nil {
			return nil, fmt.Errorf("failed to clear data: %w", err)
		}
	}

	fixtures, err := LoadFixtures(opts.FixturesPath)
	if err != nil {
		return nil, err
	}
	if err := Catalog(db, fixtures); err != nil {
		return nil, fmt.Errorf("failed to seed catalog: %w", err)
	}

	var characters []models.Character
	if err := db.WithContext(ctx).Order("id").Find(&characters).Error; err != nil {
		return nil, fmt.Errorf("load characters: %w", err)
	}
	var planets []models.Planet
	if err := db.WithContext(ctx).Order("id").Find(&planets).Error; err != nil {
		return nil, fmt.Errorf("load planets: %w", err)
	}
	log.Printf("✓ %d characters and %d planets available", len(characters), len(planets))

	factory := NewFactory(db, opts)
	maxFavorites := opts.MaxFavorites
	if maxFavorites <= 0 {
		maxFavorites = 3
	}
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		if err := factory.AssignFavorites(ctx, user, characters, planets, maxFavorites); err != nil {
			return nil, fmt.Errorf("failed to assign favorites: %w", err)
		}
	}
	log.Printf("✓ %d test users created", opts.NumUsers)

	return &Result{Users: opts.NumUsers, Characters: len(characters), Planets: len(planets)}, nil
}

// ClearAll deletes every row, join tables first.
func ClearAll(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	return db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.FavoriteCharacter{},
			&models.FavoritePlanet{},
			&models.User{},
			&models.Character{},
			&models.Planet{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
