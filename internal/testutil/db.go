// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"holocron/internal/database"
	"holocron/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewSQLiteDB opens a migrated in-memory sqlite database private to t.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := database.Open(sqlite.Open(dsn))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

// Catalog holds the rows created by SeedCatalog.
type Catalog struct {
	Users      []models.User
	Characters []models.Character
	Planets    []models.Planet
}

// SeedCatalog inserts two users, three characters and two planets.
func SeedCatalog(t *testing.T, db *gorm.DB) Catalog {
	t.Helper()

	c := Catalog{
		Users: []models.User{
			{Email: "luke@rebellion.org", Name: "Luke", LastName: "Skywalker", Biography: "Farm boy", Password: "x"},
			{Email: "leia@rebellion.org", Name: "Leia", LastName: "Organa", Biography: "Princess", Password: "x"},
		},
		Characters: []models.Character{
			{Name: "Yoda", Description: "Jedi master"},
			{Name: "Chewbacca", Description: "Wookiee"},
			{Name: "R2-D2", Description: "Astromech droid"},
		},
		Planets: []models.Planet{
			{Name: "Tatooine", Description: "Desert world"},
			{Name: "Hoth", Description: "Ice world"},
		},
	}

	for i := range c.Users {
		if err := db.Create(&c.Users[i]).Error; err != nil {
			t.Fatalf("create user: %v", err)
		}
	}
	for i := range c.Characters {
		if err := db.Create(&c.Characters[i]).Error; err != nil {
			t.Fatalf("create character: %v", err)
		}
	}
	for i := range c.Planets {
		if err := db.Create(&c.Planets[i]).Error; err != nil {
			t.Fatalf("create planet: %v", err)
		}
	}
	return c
}
