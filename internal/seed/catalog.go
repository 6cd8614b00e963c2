package seed

import (
	_ "embed"
	"fmt"
	"os"

	"holocron/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed starwars.yml
var builtInFixtures []byte

// Entry is one catalog row in a fixtures file.
type Entry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Fixtures is the catalog loaded from YAML.
type Fixtures struct {
	Characters []Entry `yaml:"characters"`
	Planets    []Entry `yaml:"planets"`
}

// ParseFixtures decodes YAML fixtures and rejects entries without a name.
func ParseFixtures(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	for i, e := range f.Characters {
		if e.Name == "" {
			return nil, fmt.Errorf("character %d has no name", i)
		}
	}
	for i, e := range f.Planets {
		if e.Name == "" {
			return nil, fmt.Errorf("planet %d has no name", i)
		}
	}
	return &f, nil
}

// LoadFixtures reads fixtures from path, or the built-in Star Wars catalog when path is empty.
func LoadFixtures(path string) (*Fixtures, error) {
	if path == "" {
		return ParseFixtures(builtInFixtures)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	return ParseFixtures(data)
}

// Catalog upserts every fixture by name. Running it twice leaves one row per name.
func Catalog(db *gorm.DB, f *Fixtures) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, e := range f.Characters {
			character := models.Character{Name: e.Name, Description: e.Description}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoUpdates: clause.AssignmentColumns([]string{"description"}),
			}).Create(&character).Error; err != nil {
				return fmt.Errorf("seed character %q: %w", e.Name, err)
			}
		}
		for _, e := range f.Planets {
			planet := models.Planet{Name: e.Name, Description: e.Description}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoUpdates: clause.AssignmentColumns([]string{"description"}),
			}).Create(&planet).Error; err != nil {
				return fmt.Errorf("seed planet %q: %w", e.Name, err)
			}
		}
		return nil
	})
}
