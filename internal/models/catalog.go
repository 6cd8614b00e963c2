package models

import "time"

// Character is a person from the catalog that users can favorite.
type Character struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"size:500;not null" json:"description"`
}

// Planet is a place from the catalog that users can favorite.
type Planet struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:150;uniqueIndex;not null" json:"name"`
	Description string `gorm:"size:500;not null" json:"description"`
}

// FavoriteKind names the catalog entity a favorites relation points at.
type FavoriteKind string

const (
	FavoriteKindCharacter FavoriteKind = "character"
	FavoriteKindPlanet    FavoriteKind = "planet"
)

// Valid reports whether k is a known kind.
func (k FavoriteKind) Valid() bool {
	return k == FavoriteKindCharacter || k == FavoriteKindPlanet
}

// FavoriteCharacter is a row of the favorite_characters join table.
type FavoriteCharacter struct {
	UserID      uint      `gorm:"primaryKey"`
	CharacterID uint      `gorm:"primaryKey"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

// TableName binds the join model to the many2many table declared on User.
func (FavoriteCharacter) TableName() string {
	return "favorite_characters"
}

// FavoritePlanet is a row of the favorite_planets join table.
type FavoritePlanet struct {
	UserID    uint      `gorm:"primaryKey"`
	PlanetID  uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName binds the join model to the many2many table declared on User.
func (FavoritePlanet) TableName() string {
	return "favorite_planets"
}
