// Package models defines the persisted entities and the API error types.
package models

import "encoding/json"

// User is an API consumer that collects favorite characters and planets.
type User struct {
	ID                 uint        `gorm:"primaryKey" json:"id"`
	Email              string      `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Name               string      `gorm:"size:250;uniqueIndex;not null" json:"name"`
	LastName           string      `gorm:"size:250;uniqueIndex;not null" json:"last_name"`
	Biography          string      `gorm:"size:200;not null" json:"biography"`
	Password           string      `gorm:"not null" json:"-"`
	FavoritePlanets    []Planet    `gorm:"many2many:favorite_planets;" json:"favorite_planets"`
	FavoriteCharacters []Character `gorm:"many2many:favorite_characters;" json:"favorite_characters"`
}

// MarshalJSON emits the public field set. Favorites are always arrays, never null.
func (u User) MarshalJSON() ([]byte, error) {
	type publicUser User
	p := publicUser(u)
	if p.FavoritePlanets == nil {
		p.FavoritePlanets = []Planet{}
	}
	if p.FavoriteCharacters == nil {
		p.FavoriteCharacters = []Character{}
	}
	return json.Marshal(p)
}

// Favorites is the payload of GET /users/:id/favorites.
type Favorites struct {
	FavoriteCharacters []Character `json:"favorite_characters"`
	FavoritePlanets    []Planet    `json:"favorite_planets"`
}

// FavoritesOf collects the user's favorites, normalizing nil slices.
func FavoritesOf(u *User) Favorites {
	f := Favorites{
		FavoriteCharacters: u.FavoriteCharacters,
		FavoritePlanets:    u.FavoritePlanets,
	}
	if f.FavoriteCharacters == nil {
		f.FavoriteCharacters = []Character{}
	}
	if f.FavoritePlanets == nil {
		f.FavoritePlanets = []Planet{}
	}
	return f
}
