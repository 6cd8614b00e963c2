package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"holocron/internal/models"
	"holocron/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoadFixtures_BuiltIn(t *testing.T) {
	f, err := LoadFixtures("")
	require.NoError(t, err)
	assert.NotEmpty(t, f.Characters)
	assert.NotEmpty(t, f.Planets)
	assert.Equal(t, "Luke Skywalker", f.Characters[0].Name)
}

func TestLoadFixtures_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yml")
	require.NoError(t, os.WriteFile(path, []byte("characters:\n  - name: Ahsoka\n    description: Togruta\nplanets: []\n"), 0o600))

	f, err := LoadFixtures(path)
	require.NoError(t, err)
	require.Len(t, f.Characters, 1)
	assert.Equal(t, "Togruta", f.Characters[0].Description)
	assert.Empty(t, f.Planets)

	_, err = LoadFixtures(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestParseFixtures_Invalid(t *testing.T) {
	_, err := ParseFixtures([]byte("characters: ["))
	assert.Error(t, err)

	_, err = ParseFixtures([]byte("planets:\n  - description: nameless\n"))
	assert.Error(t, err)
}

func TestCatalog_Idempotent(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	f, err := LoadFixtures("")
	require.NoError(t, err)

	require.NoError(t, Catalog(db, f))
	require.NoError(t, Catalog(db, f))

	var characters, planets int64
	require.NoError(t, db.Model(&models.Character{}).Count(&characters).Error)
	require.NoError(t, db.Model(&models.Planet{}).Count(&planets).Error)
	assert.Equal(t, int64(len(f.Characters)), characters)
	assert.Equal(t, int64(len(f.Planets)), planets)
}

func TestFactory_CreateUserHashesPassword(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	factory := NewFactory(db, Options{RandSeed: 42})

	user, err := factory.CreateUser(context.Background())
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, DefaultPassword, user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(DefaultPassword)))

	named, err := factory.CreateUser(context.Background(), func(u *models.User) { u.Name = "Ezra" })
	require.NoError(t, err)
	assert.Equal(t, "Ezra", named.Name)
}

func TestSeed_CreatesUsersWithFavorites(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()

	res, err := Seed(ctx, db, Options{NumUsers: 5, MaxFavorites: 4, SkipBcrypt: true, RandSeed: 7})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Users)

	var users []models.User
	require.NoError(t, db.Preload("FavoriteCharacters").Preload("FavoritePlanets").Find(&users).Error)
	require.Len(t, users, 5)
	for _, u := range users {
		assert.LessOrEqual(t, len(u.FavoriteCharacters), 4)
		assert.LessOrEqual(t, len(u.FavoritePlanets), 4)
	}

	// A clean reseed replaces everything.
	_, err = Seed(ctx, db, Options{NumUsers: 2, ShouldClean: true, SkipBcrypt: true})
	require.NoError(t, err)
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestClearAll(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	catalog := testutil.SeedCatalog(t, db)
	require.NoError(t, db.Create(&models.FavoritePlanet{UserID: catalog.Users[0].ID, PlanetID: catalog.Planets[0].ID}).Error)

	require.NoError(t, ClearAll(db))

	for _, model := range []interface{}{&models.User{}, &models.Character{}, &models.Planet{}, &models.FavoritePlanet{}} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count)
	}
}
