package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"holocron/internal/models"
	"holocron/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestCharacterRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCharacterRepository(db)
	ctx := context.Background()

	tests := []struct {
		name         string
		id           uint
		mockBehavior func()
		wantName     string
		wantNotFound bool
		wantErr      bool
	}{
		{
			name: "Success",
			id:   1,
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "name", "description"}).
					AddRow(1, "Yoda", "Jedi master")
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "characters" WHERE "characters"."id" = $1 ORDER BY "characters"."id" LIMIT $2`)).
					WithArgs(1, 1).
					WillReturnRows(rows)
			},
			wantName: "Yoda",
		},
		{
			name: "Not Found",
			id:   99,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "characters" WHERE "characters"."id" = $1`)).
					WithArgs(99, 1).
					WillReturnError(gorm.ErrRecordNotFound)
			},
			wantErr:      true,
			wantNotFound: true,
		},
		{
			name: "Database Error",
			id:   2,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "characters" WHERE "characters"."id" = $1`)).
					WithArgs(2, 1).
					WillReturnError(errors.New("connection timeout"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			character, err := repo.GetByID(ctx, tt.id)

			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, character)
				assert.Equal(t, tt.wantNotFound, models.IsNotFound(err))
			} else if assert.NoError(t, err) {
				assert.Equal(t, tt.wantName, character.Name)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCharacterRepository_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCharacterRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "description"}).
		AddRow(1, "Yoda", "Jedi master").
		AddRow(2, "Chewbacca", "Wookiee")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "characters" ORDER BY id`)).
		WillReturnRows(rows)

	characters, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, characters, 2)
	assert.Equal(t, "Chewbacca", characters[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanetRepository_ListEmpty(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPlanetRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "planets" ORDER BY id`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}))

	planets, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, planets)
	assert.Empty(t, planets)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanetRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPlanetRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "planets" WHERE "planets"."id" = $1`)).
		WithArgs(5, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}))

	planet, err := repo.GetByID(context.Background(), 5)
	assert.Nil(t, planet)
	assert.True(t, models.IsNotFound(err))
	assert.Equal(t, "No planet with that id was found", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepositories_CreateDuplicateName(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()

	characters := NewCharacterRepository(db)
	require.NoError(t, characters.Create(ctx, &models.Character{Name: "Yoda", Description: "Jedi"}))
	err := characters.Create(ctx, &models.Character{Name: "Yoda", Description: "again"})
	assert.True(t, models.IsConflict(err))

	planets := NewPlanetRepository(db)
	require.NoError(t, planets.Create(ctx, &models.Planet{Name: "Hoth", Description: "Ice"}))
	err = planets.Create(ctx, &models.Planet{Name: "Hoth", Description: "again"})
	assert.True(t, models.IsConflict(err))
}
