package seed

import (
	"context"
	"fmt"
	"strings"

	"holocron/internal/models"
	"holocron/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the plaintext password of every generated user.
const DefaultPassword = "password123"

// Factory builds users and favorites and persists them through the repositories.
type Factory struct {
	db    *gorm.DB
	repos repository.Repositories
	opts  Options
	faker *gofakeit.Faker
	seq   int
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
// A zero opts.RandSeed picks a random seed.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	return &Factory{
		db:    db,
		repos: repository.NewRepositories(db),
		opts:  opts,
		faker: gofakeit.New(opts.RandSeed),
	}
}

// CreateUser constructs and persists a sample user.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(ctx context.Context, overrides ...func(*models.User)) (*models.User, error) {
	f.seq++
	first := f.faker.FirstName()
	last := f.faker.LastName()

	// name and last_name are unique columns, so the sequence keeps them apart.
	user := &models.User{
		Email:     fmt.Sprintf("%s.%s%d@%s", strings.ToLower(first), strings.ToLower(last), f.seq, f.faker.DomainName()),
		Name:      fmt.Sprintf("%s%d", first, f.seq),
		LastName:  fmt.Sprintf("%s%d", last, f.seq),
		Biography: truncate(f.faker.Sentence(12), 200),
	}

	if f.opts.SkipBcrypt {
		user.Password = DefaultPassword
	} else {
		hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.Password = string(hashed)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.repos.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AssignFavorites gives user up to max random favorites of each kind.
func (f *Factory) AssignFavorites(ctx context.Context, user *models.User, characters []models.Character, planets []models.Planet, max int) error {
	for _, i := range f.pick(len(characters), max) {
		if err := f.repos.Favorites.AddCharacter(ctx, user.ID, characters[i].ID); err != nil && !models.IsConflict(err) {
			return err
		}
	}
	for _, i := range f.pick(len(planets), max) {
		if err := f.repos.Favorites.AddPlanet(ctx, user.ID, planets[i].ID); err != nil && !models.IsConflict(err) {
			return err
		}
	}
	return nil
}

// pick returns between 0 and max distinct indexes below n.
func (f *Factory) pick(n, max int) []int {
	if n == 0 || max <= 0 {
		return nil
	}
	if max > n {
		max = n
	}
	count := f.faker.Number(0, max)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	f.faker.ShuffleInts(perm)
	return perm[:count]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
