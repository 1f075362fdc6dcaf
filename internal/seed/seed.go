// Package seed fills a development database with generated users and posts.
// It writes through the repositories, so seeded rows obey the same rules as
// rows created over HTTP.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"postapi/internal/middleware"
	"postapi/internal/models"
	"postapi/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
)

// Options controls how much data Run generates.
type Options struct {
	Users int
	Posts int
	// Seed makes the generated data reproducible; zero picks a random seed.
	Seed int64
}

// Result reports what Run inserted.
type Result struct {
	Users      []models.User
	Posts      []models.Post
	Duplicates int
}

var statuses = []string{models.DefaultPostStatus, "published", "archived"}

// maxAttemptsPerUser bounds retries when generated names collide with existing rows.
const maxAttemptsPerUser = 5

// Seeder builds fake entities and persists them.
type Seeder struct {
	users repository.UserRepository
	posts repository.PostRepository
	faker *gofakeit.Faker
}

// NewSeeder creates a Seeder writing through the given repositories.
func NewSeeder(users repository.UserRepository, posts repository.PostRepository, seed int64) *Seeder {
	return &Seeder{
		users: users,
		posts: posts,
		faker: gofakeit.New(seed),
	}
}

// BuildUser returns an unsaved user with generated, unlikely-to-collide fields.
func (s *Seeder) BuildUser() *models.User {
	name := strings.ToLower(s.faker.Username())
	suffix := s.faker.Number(1000, 9999)
	return &models.User{
		Username: fmt.Sprintf("%s%d", name, suffix),
		Email:    fmt.Sprintf("%s.%d@%s", name, suffix, s.faker.DomainName()),
	}
}

// BuildPost returns an unsaved post owned by userID.
func (s *Seeder) BuildPost(userID uint) *models.Post {
	return &models.Post{
		UserID:  userID,
		Title:   strings.TrimSuffix(s.faker.Sentence(s.faker.Number(3, 8)), "."),
		Content: s.faker.Paragraph(1, 3, 12, "\n\n"),
		Status:  s.faker.RandomString(statuses),
	}
}

// Run inserts opts.Users users and spreads opts.Posts posts across them.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Result, error) {
	res := &Result{}

	for i := 0; i < opts.Users; i++ {
		user, dups, err := s.createUser(ctx)
		res.Duplicates += dups
		if err != nil {
			return res, err
		}
		res.Users = append(res.Users, *user)
	}

	if opts.Posts > 0 && len(res.Users) == 0 {
		return res, errors.New("cannot seed posts without users")
	}

	for i := 0; i < opts.Posts; i++ {
		owner := res.Users[s.faker.Number(0, len(res.Users)-1)]
		post := s.BuildPost(owner.ID)
		if err := s.posts.Create(ctx, post); err != nil {
			return res, fmt.Errorf("seed post %d: %w", i+1, err)
		}
		res.Posts = append(res.Posts, *post)
	}

	middleware.Logger.InfoContext(ctx, "Seeding complete",
		"users", len(res.Users),
		"posts", len(res.Posts),
		"duplicates_skipped", res.Duplicates,
	)
	return res, nil
}

func (s *Seeder) createUser(ctx context.Context) (*models.User, int, error) {
	dups := 0
	for attempt := 0; attempt < maxAttemptsPerUser; attempt++ {
		user := s.BuildUser()
		err := s.users.Create(ctx, user)
		if err == nil {
			return user, dups, nil
		}

		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeConflict {
			dups++
			continue
		}
		return nil, dups, fmt.Errorf("seed user: %w", err)
	}
	return nil, dups, fmt.Errorf("seed user: gave up after %d duplicate names", maxAttemptsPerUser)
}
