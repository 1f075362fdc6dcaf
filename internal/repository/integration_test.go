package repository

import (
	"context"
	"sync"
	"testing"

	"postapi/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_DuplicateUsernameIsConflict(t *testing.T) {
	db := requireTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	first := &models.User{Username: "alice", Email: "alice@example.com"}
	require.NoError(t, users.Create(ctx, first))
	assert.NotZero(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	err := users.Create(ctx, &models.User{Username: "alice", Email: "other@example.com"})
	assertAppError(t, err, models.CodeConflict, "Username or email already exists")

	err = users.Create(ctx, &models.User{Username: "someone", Email: "alice@example.com"})
	assertAppError(t, err, models.CodeConflict, "Username or email already exists")

	list, err := users.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "alice", list[0].Username)
}

func TestIntegration_GetByIDRoundTrip(t *testing.T) {
	db := requireTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	ctx := context.Background()

	user := &models.User{Username: gofakeit.Username(), Email: gofakeit.Email()}
	require.NoError(t, users.Create(ctx, user))

	got, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Username, got.Username)
	assert.Equal(t, user.Email, got.Email)
	assert.True(t, got.CreatedAt.Equal(user.CreatedAt), "created_at %v != %v", got.CreatedAt, user.CreatedAt)

	post := &models.Post{UserID: user.ID, Title: "Hello", Content: models.DefaultPostContent, Status: models.DefaultPostStatus}
	require.NoError(t, posts.Create(ctx, post))

	read, err := posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.Title, read.Title)
	assert.Equal(t, "", read.Content)
	assert.Equal(t, "draft", read.Status)
	require.NotNil(t, read.Username)
	assert.Equal(t, user.Username, *read.Username)

	_, err = users.GetByID(ctx, user.ID+1000)
	assertAppError(t, err, models.CodeNotFound, "User not found")
	_, err = posts.GetByID(ctx, post.ID+1000)
	assertAppError(t, err, models.CodeNotFound, "Post not found")
}

func TestIntegration_PostsNewestFirst(t *testing.T) {
	db := requireTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	ctx := context.Background()

	author := &models.User{Username: "writer", Email: "writer@example.com"}
	require.NoError(t, users.Create(ctx, author))
	second := &models.User{Username: "second", Email: "second@example.com"}
	require.NoError(t, users.Create(ctx, second))

	var created []uint
	for i := 0; i < 3; i++ {
		p := &models.Post{UserID: author.ID, Title: gofakeit.Sentence(3), Status: "draft"}
		require.NoError(t, posts.Create(ctx, p))
		created = append(created, p.ID)
	}

	latest := &models.Post{UserID: second.ID, Title: "later", Status: "draft"}
	require.NoError(t, posts.Create(ctx, latest))
	created = append(created, latest.ID)

	byUser, err := posts.GetByUserID(ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, byUser, 3)
	assertNewestFirst(t, byUser)

	all, err := posts.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(created))
	assertNewestFirst(t, all)
	assert.Equal(t, latest.ID, all[0].ID)

	lurker := &models.User{Username: "lurker", Email: "lurker@example.com"}
	require.NoError(t, users.Create(ctx, lurker))
	none, err := posts.GetByUserID(ctx, lurker.ID)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

// assertNewestFirst checks created_at descending with id descending on ties.
func assertNewestFirst(t *testing.T, posts []models.PostWithAuthor) {
	t.Helper()
	for i := 1; i < len(posts); i++ {
		prev, cur := posts[i-1], posts[i]
		assert.False(t, cur.CreatedAt.After(prev.CreatedAt), "post %d listed before newer post %d", prev.ID, cur.ID)
		if cur.CreatedAt.Equal(prev.CreatedAt) {
			assert.Greater(t, prev.ID, cur.ID)
		}
	}
}

func TestIntegration_PostForUnknownUserFails(t *testing.T) {
	db := requireTestDB(t)
	posts := NewPostRepository(db)

	err := posts.Create(context.Background(), &models.Post{UserID: 987654, Title: "orphan", Status: "draft"})
	assertAppError(t, err, models.CodeInternal, "")
}

func TestIntegration_ConcurrentDuplicateCreates(t *testing.T) {
	db := requireTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = users.Create(ctx, &models.User{Username: "racer", Email: gofakeit.Email()})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assertAppError(t, err, models.CodeConflict, "Username or email already exists")
	}
	assert.Equal(t, 1, succeeded)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 0, sqlDB.Stats().InUse, "every connection must be returned to the pool")
}
