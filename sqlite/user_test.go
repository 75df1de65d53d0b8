package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99tech/users-api/models"
	"github.com/99tech/users-api/sqlite"
)

func newRepo(t *testing.T) models.UserRepository {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "users.db"), 0)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	return sqlite.NewUserRepository(db)
}

func TestUserRepository_RoundTrip(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, models.CreateUserRequest{Name: "Ann", Email: "ann@ex.com", Age: 29})
	require.NoError(t, err)
	assert.Positive(t, id)

	fetched, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ann", fetched.Name)
	assert.Equal(t, "ann@ex.com", fetched.Email)
	assert.Equal(t, 29, fetched.Age)
	assert.False(t, fetched.CreatedAt.IsZero())

	name := "Anne"
	err = repo.Update(ctx, id, models.UpdateUserRequest{Name: &name})
	require.NoError(t, err)

	fetched, err = repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Anne", fetched.Name)
	assert.Equal(t, "ann@ex.com", fetched.Email)

	deleted, err := repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestUserRepository_IDsAreNotReused(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, models.CreateUserRequest{Name: "Ann", Email: "ann@ex.com", Age: 29})
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, first)
	require.NoError(t, err)
	require.True(t, deleted)

	second, err := repo.Create(ctx, models.CreateUserRequest{Name: "Bob", Email: "bob@ex.com", Age: 35})
	require.NoError(t, err)
	assert.Greater(t, second, first)
}

func TestUserRepository_UpdateMissing(t *testing.T) {
	repo := newRepo(t)

	name := "X"
	err := repo.Update(context.Background(), 999, models.UpdateUserRequest{Name: &name})

	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestUserRepository_EmailExists(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, models.CreateUserRequest{Name: "Ann", Email: "ann@ex.com", Age: 29})
	require.NoError(t, err)

	exists, err := repo.EmailExists(ctx, "ann@ex.com", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.EmailExists(ctx, "ann@ex.com", id)
	require.NoError(t, err)
	assert.False(t, exists, "a user keeping their own email is not a duplicate")

	exists, err = repo.EmailExists(ctx, "other@ex.com", 0)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_SelectFilters(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	seed := []models.CreateUserRequest{
		{Name: "Annabel", Email: "annabel@corp.io", Age: 29},
		{Name: "Bob", Email: "bob@ex.com", Age: 35},
		{Name: "Carol", Email: "carol@ex.com", Age: 41},
	}

	for _, req := range seed {
		_, err := repo.Create(ctx, req)
		require.NoError(t, err)
	}

	filters := models.UserFilters{Email: "ex.com", Page: 1, Limit: 10}

	users, total, err := repo.Select(ctx, filters)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, users, 2)

	minAge, maxAge := 30, 40

	users, total, err = repo.Select(ctx, models.UserFilters{
		MinAge: &minAge,
		MaxAge: &maxAge,
		Page:   1,
		Limit:  10,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, "Bob", users[0].Name)
}

func TestUserRepository_SelectEmptyResultIsNotNil(t *testing.T) {
	repo := newRepo(t)

	users, total, err := repo.Select(context.Background(), models.UserFilters{Page: 1, Limit: 10})

	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}
