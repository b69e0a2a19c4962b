package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/supplier-directory/internal/auth"
	"github.com/spec-kit/supplier-directory/internal/domain"
	"github.com/spec-kit/supplier-directory/internal/repository"
	"github.com/spec-kit/supplier-directory/internal/store"
	util "github.com/spec-kit/supplier-directory/pkg/util"
)

func newUserEnv() (*UserService, repository.UserRepository) {
	users := repository.NewUserRepository(store.NewMemoryStore())
	return NewUserService(users, 4), users
}

func TestUserCreateDefaultsToUserRole(t *testing.T) {
	svc, users := newUserEnv()
	ctx := context.Background()

	created, err := svc.Create(ctx, adminSession, UserInput{
		Username: "Dana@Example.com",
		Password: "swordfish1",
		Name:     "  Dana Levi  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", created.Username)
	assert.Equal(t, domain.RoleUser, created.Role)
	assert.Equal(t, "Dana Levi", created.Name)
	assert.True(t, auth.VerifyPassword("swordfish1", created.PasswordHash))

	stored, err := users.Find(ctx, "dana@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestUserCreateRequiresAdmin(t *testing.T) {
	svc, _ := newUserEnv()

	_, err := svc.Create(context.Background(), userSession, UserInput{
		Username: "x@example.com",
		Password: "swordfish1",
		Name:     "X",
	})
	assert.True(t, util.IsCode(err, "FORBIDDEN"))
}

func TestUserCreateRejectsDuplicateAndBadRole(t *testing.T) {
	svc, _ := newUserEnv()
	ctx := context.Background()

	_, err := svc.Create(ctx, adminSession, UserInput{
		Username: "dana@example.com",
		Password: "swordfish1",
		Name:     "Dana",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, adminSession, UserInput{
		Username: "dana@example.com",
		Password: "swordfish1",
		Name:     "Clone",
	})
	assert.True(t, util.IsCode(err, "CONFLICT"))

	_, err = svc.Create(ctx, adminSession, UserInput{
		Username: "other@example.com",
		Password: "swordfish1",
		Name:     "Other",
		Role:     domain.Role("superuser"),
	})
	assert.True(t, util.IsCode(err, "VALIDATION_FAILED"))
}

func TestUserUpdatePartialEdit(t *testing.T) {
	svc, users := newUserEnv()
	ctx := context.Background()

	created, err := svc.Create(ctx, adminSession, UserInput{
		Username: "dana@example.com",
		Password: "swordfish1",
		Name:     "Dana",
	})
	require.NoError(t, err)
	originalHash := created.PasswordHash

	// role change only; blank password keeps the stored hash
	updated, err := svc.Update(ctx, adminSession, "dana@example.com", UserInput{Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)
	assert.Equal(t, "Dana", updated.Name)
	assert.Equal(t, originalHash, updated.PasswordHash)

	updated, err = svc.Update(ctx, adminSession, "dana@example.com", UserInput{Password: "newpassword"})
	require.NoError(t, err)
	assert.NotEqual(t, originalHash, updated.PasswordHash)

	stored, err := users.Find(ctx, "dana@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, auth.VerifyPassword("newpassword", stored.PasswordHash))
	assert.Equal(t, domain.RoleAdmin, stored.Role)
}

func TestUserUpdateMissingIsNotFound(t *testing.T) {
	svc, _ := newUserEnv()

	_, err := svc.Update(context.Background(), adminSession, "ghost@example.com", UserInput{Name: "Ghost"})
	assert.True(t, util.IsCode(err, "NOT_FOUND"))
}

func TestUserDeleteForbidsSelf(t *testing.T) {
	svc, users := newUserEnv()
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &domain.User{
		Username: adminSession.Username,
		Role:     domain.RoleAdmin,
		Name:     "Admin",
	}))
	require.NoError(t, users.Create(ctx, &domain.User{
		Username: "dana@example.com",
		Role:     domain.RoleUser,
		Name:     "Dana",
	}))

	err := svc.Delete(ctx, adminSession, "Admin@Example.com")
	assert.True(t, util.IsCode(err, "FORBIDDEN"))

	require.NoError(t, svc.Delete(ctx, adminSession, "dana@example.com"))
	left, err := users.List(ctx)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, adminSession.Username, left[0].Username)
}
