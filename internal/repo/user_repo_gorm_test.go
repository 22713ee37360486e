package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-task-manager/internal/domain"
)

func TestUserRepo_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepo(newTestDB(t))

	u := seedUser(t, users, "ann@example.com")
	assert.Len(t, u.ID, 36)
	assert.Equal(t, domain.RoleUser, u.Role)

	got, ok := users.FindByID(ctx, u.ID).Get()
	require.True(t, ok)
	assert.Equal(t, "ann@example.com", got.Email)

	got, ok = users.FindByEmail(ctx, "  ANN@example.com ").Get()
	require.True(t, ok)
	assert.Equal(t, u.ID, got.ID)

	missing := users.FindByID(ctx, "nope")
	assert.True(t, missing.OK())
	assert.False(t, missing.Found())
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	users := NewUserRepo(newTestDB(t))
	seedUser(t, users, "dup@example.com")

	res := users.Create(context.Background(), &domain.User{Name: "Other", Email: "dup@example.com", PasswordHash: "x"})
	require.False(t, res.OK())
	assert.ErrorIs(t, res.Err(), domain.ErrEmailTaken)
	assert.True(t, domain.IsValidation(res.Err()))
}

func TestUserRepo_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepo(newTestDB(t))
	u := seedUser(t, users, "bob@example.com")

	u.Name = "Bobby"
	u.Age = 30
	updated, ok := users.Update(ctx, &u).Get()
	require.True(t, ok)
	assert.Equal(t, "Bobby", updated.Name)

	got, _ := users.FindByID(ctx, u.ID).Get()
	assert.Equal(t, 30, got.Age)

	deleted, ok := users.Delete(ctx, u.ID).Get()
	require.True(t, ok)
	assert.Equal(t, u.ID, deleted.ID)

	assert.False(t, users.Delete(ctx, u.ID).Found())
	// 已删除的记录不会被 Update 重新插入
	res := users.Update(ctx, &u)
	assert.True(t, res.OK())
	assert.False(t, res.Found())
	assert.False(t, users.FindByID(ctx, u.ID).Found())
}

func TestUserRepo_ListAndRole(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepo(newTestDB(t))
	a := seedUser(t, users, "alice@example.com")
	seedUser(t, users, "carl@example.com")

	page, ok := users.List(ctx, "", 0, 10).Get()
	require.True(t, ok)
	assert.EqualValues(t, 2, page.Total)
	assert.Len(t, page.Items, 2)

	page, _ = users.List(ctx, "alice", 0, 10).Get()
	assert.EqualValues(t, 1, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, a.ID, page.Items[0].ID)

	admin, ok := users.SetRole(ctx, a.ID, domain.RoleAdmin).Get()
	require.True(t, ok)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.False(t, users.SetRole(ctx, "missing", domain.RoleAdmin).Found())
}

func TestUserRepo_Avatar(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepo(newTestDB(t))
	u := seedUser(t, users, "pic@example.com")

	assert.False(t, users.FindAvatar(ctx, u.ID).Found())
	require.True(t, users.SaveAvatar(ctx, u.ID, []byte{1, 2}).Found())
	require.True(t, users.SaveAvatar(ctx, u.ID, []byte{3}).Found())

	a, ok := users.FindAvatar(ctx, u.ID).Get()
	require.True(t, ok)
	assert.Equal(t, []byte{3}, a.Data)

	n, _ := users.DeleteAvatar(ctx, u.ID).Get()
	assert.EqualValues(t, 1, n)
	n, _ = users.DeleteAvatar(ctx, u.ID).Get()
	assert.EqualValues(t, 0, n)
}
