//go:build integration

package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"go-task-manager/internal/core/database"
	"go-task-manager/internal/domain"
)

func TestPostgres_SessionAndTasks(t *testing.T) {
	ctx := context.Background()
	pg, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("tasks"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(context.Background()) })

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	db, err := database.NewGorm(database.Opts{Driver: "postgres", DSN: dsn, MaxOpenConns: 5})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	users := NewUserRepo(db)
	sessions := NewSessionRepo(db)
	tasks := NewTaskRepo(db)

	u := seedUser(t, users, "pg@example.com")
	dup := users.Create(ctx, &domain.User{Name: "Dup", Email: "pg@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, dup.Err(), domain.ErrEmailTaken)

	require.True(t, sessions.AddToken(ctx, u.ID, "tok").Found())
	assert.True(t, sessions.ResolveSession(ctx, u.ID, "tok").Found())
	assert.False(t, sessions.ResolveSession(ctx, u.ID, "other").Found())

	created, ok := tasks.Create(ctx, u.ID, &domain.Task{Description: "on postgres"}).Get()
	require.True(t, ok)
	page, ok := tasks.GetAll(ctx, u.ID, domain.TaskFilter{},
		domain.PageOptions{Limit: 10, Sort: domain.Sort{Field: "createdAt", Desc: true}}).Get()
	require.True(t, ok)
	require.Len(t, page.Items, 1)
	assert.Equal(t, created.ID, page.Items[0].ID)
	assert.False(t, tasks.GetOne(ctx, created.ID, "someone-else").Found())
}
