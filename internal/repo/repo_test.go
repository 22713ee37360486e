package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-task-manager/internal/core/database"
	"go-task-manager/internal/domain"
	"go-task-manager/pkg/utils"
)

// newTestDB 每个测试独立的内存 sqlite
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          "file:" + utils.NewID() + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, users *UserRepo, email string) domain.User {
	t.Helper()
	res := users.Create(context.Background(), &domain.User{Name: "Tester", Email: email, PasswordHash: "x"})
	u, ok := res.Get()
	require.True(t, ok, "seed user: %v", res.Err())
	return u
}
