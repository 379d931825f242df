package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/inventaris/panel/config"
	"github.com/inventaris/panel/database"
	"github.com/inventaris/panel/database/model"
	"github.com/inventaris/panel/web/access"
	"github.com/inventaris/panel/web/cache"

	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) {
	t.Helper()
	t.Setenv("INV_ADMIN_EMAIL", "admin@example.com")
	t.Setenv("INV_ADMIN_PASSWORD", "admin")
	t.Setenv("INV_FRONTEND_URL", "https://inv.example.com")
	cfg := &config.DatabaseConfig{
		Type:   config.DatabaseTypeSQLite,
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")},
	}
	require.NoError(t, database.InitDB(cfg))
	require.NoError(t, cache.InitRedis(""))
	t.Cleanup(func() {
		_ = cache.Close()
		_ = database.CloseDB()
	})
}

// newUser inserts a user directly and returns it as a policy caller.
func newUser(t *testing.T, email string, role model.Role) (*model.User, access.Caller) {
	t.Helper()
	u := &model.User{Name: email, Email: email, Password: "x", Role: string(role)}
	require.NoError(t, database.GetDB().Create(u).Error)
	return u, access.Caller{UserID: u.Id, Role: u.Role}
}

func adminCaller(t *testing.T) access.Caller {
	t.Helper()
	u := &model.User{}
	require.NoError(t, database.GetDB().Where("email = ?", "admin@example.com").First(u).Error)
	return access.Caller{UserID: u.Id, Role: u.Role}
}

var ctx = context.Background()

func callerOf(u *model.User) access.Caller {
	return access.Caller{UserID: u.Id, Role: u.Role}
}
