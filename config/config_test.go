package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetBasePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/", "/"},
		{"panel", "/panel/"},
		{"/panel", "/panel/"},
		{"panel/", "/panel/"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Setenv("INV_BASE_PATH", tt.in)
			assert.Equal(t, tt.want, GetBasePath())
		})
	}
}

func TestGetCorsOriginsDefaultsToFrontend(t *testing.T) {
	t.Setenv("INV_FRONTEND_URL", "https://inv.example.com/")
	t.Setenv("INV_CORS_ORIGINS", "")
	assert.Equal(t, []string{"https://inv.example.com"}, GetCorsOrigins())

	t.Setenv("INV_CORS_ORIGINS", "https://a.example.com, https://b.example.com/ ,")
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, GetCorsOrigins())
}

func TestGetIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("INV_PORT", "not-a-port")
	assert.Equal(t, defaultPort, GetPort())

	t.Setenv("INV_PORT", "8080")
	assert.Equal(t, 8080, GetPort())
}

func TestDatabaseConfigValidate(t *testing.T) {
	c := &DatabaseConfig{Type: DatabaseTypeMySQL}
	assert.Error(t, c.ValidateConfig())

	c.MySQL.DSN = "user:pass@tcp(127.0.0.1:3306)/inventaris?parseTime=true"
	assert.NoError(t, c.ValidateConfig())
	assert.Equal(t, c.MySQL.DSN, c.GetDSN())

	c = &DatabaseConfig{Type: "postgres"}
	assert.Error(t, c.ValidateConfig())

	c = &DatabaseConfig{Type: DatabaseTypeSQLite, SQLite: SQLiteConfig{Path: "/tmp/x.db"}}
	assert.NoError(t, c.ValidateConfig())
	assert.Contains(t, c.GetDSN(), "/tmp/x.db?")
}
