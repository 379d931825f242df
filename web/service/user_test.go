package service

import (
	"testing"

	"github.com/inventaris/panel/database"
	"github.com/inventaris/panel/database/model"
	"github.com/inventaris/panel/util/crypto"
	"github.com/inventaris/panel/web/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validUserForm() entity.UserForm {
	return entity.UserForm{
		Name:         "Budi",
		Email:        "budi@example.com",
		Password:     "rahasia",
		ConfPassword: "rahasia",
		Role:         "user",
	}
}

func TestCheckUser(t *testing.T) {
	setup(t)
	s := UserService{}

	u := s.CheckUser(ctx, "admin@example.com", "admin")
	require.NotNil(t, u)
	assert.Equal(t, string(model.RoleAdmin), u.Role)

	assert.Nil(t, s.CheckUser(ctx, "admin@example.com", "wrong"))
	assert.Nil(t, s.CheckUser(ctx, "nobody@example.com", "admin"))
	assert.Nil(t, s.CheckUser(ctx, "admin@example.com", ""))
}

func TestCreateUser(t *testing.T) {
	setup(t)
	s := UserService{}

	u, err := s.Create(ctx, validUserForm())
	require.NoError(t, err)
	assert.Equal(t, string(model.RoleUser), u.Role, "role is normalized")
	assert.NotEmpty(t, u.Uuid)
	assert.True(t, crypto.CheckPasswordHash(u.Password, "rahasia"))

	got, err := s.GetByUuid(ctx, u.Uuid)
	require.NoError(t, err)
	assert.Equal(t, "budi@example.com", got.Email)

	_, err = s.Create(ctx, validUserForm())
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreateUserValidation(t *testing.T) {
	setup(t)
	s := UserService{}

	tests := []struct {
		name   string
		mutate func(f *entity.UserForm)
		field  string
		key    string
	}{
		{"missing name", func(f *entity.UserForm) { f.Name = " " }, "name", "validation.required"},
		{"missing email", func(f *entity.UserForm) { f.Email = "" }, "email", "validation.required"},
		{"bad email", func(f *entity.UserForm) { f.Email = "not-an-email" }, "email", "validation.email"},
		{"missing password", func(f *entity.UserForm) { f.Password = "" }, "password", "validation.required"},
		{"mismatch", func(f *entity.UserForm) { f.ConfPassword = "other" }, "confPassword", "validation.passwordMismatch"},
		{"missing role", func(f *entity.UserForm) { f.Role = "" }, "role", "validation.required"},
		{"unknown role", func(f *entity.UserForm) { f.Role = "superuser" }, "role", "validation.role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validUserForm()
			tt.mutate(&form)
			_, err := s.Create(ctx, form)
			ve, ok := IsValidation(err)
			require.True(t, ok, "want validation error, got %v", err)
			require.Contains(t, ve.Fields, tt.field)
			assert.Equal(t, tt.key, ve.Fields[tt.field].Key)
		})
	}

	users, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUpdateUser(t *testing.T) {
	setup(t)
	s := UserService{}

	u, err := s.Create(ctx, validUserForm())
	require.NoError(t, err)
	oldHash := u.Password

	// empty password keeps the current one
	updated, err := s.Update(ctx, u.Uuid, entity.UserForm{Name: "Budi S", Email: "budi@example.com", Role: "ADMIN"})
	require.NoError(t, err)
	assert.Equal(t, "Budi S", updated.Name)
	assert.Equal(t, string(model.RoleAdmin), updated.Role)

	stored, err := s.GetByUuid(ctx, u.Uuid)
	require.NoError(t, err)
	assert.Equal(t, oldHash, stored.Password)

	_, err = s.Update(ctx, u.Uuid, entity.UserForm{Name: "Budi", Email: "budi@example.com", Password: "baru", ConfPassword: "baru", Role: "User"})
	require.NoError(t, err)
	assert.NotNil(t, s.CheckUser(ctx, "budi@example.com", "baru"))

	_, err = s.Update(ctx, u.Uuid, entity.UserForm{Name: "Budi", Email: "admin@example.com", Role: "User"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = s.Update(ctx, "missing", validUserForm())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUserRemovesProducts(t *testing.T) {
	setup(t)
	users := UserService{}
	products := ProductService{}

	u, err := users.Create(ctx, validUserForm())
	require.NoError(t, err)
	caller := callerOf(u)
	_, err = products.Create(ctx, caller, entity.ProductForm{Name: "Router", Merek: "Acme"})
	require.NoError(t, err)

	require.NoError(t, users.Delete(ctx, u.Uuid))
	assert.ErrorIs(t, users.Delete(ctx, u.Uuid), ErrUserNotFound)

	var count int64
	database.GetDB().Model(&model.Product{}).Count(&count)
	assert.Zero(t, count)
}

func TestEnsureAdmin(t *testing.T) {
	setup(t)
	s := UserService{}

	u, err := s.Create(ctx, validUserForm())
	require.NoError(t, err)

	promoted, err := s.EnsureAdmin(ctx, "", "budi@example.com", "kuat")
	require.NoError(t, err)
	assert.Equal(t, u.Uuid, promoted.Uuid)
	assert.Equal(t, "Budi", promoted.Name)
	assert.Equal(t, string(model.RoleAdmin), promoted.Role)
	assert.NotNil(t, s.CheckUser(ctx, "budi@example.com", "kuat"))

	fresh, err := s.EnsureAdmin(ctx, "Ops", "ops@example.com", "ops")
	require.NoError(t, err)
	assert.Equal(t, string(model.RoleAdmin), fresh.Role)
}
