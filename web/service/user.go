package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/inventaris/panel/database"
	"github.com/inventaris/panel/database/model"
	"github.com/inventaris/panel/logger"
	"github.com/inventaris/panel/util/crypto"
	"github.com/inventaris/panel/web/cache"
	"github.com/inventaris/panel/web/entity"

	"github.com/pkg/errors"
)

// UserService manages accounts and resolves session identities.
type UserService struct{}

// CheckUser returns the user matching the credentials, or nil.
func (s *UserService) CheckUser(ctx context.Context, email, password string) *model.User {
	user := &model.User{}
	err := database.GetDB().WithContext(ctx).
		Where("email = ?", strings.TrimSpace(email)).
		First(user).Error
	if database.IsNotFound(err) {
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}
	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil
	}
	return user
}

// GetByUuid resolves a public id to a user.
func (s *UserService) GetByUuid(ctx context.Context, uuid string) (*model.User, error) {
	user := &model.User{}
	err := database.GetDB().WithContext(ctx).Where("uuid = ?", uuid).First(user).Error
	if database.IsNotFound(err) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get user %s", uuid)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := database.GetDB().WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	return users, nil
}

func (s *UserService) emailTaken(ctx context.Context, email string, exceptId int) (bool, error) {
	var count int64
	db := database.GetDB().WithContext(ctx).Model(&model.User{}).Where("email = ?", email)
	if exceptId != 0 {
		db = db.Where("id <> ?", exceptId)
	}
	err := db.Count(&count).Error
	return count > 0, err
}

// validateUser trims the form in place. A password is required only when requirePassword is set;
// otherwise an empty password means "keep the current one".
func validateUser(form *entity.UserForm, requirePassword bool) (model.Role, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)

	verr := &ValidationError{}
	if form.Name == "" {
		verr.add("name", "validation.required")
	}
	if form.Email == "" {
		verr.add("email", "validation.required")
	} else if _, err := mail.ParseAddress(form.Email); err != nil {
		verr.add("email", "validation.email")
	}
	if requirePassword {
		if form.Password == "" {
			verr.add("password", "validation.required")
		}
		if form.ConfPassword == "" {
			verr.add("confPassword", "validation.required")
		}
	}
	if form.Password != "" && form.Password != form.ConfPassword {
		verr.add("confPassword", "validation.passwordMismatch")
	}
	role, ok := model.ParseRole(form.Role)
	if strings.TrimSpace(form.Role) == "" {
		verr.add("role", "validation.required")
	} else if !ok {
		verr.add("role", "validation.role")
	}
	return role, verr.err()
}

// Create adds an account. Role must be Admin or User (any case).
func (s *UserService) Create(ctx context.Context, form entity.UserForm) (*model.User, error) {
	role, err := validateUser(&form, true)
	if err != nil {
		return nil, err
	}
	taken, err := s.emailTaken(ctx, form.Email, 0)
	if err != nil {
		return nil, errors.Wrap(err, "check email")
	}
	if taken {
		return nil, ErrEmailTaken
	}
	hash, err := crypto.HashPasswordAsBcrypt(form.Password)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}
	user := &model.User{
		Name:     form.Name,
		Email:    form.Email,
		Password: hash,
		Role:     string(role),
	}
	err = database.GetDB().WithContext(ctx).Create(user).Error
	if database.IsDuplicate(err) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, errors.Wrap(err, "create user")
	}
	return user, nil
}

// Update replaces name, email and role; the password only when one is given.
func (s *UserService) Update(ctx context.Context, uuid string, form entity.UserForm) (*model.User, error) {
	user, err := s.GetByUuid(ctx, uuid)
	if err != nil {
		return nil, err
	}
	role, err := validateUser(&form, false)
	if err != nil {
		return nil, err
	}
	if form.Email != user.Email {
		taken, err := s.emailTaken(ctx, form.Email, user.Id)
		if err != nil {
			return nil, errors.Wrap(err, "check email")
		}
		if taken {
			return nil, ErrEmailTaken
		}
	}

	updates := map[string]any{
		"name":  form.Name,
		"email": form.Email,
		"role":  string(role),
	}
	if form.Password != "" {
		hash, err := crypto.HashPasswordAsBcrypt(form.Password)
		if err != nil {
			return nil, errors.Wrap(err, "hash password")
		}
		updates["password"] = hash
	}
	err = database.GetDB().WithContext(ctx).Model(user).Updates(updates).Error
	if database.IsDuplicate(err) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, errors.Wrapf(err, "update user %s", uuid)
	}
	// public detail views embed the owner's name and email
	s.invalidateProducts(ctx, user.Id)
	user.Name, user.Email, user.Role = form.Name, form.Email, string(role)
	return user, nil
}

// Delete removes the account and, through the foreign key, its products.
func (s *UserService) Delete(ctx context.Context, uuid string) error {
	user, err := s.GetByUuid(ctx, uuid)
	if err != nil {
		return err
	}
	keys, err := s.productDetailKeys(ctx, user.Id)
	if err != nil {
		return err
	}
	if err := database.GetDB().WithContext(ctx).Delete(&model.User{}, user.Id).Error; err != nil {
		return errors.Wrapf(err, "delete user %s", uuid)
	}
	cache.Invalidate(ctx, keys...)
	return nil
}

// productDetailKeys lists the public detail cache keys of the user's products.
func (s *UserService) productDetailKeys(ctx context.Context, userId int) ([]string, error) {
	var uuids []string
	err := database.GetDB().WithContext(ctx).
		Model(&model.Product{}).
		Where("user_id = ?", userId).
		Pluck("uuid", &uuids).Error
	if err != nil {
		return nil, errors.Wrap(err, "list user products")
	}
	keys := make([]string, 0, len(uuids))
	for _, u := range uuids {
		keys = append(keys, cache.ProductDetailKey(u))
	}
	return keys, nil
}

func (s *UserService) invalidateProducts(ctx context.Context, userId int) {
	keys, err := s.productDetailKeys(ctx, userId)
	if err != nil {
		logger.Warning("invalidate product cache:", err)
		return
	}
	cache.Invalidate(ctx, keys...)
}

// EnsureAdmin creates an admin account, or promotes and resets the one with that email.
// Used by the command line.
func (s *UserService) EnsureAdmin(ctx context.Context, name, email, password string) (*model.User, error) {
	existing := &model.User{}
	err := database.GetDB().WithContext(ctx).Where("email = ?", email).First(existing).Error
	if database.IsNotFound(err) {
		return s.Create(ctx, entity.UserForm{
			Name:         name,
			Email:        email,
			Password:     password,
			ConfPassword: password,
			Role:         string(model.RoleAdmin),
		})
	}
	if err != nil {
		return nil, errors.Wrap(err, "find admin")
	}
	if name == "" {
		name = existing.Name
	}
	return s.Update(ctx, existing.Uuid, entity.UserForm{
		Name:         name,
		Email:        email,
		Password:     password,
		ConfPassword: password,
		Role:         string(model.RoleAdmin),
	})
}
