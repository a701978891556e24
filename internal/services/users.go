package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"agora/internal/models"
	"agora/internal/repository"
	"agora/internal/utils"
)

const entityUser = "User"

type UserService struct {
	store repository.Store
	now   func() time.Time
}

func NewUserService(store repository.Store) *UserService {
	return &UserService{store: store, now: time.Now}
}

func (s *UserService) Create(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	switch {
	case username == "":
		return nil, invalid(ActionCreate, entityUser, "Missing username.")
	case email == "":
		return nil, invalid(ActionCreate, entityUser, "Missing email.")
	case password == "":
		return nil, invalid(ActionCreate, entityUser, "Missing password.")
	}
	if err := s.checkUnique(ctx, ActionCreate, 0, username, email); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Username: username, Email: email, Password: hash}
	if err := s.store.Users().Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// 并发注册：重新检查是哪一列冲突
			if uerr := s.checkUnique(ctx, ActionCreate, 0, username, email); uerr != nil {
				return nil, uerr
			}
			return nil, newError(ErrConflict, ActionCreate, entityUser, "Username already exists.")
		}
		return nil, err
	}
	return user, nil
}

// checkUnique rejects a username or email already held by a user other than self.
func (s *UserService) checkUnique(ctx context.Context, action string, self uint, username, email string) error {
	if u, err := s.store.Users().FindByUsername(ctx, username); err == nil && u.ID != self {
		return newError(ErrConflict, action, entityUser, "Username already exists.")
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if u, err := s.store.Users().FindByEmail(ctx, email); err == nil && u.ID != self {
		return newError(ErrConflict, action, entityUser, "Email already exists.")
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}

func (s *UserService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return lookupUser(ctx, s.store, id)
}

func (s *UserService) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.store.Users().FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newError(ErrUserNotFound, ActionFind, entityUser, "User %s does not exist.", username)
	}
	return user, err
}

func (s *UserService) Update(ctx context.Context, actor *Actor, id uint, username, email string) (*models.User, error) {
	if err := RequireActor(actor, ActionEdit, entityUser); err != nil {
		return nil, err
	}
	user, err := findUser(ctx, s.store, ActionEdit, entityUser, id)
	if err != nil {
		return nil, err
	}
	if !actor.Is(user.ID) {
		return nil, newError(ErrForbidden, ActionEdit, entityUser, "You cannot edit a user other than yourself!")
	}
	if user.Status.IsDeleted() {
		return nil, deletedError(ActionEdit, entityUser)
	}

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	switch {
	case username == "":
		return nil, invalid(ActionEdit, entityUser, "Missing username.")
	case email == "":
		return nil, invalid(ActionEdit, entityUser, "Missing email.")
	}
	if err := s.checkUnique(ctx, ActionEdit, user.ID, username, email); err != nil {
		return nil, err
	}

	now := s.now()
	user.Username, user.Email, user.EditedAt = username, email, &now
	if err := s.store.Users().Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, newError(ErrConflict, ActionEdit, entityUser, "Username already exists.")
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, actor *Actor, id uint) (*models.User, error) {
	if err := RequireActor(actor, ActionDelete, entityUser); err != nil {
		return nil, err
	}
	user, err := findUser(ctx, s.store, ActionDelete, entityUser, id)
	if err != nil {
		return nil, err
	}
	if !actor.Is(user.ID) {
		return nil, newError(ErrForbidden, ActionDelete, entityUser, "You cannot delete a user other than yourself!")
	}
	if user.Status.IsDeleted() {
		return nil, deletedError(ActionDelete, entityUser)
	}

	now := s.now()
	if err := s.store.Users().SoftDelete(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.Status = models.Deleted(now)
	return user, nil
}

// Authenticate 校验邮箱和密码，已删除用户不能登录
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	switch {
	case email == "":
		return nil, invalid(ActionLogIn, "", "Missing email.")
	case password == "":
		return nil, invalid(ActionLogIn, "", "Missing password.")
	}

	user, err := s.store.Users().FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newError(ErrInvalid, ActionLogIn, "", "Invalid credentials.")
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, newError(ErrInvalid, ActionLogIn, "", "Invalid credentials.")
	}
	if user.Status.IsDeleted() {
		return nil, newError(ErrDeleted, ActionLogIn, "", "User has been deleted.")
	}
	return user, nil
}
