package users

import (
	"context"
	"strings"
	"time"

	"github.com/PabloPavan/userdir_api/internal"
	"github.com/PabloPavan/userdir_api/internal/apperrors"
)

type Store interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, req *UpdateUserRequest) (*User, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	Store        Store
	Cache        Cache
	ListCacheTTL time.Duration
	IDGenerator  func() string
}

func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*User, error) {
	if s.Store == nil {
		return nil, apperrors.New(apperrors.KindInternal, "users store not configured")
	}

	name, email, role, err := normalizePayload(req.Name, req.Email, req.Role)
	if err != nil {
		return nil, err
	}

	idGen := s.IDGenerator
	if idGen == nil {
		idGen = func() string {
			return "usr_" + internal.RandomHex(12)
		}
	}

	u := &User{
		ID:    idGen(),
		Name:  name,
		Email: email,
		Role:  role,
	}

	if err := s.Store.Create(ctx, u); err != nil {
		if IsUniqueViolationEmail(err) {
			return nil, apperrors.New(apperrors.KindConflict, "email already exists")
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to create user", err)
	}

	s.invalidateListCache(ctx)
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	if s.Store == nil {
		return nil, apperrors.New(apperrors.KindInternal, "users store not configured")
	}
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.New(apperrors.KindNotFound, "user not found")
	}

	u, err := s.Store.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, apperrors.New(apperrors.KindNotFound, "user not found")
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to load user", err)
	}
	return u, nil
}

// List returns all users newest first, serving from the list cache when one
// is wired and warm.
func (s *Service) List(ctx context.Context) ([]*User, error) {
	if s.Store == nil {
		return nil, apperrors.New(apperrors.KindInternal, "users store not configured")
	}

	if s.Cache != nil {
		if cached, ok, err := s.Cache.GetList(ctx); err == nil && ok {
			return cached, nil
		}
	}

	list, err := s.Store.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list users", err)
	}

	if s.Cache != nil && s.ListCacheTTL > 0 {
		_ = s.Cache.SetList(ctx, list, s.ListCacheTTL)
	}
	return list, nil
}

// Update applies replace semantics: the full name/email/role shape is
// required and every column is rewritten.
func (s *Service) Update(ctx context.Context, req UpdateUserRequest) (*User, error) {
	if s.Store == nil {
		return nil, apperrors.New(apperrors.KindInternal, "users store not configured")
	}
	if strings.TrimSpace(req.ID) == "" {
		return nil, apperrors.New(apperrors.KindNotFound, "user not found")
	}

	name, email, role, err := normalizePayload(req.Name, req.Email, req.Role)
	if err != nil {
		return nil, err
	}

	u, err := s.Store.Update(ctx, &UpdateUserRequest{
		ID:    req.ID,
		Name:  name,
		Email: email,
		Role:  role,
	})
	if err != nil {
		if IsNotFound(err) {
			return nil, apperrors.New(apperrors.KindNotFound, "user not found")
		}
		if IsUniqueViolationEmail(err) {
			return nil, apperrors.New(apperrors.KindConflict, "email already exists")
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to update user", err)
	}

	s.invalidateListCache(ctx)
	return u, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if s.Store == nil {
		return apperrors.New(apperrors.KindInternal, "users store not configured")
	}
	if strings.TrimSpace(id) == "" {
		return apperrors.New(apperrors.KindNotFound, "user not found")
	}

	if err := s.Store.Delete(ctx, id); err != nil {
		if IsNotFound(err) {
			return apperrors.New(apperrors.KindNotFound, "user not found")
		}
		return apperrors.Wrap(apperrors.KindInternal, "failed to delete user", err)
	}

	s.invalidateListCache(ctx)
	return nil
}

func (s *Service) invalidateListCache(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	_ = s.Cache.DeleteList(ctx)
}

// normalizePayload enforces the shallow shape contract: name and email must
// be non-empty after trimming, email is lowercased, role falls back to
// DefaultRole when blank. Nothing deeper is checked here.
func normalizePayload(name, email, role string) (string, string, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	role = strings.TrimSpace(role)

	if name == "" || email == "" {
		return "", "", "", apperrors.New(apperrors.KindInvalidInput, "name and email are required")
	}
	if role == "" {
		role = DefaultRole
	}
	return name, email, role, nil
}
