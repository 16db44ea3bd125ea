package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"storefront-api/internal/core/database"
	"storefront-api/internal/domain"
	"storefront-api/internal/feature/user"
	"storefront-api/internal/repo"
)

type UserService struct {
	conns  Conns
	repos  Repos
	hasher Hasher
	limits repo.Limits
	tr     translator
}

func NewUserService(d Deps) *UserService {
	return &UserService{
		conns:  d.Conns,
		repos:  d.Repos,
		hasher: d.Hasher,
		limits: d.Limits,
		tr:     translator{log: d.Log.Named("user")},
	}
}

func (s *UserService) FindAll(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.User], error) {
	spec, err := repo.BuildListSpec(q, s.limits, repo.UserSort)
	if err != nil {
		return nil, err
	}
	var page domain.Page[domain.User]
	err = s.conns.WithConn(ctx, func(db *gorm.DB) error {
		users := s.repos.Users(db)
		total, err := users.Count(spec)
		if err != nil {
			return err
		}
		found, err := users.FindAll(spec)
		if err != nil {
			return err
		}
		page.Items = mapRows(found, user.Row.ToDomain)
		page.Pagination = spec.Window.Info(total, len(found))
		return nil
	})
	if err != nil {
		return nil, s.tr.wrap(err, "retrieving users")
	}
	return &page, nil
}

func (s *UserService) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var out *domain.User
	err := s.conns.WithConn(ctx, func(db *gorm.DB) error {
		row, err := s.repos.Users(db).FindByID(id)
		if err != nil {
			return err
		}
		if row == nil {
			return domain.NotFound("user")
		}
		out = row.ToDomain()
		return nil
	})
	if err != nil {
		return nil, s.tr.wrap(err, "retrieving user")
	}
	return out, nil
}

// Store 注册顾客账号；邮箱包括已软删的账号都不可复用
func (s *UserService) Store(ctx context.Context, in domain.NewUser) (*domain.User, error) {
	var out *domain.User
	err := s.conns.WithTx(ctx, func(tx *gorm.DB) error {
		users := s.repos.Users(tx)
		taken, err := users.FindByEmailWithTrashed(in.Email)
		if err != nil {
			return err
		}
		if taken != nil {
			return domain.EmailTaken(in.Email)
		}
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return err
		}
		roleID, err := users.RoleID(user.RoleCustomer)
		if err != nil {
			return err
		}
		id, err := users.Store(user.NewModel(in, hash, roleID))
		if database.IsDuplicateKey(err) {
			return domain.EmailTaken(in.Email)
		}
		if err != nil {
			return err
		}
		row, err := users.FindByID(id)
		if err != nil {
			return err
		}
		if row == nil {
			return fmt.Errorf("user %d missing after insert", id)
		}
		out = row.ToDomain()
		return nil
	})
	if err != nil {
		return nil, s.tr.wrap(err, "storing user")
	}
	return out, nil
}

func (s *UserService) Update(ctx context.Context, id uint, p domain.UserPatch) (*domain.User, error) {
	var out *domain.User
	err := s.conns.WithTx(ctx, func(tx *gorm.DB) error {
		users := s.repos.Users(tx)
		current, err := users.FindByID(id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.NotFound("user")
		}
		if current.DeletedAt != nil {
			return domain.BadRequest("The user account is disabled")
		}
		if p.Email != nil && *p.Email != current.Email {
			taken, err := users.FindByEmailWithTrashed(*p.Email)
			if err != nil {
				return err
			}
			if taken != nil {
				return domain.EmailTaken(*p.Email)
			}
		}

		var hash string
		if p.Password != nil {
			if hash, err = s.hasher.Hash(*p.Password); err != nil {
				return err
			}
		}
		if cols := user.Columns(p, hash); len(cols) > 0 {
			n, err := users.Update(id, cols)
			if p.Email != nil && database.IsDuplicateKey(err) {
				return domain.EmailTaken(*p.Email)
			}
			if err != nil {
				return err
			}
			if n != 1 {
				return fmt.Errorf("users %d: %w", id, errNotUpdated)
			}
		}

		row, err := users.FindByID(id)
		if err != nil {
			return err
		}
		out = row.ToDomain()
		return nil
	})
	if err != nil {
		return nil, s.tr.wrap(err, "updating user")
	}
	return out, nil
}

// ChangePassword 需要校验旧密码
func (s *UserService) ChangePassword(ctx context.Context, id uint, current, next string) error {
	err := s.conns.WithConn(ctx, func(db *gorm.DB) error {
		users := s.repos.Users(db)
		stored, err := users.PasswordOf(id)
		if err != nil {
			return err
		}
		if stored == "" {
			return domain.NotFound("user")
		}
		if err := s.hasher.Compare(stored, current); err != nil {
			if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
				return domain.BadRequest("", domain.FieldError{Field: "current_password", Message: "is not correct"})
			}
			return err
		}
		hash, err := s.hasher.Hash(next)
		if err != nil {
			return err
		}
		n, err := users.Update(id, map[string]any{"password": hash})
		if err != nil {
			return err
		}
		if n != 1 {
			return fmt.Errorf("users %d: %w", id, errNotUpdated)
		}
		return nil
	})
	return s.tr.wrap(err, "updating user")
}

// Delete actorID 为当前登录用户，不能删除自己
func (s *UserService) Delete(ctx context.Context, id, actorID uint) error {
	if id == actorID {
		return domain.BadRequest("You cannot delete your own account")
	}
	err := s.conns.WithConn(ctx, func(db *gorm.DB) error {
		users := s.repos.Users(db)
		return flip(id, users.FindActiveByID, users.SoftDelete, "user", "deleted")
	})
	return s.tr.wrap(err, "deleting user")
}

func (s *UserService) Restore(ctx context.Context, id uint) error {
	err := s.conns.WithConn(ctx, func(db *gorm.DB) error {
		users := s.repos.Users(db)
		return flip(id, users.FindTrashedByID, users.Restore, "user", "restored")
	})
	return s.tr.wrap(err, "restoring user")
}
