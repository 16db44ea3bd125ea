package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"storefront-api/internal/core/database"
	"storefront-api/internal/domain"
	"storefront-api/internal/feature/admin"
	"storefront-api/internal/feature/user"
	"storefront-api/internal/repo"
)

type AdminService struct {
	conns  Conns
	repos  Repos
	hasher Hasher
	limits repo.Limits
	tr     translator
}

func NewAdminService(d Deps) *AdminService {
	return &AdminService{
		conns:  d.Conns,
		repos:  d.Repos,
		hasher: d.Hasher,
		limits: d.Limits,
		tr:     translator{log: d.Log.Named("admin")},
	}
}

func (s *AdminService) FindAll(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.Admin], error) {
	spec, err := repo.BuildListSpec(q, s.limits, repo.AdminSort)
	if err != nil {
		return nil, err
	}
	var page domain.Page[domain.Admin]
	err = s.conns.WithConn(ctx, func(db *gorm.DB) error {
		admins := s.repos.Admins(db)
		total, err := admins.Count(spec)
		if err != nil {
			return err
		}
		found, err := admins.FindAll(spec)
		if err != nil {
			return err
		}
		page.Items = mapRows(found, admin.Row.ToDomain)
		page.Pagination = spec.Window.Info(total, len(found))
		return nil
	})
	if err != nil {
		return nil, s.tr.wrap(err, "retrieving admins")
	}
	return &page, nil
}

func (s *AdminService) FindByID(ctx context.Context, id uint) (*domain.Admin, error) {
	var out *domain.Admin
	err := s.conns.WithConn(ctx, func(db *gorm.DB) error {
		row, err := s.repos.Admins(db).FindByID(id)
		if err != nil {
			return err
		}
		if row == nil {
			return domain.NotFound("admin")
		}
		out = row.ToDomain()
		return nil
	})
	if err != nil {
		return nil, s.tr.wrap(err, "retrieving admin")
	}
	return out, nil
}

// Store users 与 admins 两行在同一事务里写入；提交前不会返回 id
func (s *AdminService) Store(ctx context.Context, in domain.NewAdmin) (*domain.Admin, error) {
	var out *domain.Admin
	err := s.conns.WithTx(ctx, func(tx *gorm.DB) error {
		users, admins := s.repos.Users(tx), s.repos.Admins(tx)

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
		roleID, err := users.RoleID(user.RoleAdmin)
		if err != nil {
			return err
		}
		userID, err := users.Store(user.NewModel(domain.NewUser{
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Email:     in.Email,
		}, hash, roleID))
		if database.IsDuplicateKey(err) {
			// 并发创建同一邮箱，唯一索引兜底
			return domain.EmailTaken(in.Email)
		}
		if err != nil {
			return err
		}

		id, err := admins.Store(&admin.AdminModel{UserID: userID, IsSuper: in.IsSuper})
		if err != nil {
			return err
		}
		row, err := admins.FindByID(id)
		if err != nil {
			return err
		}
		if row == nil {
			return fmt.Errorf("admin %d missing after insert", id)
		}
		out = row.ToDomain()
		return nil
	})
	if err != nil {
		return nil, s.tr.wrap(err, "storing admin")
	}
	s.tr.log.Info("admin stored", zap.Uint("id", out.ID), zap.Bool("is_super", out.IsSuper))
	return out, nil
}

func (s *AdminService) Update(ctx context.Context, id uint, p domain.AdminPatch) (*domain.Admin, error) {
	var out *domain.Admin
	err := s.conns.WithTx(ctx, func(tx *gorm.DB) error {
		users, admins := s.repos.Users(tx), s.repos.Admins(tx)

		current, err := admins.FindByID(id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.NotFound("admin")
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
		if cols := user.Columns(p.UserPatch, hash); len(cols) > 0 {
			n, err := users.Update(current.UserID, cols)
			if p.Email != nil && database.IsDuplicateKey(err) {
				return domain.EmailTaken(*p.Email)
			}
			if err != nil {
				return err
			}
			if n != 1 {
				return fmt.Errorf("users %d: %w", current.UserID, errNotUpdated)
			}
		}
		if cols := admin.Columns(p); len(cols) > 0 {
			n, err := admins.Update(id, cols)
			if err != nil {
				return err
			}
			if n != 1 {
				return fmt.Errorf("admins %d: %w", id, errNotUpdated)
			}
		}

		row, err := admins.FindByID(id)
		if err != nil {
			return err
		}
		out = row.ToDomain()
		return nil
	})
	if err != nil {
		return nil, s.tr.wrap(err, "updating admin")
	}
	return out, nil
}

// Delete 软删所属的 users 行，管理员随之禁用
func (s *AdminService) Delete(ctx context.Context, id uint) error {
	err := s.conns.WithConn(ctx, func(db *gorm.DB) error {
		admins := s.repos.Admins(db)
		return flip(id, admins.FindActiveByID, admins.SoftDelete, "admin", "deleted")
	})
	return s.tr.wrap(err, "deleting admin")
}

func (s *AdminService) Restore(ctx context.Context, id uint) error {
	err := s.conns.WithConn(ctx, func(db *gorm.DB) error {
		admins := s.repos.Admins(db)
		return flip(id, admins.FindTrashedByID, admins.Restore, "admin", "restored")
	})
	return s.tr.wrap(err, "restoring admin")
}
