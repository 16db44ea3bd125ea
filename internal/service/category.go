package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"storefront-api/internal/domain"
	"storefront-api/internal/feature/category"
	"storefront-api/internal/repo"
)

type CategoryService struct {
	conns  Conns
	repos  Repos
	limits repo.Limits
	cache  readCache
	tr     translator
}

func NewCategoryService(d Deps) *CategoryService {
	l := d.Log.Named("category")
	return &CategoryService{
		conns:  d.Conns,
		repos:  d.Repos,
		limits: d.Limits,
		cache:  readCache{c: d.Cache, ttl: d.CacheTTL, log: l},
		tr:     translator{log: l},
	}
}

func (s *CategoryService) FindAll(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.Category], error) {
	spec, err := repo.BuildListSpec(q, s.limits, repo.CategorySort)
	if err != nil {
		return nil, err
	}
	var page domain.Page[domain.Category]
	err = s.conns.WithConn(ctx, func(db *gorm.DB) error {
		categories := s.repos.Categories(db)
		total, err := categories.Count(spec)
		if err != nil {
			return err
		}
		found, err := categories.FindAll(spec)
		if err != nil {
			return err
		}
		page.Items = mapRows(found, category.CategoryModel.ToDomain)
		page.Pagination = spec.Window.Info(total, len(found))
		return nil
	})
	if err != nil {
		return nil, s.tr.wrap(err, "retrieving categories")
	}
	return &page, nil
}

func (s *CategoryService) FindByID(ctx context.Context, id uint) (*domain.Category, error) {
	out, err := loadCached(s.cache, ctx, key("category", id), func(ctx context.Context) (*domain.Category, error) {
		var out *domain.Category
		err := s.conns.WithConn(ctx, func(db *gorm.DB) error {
			m, err := s.repos.Categories(db).FindByID(id)
			if err != nil {
				return err
			}
			if m == nil {
				return domain.NotFound("category")
			}
			out = m.ToDomain()
			return nil
		})
		return out, err
	})
	if err != nil {
		return nil, s.tr.wrap(err, "retrieving category")
	}
	return out, nil
}

// FindActive 对外只暴露未删除的分类
func (s *CategoryService) FindActive(ctx context.Context, id uint) (*domain.Category, error) {
	c, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.DeletedAt != nil {
		return nil, domain.NotFound("category")
	}
	return c, nil
}

func (s *CategoryService) Store(ctx context.Context, title string) (*domain.Category, error) {
	var out *domain.Category
	err := s.conns.WithConn(ctx, func(db *gorm.DB) error {
		categories := s.repos.Categories(db)
		m := &category.CategoryModel{Title: title}
		if _, err := categories.Store(m); err != nil {
			return err
		}
		out = m.ToDomain()
		return nil
	})
	if err != nil {
		return nil, s.tr.wrap(err, "storing category")
	}
	return out, nil
}

func (s *CategoryService) Update(ctx context.Context, id uint, title *string) (*domain.Category, error) {
	var out *domain.Category
	err := s.conns.WithConn(ctx, func(db *gorm.DB) error {
		categories := s.repos.Categories(db)
		current, err := categories.FindActiveByID(id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.NotFound("category")
		}
		if title != nil {
			n, err := categories.Update(id, map[string]any{"title": *title})
			if err != nil {
				return err
			}
			if n != 1 {
				return fmt.Errorf("categories %d: %w", id, errNotUpdated)
			}
		}
		m, err := categories.FindByID(id)
		if err != nil {
			return err
		}
		out = m.ToDomain()
		return nil
	})
	s.cache.drop(ctx, key("category", id))
	if err != nil {
		return nil, s.tr.wrap(err, "updating category")
	}
	return out, nil
}

func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	err := s.conns.WithConn(ctx, func(db *gorm.DB) error {
		categories := s.repos.Categories(db)
		return flip(id, categories.FindActiveByID, categories.SoftDelete, "category", "deleted")
	})
	s.cache.drop(ctx, key("category", id))
	return s.tr.wrap(err, "deleting category")
}

func (s *CategoryService) Restore(ctx context.Context, id uint) error {
	err := s.conns.WithConn(ctx, func(db *gorm.DB) error {
		categories := s.repos.Categories(db)
		return flip(id, categories.FindTrashedByID, categories.Restore, "category", "restored")
	})
	s.cache.drop(ctx, key("category", id))
	return s.tr.wrap(err, "restoring category")
}
