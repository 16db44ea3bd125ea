package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"storefront-api/internal/core/database"
	"storefront-api/internal/domain"
	"storefront-api/internal/feature/product"
	"storefront-api/internal/repo"
)

type ProductService struct {
	conns  Conns
	repos  Repos
	limits repo.Limits
	cache  readCache
	tr     translator
}

func NewProductService(d Deps) *ProductService {
	l := d.Log.Named("product")
	return &ProductService{
		conns:  d.Conns,
		repos:  d.Repos,
		limits: d.Limits,
		cache:  readCache{c: d.Cache, ttl: d.CacheTTL, log: l},
		tr:     translator{log: l},
	}
}

func slugTaken(slug string) error {
	return domain.BadRequest("", domain.FieldError{Field: "slug", Message: fmt.Sprintf("%s is already taken", slug)})
}

// categoryGate 商品只能挂在存在且未删除的分类下
func (s *ProductService) categoryGate(tx *gorm.DB, id *uint) error {
	if id == nil {
		return nil
	}
	c, err := s.repos.Categories(tx).FindActiveByID(*id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.BadRequest("", domain.FieldError{Field: "category_id", Message: "does not exist"})
	}
	return nil
}

func (s *ProductService) FindAll(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.Product], error) {
	spec, err := repo.BuildListSpec(q, s.limits, repo.ProductSort)
	if err != nil {
		return nil, err
	}
	var page domain.Page[domain.Product]
	err = s.conns.WithConn(ctx, func(db *gorm.DB) error {
		products := s.repos.Products(db)
		total, err := products.Count(spec)
		if err != nil {
			return err
		}
		found, err := products.FindAll(spec)
		if err != nil {
			return err
		}
		page.Items = mapRows(found, product.Row.ToDomain)
		page.Pagination = spec.Window.Info(total, len(found))
		return nil
	})
	if err != nil {
		return nil, s.tr.wrap(err, "retrieving products")
	}
	return &page, nil
}

func (s *ProductService) load(db *gorm.DB, id uint) (*domain.Product, error) {
	products := s.repos.Products(db)
	row, err := products.FindByID(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.NotFound("product")
	}
	attrs, err := products.Attributes(id)
	if err != nil {
		return nil, err
	}
	imgs, err := products.Images(id)
	if err != nil {
		return nil, err
	}
	out := row.ToDomain()
	out.Attributes = product.Attributes(attrs)
	out.Images = product.Images(imgs)
	return out, nil
}

// FindByID 带属性与图片
func (s *ProductService) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	out, err := loadCached(s.cache, ctx, key("product", id), func(ctx context.Context) (*domain.Product, error) {
		var out *domain.Product
		err := s.conns.WithConn(ctx, func(db *gorm.DB) error {
			p, err := s.load(db, id)
			out = p
			return err
		})
		return out, err
	})
	if err != nil {
		return nil, s.tr.wrap(err, "retrieving product")
	}
	return out, nil
}

// FindPublished 对外只暴露上架且未删除的商品
func (s *ProductService) FindPublished(ctx context.Context, id uint) (*domain.Product, error) {
	p, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.DeletedAt != nil || !p.Active {
		return nil, domain.NotFound("product")
	}
	return p, nil
}

func (s *ProductService) Store(ctx context.Context, in domain.NewProduct) (*domain.Product, error) {
	var out *domain.Product
	err := s.conns.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.categoryGate(tx, in.CategoryID); err != nil {
			return err
		}
		id, err := s.repos.Products(tx).Store(product.NewModel(in))
		if database.IsDuplicateKey(err) {
			return slugTaken(in.Slug)
		}
		if err != nil {
			return err
		}
		out, err = s.load(tx, id)
		return err
	})
	if err != nil {
		return nil, s.tr.wrap(err, "storing product")
	}
	return out, nil
}

func (s *ProductService) Update(ctx context.Context, id uint, p domain.ProductPatch) (*domain.Product, error) {
	var out *domain.Product
	err := s.conns.WithTx(ctx, func(tx *gorm.DB) error {
		products := s.repos.Products(tx)
		current, err := products.FindActiveByID(id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.NotFound("product")
		}
		if err := s.categoryGate(tx, p.CategoryID); err != nil {
			return err
		}
		if cols := product.Columns(p); len(cols) > 0 {
			n, err := products.Update(id, cols)
			if p.Slug != nil && database.IsDuplicateKey(err) {
				return slugTaken(*p.Slug)
			}
			if err != nil {
				return err
			}
			if n != 1 {
				return fmt.Errorf("products %d: %w", id, errNotUpdated)
			}
		}
		out, err = s.load(tx, id)
		return err
	})
	s.cache.drop(ctx, key("product", id))
	if err != nil {
		return nil, s.tr.wrap(err, "updating product")
	}
	return out, nil
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	err := s.conns.WithConn(ctx, func(db *gorm.DB) error {
		products := s.repos.Products(db)
		return flip(id, products.FindActiveByID, products.SoftDelete, "product", "deleted")
	})
	s.cache.drop(ctx, key("product", id))
	return s.tr.wrap(err, "deleting product")
}

func (s *ProductService) Restore(ctx context.Context, id uint) error {
	err := s.conns.WithConn(ctx, func(db *gorm.DB) error {
		products := s.repos.Products(db)
		return flip(id, products.FindTrashedByID, products.Restore, "product", "restored")
	})
	s.cache.drop(ctx, key("product", id))
	return s.tr.wrap(err, "restoring product")
}
