package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"storefront-api/internal/feature/admin"
	"storefront-api/internal/feature/category"
	"storefront-api/internal/feature/product"
	"storefront-api/internal/feature/user"
	"storefront-api/internal/repo"
)

// Conns 一次业务操作借一条连接；*database.Pool 实现
type Conns interface {
	WithConn(ctx context.Context, fn func(db *gorm.DB) error) error
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type Hasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

// Cache 可选；nil 表示不缓存
type Cache interface {
	GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error)
	Invalidate(ctx context.Context, keys ...string) error
}

type UserStore interface {
	Count(spec repo.ListSpec) (int64, error)
	FindAll(spec repo.ListSpec) ([]user.Row, error)
	FindByID(id uint) (*user.Row, error)
	FindActiveByID(id uint) (*user.Row, error)
	FindTrashedByID(id uint) (*user.Row, error)
	FindByEmailWithTrashed(email string) (*user.Row, error)
	PasswordOf(id uint) (string, error)
	RoleID(roleType string) (uint, error)
	Store(m *user.UserModel) (uint, error)
	Update(id uint, cols map[string]any) (int64, error)
	SoftDelete(id uint) (int64, error)
	Restore(id uint) (int64, error)
}

type AdminStore interface {
	Count(spec repo.ListSpec) (int64, error)
	FindAll(spec repo.ListSpec) ([]admin.Row, error)
	FindByID(id uint) (*admin.Row, error)
	FindActiveByID(id uint) (*admin.Row, error)
	FindTrashedByID(id uint) (*admin.Row, error)
	Store(m *admin.AdminModel) (uint, error)
	Update(id uint, cols map[string]any) (int64, error)
	SoftDelete(id uint) (int64, error)
	Restore(id uint) (int64, error)
}

type CategoryStore interface {
	Count(spec repo.ListSpec) (int64, error)
	FindAll(spec repo.ListSpec) ([]category.CategoryModel, error)
	FindByID(id uint) (*category.CategoryModel, error)
	FindActiveByID(id uint) (*category.CategoryModel, error)
	FindTrashedByID(id uint) (*category.CategoryModel, error)
	Store(m *category.CategoryModel) (uint, error)
	Update(id uint, cols map[string]any) (int64, error)
	SoftDelete(id uint) (int64, error)
	Restore(id uint) (int64, error)
}

type ProductStore interface {
	Count(spec repo.ListSpec) (int64, error)
	FindAll(spec repo.ListSpec) ([]product.Row, error)
	FindByID(id uint) (*product.Row, error)
	FindActiveByID(id uint) (*product.Row, error)
	FindTrashedByID(id uint) (*product.Row, error)
	Attributes(id uint) ([]product.AttributeRow, error)
	Images(id uint) ([]product.ImageModel, error)
	Store(m *product.ProductModel) (uint, error)
	Update(id uint, cols map[string]any) (int64, error)
	SoftDelete(id uint) (int64, error)
	Restore(id uint) (int64, error)
}

// Repos 仓储构造函数，绑定到借出的连接或事务
type Repos struct {
	Users      func(db *gorm.DB) UserStore
	Admins     func(db *gorm.DB) AdminStore
	Categories func(db *gorm.DB) CategoryStore
	Products   func(db *gorm.DB) ProductStore
}

func GormRepos() Repos {
	return Repos{
		Users:      func(db *gorm.DB) UserStore { return repo.NewUserRepo(db) },
		Admins:     func(db *gorm.DB) AdminStore { return repo.NewAdminRepo(db) },
		Categories: func(db *gorm.DB) CategoryStore { return repo.NewCategoryRepo(db) },
		Products:   func(db *gorm.DB) ProductStore { return repo.NewProductRepo(db) },
	}
}

type Deps struct {
	Conns    Conns
	Repos    Repos
	Hasher   Hasher
	Cache    Cache
	CacheTTL time.Duration
	Limits   repo.Limits
	Log      *zap.Logger
}

// Services 一次装配出全部服务
type Services struct {
	Admins     *AdminService
	Users      *UserService
	Categories *CategoryService
	Products   *ProductService
}

func New(d Deps) *Services {
	return &Services{
		Admins:     NewAdminService(d),
		Users:      NewUserService(d),
		Categories: NewCategoryService(d),
		Products:   NewProductService(d),
	}
}
