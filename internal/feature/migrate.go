package feature

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront-api/internal/feature/admin"
	"storefront-api/internal/feature/category"
	"storefront-api/internal/feature/product"
	"storefront-api/internal/feature/user"
)

func Models() []any {
	return []any{
		&user.RoleModel{},
		&user.UserModel{},
		&admin.AdminModel{},
		&category.CategoryModel{},
		&product.ProductModel{},
		&product.AttributeModel{},
		&product.AttributeValueModel{},
		&product.ImageModel{},
	}
}

// MySQL 全文索引，搜索走 MATCH ... AGAINST
var fulltext = []struct{ table, name, cols string }{
	{"users", "ft_users_name", "first_name, last_name"},
	{"products", "ft_products_text", "title, description"},
}

// Migrate 建表 + 角色种子数据；可重复执行
func Migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	roles := []user.RoleModel{{Type: user.RoleAdmin}, {Type: user.RoleCustomer}}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&roles).Error; err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}

	if db.Dialector.Name() != "mysql" {
		return nil
	}
	for _, ft := range fulltext {
		if db.Migrator().HasIndex(ft.table, ft.name) {
			continue
		}
		sql := fmt.Sprintf("CREATE FULLTEXT INDEX %s ON %s (%s)", ft.name, ft.table, ft.cols)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("fulltext %s: %w", ft.name, err)
		}
	}
	return nil
}
