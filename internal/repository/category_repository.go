package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type CategoryRepository interface {
	// サブカテゴリ込みで名前順
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id int64) (model.Category, error)
	// 大文字小文字を無視して検索
	FindByName(ctx context.Context, name string) (model.Category, error)
	Create(ctx context.Context, c *model.Category) error

	FindSubcategory(ctx context.Context, id int64) (model.Subcategory, error)
	FindSubcategoryByName(ctx context.Context, categoryID int64, name string) (model.Subcategory, error)
	CreateSubcategory(ctx context.Context, s *model.Subcategory) error
}
