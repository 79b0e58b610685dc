package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

// 一覧検索
type ProductListQuery struct {
	Page         int
	Limit        int
	Q            string
	ShopkeeperID *int64
	CategoryID   *int64
	Sort         string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.ProductView, int64, error)
	FindViewByID(ctx context.Context, id int64) (model.ProductView, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	// ショップの所有チェック込み
	FindOwned(ctx context.Context, id int64, shopkeeperID int64) (model.Product, error)
	// 行ロックつき（Tx内の在庫更新用）
	FindOwnedForUpdate(ctx context.Context, id int64, shopkeeperID int64) (model.Product, error)
	CountByShopkeeper(ctx context.Context, shopkeeperID int64) (int64, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id int64, shopkeeperID int64) error
}
