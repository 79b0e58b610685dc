package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

// ショップ（出品者）の保存・取得
type ShopkeeperRepository interface {
	Create(ctx context.Context, s *model.Shopkeeper) error
	FindByID(ctx context.Context, id int64) (model.Shopkeeper, error)
	FindByEmail(ctx context.Context, email string) (model.Shopkeeper, error)
	FindByShopCode(ctx context.Context, code string) (model.Shopkeeper, error)
	// emailかGST番号のどちらかが使用済みか
	ExistsByEmailOrGST(ctx context.Context, email string, gst string) (bool, error)

	//公開用
	ListShops(ctx context.Context) ([]model.Shop, error)
	FindShopByID(ctx context.Context, id int64) (model.Shop, error)
	SearchShops(ctx context.Context, q string) ([]model.Shop, error)
}
