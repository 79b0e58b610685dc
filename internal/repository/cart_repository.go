package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

// カート行はすべて顧客IDでスコープする
type CartRepository interface {
	ListViews(ctx context.Context, customerID int64) ([]model.CartLineView, error)
	FindLine(ctx context.Context, customerID int64, productID int64) (model.CartLine, error)
	FindByID(ctx context.Context, id int64, customerID int64) (model.CartLine, error)

	// 同一商品は数量加算。新規作成ならtrue
	UpsertAdd(ctx context.Context, customerID int64, productID int64, addQty int64) (bool, error)
	UpdateQuantity(ctx context.Context, id int64, customerID int64, qty int64) error
	Delete(ctx context.Context, id int64, customerID int64) error
	Clear(ctx context.Context, customerID int64) error

	// 注文確定用：そのショップの商品の行だけ（行ロック）
	ListForCheckout(ctx context.Context, customerID int64, shopkeeperID int64) ([]model.CheckoutLine, error)
	DeleteByIDs(ctx context.Context, ids []int64) error

	// 商品削除時に全顧客のカートから外す
	DeleteByProduct(ctx context.Context, productID int64) error
}
