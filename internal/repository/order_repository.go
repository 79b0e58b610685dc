package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	// 行ロックつき（ステータス変更・キャンセル用）
	FindByIDForUpdate(ctx context.Context, orderID int64) (model.Order, error)
	FindView(ctx context.Context, orderID int64) (model.OrderView, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.OrderView, error)
	ListByShopkeeper(ctx context.Context, shopkeeperID int64) ([]model.OrderView, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
}
