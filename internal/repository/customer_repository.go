package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) error
	FindByID(ctx context.Context, id int64) (model.Customer, error)
	FindByEmail(ctx context.Context, email string) (model.Customer, error)
	// ログインしたショップに紐付け直す
	LinkShopkeeper(ctx context.Context, customerID int64, shopkeeperID int64) error
}
