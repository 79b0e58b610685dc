package usecase

import (
	"context"
	"errors"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type ShopUsecase struct {
	shopkeepers repo.ShopkeeperRepository
	products    repo.ProductRepository
}

func NewShopUsecase(shopkeepers repo.ShopkeeperRepository, products repo.ProductRepository) *ShopUsecase {
	return &ShopUsecase{shopkeepers: shopkeepers, products: products}
}

type ShopDetail struct {
	model.Shop
	ProductCount int64 `json:"productCount"`
}

func (u *ShopUsecase) List(ctx context.Context) ([]model.Shop, error) {
	shops, err := u.shopkeepers.ListShops(ctx)
	if err != nil {
		return []model.Shop{}, internal(err)
	}
	return shops, nil
}

func (u *ShopUsecase) Get(ctx context.Context, id int64) (ShopDetail, error) {
	if id <= 0 {
		return ShopDetail{}, notFound("Shop not found")
	}

	shop, err := u.shopkeepers.FindShopByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ShopDetail{}, notFound("Shop not found")
	}
	if err != nil {
		return ShopDetail{}, internal(err)
	}

	count, err := u.products.CountByShopkeeper(ctx, id)
	if err != nil {
		return ShopDetail{}, internal(err)
	}
	return ShopDetail{Shop: shop, ProductCount: count}, nil
}

func (u *ShopUsecase) Search(ctx context.Context, q string) ([]model.Shop, error) {
	if strings.TrimSpace(q) == "" {
		return u.List(ctx)
	}
	shops, err := u.shopkeepers.SearchShops(ctx, q)
	if err != nil {
		return []model.Shop{}, internal(err)
	}
	return shops, nil
}
