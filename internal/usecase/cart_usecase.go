package usecase

import (
	"context"
	"errors"
	"net/http"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

// 成功時の共通レスポンス
type MessageOutput struct {
	Message string `json:"message"`
}

// CartUsecase は /cart の業務ロジックです。
// カートの操作では在庫は減らさない（チェックだけ）。
type CartUsecase struct {
	cartRepo    repo.CartRepository
	productRepo repo.ProductRepository
}

func NewCartUsecase(cartRepo repo.CartRepository, productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

// AddResult.Created は新しい行を作ったかどうか（handlerで201/200を分ける）
type AddResult struct {
	MessageOutput
	Created bool `json:"-"`
}

func (u *CartUsecase) GetCart(ctx context.Context, customerID int64) ([]model.CartLineView, error) {
	items, err := u.cartRepo.ListViews(ctx, customerID)
	if err != nil {
		return []model.CartLineView{}, internal(err)
	}
	return items, nil
}

// AddToCart はカートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddToCart(ctx context.Context, customerID int64, in AddCartInput) (AddResult, error) {
	if in.ProductID <= 0 || in.Quantity < 1 {
		return AddResult{}, badRequest("Valid product_id and quantity required")
	}

	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return AddResult{}, notFound("Product not found")
	}
	if err != nil {
		return AddResult{}, internal(err)
	}

	created, err := u.addLine(ctx, customerID, in, p.Stock)
	if errors.Is(err, repo.ErrDuplicate) {
		// 同じ商品の最初の追加が同時に走った。既存行への加算としてやり直す
		created, err = u.addLine(ctx, customerID, in, p.Stock)
	}
	if errors.Is(err, repo.ErrDuplicate) {
		return AddResult{}, internal(err)
	}
	if err != nil {
		return AddResult{}, err
	}
	if created {
		return AddResult{MessageOutput: MessageOutput{Message: "Item added to cart"}, Created: true}, nil
	}
	return AddResult{MessageOutput: MessageOutput{Message: "Cart updated successfully"}}, nil
}

// 既存行があれば合計で在庫と比べてから加算する。
// unique違反（repo.ErrDuplicate）だけはそのまま返す
func (u *CartUsecase) addLine(ctx context.Context, customerID int64, in AddCartInput, stock int64) (bool, error) {
	var existingQty int64
	line, err := u.cartRepo.FindLine(ctx, customerID, in.ProductID)
	switch {
	case err == nil:
		existingQty = line.Quantity
	case errors.Is(err, repo.ErrNotFound):
	default:
		return false, internal(err)
	}

	if existingQty+in.Quantity > stock {
		return false, withCause(http.StatusBadRequest, "Insufficient stock", ErrInsufficientStock)
	}

	created, err := u.cartRepo.UpsertAdd(ctx, customerID, in.ProductID, in.Quantity)
	if errors.Is(err, repo.ErrDuplicate) {
		return false, err
	}
	if err != nil {
		return false, internal(err)
	}
	return created, nil
}

// 数量変更（所有チェック＋在庫チェック）。
func (u *CartUsecase) UpdateQuantity(ctx context.Context, customerID int64, cartID int64, qty int64) (MessageOutput, error) {
	if qty < 1 {
		return MessageOutput{}, badRequest("Valid quantity required")
	}

	line, err := u.cartRepo.FindByID(ctx, cartID, customerID)
	if errors.Is(err, repo.ErrNotFound) {
		return MessageOutput{}, notFound("Cart item not found")
	}
	if err != nil {
		return MessageOutput{}, internal(err)
	}

	p, err := u.productRepo.FindByID(ctx, line.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return MessageOutput{}, notFound("Product not found")
	}
	if err != nil {
		return MessageOutput{}, internal(err)
	}
	if qty > p.Stock {
		return MessageOutput{}, withCause(http.StatusBadRequest, "Insufficient stock", ErrInsufficientStock)
	}

	err = u.cartRepo.UpdateQuantity(ctx, cartID, customerID, qty)
	if errors.Is(err, repo.ErrNotFound) {
		return MessageOutput{}, notFound("Cart item not found")
	}
	if err != nil {
		return MessageOutput{}, internal(err)
	}
	return MessageOutput{Message: "Cart updated successfully"}, nil
}

func (u *CartUsecase) RemoveItem(ctx context.Context, customerID int64, cartID int64) (MessageOutput, error) {
	err := u.cartRepo.Delete(ctx, cartID, customerID)
	if errors.Is(err, repo.ErrNotFound) {
		return MessageOutput{}, notFound("Cart item not found")
	}
	if err != nil {
		return MessageOutput{}, internal(err)
	}
	return MessageOutput{Message: "Item removed from cart"}, nil
}

func (u *CartUsecase) Clear(ctx context.Context, customerID int64) (MessageOutput, error) {
	if err := u.cartRepo.Clear(ctx, customerID); err != nil {
		return MessageOutput{}, internal(err)
	}
	return MessageOutput{Message: "Cart cleared successfully"}, nil
}
