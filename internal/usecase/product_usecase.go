package usecase

import (
	"context"
	"errors"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type ProductUsecase struct {
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
	tx           repo.TransactionManager
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	tx repo.TransactionManager,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		tx:           tx,
	}
}

// GET /productsの入力DTO（page/limitが0なら全件）
type ListProductsInput struct {
	Page         int
	Limit        int
	Q            string
	Sort         string
	ShopkeeperID *int64
	CategoryID   *int64
}

type ProductListOutput struct {
	Items []model.ProductView
	Total int64
}

func (u *ProductUsecase) List(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 0 {
		return ProductListOutput{}, badRequest("invalid page")
	}
	if in.Limit < 0 || in.Limit > 100 {
		return ProductListOutput{}, badRequest("invalid limit")
	}
	if in.Limit > 0 && in.Page == 0 {
		in.Page = 1
	}
	if len(in.Q) > 100 {
		return ProductListOutput{}, badRequest("q too long")
	}
	switch in.Sort {
	case "", "new", "price_asc", "price_desc":
	default:
		return ProductListOutput{}, badRequest("invalid sort")
	}

	items, total, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Page:         in.Page,
		Limit:        in.Limit,
		Q:            strings.TrimSpace(in.Q),
		Sort:         in.Sort,
		ShopkeeperID: in.ShopkeeperID,
		CategoryID:   in.CategoryID,
	})
	if err != nil {
		return ProductListOutput{}, internal(err)
	}
	return ProductListOutput{Items: items, Total: total}, nil
}

func (u *ProductUsecase) Get(ctx context.Context, productID int64) (model.ProductView, error) {
	if productID <= 0 {
		return model.ProductView{}, notFound("Product not found")
	}

	p, err := u.productRepo.FindViewByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.ProductView{}, notFound("Product not found")
	}
	if err != nil {
		return model.ProductView{}, internal(err)
	}
	return p, nil
}

func (u *ProductUsecase) ListByShop(ctx context.Context, shopkeeperID int64) ([]model.ProductView, error) {
	out, err := u.List(ctx, ListProductsInput{ShopkeeperID: &shopkeeperID})
	return out.Items, err
}

func (u *ProductUsecase) ListByCategory(ctx context.Context, categoryID int64) ([]model.ProductView, error) {
	out, err := u.List(ctx, ListProductsInput{CategoryID: &categoryID})
	return out.Items, err
}

// 商品名・説明・カテゴリ名の部分一致
func (u *ProductUsecase) Search(ctx context.Context, q string) ([]model.ProductView, error) {
	out, err := u.List(ctx, ListProductsInput{Q: q})
	return out.Items, err
}

type ProductInput struct {
	Name          string
	Description   string
	Price         int64
	Stock         int64
	SubcategoryID int64
	ImageURL      string
}

type ProductCreated struct {
	Message   string `json:"message"`
	ProductID int64  `json:"productId"`
}

func (u *ProductUsecase) validateInput(ctx context.Context, in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" || in.Price <= 0 || in.SubcategoryID <= 0 {
		return badRequest("Name, price, and subcategory are required")
	}
	if in.Stock < 0 {
		return badRequest("stock must be >= 0")
	}

	if _, err := u.categoryRepo.FindSubcategory(ctx, in.SubcategoryID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return badRequest("Invalid subcategory")
		}
		return internal(err)
	}
	return nil
}

func (u *ProductUsecase) Create(ctx context.Context, shopkeeperID int64, in ProductInput) (ProductCreated, error) {
	if err := u.validateInput(ctx, in); err != nil {
		return ProductCreated{}, err
	}

	p, err := u.productRepo.Create(ctx, model.Product{
		ShopkeeperID:  shopkeeperID,
		SubcategoryID: in.SubcategoryID,
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Price:         in.Price,
		Stock:         in.Stock,
		ImageURL:      strings.TrimSpace(in.ImageURL),
	})
	if err != nil {
		return ProductCreated{}, internal(err)
	}
	return ProductCreated{Message: "Product created successfully", ProductID: p.ID}, nil
}

// 在庫が変わったら調整履歴も残す
func (u *ProductUsecase) Update(ctx context.Context, shopkeeperID int64, productID int64, in ProductInput) error {
	if err := u.validateInput(ctx, in); err != nil {
		return err
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 注文の在庫減算と競合しないようロックしてから読む
		current, err := r.Products().FindOwnedForUpdate(ctx, productID, shopkeeperID)
		if errors.Is(err, repo.ErrNotFound) {
			return notFound("Product not found or unauthorized")
		}
		if err != nil {
			return internal(err)
		}

		err = r.Products().Update(ctx, model.Product{
			ID:            productID,
			ShopkeeperID:  shopkeeperID,
			SubcategoryID: in.SubcategoryID,
			Name:          strings.TrimSpace(in.Name),
			Description:   in.Description,
			Price:         in.Price,
			Stock:         in.Stock,
			ImageURL:      strings.TrimSpace(in.ImageURL),
		})
		if errors.Is(err, repo.ErrNotFound) {
			return notFound("Product not found or unauthorized")
		}
		if err != nil {
			return internal(err)
		}

		if delta := in.Stock - current.Stock; delta != 0 {
			if err := r.Inventory().CreateAdjustment(ctx, model.InventoryAdjustment{
				ProductID: productID,
				Delta:     delta,
				Reason:    model.AdjustmentRestock,
			}); err != nil {
				return internal(err)
			}
		}
		return nil
	})
}

// 論理削除と同時にカートからも外す（注文明細は残る）
func (u *ProductUsecase) Delete(ctx context.Context, shopkeeperID int64, productID int64) error {
	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		err := r.Products().SoftDelete(ctx, productID, shopkeeperID)
		if errors.Is(err, repo.ErrNotFound) {
			return notFound("Product not found or unauthorized")
		}
		if err != nil {
			return internal(err)
		}

		if err := r.Carts().DeleteByProduct(ctx, productID); err != nil {
			return internal(err)
		}
		return nil
	})
}
