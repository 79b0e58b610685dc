package repository

import (
	"context"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

const productViewColumns = `p.*,
	s.business_name AS business_name,
	s.name AS shopkeeper_name,
	s.address AS shop_address,
	sc.name AS subcategory_name,
	c.name AS category_name`

// 削除されていない商品 + ショップ/カテゴリ（Selectは呼び出し側で）
func (r *ProductGormRepository) views(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("products p").
		Joins("JOIN shopkeepers s ON s.id = p.shopkeeper_id").
		Joins("JOIN subcategories sc ON sc.id = p.subcategory_id").
		Joins("JOIN categories c ON c.id = sc.category_id").
		Where("p.deleted_at IS NULL")
}

// 検索/ショップ/カテゴリ/ソート/ページング付きで返す。
func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.ProductView, int64, error) {
	tx := r.views(ctx)

	// q 商品名・説明・カテゴリ名
	if s := strings.TrimSpace(q.Q); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("(p.name ILIKE ? OR p.description ILIKE ? OR c.name ILIKE ?)", like, like, like)
	}
	if q.ShopkeeperID != nil {
		tx = tx.Where("p.shopkeeper_id = ?", *q.ShopkeeperID)
	}
	if q.CategoryID != nil {
		tx = tx.Where("c.id = ?", *q.CategoryID)
	}

	//total（件数）
	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return []model.ProductView{}, 0, err
	}
	tx = tx.Select(productViewColumns)

	//sort
	switch q.Sort {
	case "price_asc":
		tx = tx.Order("p.price ASC").Order("p.id ASC")
	case "price_desc":
		tx = tx.Order("p.price DESC").Order("p.id DESC")
	default:
		tx = tx.Order("p.created_at DESC").Order("p.id DESC")
	}

	if q.Limit > 0 {
		page := q.Page
		if page < 1 {
			page = 1
		}
		tx = tx.Offset((page - 1) * q.Limit).Limit(q.Limit)
	}

	items := []model.ProductView{}
	if err := tx.Scan(&items).Error; err != nil {
		return []model.ProductView{}, 0, err
	}
	return items, total, nil
}

func (r *ProductGormRepository) FindViewByID(ctx context.Context, id int64) (model.ProductView, error) {
	var v model.ProductView
	res := r.views(ctx).Select(productViewColumns).Where("p.id = ?", id).Limit(1).Scan(&v)
	if res.Error != nil {
		return model.ProductView{}, res.Error
	}
	if res.RowsAffected == 0 {
		return model.ProductView{}, repo.ErrNotFound
	}
	return v, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return model.Product{}, translate(err)
	}
	return p, nil
}

// 他ショップの商品は見つからない扱い
func (r *ProductGormRepository) FindOwned(ctx context.Context, id int64, shopkeeperID int64) (model.Product, error) {
	var p model.Product
	if err := r.db.WithContext(ctx).
		Where("id = ? AND shopkeeper_id = ?", id, shopkeeperID).
		First(&p).Error; err != nil {
		return model.Product{}, translate(err)
	}
	return p, nil
}

func (r *ProductGormRepository) FindOwnedForUpdate(ctx context.Context, id int64, shopkeeperID int64) (model.Product, error) {
	var p model.Product
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND shopkeeper_id = ?", id, shopkeeperID).
		First(&p).Error; err != nil {
		return model.Product{}, translate(err)
	}
	return p, nil
}

func (r *ProductGormRepository) CountByShopkeeper(ctx context.Context, shopkeeperID int64) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("shopkeeper_id = ?", shopkeeperID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, translate(err)
	}
	return p, nil
}

// 商品の更新
func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ? AND shopkeeper_id = ?", p.ID, p.ShopkeeperID).
		Updates(map[string]interface{}{
			"name":           p.Name,
			"description":    p.Description,
			"price":          p.Price,
			"stock":          p.Stock,
			"subcategory_id": p.SubcategoryID,
			"image_url":      p.ImageURL,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 商品削除（注文明細から参照されるので論理削除）
func (r *ProductGormRepository) SoftDelete(ctx context.Context, id int64, shopkeeperID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND shopkeeper_id = ?", id, shopkeeperID).
		Delete(&model.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
