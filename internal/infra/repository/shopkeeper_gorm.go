package repository

import (
	"context"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"gorm.io/gorm"
)

type shopkeeperGormRepository struct {
	db *gorm.DB
}

// DI
// main.goでこれをnewしてusecaseに注入します。
func NewShopkeeperGormRepository(db *gorm.DB) repo.ShopkeeperRepository {
	return &shopkeeperGormRepository{db: db}
}

func (r *shopkeeperGormRepository) Create(ctx context.Context, s *model.Shopkeeper) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

func (r *shopkeeperGormRepository) FindByID(ctx context.Context, id int64) (model.Shopkeeper, error) {
	var s model.Shopkeeper
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return model.Shopkeeper{}, translate(err)
	}
	return s, nil
}

// emailで1件取得
func (r *shopkeeperGormRepository) FindByEmail(ctx context.Context, email string) (model.Shopkeeper, error) {
	var s model.Shopkeeper
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&s).Error; err != nil {
		return model.Shopkeeper{}, translate(err)
	}
	return s, nil
}

func (r *shopkeeperGormRepository) FindByShopCode(ctx context.Context, code string) (model.Shopkeeper, error) {
	var s model.Shopkeeper
	if err := r.db.WithContext(ctx).Where("shop_code = ?", code).First(&s).Error; err != nil {
		return model.Shopkeeper{}, translate(err)
	}
	return s, nil
}

func (r *shopkeeperGormRepository) ExistsByEmailOrGST(ctx context.Context, email string, gst string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Shopkeeper{}).
		Where("email = ? OR gst_number = ?", email, gst).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *shopkeeperGormRepository) shops(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.Shopkeeper{}).
		Select("id, name, business_name, email, gst_number, address, phone, created_at")
}

// 新しい順
func (r *shopkeeperGormRepository) ListShops(ctx context.Context) ([]model.Shop, error) {
	shops := []model.Shop{}
	if err := r.shops(ctx).Order("created_at DESC, id DESC").Scan(&shops).Error; err != nil {
		return []model.Shop{}, err
	}
	return shops, nil
}

func (r *shopkeeperGormRepository) FindShopByID(ctx context.Context, id int64) (model.Shop, error) {
	var shop model.Shop
	res := r.shops(ctx).Where("id = ?", id).Limit(1).Scan(&shop)
	if res.Error != nil {
		return model.Shop{}, res.Error
	}
	if res.RowsAffected == 0 {
		return model.Shop{}, repo.ErrNotFound
	}
	return shop, nil
}

// business_name / name / address の部分一致
func (r *shopkeeperGormRepository) SearchShops(ctx context.Context, q string) ([]model.Shop, error) {
	like := "%" + strings.TrimSpace(q) + "%"
	shops := []model.Shop{}
	if err := r.shops(ctx).
		Where("business_name ILIKE ? OR name ILIKE ? OR address ILIKE ?", like, like, like).
		Order("created_at DESC, id DESC").
		Scan(&shops).Error; err != nil {
		return []model.Shop{}, err
	}
	return shops, nil
}
