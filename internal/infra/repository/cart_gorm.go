package repository

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// カート明細を商品・ショップ情報つきで（新しい順）
func (r *CartGormRepository) ListViews(ctx context.Context, customerID int64) ([]model.CartLineView, error) {
	items := []model.CartLineView{}
	err := r.db.WithContext(ctx).
		Table("cart ct").
		Select(`ct.id, ct.quantity, ct.created_at,
			p.id AS product_id, p.name, p.description, p.price, p.stock, p.image_url, p.shopkeeper_id,
			s.business_name, s.name AS shopkeeper_name`).
		Joins("JOIN products p ON p.id = ct.product_id AND p.deleted_at IS NULL").
		Joins("JOIN shopkeepers s ON s.id = p.shopkeeper_id").
		Where("ct.customer_id = ?", customerID).
		Order("ct.created_at DESC, ct.id DESC").
		Scan(&items).Error
	if err != nil {
		return []model.CartLineView{}, err
	}
	return items, nil
}

func (r *CartGormRepository) FindLine(ctx context.Context, customerID int64, productID int64) (model.CartLine, error) {
	var line model.CartLine
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		First(&line).Error; err != nil {
		return model.CartLine{}, translate(err)
	}
	return line, nil
}

// 明細を取得（他人の明細は見つからない扱い）
func (r *CartGormRepository) FindByID(ctx context.Context, id int64, customerID int64) (model.CartLine, error) {
	var line model.CartLine
	if err := r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", id, customerID).
		First(&line).Error; err != nil {
		return model.CartLine{}, translate(err)
	}
	return line, nil
}

// 同一商品は数量加算
func (r *CartGormRepository) UpsertAdd(ctx context.Context, customerID int64, productID int64, addQty int64) (bool, error) {
	if addQty <= 0 {
		return false, errors.New("invalid quantity")
	}

	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var line model.CartLine

		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("customer_id = ? AND product_id = ?", customerID, productID).
			First(&line).Error

		if err == nil {
			// 既存ありだったら数量を増やす
			res := tx.Model(&model.CartLine{}).
				Where("id = ?", line.ID).
				Update("quantity", gorm.Expr("quantity + ?", addQty))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return repo.ErrNotFound
			}
			return nil
		}

		if !isNotFound(err) {
			return err
		}

		//無い場合は新規作成
		now := time.Now()
		newLine := model.CartLine{
			CustomerID: customerID,
			ProductID:  productID,
			Quantity:   addQty,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := tx.Create(&newLine).Error; err != nil {
			return translate(err)
		}
		created = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

// 明細の数量を更新
func (r *CartGormRepository) UpdateQuantity(ctx context.Context, id int64, customerID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartLine{}).
		Where("id = ? AND customer_id = ?", id, customerID).
		Update("quantity", qty)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 明細を削除
func (r *CartGormRepository) Delete(ctx context.Context, id int64, customerID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", id, customerID).
		Delete(&model.CartLine{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 顧客のカートを全削除
func (r *CartGormRepository) Clear(ctx context.Context, customerID int64) error {
	return r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Delete(&model.CartLine{}).Error
}

// そのショップの商品の行だけ。カート行と商品行をロックする
func (r *CartGormRepository) ListForCheckout(ctx context.Context, customerID int64, shopkeeperID int64) ([]model.CheckoutLine, error) {
	lines := []model.CheckoutLine{}
	err := r.db.WithContext(ctx).
		Table("cart ct").
		Select("ct.id AS cart_id, ct.product_id, ct.quantity, p.price, p.stock").
		Joins("JOIN products p ON p.id = ct.product_id AND p.deleted_at IS NULL").
		Where("ct.customer_id = ? AND p.shopkeeper_id = ?", customerID, shopkeeperID).
		Order("ct.product_id ASC").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scan(&lines).Error
	if err != nil {
		return []model.CheckoutLine{}, err
	}
	return lines, nil
}

func (r *CartGormRepository) DeleteByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&model.CartLine{}).Error
}

func (r *CartGormRepository) DeleteByProduct(ctx context.Context, productID int64) error {
	return r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&model.CartLine{}).Error
}
