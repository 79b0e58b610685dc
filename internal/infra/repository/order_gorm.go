package repository

import (
	"context"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

const orderViewColumns = `o.*,
	s.business_name, s.name AS shopkeeper_name, s.phone AS shop_phone, s.address AS shop_address,
	c.name AS customer_name, c.phone AS customer_phone, c.email AS customer_email`

func (r *OrderGormRepository) views(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("orders o").
		Select(orderViewColumns).
		Joins("JOIN shopkeepers s ON s.id = o.shopkeeper_id").
		Joins("JOIN customers c ON c.id = o.customer_id")
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return 0, err
	}
	return order.ID, nil
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	if err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error; err != nil {
		return model.Order{}, translate(err)
	}
	return o, nil
}

// 同じ注文への同時更新を直列化する
func (r *OrderGormRepository) FindByIDForUpdate(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", orderID).
		First(&o).Error; err != nil {
		return model.Order{}, translate(err)
	}
	return o, nil
}

func (r *OrderGormRepository) FindView(ctx context.Context, orderID int64) (model.OrderView, error) {
	var v model.OrderView
	res := r.views(ctx).Where("o.id = ?", orderID).Limit(1).Scan(&v)
	if res.Error != nil {
		return model.OrderView{}, res.Error
	}
	if res.RowsAffected == 0 {
		return model.OrderView{}, repo.ErrNotFound
	}
	return v, nil
}

func (r *OrderGormRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.OrderView, error) {
	items := []model.OrderView{}
	if err := r.views(ctx).
		Where("o.customer_id = ?", customerID).
		Order("o.created_at DESC, o.id DESC").
		Scan(&items).Error; err != nil {
		return []model.OrderView{}, err
	}
	return items, nil
}

func (r *OrderGormRepository) ListByShopkeeper(ctx context.Context, shopkeeperID int64) ([]model.OrderView, error) {
	items := []model.OrderView{}
	if err := r.views(ctx).
		Where("o.shopkeeper_id = ?", shopkeeperID).
		Order("o.created_at DESC, o.id DESC").
		Scan(&items).Error; err != nil {
		return []model.OrderView{}, err
	}
	return items, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
