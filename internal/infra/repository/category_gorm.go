package repository

import (
	"context"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"gorm.io/gorm"
)

type categoryGormRepository struct {
	db *gorm.DB
}

func NewCategoryGormRepository(db *gorm.DB) repo.CategoryRepository {
	return &categoryGormRepository{db: db}
}

func orderSubcategories(db *gorm.DB) *gorm.DB {
	return db.Order("name ASC")
}

func (r *categoryGormRepository) List(ctx context.Context) ([]model.Category, error) {
	list := []model.Category{}
	if err := r.db.WithContext(ctx).
		Preload("Subcategories", orderSubcategories).
		Order("name ASC").
		Find(&list).Error; err != nil {
		return []model.Category{}, err
	}
	return list, nil
}

func (r *categoryGormRepository) FindByID(ctx context.Context, id int64) (model.Category, error) {
	var c model.Category
	if err := r.db.WithContext(ctx).
		Preload("Subcategories", orderSubcategories).
		Where("id = ?", id).
		First(&c).Error; err != nil {
		return model.Category{}, translate(err)
	}
	return c, nil
}

func (r *categoryGormRepository) FindByName(ctx context.Context, name string) (model.Category, error) {
	var c model.Category
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&c).Error; err != nil {
		return model.Category{}, translate(err)
	}
	return c, nil
}

func (r *categoryGormRepository) Create(ctx context.Context, c *model.Category) error {
	return translate(r.db.WithContext(ctx).Omit("Subcategories").Create(c).Error)
}

func (r *categoryGormRepository) FindSubcategory(ctx context.Context, id int64) (model.Subcategory, error) {
	var s model.Subcategory
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return model.Subcategory{}, translate(err)
	}
	return s, nil
}

func (r *categoryGormRepository) FindSubcategoryByName(ctx context.Context, categoryID int64, name string) (model.Subcategory, error) {
	var s model.Subcategory
	if err := r.db.WithContext(ctx).
		Where("category_id = ? AND LOWER(name) = ?", categoryID, strings.ToLower(strings.TrimSpace(name))).
		First(&s).Error; err != nil {
		return model.Subcategory{}, translate(err)
	}
	return s, nil
}

func (r *categoryGormRepository) CreateSubcategory(ctx context.Context, s *model.Subcategory) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}
