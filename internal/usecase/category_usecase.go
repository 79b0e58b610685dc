package usecase

import (
	"context"
	"errors"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type CategoryUsecase struct {
	categories repo.CategoryRepository
}

func NewCategoryUsecase(categories repo.CategoryRepository) *CategoryUsecase {
	return &CategoryUsecase{categories: categories}
}

type CategoryCreated struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

type SubcategoryCreated struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}

func (u *CategoryUsecase) List(ctx context.Context) ([]model.Category, error) {
	list, err := u.categories.List(ctx)
	if err != nil {
		return []model.Category{}, internal(err)
	}
	for i := range list {
		if list[i].Subcategories == nil {
			list[i].Subcategories = []model.Subcategory{}
		}
	}
	return list, nil
}

func (u *CategoryUsecase) Get(ctx context.Context, id int64) (model.Category, error) {
	c, err := u.categories.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Category{}, notFound("Category not found")
	}
	if err != nil {
		return model.Category{}, internal(err)
	}
	if c.Subcategories == nil {
		c.Subcategories = []model.Subcategory{}
	}
	return c, nil
}

// 名前の重複は大文字小文字を無視
func (u *CategoryUsecase) Create(ctx context.Context, name string) (CategoryCreated, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return CategoryCreated{}, badRequest("Category name is required")
	}

	_, err := u.categories.FindByName(ctx, name)
	if err == nil {
		return CategoryCreated{}, conflict("Category already exists")
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return CategoryCreated{}, internal(err)
	}

	c := &model.Category{Name: name}
	if err := u.categories.Create(ctx, c); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return CategoryCreated{}, conflict("Category already exists")
		}
		return CategoryCreated{}, internal(err)
	}
	return CategoryCreated{ID: c.ID, Name: c.Name, Message: "Category created successfully"}, nil
}

func (u *CategoryUsecase) CreateSubcategory(ctx context.Context, categoryID int64, name string) (SubcategoryCreated, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SubcategoryCreated{}, badRequest("Subcategory name is required")
	}

	if _, err := u.categories.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return SubcategoryCreated{}, notFound("Category not found")
		}
		return SubcategoryCreated{}, internal(err)
	}

	_, err := u.categories.FindSubcategoryByName(ctx, categoryID, name)
	if err == nil {
		return SubcategoryCreated{}, conflict("Subcategory already exists in this category")
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return SubcategoryCreated{}, internal(err)
	}

	s := &model.Subcategory{CategoryID: categoryID, Name: name}
	if err := u.categories.CreateSubcategory(ctx, s); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return SubcategoryCreated{}, conflict("Subcategory already exists in this category")
		}
		return SubcategoryCreated{}, internal(err)
	}
	return SubcategoryCreated{
		ID:         s.ID,
		CategoryID: s.CategoryID,
		Name:       s.Name,
		Message:    "Subcategory created successfully",
	}, nil
}
