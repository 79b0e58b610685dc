package model

import (
	"time"

	"gorm.io/gorm"
)

// 価格は最小通貨単位（パイサ）で持つ
type Product struct {
	ID            int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	ShopkeeperID  int64          `gorm:"not null;index" json:"shopkeeper_id"`
	SubcategoryID int64          `gorm:"not null;index" json:"subcategory_id"`
	Name          string         `gorm:"type:varchar(255);not null" json:"name"`
	Description   string         `gorm:"type:text;not null;default:''" json:"description"`
	Price         int64          `gorm:"not null" json:"price"`
	Stock         int64          `gorm:"not null;default:0" json:"stock"`
	ImageURL      string         `gorm:"column:image_url;type:text;not null;default:''" json:"image_url"`
	CreatedAt     time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// 一覧・詳細用（ショップ名・カテゴリ名をJOINしたもの）
type ProductView struct {
	Product         `gorm:"embedded"`
	BusinessName    string `json:"business_name"`
	ShopkeeperName  string `json:"shopkeeper_name"`
	ShopAddress     string `json:"shop_address,omitempty"`
	SubcategoryName string `json:"subcategory_name"`
	CategoryName    string `json:"category_name"`
}
