package model

import "time"

// 出品者（ショップ）アカウント
type Shopkeeper struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	GSTNumber    string    `gorm:"column:gst_number;type:varchar(20);not null;uniqueIndex" json:"gst_number"`
	ShopCode     string    `gorm:"type:varchar(32);not null;uniqueIndex" json:"shop_code"`
	BusinessName string    `gorm:"type:varchar(255);not null" json:"business_name"`
	Address      string    `gorm:"type:text;not null;default:''" json:"address"`
	Phone        string    `gorm:"type:varchar(30);not null" json:"phone"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 公開用（shop_codeとパスワードは出さない）
type Shop struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	BusinessName string    `json:"business_name"`
	Email        string    `json:"email"`
	GSTNumber    string    `gorm:"column:gst_number" json:"gst_number"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	CreatedAt    time.Time `json:"created_at"`
}
