package model

import "time"

// 購入者アカウント
// ShopkeeperIDはログイン時のショップコードで紐付く（未ログインならnil）
type Customer struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	ShopkeeperID *int64    `gorm:"index" json:"shopkeeper_id"`
	Phone        string    `gorm:"type:varchar(30);not null" json:"phone"`
	Address      string    `gorm:"type:text;not null;default:''" json:"address"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
