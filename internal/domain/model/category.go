package model

import "time"

type Category struct {
	ID            int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string        `gorm:"type:varchar(100);not null" json:"name"`
	CreatedAt     time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
	Subcategories []Subcategory `gorm:"foreignKey:CategoryID" json:"subcategories"`
}

type Subcategory struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID int64     `gorm:"not null;index" json:"category_id"`
	Name       string    `gorm:"type:varchar(100);not null" json:"name"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
