package model

import "time"

// カートの1行（顧客×商品で1行、再追加は数量を加算）
type CartLine struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID int64     `gorm:"not null;index;uniqueIndex:idx_cart_customer_product" json:"customer_id"`
	ProductID  int64     `gorm:"not null;uniqueIndex:idx_cart_customer_product" json:"product_id"`
	Quantity   int64     `gorm:"not null" json:"quantity"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (CartLine) TableName() string { return "cart" }

// GET /cart の1行
type CartLineView struct {
	ID             int64     `json:"id"`
	Quantity       int64     `json:"quantity"`
	CreatedAt      time.Time `json:"created_at"`
	ProductID      int64     `json:"product_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Price          int64     `json:"price"`
	Stock          int64     `json:"stock"`
	ImageURL       string    `gorm:"column:image_url" json:"image_url"`
	ShopkeeperID   int64     `json:"shopkeeper_id"`
	BusinessName   string    `json:"business_name"`
	ShopkeeperName string    `json:"shopkeeper_name"`
}

// 注文確定時に読むカート行（現在価格・在庫つき）
type CheckoutLine struct {
	CartID    int64
	ProductID int64
	Quantity  int64
	Price     int64
	Stock     int64
}
