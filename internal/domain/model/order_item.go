package model

// 注文明細（価格は注文時点で固定、作成後は変更しない）
type OrderItem struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64 `gorm:"not null;index" json:"order_id"`
	ProductID int64 `gorm:"not null;index" json:"product_id"`
	Quantity  int64 `gorm:"not null" json:"quantity"`
	Price     int64 `gorm:"not null" json:"price"`
}

type OrderItemView struct {
	OrderItem   `gorm:"embedded"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `gorm:"column:image_url" json:"image_url"`
}
