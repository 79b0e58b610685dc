package model

import "time"

type AdjustmentReason string

const (
	AdjustmentOrderPlaced    AdjustmentReason = "ORDER_PLACED"
	AdjustmentOrderCancelled AdjustmentReason = "ORDER_CANCELLED"
	AdjustmentRestock        AdjustmentReason = "RESTOCK"
)

// 在庫増減の履歴
// 注文起因ならOrderIDが入る
type InventoryAdjustment struct {
	ID        int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64            `gorm:"not null;index" json:"product_id"`
	OrderID   *int64           `gorm:"index" json:"order_id,omitempty"`
	Delta     int64            `gorm:"not null" json:"delta"`
	Reason    AdjustmentReason `gorm:"type:varchar(30);not null" json:"reason"`
	CreatedAt time.Time        `gorm:"not null;autoCreateTime" json:"created_at"`
}
