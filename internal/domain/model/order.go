package model

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// 遷移表（キーから値へのみ進める）
// shipped以降はキャンセル不可。delivered/cancelledは終端。
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// 列挙に含まれるか
func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, n := range orderTransitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

// 顧客がキャンセルできるのはpendingだけ
func (s OrderStatus) Cancellable() bool {
	return s == OrderStatusPending
}

type Order struct {
	ID              int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID      int64       `gorm:"not null;index" json:"customer_id"`
	ShopkeeperID    int64       `gorm:"not null;index" json:"shopkeeper_id"`
	TotalAmount     int64       `gorm:"not null" json:"total_amount"`
	DeliveryAddress string      `gorm:"type:text;not null" json:"delivery_address"`
	Phone           string      `gorm:"type:varchar(30);not null" json:"phone"`
	Status          OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt       time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 注文一覧・詳細用（相手側の情報をJOIN）
type OrderView struct {
	Order          `gorm:"embedded"`
	BusinessName   string          `json:"business_name,omitempty"`
	ShopkeeperName string          `json:"shopkeeper_name,omitempty"`
	ShopPhone      string          `json:"shop_phone,omitempty"`
	ShopAddress    string          `json:"shop_address,omitempty"`
	CustomerName   string          `json:"customer_name,omitempty"`
	CustomerPhone  string          `json:"customer_phone,omitempty"`
	CustomerEmail  string          `json:"customer_email,omitempty"`
	Items          []OrderItemView `gorm:"-" json:"items,omitempty"`
}
