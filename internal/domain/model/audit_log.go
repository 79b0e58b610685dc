package model

import "time"

// 注文ステータス変更、キャンセルなど。
type AuditAction string

const (
	//ショップ側のステータス変更
	AuditActionUpdateOrderStatus AuditAction = "UPDATE_ORDER_STATUS"
	//顧客によるキャンセル
	AuditActionCancelOrder AuditAction = "CANCEL_ORDER"
	//注文作成
	AuditActionPlaceOrder AuditAction = "PLACE_ORDER"
)

// 何に対する操作か
type AuditResourceType string

const (
	AuditResourceOrder AuditResourceType = "order"
)

// 監査ログ。
// 「誰が」「何を」「どの対象に」「どう変えたか」を残す。
// 注文履歴（GET /orders/:id/history）の元データにもなる。
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//操作した側（shopkeeper / customer）
	ActorType Role  `gorm:"type:varchar(20);not null" json:"actor_type"`
	ActorID   int64 `gorm:"not null;index" json:"actor_id"`

	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   int64             `gorm:"not null;index" json:"resource_id"`

	//JSON文字列で保存する。
	BeforeJSON string `gorm:"type:text" json:"before_json"`
	AfterJSON  string `gorm:"type:text" json:"after_json"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
