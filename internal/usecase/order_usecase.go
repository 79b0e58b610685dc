package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type OrderUsecase struct {
	tx         repo.TransactionManager
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	auditLogs  repo.AuditLogRepository
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	orderItems repo.OrderItemRepository,
	auditLogs repo.AuditLogRepository,
) *OrderUsecase {
	return &OrderUsecase{
		tx:         tx,
		orders:     orders,
		orderItems: orderItems,
		auditLogs:  auditLogs,
	}
}

type PlaceOrderInput struct {
	ShopkeeperID    int64
	DeliveryAddress string
	Phone           string
}

type PlaceOrderOutput struct {
	Message string `json:"message"`
	OrderID int64  `json:"orderId"`
	Total   int64  `json:"total"`
}

// 監査ログに残す注文の状態
type orderSnapshot struct {
	Status model.OrderStatus `json:"status"`
	Total  int64             `json:"total,omitempty"`
}

func snapshotJSON(s orderSnapshot) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func insufficientStock(productID int64) error {
	return withCause(http.StatusBadRequest, fmt.Sprintf("Insufficient stock for product ID %d", productID), ErrInsufficientStock)
}

// PlaceOrder はカートのうち指定ショップの商品だけを1つの注文にする。
// 全行の在庫を先に確認し、書き込みは全部成功するかロールバックのどちらか。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, customerID int64, in PlaceOrderInput) (PlaceOrderOutput, error) {
	address := strings.TrimSpace(in.DeliveryAddress)
	phone := strings.TrimSpace(in.Phone)
	if in.ShopkeeperID <= 0 || address == "" || phone == "" {
		return PlaceOrderOutput{}, badRequest("Shopkeeper ID, delivery address, and phone are required")
	}

	var out PlaceOrderOutput

	//注文処理はトランザクション
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		lines, err := r.Carts().ListForCheckout(ctx, customerID, in.ShopkeeperID)
		if err != nil {
			return internal(err)
		}
		if len(lines) == 0 {
			return withCause(http.StatusBadRequest, "No items in cart for this shop", ErrEmptyCart)
		}

		//書き込み前に全行チェック
		for _, l := range lines {
			if l.Stock < l.Quantity {
				return insufficientStock(l.ProductID)
			}
		}

		var total int64
		items := make([]model.OrderItem, 0, len(lines))
		cartIDs := make([]int64, 0, len(lines))
		for _, l := range lines {
			total += l.Price * l.Quantity
			items = append(items, model.OrderItem{
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				Price:     l.Price,
			})
			cartIDs = append(cartIDs, l.CartID)
		}

		// 注文作成
		now := time.Now()
		orderID, err := r.Orders().Create(ctx, model.Order{
			CustomerID:      customerID,
			ShopkeeperID:    in.ShopkeeperID,
			TotalAmount:     total,
			DeliveryAddress: address,
			Phone:           phone,
			Status:          model.OrderStatusPending,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
		if err != nil {
			return internal(err)
		}

		//注文明細一括作成（価格はここで固定）
		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return internal(err)
		}

		//在庫減算（足りないならfalse。同時注文に負けた場合）
		for _, it := range items {
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, it.ProductID, it.Quantity)
			if err != nil {
				return internal(err)
			}
			if !ok {
				return insufficientStock(it.ProductID)
			}
			if err := r.Inventory().CreateAdjustment(ctx, model.InventoryAdjustment{
				ProductID: it.ProductID,
				OrderID:   &orderID,
				Delta:     -it.Quantity,
				Reason:    model.AdjustmentOrderPlaced,
			}); err != nil {
				return internal(err)
			}
		}

		if err := r.Carts().DeleteByIDs(ctx, cartIDs); err != nil {
			return internal(err)
		}

		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorType:    model.RoleCustomer,
			ActorID:      customerID,
			Action:       model.AuditActionPlaceOrder,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			AfterJSON:    snapshotJSON(orderSnapshot{Status: model.OrderStatusPending, Total: total}),
			CreatedAt:    now,
		}); err != nil {
			return internal(err)
		}

		out = PlaceOrderOutput{Message: "Order placed successfully", OrderID: orderID, Total: total}
		return nil
	})
	if err != nil {
		return PlaceOrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, customerID int64) ([]model.OrderView, error) {
	orders, err := u.orders.ListByCustomer(ctx, customerID)
	if err != nil {
		return []model.OrderView{}, internal(err)
	}
	return orders, nil
}

func (u *OrderUsecase) ListShopOrders(ctx context.Context, shopkeeperID int64) ([]model.OrderView, error) {
	orders, err := u.orders.ListByShopkeeper(ctx, shopkeeperID)
	if err != nil {
		return []model.OrderView{}, internal(err)
	}
	return orders, nil
}

// 当事者（注文した顧客か、受けたショップ）か
func isParty(p model.Principal, o model.Order) bool {
	switch p.Role {
	case model.RoleCustomer:
		return o.CustomerID == p.UserID
	case model.RoleShopkeeper:
		return o.ShopkeeperID == p.UserID
	default:
		return false
	}
}

func (u *OrderUsecase) GetOrder(ctx context.Context, p model.Principal, orderID int64) (model.OrderView, error) {
	o, err := u.orders.FindView(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.OrderView{}, notFound("Order not found")
	}
	if err != nil {
		return model.OrderView{}, internal(err)
	}
	//他人の注文は「存在しない扱い」にする
	if !isParty(p, o.Order) {
		return model.OrderView{}, notFound("Order not found")
	}

	items, err := u.orderItems.ListViewsByOrderID(ctx, orderID)
	if err != nil {
		return model.OrderView{}, internal(err)
	}
	o.Items = items
	return o, nil
}

// 注文明細の分だけ在庫を戻す
func restoreStock(ctx context.Context, r repo.TxRepos, orderID int64) error {
	items, err := r.OrderItems().ListByOrderID(ctx, orderID)
	if err != nil {
		return internal(err)
	}
	for _, it := range items {
		if err := r.Inventory().IncreaseStock(ctx, it.ProductID, it.Quantity); err != nil {
			return internal(err)
		}
		if err := r.Inventory().CreateAdjustment(ctx, model.InventoryAdjustment{
			ProductID: it.ProductID,
			OrderID:   &orderID,
			Delta:     it.Quantity,
			Reason:    model.AdjustmentOrderCancelled,
		}); err != nil {
			return internal(err)
		}
	}
	return nil
}

// UpdateStatus はショップによるステータス変更。遷移表にない変更は409。
// cancelledへの変更は顧客キャンセルと同じく在庫を戻す。
func (u *OrderUsecase) UpdateStatus(ctx context.Context, shopkeeperID int64, orderID int64, status string) (MessageOutput, error) {
	next := model.OrderStatus(strings.TrimSpace(status))
	if !next.Valid() {
		return MessageOutput{}, badRequest("Valid status required")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByIDForUpdate(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return notFound("Order not found or unauthorized")
		}
		if err != nil {
			return internal(err)
		}
		if o.ShopkeeperID != shopkeeperID {
			return notFound("Order not found or unauthorized")
		}

		// 同じステータスは何もしない
		if o.Status == next {
			return nil
		}
		if !o.Status.CanTransitionTo(next) {
			return withCause(http.StatusConflict,
				fmt.Sprintf("Cannot change order status from %s to %s", o.Status, next),
				ErrInvalidTransition)
		}

		if next == model.OrderStatusCancelled {
			if err := restoreStock(ctx, r, orderID); err != nil {
				return err
			}
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, next); err != nil {
			return internal(err)
		}

		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorType:    model.RoleShopkeeper,
			ActorID:      shopkeeperID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   snapshotJSON(orderSnapshot{Status: o.Status}),
			AfterJSON:    snapshotJSON(orderSnapshot{Status: next}),
			CreatedAt:    time.Now(),
		}); err != nil {
			return internal(err)
		}
		return nil
	})
	if err != nil {
		return MessageOutput{}, err
	}
	return MessageOutput{Message: "Order status updated successfully"}, nil
}

// Cancel は顧客によるキャンセル（pendingのときだけ）
func (u *OrderUsecase) Cancel(ctx context.Context, customerID int64, orderID int64) (MessageOutput, error) {
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByIDForUpdate(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return notFound("Order not found")
		}
		if err != nil {
			return internal(err)
		}
		if o.CustomerID != customerID {
			return notFound("Order not found")
		}
		if !o.Status.Cancellable() {
			return withCause(http.StatusBadRequest, "Only pending orders can be cancelled", ErrNotCancellable)
		}

		if err := restoreStock(ctx, r, orderID); err != nil {
			return err
		}
		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusCancelled); err != nil {
			return internal(err)
		}

		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorType:    model.RoleCustomer,
			ActorID:      customerID,
			Action:       model.AuditActionCancelOrder,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   snapshotJSON(orderSnapshot{Status: o.Status}),
			AfterJSON:    snapshotJSON(orderSnapshot{Status: model.OrderStatusCancelled}),
			CreatedAt:    time.Now(),
		}); err != nil {
			return internal(err)
		}
		return nil
	})
	if err != nil {
		return MessageOutput{}, err
	}
	return MessageOutput{Message: "Order cancelled successfully"}, nil
}

// 注文のステータス履歴1件
type OrderHistoryEntry struct {
	Action     model.AuditAction  `json:"action"`
	FromStatus *model.OrderStatus `json:"from_status"`
	ToStatus   model.OrderStatus  `json:"to_status"`
	ActorType  model.Role         `json:"actor_type"`
	ActorID    int64              `json:"actor_id"`
	CreatedAt  time.Time          `json:"created_at"`
}

func (u *OrderUsecase) History(ctx context.Context, p model.Principal, orderID int64) ([]OrderHistoryEntry, error) {
	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return []OrderHistoryEntry{}, notFound("Order not found")
	}
	if err != nil {
		return []OrderHistoryEntry{}, internal(err)
	}
	if !isParty(p, o) {
		return []OrderHistoryEntry{}, notFound("Order not found")
	}

	resourceType := model.AuditResourceOrder
	logs, err := u.auditLogs.List(ctx, repo.AuditLogFilter{
		ResourceType: &resourceType,
		ResourceID:   &orderID,
	})
	if err != nil {
		return []OrderHistoryEntry{}, internal(err)
	}

	out := make([]OrderHistoryEntry, 0, len(logs))
	for _, l := range logs {
		var after orderSnapshot
		if err := json.Unmarshal([]byte(l.AfterJSON), &after); err != nil {
			continue
		}
		e := OrderHistoryEntry{
			Action:    l.Action,
			ToStatus:  after.Status,
			ActorType: l.ActorType,
			ActorID:   l.ActorID,
			CreatedAt: l.CreatedAt,
		}
		if l.BeforeJSON != "" {
			var before orderSnapshot
			if err := json.Unmarshal([]byte(l.BeforeJSON), &before); err == nil {
				e.FromStatus = &before.Status
			}
		}
		out = append(out, e)
	}
	return out, nil
}
