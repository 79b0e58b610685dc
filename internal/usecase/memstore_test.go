package usecase_test

import (
	"context"
	"sort"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

// =====================
// インメモリのストア（WithinTxはエラー時にスナップショットへ戻す）
// =====================

type memCalls struct {
	decrease int
}

type memStore struct {
	products    map[int64]model.Product
	cart        []model.CartLine
	orders      map[int64]model.Order
	items       []model.OrderItem
	adjustments []model.InventoryAdjustment
	audits      []model.AuditLog
	nextOrderID int64
	nextItemID  int64

	// この商品の条件付き減算だけ負けさせる
	loseRace int64

	// ロールバックしても残る呼び出し回数
	calls *memCalls
}

func newMemStore() *memStore {
	return &memStore{
		products: map[int64]model.Product{},
		orders:   map[int64]model.Order{},
		calls:    &memCalls{},
	}
}

func (s *memStore) clone() *memStore {
	c := *s
	c.products = make(map[int64]model.Product, len(s.products))
	for k, v := range s.products {
		c.products[k] = v
	}
	c.orders = make(map[int64]model.Order, len(s.orders))
	for k, v := range s.orders {
		c.orders[k] = v
	}
	c.cart = append([]model.CartLine(nil), s.cart...)
	c.items = append([]model.OrderItem(nil), s.items...)
	c.adjustments = append([]model.InventoryAdjustment(nil), s.adjustments...)
	c.audits = append([]model.AuditLog(nil), s.audits...)
	return &c
}

func (s *memStore) cartOf(customerID int64) []model.CartLine {
	var out []model.CartLine
	for _, l := range s.cart {
		if l.CustomerID == customerID {
			out = append(out, l)
		}
	}
	return out
}

type memTx struct {
	s     *memStore
	calls int
}

func (m *memTx) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.calls++
	snap := m.s.clone()
	if err := fn(memRepos{s: m.s}); err != nil {
		*m.s = *snap
		return err
	}
	return nil
}

type memRepos struct{ s *memStore }

func (r memRepos) Orders() repo.OrderRepository         { return memOrders{r.s} }
func (r memRepos) OrderItems() repo.OrderItemRepository { return memOrderItems{r.s} }
func (r memRepos) Carts() repo.CartRepository           { return memCarts{r.s} }
func (r memRepos) Inventory() repo.InventoryRepository  { return memInventory{r.s} }
func (r memRepos) Products() repo.ProductRepository     { return nil }
func (r memRepos) AuditLogs() repo.AuditLogRepository   { return memAudit{r.s} }

// ----- orders -----

type memOrders struct{ s *memStore }

func (m memOrders) Create(ctx context.Context, o model.Order) (int64, error) {
	m.s.nextOrderID++
	o.ID = m.s.nextOrderID
	m.s.orders[o.ID] = o
	return o.ID, nil
}

func (m memOrders) FindByID(ctx context.Context, id int64) (model.Order, error) {
	o, ok := m.s.orders[id]
	if !ok {
		return model.Order{}, repo.ErrNotFound
	}
	return o, nil
}

func (m memOrders) FindByIDForUpdate(ctx context.Context, id int64) (model.Order, error) {
	return m.FindByID(ctx, id)
}

func (m memOrders) FindView(ctx context.Context, id int64) (model.OrderView, error) {
	o, err := m.FindByID(ctx, id)
	if err != nil {
		return model.OrderView{}, err
	}
	return model.OrderView{Order: o}, nil
}

func (m memOrders) list(match func(model.Order) bool) []model.OrderView {
	out := []model.OrderView{}
	for _, o := range m.s.orders {
		if match(o) {
			out = append(out, model.OrderView{Order: o})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (m memOrders) ListByCustomer(ctx context.Context, customerID int64) ([]model.OrderView, error) {
	return m.list(func(o model.Order) bool { return o.CustomerID == customerID }), nil
}

func (m memOrders) ListByShopkeeper(ctx context.Context, shopkeeperID int64) ([]model.OrderView, error) {
	return m.list(func(o model.Order) bool { return o.ShopkeeperID == shopkeeperID }), nil
}

func (m memOrders) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	o, ok := m.s.orders[id]
	if !ok {
		return repo.ErrNotFound
	}
	o.Status = status
	m.s.orders[id] = o
	return nil
}

// ----- order items -----

type memOrderItems struct{ s *memStore }

func (m memOrderItems) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	for _, it := range items {
		m.s.nextItemID++
		it.ID = m.s.nextItemID
		it.OrderID = orderID
		m.s.items = append(m.s.items, it)
	}
	return nil
}

func (m memOrderItems) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	var out []model.OrderItem
	for _, it := range m.s.items {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m memOrderItems) ListViewsByOrderID(ctx context.Context, orderID int64) ([]model.OrderItemView, error) {
	items, _ := m.ListByOrderID(ctx, orderID)
	out := make([]model.OrderItemView, 0, len(items))
	for _, it := range items {
		out = append(out, model.OrderItemView{OrderItem: it, Name: m.s.products[it.ProductID].Name})
	}
	return out, nil
}

// ----- cart -----

type memCarts struct{ s *memStore }

func (m memCarts) ListViews(ctx context.Context, customerID int64) ([]model.CartLineView, error) {
	panic("not used in order tests")
}

func (m memCarts) FindLine(ctx context.Context, customerID int64, productID int64) (model.CartLine, error) {
	panic("not used in order tests")
}

func (m memCarts) FindByID(ctx context.Context, id int64, customerID int64) (model.CartLine, error) {
	panic("not used in order tests")
}

func (m memCarts) UpsertAdd(ctx context.Context, customerID int64, productID int64, addQty int64) (bool, error) {
	panic("not used in order tests")
}

func (m memCarts) UpdateQuantity(ctx context.Context, id int64, customerID int64, qty int64) error {
	panic("not used in order tests")
}

func (m memCarts) Delete(ctx context.Context, id int64, customerID int64) error {
	panic("not used in order tests")
}

func (m memCarts) Clear(ctx context.Context, customerID int64) error {
	panic("not used in order tests")
}

func (m memCarts) ListForCheckout(ctx context.Context, customerID int64, shopkeeperID int64) ([]model.CheckoutLine, error) {
	var out []model.CheckoutLine
	for _, l := range m.s.cart {
		p, ok := m.s.products[l.ProductID]
		if l.CustomerID != customerID || !ok || p.ShopkeeperID != shopkeeperID {
			continue
		}
		out = append(out, model.CheckoutLine{
			CartID:    l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Price:     p.Price,
			Stock:     p.Stock,
		})
	}
	return out, nil
}

func (m memCarts) DeleteByProduct(ctx context.Context, productID int64) error {
	panic("not used in order tests")
}

func (m memCarts) DeleteByIDs(ctx context.Context, ids []int64) error {
	drop := map[int64]bool{}
	for _, id := range ids {
		drop[id] = true
	}
	kept := m.s.cart[:0:0]
	for _, l := range m.s.cart {
		if !drop[l.ID] {
			kept = append(kept, l)
		}
	}
	m.s.cart = kept
	return nil
}

// ----- inventory -----

type memInventory struct{ s *memStore }

func (m memInventory) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	m.s.calls.decrease++
	if productID == m.s.loseRace {
		return false, nil
	}
	p, ok := m.s.products[productID]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	m.s.products[productID] = p
	return true, nil
}

func (m memInventory) IncreaseStock(ctx context.Context, productID int64, qty int64) error {
	p := m.s.products[productID]
	p.Stock += qty
	m.s.products[productID] = p
	return nil
}

func (m memInventory) CreateAdjustment(ctx context.Context, adj model.InventoryAdjustment) error {
	m.s.adjustments = append(m.s.adjustments, adj)
	return nil
}

// ----- audit logs -----

type memAudit struct{ s *memStore }

func (m memAudit) Create(ctx context.Context, l model.AuditLog) error {
	l.ID = int64(len(m.s.audits) + 1)
	m.s.audits = append(m.s.audits, l)
	return nil
}

func (m memAudit) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	out := []model.AuditLog{}
	for _, l := range m.s.audits {
		if f.ResourceType != nil && l.ResourceType != *f.ResourceType {
			continue
		}
		if f.ResourceID != nil && l.ResourceID != *f.ResourceID {
			continue
		}
		if f.Action != nil && l.Action != *f.Action {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}
