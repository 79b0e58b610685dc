package usecase_test

import (
	"context"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	products  repo.ProductRepository
	inventory repo.InventoryRepository
	carts     repo.CartRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository         { return nil }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository { return nil }
func (r *TxReposMock) Carts() repo.CartRepository           { return r.carts }
func (r *TxReposMock) Inventory() repo.InventoryRepository  { return r.inventory }
func (r *TxReposMock) Products() repo.ProductRepository     { return r.products }
func (r *TxReposMock) AuditLogs() repo.AuditLogRepository   { return nil }

// =====================
// Repository mocks
// =====================

type ShopkeeperRepoMock struct{ mock.Mock }

func (m *ShopkeeperRepoMock) Create(ctx context.Context, s *model.Shopkeeper) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *ShopkeeperRepoMock) FindByID(ctx context.Context, id int64) (model.Shopkeeper, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(model.Shopkeeper)
	return s, args.Error(1)
}

func (m *ShopkeeperRepoMock) FindByEmail(ctx context.Context, email string) (model.Shopkeeper, error) {
	args := m.Called(ctx, email)
	s, _ := args.Get(0).(model.Shopkeeper)
	return s, args.Error(1)
}

func (m *ShopkeeperRepoMock) FindByShopCode(ctx context.Context, code string) (model.Shopkeeper, error) {
	args := m.Called(ctx, code)
	s, _ := args.Get(0).(model.Shopkeeper)
	return s, args.Error(1)
}

func (m *ShopkeeperRepoMock) ExistsByEmailOrGST(ctx context.Context, email string, gst string) (bool, error) {
	args := m.Called(ctx, email, gst)
	return args.Bool(0), args.Error(1)
}

func (m *ShopkeeperRepoMock) ListShops(ctx context.Context) ([]model.Shop, error) {
	args := m.Called(ctx)
	shops, _ := args.Get(0).([]model.Shop)
	return shops, args.Error(1)
}

func (m *ShopkeeperRepoMock) FindShopByID(ctx context.Context, id int64) (model.Shop, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(model.Shop)
	return s, args.Error(1)
}

func (m *ShopkeeperRepoMock) SearchShops(ctx context.Context, q string) ([]model.Shop, error) {
	args := m.Called(ctx, q)
	shops, _ := args.Get(0).([]model.Shop)
	return shops, args.Error(1)
}

type CustomerRepoMock struct{ mock.Mock }

func (m *CustomerRepoMock) Create(ctx context.Context, c *model.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CustomerRepoMock) FindByID(ctx context.Context, id int64) (model.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Customer)
	return c, args.Error(1)
}

func (m *CustomerRepoMock) FindByEmail(ctx context.Context, email string) (model.Customer, error) {
	args := m.Called(ctx, email)
	c, _ := args.Get(0).(model.Customer)
	return c, args.Error(1)
}

func (m *CustomerRepoMock) LinkShopkeeper(ctx context.Context, customerID int64, shopkeeperID int64) error {
	args := m.Called(ctx, customerID, shopkeeperID)
	return args.Error(0)
}

type CategoryRepoMock struct{ mock.Mock }

func (m *CategoryRepoMock) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]model.Category)
	return list, args.Error(1)
}

func (m *CategoryRepoMock) FindByID(ctx context.Context, id int64) (model.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepoMock) FindByName(ctx context.Context, name string) (model.Category, error) {
	args := m.Called(ctx, name)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepoMock) Create(ctx context.Context, c *model.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CategoryRepoMock) FindSubcategory(ctx context.Context, id int64) (model.Subcategory, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(model.Subcategory)
	return s, args.Error(1)
}

func (m *CategoryRepoMock) FindSubcategoryByName(ctx context.Context, categoryID int64, name string) (model.Subcategory, error) {
	args := m.Called(ctx, categoryID, name)
	s, _ := args.Get(0).(model.Subcategory)
	return s, args.Error(1)
}

func (m *CategoryRepoMock) CreateSubcategory(ctx context.Context, s *model.Subcategory) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.ProductView, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.ProductView)
	total, _ := args.Get(1).(int64)
	return items, total, args.Error(2)
}

func (m *ProductRepoMock) FindViewByID(ctx context.Context, id int64) (model.ProductView, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.ProductView)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindOwned(ctx context.Context, id int64, shopkeeperID int64) (model.Product, error) {
	args := m.Called(ctx, id, shopkeeperID)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindOwnedForUpdate(ctx context.Context, id int64, shopkeeperID int64) (model.Product, error) {
	args := m.Called(ctx, id, shopkeeperID)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) CountByShopkeeper(ctx context.Context, shopkeeperID int64) (int64, error) {
	args := m.Called(ctx, shopkeeperID)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).(model.Product)
	return out, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) SoftDelete(ctx context.Context, id int64, shopkeeperID int64) error {
	args := m.Called(ctx, id, shopkeeperID)
	return args.Error(0)
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) ListViews(ctx context.Context, customerID int64) ([]model.CartLineView, error) {
	args := m.Called(ctx, customerID)
	items, _ := args.Get(0).([]model.CartLineView)
	return items, args.Error(1)
}

func (m *CartRepoMock) FindLine(ctx context.Context, customerID int64, productID int64) (model.CartLine, error) {
	args := m.Called(ctx, customerID, productID)
	l, _ := args.Get(0).(model.CartLine)
	return l, args.Error(1)
}

func (m *CartRepoMock) FindByID(ctx context.Context, id int64, customerID int64) (model.CartLine, error) {
	args := m.Called(ctx, id, customerID)
	l, _ := args.Get(0).(model.CartLine)
	return l, args.Error(1)
}

func (m *CartRepoMock) UpsertAdd(ctx context.Context, customerID int64, productID int64, addQty int64) (bool, error) {
	args := m.Called(ctx, customerID, productID, addQty)
	return args.Bool(0), args.Error(1)
}

func (m *CartRepoMock) UpdateQuantity(ctx context.Context, id int64, customerID int64, qty int64) error {
	args := m.Called(ctx, id, customerID, qty)
	return args.Error(0)
}

func (m *CartRepoMock) Delete(ctx context.Context, id int64, customerID int64) error {
	args := m.Called(ctx, id, customerID)
	return args.Error(0)
}

func (m *CartRepoMock) Clear(ctx context.Context, customerID int64) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

func (m *CartRepoMock) ListForCheckout(ctx context.Context, customerID int64, shopkeeperID int64) ([]model.CheckoutLine, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartRepoMock) DeleteByIDs(ctx context.Context, ids []int64) error {
	panic("not used in CartUsecase tests")
}

func (m *CartRepoMock) DeleteByProduct(ctx context.Context, productID int64) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) IncreaseStock(ctx context.Context, productID int64, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

func (m *InventoryRepoMock) CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error {
	args := m.Called(ctx, adjustment)
	return args.Error(0)
}

// =====================
// その他の依存
// =====================

type HasherMock struct{ mock.Mock }

func (m *HasherMock) Hash(plain string) (string, error) {
	args := m.Called(plain)
	return args.String(0), args.Error(1)
}

func (m *HasherMock) Compare(hash string, plain string) error {
	args := m.Called(hash, plain)
	return args.Error(0)
}

type TokenIssuerMock struct{ mock.Mock }

func (m *TokenIssuerMock) Issue(p model.Principal) (string, error) {
	args := m.Called(p)
	return args.String(0), args.Error(1)
}

type GSTVerifierMock struct{ mock.Mock }

func (m *GSTVerifierMock) Verify(ctx context.Context, gstin string) (model.GSTDetails, error) {
	args := m.Called(ctx, gstin)
	d, _ := args.Get(0).(model.GSTDetails)
	return d, args.Error(1)
}

type GSTCacheMock struct{ mock.Mock }

func (m *GSTCacheMock) Get(ctx context.Context, gstin string) (model.GSTDetails, bool, error) {
	args := m.Called(ctx, gstin)
	d, _ := args.Get(0).(model.GSTDetails)
	return d, args.Bool(1), args.Error(2)
}

func (m *GSTCacheMock) Set(ctx context.Context, gstin string, d model.GSTDetails) error {
	args := m.Called(ctx, gstin, d)
	return args.Error(0)
}
