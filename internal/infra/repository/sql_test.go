package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	repo "marketplace/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// 実行はせず、組み立てたSQLだけ記録する
type sqlRecorder struct {
	stmts []string
}

func (r *sqlRecorder) LogMode(gormlogger.LogLevel) gormlogger.Interface { return r }
func (r *sqlRecorder) Info(context.Context, string, ...interface{})   {}
func (r *sqlRecorder) Warn(context.Context, string, ...interface{})   {}
func (r *sqlRecorder) Error(context.Context, string, ...interface{})  {}

func (r *sqlRecorder) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	sql, _ := fc()
	r.stmts = append(r.stmts, sql)
}

func (r *sqlRecorder) last(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, r.stmts)
	return r.stmts[len(r.stmts)-1]
}

func dryRunDB(t *testing.T) (*gorm.DB, *sqlRecorder) {
	t.Helper()
	rec := &sqlRecorder{}
	gdb, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=test dbname=test sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               rec,
	})
	require.NoError(t, err)
	return gdb, rec
}

func TestCheckoutSQL_LocksOnlyThisShopsLiveProducts(t *testing.T) {
	gdb, rec := dryRunDB(t)

	_, _ = NewCartGormRepository(gdb).ListForCheckout(context.Background(), 1, 2)

	sql := rec.last(t)
	assert.Contains(t, sql, "JOIN products p ON p.id = ct.product_id AND p.deleted_at IS NULL")
	assert.Contains(t, sql, "ct.customer_id = 1 AND p.shopkeeper_id = 2")
	assert.Contains(t, sql, "ORDER BY ct.product_id ASC")
	assert.True(t, strings.HasSuffix(sql, "FOR UPDATE"), sql)
}

func TestDecreaseStockSQL_IsConditional(t *testing.T) {
	gdb, rec := dryRunDB(t)

	// 実行されないので0行更新＝false
	ok, err := NewInventoryGormRepository(gdb).DecreaseStockIfEnough(context.Background(), 5, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	sql := rec.last(t)
	assert.True(t, strings.HasPrefix(sql, `UPDATE "products"`), sql)
	assert.Contains(t, sql, "stock - 2")
	assert.Contains(t, sql, "id = 5 AND stock >= 2")
	assert.Contains(t, sql, `"products"."deleted_at" IS NULL`)
}

func TestIncreaseStockSQL_IncludesDeletedProducts(t *testing.T) {
	gdb, rec := dryRunDB(t)

	err := NewInventoryGormRepository(gdb).IncreaseStock(context.Background(), 5, 3)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	sql := rec.last(t)
	assert.Contains(t, sql, "stock + 3")
	assert.Contains(t, sql, "id = 5")
	assert.NotContains(t, sql, "deleted_at")
}

func TestProductListSQL_SearchSortAndPage(t *testing.T) {
	gdb, rec := dryRunDB(t)

	shop := int64(7)
	_, _, _ = NewProductGormRepository(gdb).List(context.Background(), repo.ProductListQuery{
		Page:         2,
		Limit:        10,
		Q:            " tea ",
		ShopkeeperID: &shop,
		Sort:         "price_asc",
	})

	//件数→一覧の順に2本
	require.Len(t, rec.stmts, 2)
	count, list := rec.stmts[0], rec.stmts[1]

	assert.Contains(t, strings.ToLower(count), "count(*)")
	for _, sql := range []string{count, list} {
		assert.Contains(t, sql, "p.deleted_at IS NULL")
		assert.Contains(t, sql, "p.name ILIKE '%tea%' OR p.description ILIKE '%tea%' OR c.name ILIKE '%tea%'")
		assert.Contains(t, sql, "p.shopkeeper_id = 7")
	}
	assert.NotContains(t, count, "ORDER BY")
	assert.Contains(t, list, "ORDER BY p.price ASC,p.id ASC")
	assert.Contains(t, list, "LIMIT 10 OFFSET 10")
}

func TestFindOwnedForUpdateSQL_LocksRow(t *testing.T) {
	gdb, rec := dryRunDB(t)

	_, _ = NewProductGormRepository(gdb).FindOwnedForUpdate(context.Background(), 55, 10)

	sql := rec.last(t)
	assert.Contains(t, sql, "id = 55 AND shopkeeper_id = 10")
	assert.Contains(t, sql, "FOR UPDATE")
}

func TestDeleteByProductSQL(t *testing.T) {
	gdb, rec := dryRunDB(t)

	require.NoError(t, NewCartGormRepository(gdb).DeleteByProduct(context.Background(), 55))

	sql := rec.last(t)
	assert.True(t, strings.HasPrefix(sql, `DELETE FROM "cart"`), sql)
	assert.Contains(t, sql, "product_id = 55")
}
