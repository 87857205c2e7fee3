package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"warehouse-inventory/api"
	"warehouse-inventory/inventory"
	"warehouse-inventory/orm"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *orm.DB {
	t.Helper()

	db, err := orm.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func TestWarehouseLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := inventory.NewService(inventory.FromDB(openDB(t)))

	w, err := svc.CreateWarehouse(ctx, orm.NewWarehouse("W1", "Main"), orm.NewAddress("1 Rd", "X", "HI", 1))
	require.NoError(t, err)
	assert.Equal(t, orm.Persisted, svc.State(w))
	assert.Equal(t, orm.Persisted, svc.State(w.Address))

	p, err := svc.CreateProduct(ctx, orm.NewProduct("P1", "Widget", ""))
	require.NoError(t, err)

	s1, err := svc.CreateStockItem(ctx, "S1", "W1", "P1", 5)
	require.NoError(t, err)
	assert.Equal(t, orm.Persisted, svc.State(s1))
	assert.Equal(t, p.ID, s1.ProductID)

	items, err := svc.ListStockItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "S1", items[0].Key)
	assert.Equal(t, int64(5), items[0].Quantity)
	assert.Equal(t, "W1", items[0].Warehouse.Key)
	assert.Equal(t, "P1", items[0].Product.Key)

	require.NoError(t, svc.DeleteWarehouse(ctx, "W1"))

	_, err = svc.GetStockItem(ctx, "S1")
	assert.True(t, orm.IsNotFound(err), "stock item: %v", err)
	_, err = svc.GetAddress(ctx, "W1")
	assert.True(t, orm.IsNotFound(err), "address: %v", err)

	// The product survives without stock
	product, err := svc.GetProduct(ctx, "P1")
	require.NoError(t, err)
	assert.Empty(t, product.StockItems)

	// Deleting again is a no-op
	assert.NoError(t, svc.DeleteWarehouse(ctx, "W1"))
}

func TestDuplicateWarehouseLeavesOne(t *testing.T) {
	ctx := context.Background()
	svc := inventory.NewService(inventory.FromDB(openDB(t)))

	_, err := svc.CreateWarehouse(ctx, orm.NewWarehouse("W1", "Main"), orm.NewAddress("1 Rd", "X", "HI", 1))
	require.NoError(t, err)

	second := orm.NewWarehouse("W1", "Other")
	_, err = svc.CreateWarehouse(ctx, second, orm.NewAddress("2 Rd", "Y", "CA", 2))

	var validationErr *orm.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.True(t, validationErr.Has(orm.ReasonDuplicateKey))
	assert.Equal(t, orm.Unsaved, svc.State(second))

	warehouses, err := svc.ListWarehouses(ctx)
	require.NoError(t, err)
	require.Len(t, warehouses, 1)
	assert.Equal(t, "Main", warehouses[0].Name)
	assert.Equal(t, "1 Rd", warehouses[0].Address.StreetAddress)
}

func TestTagAssociationAcrossReloads(t *testing.T) {
	ctx := context.Background()
	svc := inventory.NewService(inventory.FromDB(openDB(t)))

	_, err := svc.CreateProduct(ctx, orm.NewProduct("P1", "Widget", ""))
	require.NoError(t, err)

	_, err = svc.AddProductTag(ctx, "P1", "T1")
	require.NoError(t, err)

	t1, err := svc.GetTag(ctx, "T1")
	require.NoError(t, err)
	require.Len(t, t1.Products, 1)
	assert.Equal(t, "P1", t1.Products[0].Key)

	_, err = svc.ClearProductTags(ctx, "P1")
	require.NoError(t, err)

	// Instances loaded before the clear keep their collections
	assert.Len(t, t1.Products, 1)

	reloaded, err := svc.GetTag(ctx, "T1")
	require.NoError(t, err)
	assert.Empty(t, reloaded.Products)
}

func TestHTTPScenario(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := openDB(t)
	router := api.NewServer(inventory.NewService(inventory.FromDB(db)), db).Router(false)

	post := func(path string, form url.Values) int {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		return rec.Code
	}
	call := func(method, path string) int {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(method, path, nil))

		return rec.Code
	}

	require.Equal(t, http.StatusOK, post("/warehouses", url.Values{
		"warehouseId":   {"W1"},
		"name":          {"Main"},
		"streetAddress": {"1 Rd"},
		"city":          {"X"},
		"state":         {"HI"},
		"zipcode":       {"1"},
	}))
	require.Equal(t, http.StatusOK, post("/products", url.Values{
		"productId": {"P1"},
		"name":      {"Widget"},
	}))
	require.Equal(t, http.StatusOK, post("/stockitems", url.Values{
		"stockItemId": {"S1"},
		"warehouse":   {"W1"},
		"product":     {"P1"},
		"quantity":    {"5"},
	}))

	assert.Equal(t, http.StatusOK, call(http.MethodGet, "/stockitems/S1"))
	assert.Equal(t, http.StatusOK, call(http.MethodDelete, "/warehouses/W1"))
	assert.Equal(t, http.StatusNotFound, call(http.MethodGet, "/stockitems/S1"))
	assert.Equal(t, http.StatusNotFound, call(http.MethodGet, "/warehouses/W1/address"))
	assert.Equal(t, http.StatusOK, call(http.MethodDelete, "/warehouses/W1"))
}
