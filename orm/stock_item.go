package orm

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type StockItemStore struct {
	store[StockItem]
}

// Save resolves the referenced warehouse and product by business key inside
// the write transaction. When either does not exist nothing is written and
// the returned validation error names every unresolved reference.
func (s *StockItemStore) Save(ctx context.Context, item *StockItem) error {
	if item == nil {
		return &BadInputError{Reason: "nil stock item"}
	}

	ids := snapshotIDs(&item.ID, &item.WarehouseID, &item.ProductID)

	err := s.db.dbGorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var fields []FieldError

		warehouseID, err := resolveReference[Warehouse](ctx, tx, "warehouse_key", warehouseKey(item))
		if err != nil {
			return err
		}
		if warehouseID == 0 {
			fields = append(fields, FieldError{
				Field:   "warehouse",
				Reason:  ReasonUnknownWarehouse,
				Message: "Given Warehouse does not exist.",
			})
		}

		productID, err := resolveReference[Product](ctx, tx, "product_key", productKey(item))
		if err != nil {
			return err
		}
		if productID == 0 {
			fields = append(fields, FieldError{
				Field:   "product",
				Reason:  ReasonUnknownProduct,
				Message: "Given Product does not exist.",
			})
		}

		if err := NewValidationError(fields); err != nil {
			return err
		}

		item.WarehouseID = warehouseID
		item.ProductID = productID

		return writeRow(ctx, tx, item, item.ID == 0, "stockItemId", item.Key)
	})
	if err != nil {
		ids.restore()

		return wrapErrorWithDetails(
			err,
			"save stock item",
			fmt.Sprintf("stock_item_key=%q", item.Key),
		)
	}

	return nil
}

// Delete removes the stock item row. A missing key is not an error.
func (s *StockItemStore) Delete(ctx context.Context, key string) error {
	_, err := gorm.G[StockItem](s.db.dbGorm).Where("stock_item_key = ?", key).Delete(ctx)

	return wrapErrorWithDetails(
		err,
		"delete stock item",
		fmt.Sprintf("stock_item_key=%q", key),
	)
}

func warehouseKey(item *StockItem) string {
	if item.Warehouse == nil {
		return ""
	}

	return item.Warehouse.Key
}

func productKey(item *StockItem) string {
	if item.Product == nil {
		return ""
	}

	return item.Product.Key
}

func resolveReference[T any](
	ctx context.Context,
	tx *gorm.DB,
	keyColumn, key string,
) (uint, error) {
	if key == "" {
		return 0, nil
	}

	return lookupID[T](ctx, tx, keyColumn, key)
}
