package orm

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type WarehouseStore struct {
	store[Warehouse]
}

// FindByKey returns the warehouse with its address and stock items, each
// pointing back at the returned instance.
func (s *WarehouseStore) FindByKey(ctx context.Context, key string) (*Warehouse, error) {
	w, err := s.store.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	linkWarehouseChildren(w)

	return w, nil
}

func (s *WarehouseStore) FindAll(ctx context.Context) ([]*Warehouse, error) {
	warehouses, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, w := range warehouses {
		linkWarehouseChildren(w)
	}

	return warehouses, nil
}

func linkWarehouseChildren(w *Warehouse) {
	if w.Address != nil {
		w.Address.Warehouse = w
	}
	for _, item := range w.StockItems {
		item.Warehouse = w
	}
}

// Save persists the warehouse and cascades to its address. A new warehouse
// whose key is taken fails with a DuplicateKey validation error.
func (s *WarehouseStore) Save(ctx context.Context, w *Warehouse) error {
	if w == nil {
		return &BadInputError{Reason: "nil warehouse"}
	}

	ids := snapshotIDs(&w.ID)
	if w.Address != nil {
		ids = snapshotIDs(&w.ID, &w.Address.ID, &w.Address.WarehouseID)
	}

	err := s.db.dbGorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveWarehouse(ctx, tx, w)
	})
	if err != nil {
		ids.restore()

		return wrapErrorWithDetails(
			err,
			"save warehouse",
			fmt.Sprintf("warehouse_key=%q", w.Key),
		)
	}

	return nil
}

// Delete removes the warehouse, its stock items and its address, children
// first. A missing key is not an error.
func (s *WarehouseStore) Delete(ctx context.Context, key string) error {
	err := s.db.dbGorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := lookupID[Warehouse](ctx, tx, "warehouse_key", key)
		if err != nil || id == 0 {
			return err
		}

		if _, err := gorm.G[StockItem](tx).Where("warehouse_id = ?", id).Delete(ctx); err != nil {
			return err
		}
		if _, err := gorm.G[Address](tx).Where("warehouse_id = ?", id).Delete(ctx); err != nil {
			return err
		}
		_, err = gorm.G[Warehouse](tx).Where("id = ?", id).Delete(ctx)

		return err
	})

	return wrapErrorWithDetails(
		err,
		"delete warehouse",
		fmt.Sprintf("warehouse_key=%q", key),
	)
}

func saveWarehouse(ctx context.Context, tx *gorm.DB, w *Warehouse) error {
	if err := writeRow(ctx, tx, w, w.ID == 0, "warehouseId", w.Key); err != nil {
		return err
	}

	if w.Address == nil {
		return nil
	}

	w.Address.Warehouse = w
	w.Address.WarehouseID = w.ID

	return saveAddressRow(ctx, tx, w.Address)
}
