package orm

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// AddressStore looks addresses up by the business key of their warehouse.
type AddressStore struct {
	store[Address]
}

func (s *AddressStore) FindByKey(ctx context.Context, warehouseKey string) (*Address, error) {
	if warehouseKey == "" {
		return nil, &BadInputError{Reason: "warehouse key must be provided"}
	}

	var address Address
	err := s.query(ctx).
		Where("warehouse_id = (?)", warehouseIDQuery(s.db.dbGorm, warehouseKey)).
		First(&address).Error
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"get address",
			fmt.Sprintf("warehouse_key=%q", warehouseKey),
		)
	}

	return &address, nil
}

// Save persists the address, first creating its warehouse if that is still
// unsaved.
func (s *AddressStore) Save(ctx context.Context, a *Address) error {
	if a == nil {
		return &BadInputError{Reason: "nil address"}
	}
	if a.Warehouse == nil && a.WarehouseID == 0 {
		return &ValidationError{Fields: []FieldError{{
			Field:   "warehouse",
			Reason:  ReasonMissingField,
			Message: "address must belong to a warehouse",
		}}}
	}

	ids := snapshotIDs(&a.ID, &a.WarehouseID)
	if a.Warehouse != nil {
		ids = snapshotIDs(&a.ID, &a.WarehouseID, &a.Warehouse.ID)
	}

	err := s.db.dbGorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if w := a.Warehouse; w != nil {
			if w.ID == 0 {
				if err := writeRow(ctx, tx, w, true, "warehouseId", w.Key); err != nil {
					return err
				}
			}
			w.Address = a
			a.WarehouseID = w.ID
		}

		return saveAddressRow(ctx, tx, a)
	})
	if err != nil {
		ids.restore()

		return wrapErrorWithDetails(
			err,
			"save address",
			fmt.Sprintf("warehouse_id=%d", a.WarehouseID),
		)
	}

	return nil
}

// Delete removes the address of the given warehouse. A missing warehouse or
// address is not an error.
func (s *AddressStore) Delete(ctx context.Context, warehouseKey string) error {
	err := s.db.dbGorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := gorm.G[Address](tx).
			Where("warehouse_id = (?)", warehouseIDQuery(tx, warehouseKey)).
			Delete(ctx)

		return err
	})

	return wrapErrorWithDetails(
		err,
		"delete address",
		fmt.Sprintf("warehouse_key=%q", warehouseKey),
	)
}

// saveAddressRow writes the address of a.WarehouseID. A new address replaces
// whatever address the warehouse had before.
func saveAddressRow(ctx context.Context, tx *gorm.DB, a *Address) error {
	if a.ID == 0 {
		_, err := gorm.G[Address](tx).Where("warehouse_id = ?", a.WarehouseID).Delete(ctx)
		if err != nil {
			return err
		}
	}

	return writeRow(ctx, tx, a, a.ID == 0, "warehouse", fmt.Sprint(a.WarehouseID))
}

func warehouseIDQuery(db *gorm.DB, warehouseKey string) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Model(&Warehouse{}).
		Select("id").
		Where("warehouse_key = ?", warehouseKey)
}
