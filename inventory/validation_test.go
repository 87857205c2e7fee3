package inventory

import (
	"testing"
	"warehouse-inventory/orm"

	"github.com/stretchr/testify/assert"
)

func reasons(fields []orm.FieldError) map[string]orm.Reason {
	out := make(map[string]orm.Reason, len(fields))
	for _, f := range fields {
		out[f.Field] = f.Reason
	}

	return out
}

func TestValidate(t *testing.T) {
	warehouse := orm.NewWarehouse("W1", "Main")
	product := orm.NewProduct("P1", "Coffee", "")

	linked := func(a *orm.Address) *orm.Address {
		a.Warehouse = warehouse

		return a
	}

	tests := []struct {
		name     string
		entity   any
		expected map[string]orm.Reason
	}{
		{
			name:     "valid warehouse",
			entity:   orm.NewWarehouse("W1", "Main"),
			expected: map[string]orm.Reason{},
		},
		{
			name:   "warehouse without key and name",
			entity: orm.NewWarehouse("", ""),
			expected: map[string]orm.Reason{
				"warehouseId": orm.ReasonMissingField,
				"name":        orm.ReasonMissingField,
			},
		},
		{
			name:     "valid address",
			entity:   linked(orm.NewAddress("1 Main St", "Springfield", "IL", 62701)),
			expected: map[string]orm.Reason{},
		},
		{
			name:   "address with long state and negative zipcode",
			entity: linked(orm.NewAddress("1 Main St", "Springfield", "ILL", -1)),
			expected: map[string]orm.Reason{
				"state":   orm.ReasonInvalidState,
				"zipcode": orm.ReasonInvalidZip,
			},
		},
		{
			name:   "address missing fields and warehouse",
			entity: orm.NewAddress("", "", "", 0),
			expected: map[string]orm.Reason{
				"streetAddress": orm.ReasonMissingField,
				"city":          orm.ReasonMissingField,
				"state":         orm.ReasonMissingField,
				"warehouse":     orm.ReasonMissingField,
			},
		},
		{
			name:     "address with zero zipcode",
			entity:   linked(orm.NewAddress("1 Main St", "Springfield", "IL", 0)),
			expected: map[string]orm.Reason{},
		},
		{
			name:     "valid product",
			entity:   orm.NewProduct("P1", "Coffee", ""),
			expected: map[string]orm.Reason{},
		},
		{
			name:     "product without name",
			entity:   orm.NewProduct("P1", "", "beans"),
			expected: map[string]orm.Reason{"name": orm.ReasonMissingField},
		},
		{
			name:     "reserved tag name",
			entity:   orm.NewTag("Tag"),
			expected: map[string]orm.Reason{"tagId": orm.ReasonReservedName},
		},
		{
			name:     "reserved tag name is case sensitive",
			entity:   orm.NewTag("tag"),
			expected: map[string]orm.Reason{},
		},
		{
			name:     "empty tag",
			entity:   orm.NewTag(""),
			expected: map[string]orm.Reason{"tagId": orm.ReasonMissingField},
		},
		{
			name:     "valid stock item",
			entity:   &orm.StockItem{Key: "S1", Quantity: 5, Warehouse: warehouse, Product: product},
			expected: map[string]orm.Reason{},
		},
		{
			name:   "stock item without references",
			entity: &orm.StockItem{Key: "S1", Quantity: 5},
			expected: map[string]orm.Reason{
				"warehouse": orm.ReasonUnknownWarehouse,
				"product":   orm.ReasonUnknownProduct,
			},
		},
		{
			name:   "stock item with negative quantity",
			entity: &orm.StockItem{Key: "S1", Quantity: -3, Warehouse: warehouse, Product: product},
			expected: map[string]orm.Reason{
				"quantity": orm.ReasonInvalidQuantity,
			},
		},
		{
			name:     "nil warehouse",
			entity:   (*orm.Warehouse)(nil),
			expected: map[string]orm.Reason{"warehouse": orm.ReasonMissingField},
		},
		{
			name:     "unsupported entity",
			entity:   "warehouse",
			expected: map[string]orm.Reason{"entity": orm.ReasonInvalidValue},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := Validate(tt.entity)

			assert.Equal(t, tt.expected, reasons(fields))
			if len(tt.expected) == 0 {
				assert.Nil(t, fields)
			}
		})
	}
}

func TestValidateAddressKeepsFieldOrder(t *testing.T) {
	fields := Validate(orm.NewAddress("", "", "", 0))

	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}

	assert.Equal(t, []string{"streetAddress", "city", "state", "warehouse"}, names)
}
