package inventory

import "warehouse-inventory/orm"

// The helpers below keep both sides of every bidirectional relation in step
// for in-memory instances. They never touch the store; the repository writes
// whatever the owning side holds when it is saved.

// LinkAddress pairs w and a, unlinking any address or warehouse either side
// was paired with before.
func LinkAddress(w *orm.Warehouse, a *orm.Address) {
	if w.Address != nil && w.Address != a {
		w.Address.Warehouse = nil
		w.Address.WarehouseID = 0
	}
	if a.Warehouse != nil && a.Warehouse != w {
		a.Warehouse.Address = nil
	}

	w.Address = a
	a.Warehouse = w
	a.WarehouseID = w.ID
}

// AddTag associates p with t on both sides. Adding an association twice is a
// no-op.
func AddTag(p *orm.Product, t *orm.Tag) {
	if !containsTag(p.Tags, t) {
		p.Tags = append(p.Tags, t)
	}
	if !containsProduct(t.Products, p) {
		t.Products = append(t.Products, p)
	}
}

// RemoveTag drops the association between p and the tag with t's key on both
// sides, including any other instance of that tag held in p.Tags.
func RemoveTag(p *orm.Product, t *orm.Tag) {
	for _, held := range p.Tags {
		if sameTag(held, t) && held != t {
			held.Products = without(held.Products, func(other *orm.Product) bool {
				return sameProduct(other, p)
			})
		}
	}

	p.Tags = without(p.Tags, func(other *orm.Tag) bool { return sameTag(other, t) })
	t.Products = without(t.Products, func(other *orm.Product) bool {
		return sameProduct(other, p)
	})
}

// ClearTags removes every tag from p and p from every one of those tags.
func ClearTags(p *orm.Product) {
	for _, t := range p.Tags {
		if t == nil {
			continue
		}
		t.Products = without(t.Products, func(other *orm.Product) bool {
			return sameProduct(other, p)
		})
	}

	p.Tags = nil
}

// NewStockItem returns an unsaved stock item attached to w and p. Either
// parent may be nil, which the validator reports as an unknown reference.
func NewStockItem(key string, w *orm.Warehouse, p *orm.Product, quantity int64) *orm.StockItem {
	item := &orm.StockItem{Key: key, Quantity: quantity}
	AttachStockItem(item, w, p)

	return item
}

// AttachStockItem moves item under w and p, removing it from the collections
// of any previous parents.
func AttachStockItem(item *orm.StockItem, w *orm.Warehouse, p *orm.Product) {
	if item.Warehouse != nil && item.Warehouse != w {
		removeStockItem(&item.Warehouse.StockItems, item)
	}
	if item.Product != nil && item.Product != p {
		removeStockItem(&item.Product.StockItems, item)
	}

	item.Warehouse = w
	item.WarehouseID = 0
	if w != nil {
		item.WarehouseID = w.ID
		if !containsStockItem(w.StockItems, item) {
			w.StockItems = append(w.StockItems, item)
		}
	}

	item.Product = p
	item.ProductID = 0
	if p != nil {
		item.ProductID = p.ID
		if !containsStockItem(p.StockItems, item) {
			p.StockItems = append(p.StockItems, item)
		}
	}
}

// DetachStockItem removes item from the collections of both its parents.
func DetachStockItem(item *orm.StockItem) {
	if item.Warehouse != nil {
		removeStockItem(&item.Warehouse.StockItems, item)
	}
	if item.Product != nil {
		removeStockItem(&item.Product.StockItems, item)
	}
}

// DetachWarehouse mirrors a warehouse delete in memory: its address and
// stock items are marked deleted and the stock items leave their products.
func DetachWarehouse(w *orm.Warehouse) {
	if w.Address != nil {
		w.Address.MarkDeleted()
	}

	for _, item := range w.StockItems {
		if item == nil {
			continue
		}
		if item.Product != nil {
			removeStockItem(&item.Product.StockItems, item)
		}
		item.MarkDeleted()
	}

	w.StockItems = nil
}

// DetachProduct mirrors a product delete in memory: it leaves all its tags
// and its stock items are marked deleted and leave their warehouses.
func DetachProduct(p *orm.Product) {
	ClearTags(p)

	for _, item := range p.StockItems {
		if item == nil {
			continue
		}
		if item.Warehouse != nil {
			removeStockItem(&item.Warehouse.StockItems, item)
		}
		item.MarkDeleted()
	}

	p.StockItems = nil
}

// DetachTag removes t from every product it labels.
func DetachTag(t *orm.Tag) {
	for _, p := range t.Products {
		if p == nil {
			continue
		}
		p.Tags = without(p.Tags, func(other *orm.Tag) bool { return sameTag(other, t) })
	}

	t.Products = nil
}

func without[T any](list []*T, match func(*T) bool) []*T {
	kept := make([]*T, 0, len(list))
	for _, e := range list {
		if e != nil && !match(e) {
			kept = append(kept, e)
		}
	}

	return kept
}

func removeStockItem(list *[]*orm.StockItem, item *orm.StockItem) {
	*list = without(*list, func(other *orm.StockItem) bool { return sameStockItem(other, item) })
}

// Instances are the same entity when they are the same pointer or share a
// non-empty business key.

func sameTag(a, b *orm.Tag) bool {
	return a == b || (a.Key != "" && a.Key == b.Key)
}

func sameProduct(a, b *orm.Product) bool {
	return a == b || (a.Key != "" && a.Key == b.Key)
}

func sameStockItem(a, b *orm.StockItem) bool {
	return a == b || (a.Key != "" && a.Key == b.Key)
}

func containsTag(list []*orm.Tag, t *orm.Tag) bool {
	for _, e := range list {
		if e != nil && sameTag(e, t) {
			return true
		}
	}

	return false
}

func containsProduct(list []*orm.Product, p *orm.Product) bool {
	for _, e := range list {
		if e != nil && sameProduct(e, p) {
			return true
		}
	}

	return false
}

func containsStockItem(list []*orm.StockItem, item *orm.StockItem) bool {
	for _, e := range list {
		if e != nil && sameStockItem(e, item) {
			return true
		}
	}

	return false
}
