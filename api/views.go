package api

import "warehouse-inventory/orm"

// Views flatten entity graphs into acyclic JSON. Related entities are
// referenced by business key.

type addressView struct {
	WarehouseID   string `json:"warehouseId,omitempty"`
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zipcode       int    `json:"zipcode"`
}

type stockItemView struct {
	StockItemID string `json:"stockItemId"`
	Warehouse   string `json:"warehouse,omitempty"`
	Product     string `json:"product,omitempty"`
	Quantity    int64  `json:"quantity"`
}

type warehouseView struct {
	WarehouseID string          `json:"warehouseId"`
	Name        string          `json:"name"`
	Address     *addressView    `json:"address,omitempty"`
	StockItems  []stockItemView `json:"stockItems"`
}

type productView struct {
	ProductID   string          `json:"productId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Tags        []string        `json:"tags"`
	StockItems  []stockItemView `json:"stockItems"`
}

type tagView struct {
	TagID    string   `json:"tagId"`
	Products []string `json:"products"`
}

func newAddressView(a *orm.Address) *addressView {
	if a == nil {
		return nil
	}

	view := &addressView{
		StreetAddress: a.StreetAddress,
		City:          a.City,
		State:         a.StateCode,
		Zipcode:       a.Zipcode,
	}
	if a.Warehouse != nil {
		view.WarehouseID = a.Warehouse.Key
	}

	return view
}

func newStockItemView(item *orm.StockItem) stockItemView {
	view := stockItemView{StockItemID: item.Key, Quantity: item.Quantity}
	if item.Warehouse != nil {
		view.Warehouse = item.Warehouse.Key
	}
	if item.Product != nil {
		view.Product = item.Product.Key
	}

	return view
}

func newStockItemViews(items []*orm.StockItem) []stockItemView {
	views := make([]stockItemView, 0, len(items))
	for _, item := range items {
		if item != nil {
			views = append(views, newStockItemView(item))
		}
	}

	return views
}

func newWarehouseView(w *orm.Warehouse) warehouseView {
	view := warehouseView{
		WarehouseID: w.Key,
		Name:        w.Name,
		StockItems:  newStockItemViews(w.StockItems),
	}
	if w.Address != nil {
		view.Address = newAddressView(w.Address)
		view.Address.WarehouseID = ""
	}

	return view
}

func newProductView(p *orm.Product) productView {
	tags := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		if t != nil {
			tags = append(tags, t.Key)
		}
	}

	return productView{
		ProductID:   p.Key,
		Name:        p.Name,
		Description: p.Description,
		Tags:        tags,
		StockItems:  newStockItemViews(p.StockItems),
	}
}

func newTagView(t *orm.Tag) tagView {
	products := make([]string, 0, len(t.Products))
	for _, p := range t.Products {
		if p != nil {
			products = append(products, p.Key)
		}
	}

	return tagView{TagID: t.Key, Products: products}
}

func mapViews[E any, V any](entities []*E, view func(*E) V) []V {
	views := make([]V, 0, len(entities))
	for _, e := range entities {
		views = append(views, view(e))
	}

	return views
}
