package orm

// Warehouse stores stock items and owns exactly one Address.
type Warehouse struct {
	ID   uint   `gorm:"primaryKey"                                         json:"-"           validate:"-"`
	Key  string `gorm:"column:warehouse_key;uniqueIndex;size:255;not null" json:"warehouseId" validate:"required"`
	Name string `gorm:"size:255;not null"                                  json:"name"        validate:"required"`

	// Owned address, removed together with the warehouse
	Address *Address `gorm:"foreignKey:WarehouseID" json:"address,omitempty" validate:"-"`
	// Stock held at this warehouse
	StockItems []*StockItem `gorm:"foreignKey:WarehouseID" json:"-" validate:"-"`

	deleted bool
}

// Address is the location of a Warehouse.
type Address struct {
	ID          uint       `gorm:"primaryKey"             json:"-" validate:"-"`
	WarehouseID uint       `gorm:"uniqueIndex;not null"   json:"-" validate:"-"`
	Warehouse   *Warehouse `gorm:"foreignKey:WarehouseID" json:"-" validate:"-"`

	StreetAddress string `gorm:"size:255;not null"            json:"streetAddress" validate:"required"`
	City          string `gorm:"size:255;not null"            json:"city"          validate:"required"`
	StateCode     string `gorm:"column:state;size:2;not null" json:"state"         validate:"required,len=2"`
	Zipcode       int    `gorm:"not null"                     json:"zipcode"       validate:"min=0"`

	deleted bool
}

// Product is a catalog entry that can be tagged and stocked.
type Product struct {
	ID          uint   `gorm:"primaryKey"                                       json:"-"           validate:"-"`
	Key         string `gorm:"column:product_key;uniqueIndex;size:255;not null" json:"productId"   validate:"required"`
	Name        string `gorm:"size:255;not null"                                json:"name"        validate:"required"`
	Description string `gorm:"type:text"                                        json:"description" validate:"-"`

	// Product is the owning side of the product_tags table
	Tags       []*Tag       `gorm:"many2many:product_tags" json:"-" validate:"-"`
	StockItems []*StockItem `gorm:"foreignKey:ProductID"   json:"-" validate:"-"`

	deleted bool
}

// Tag labels any number of products.
type Tag struct {
	ID  uint   `gorm:"primaryKey"                                   json:"-"     validate:"-"`
	Key string `gorm:"column:tag_key;uniqueIndex;size:255;not null" json:"tagId" validate:"required,ne=Tag"`

	Products []*Product `gorm:"many2many:product_tags" json:"-" validate:"-"`

	deleted bool
}

// ProductTag is the join row between products and tags.
type ProductTag struct {
	ProductID uint `gorm:"primaryKey"`
	TagID     uint `gorm:"primaryKey"`
}

// StockItem is the quantity of one Product held at one Warehouse.
type StockItem struct {
	ID       uint   `gorm:"primaryKey"                                          json:"-"           validate:"-"`
	Key      string `gorm:"column:stock_item_key;uniqueIndex;size:255;not null" json:"stockItemId" validate:"required"`
	Quantity int64  `gorm:"not null;default:0"                                  json:"quantity"    validate:"min=0"`

	WarehouseID uint       `gorm:"index;not null" json:"-" validate:"-"`
	Warehouse   *Warehouse `json:"-" validate:"-"`
	ProductID   uint       `gorm:"index;not null" json:"-" validate:"-"`
	Product     *Product   `json:"-" validate:"-"`

	deleted bool
}

// NewWarehouse returns an unsaved warehouse.
func NewWarehouse(key, name string) *Warehouse {
	return &Warehouse{Key: key, Name: name}
}

// NewAddress returns an unsaved address not yet linked to a warehouse.
func NewAddress(streetAddress, city, state string, zipcode int) *Address {
	return &Address{
		StreetAddress: streetAddress,
		City:          city,
		StateCode:     state,
		Zipcode:       zipcode,
	}
}

// NewProduct returns an unsaved product without tags.
func NewProduct(key, name, description string) *Product {
	return &Product{Key: key, Name: name, Description: description}
}

// NewTag returns an unsaved tag.
func NewTag(key string) *Tag {
	return &Tag{Key: key}
}
