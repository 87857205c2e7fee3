package inventory

import (
	"context"
	"warehouse-inventory/orm"

	"github.com/rs/zerolog/log"
)

// Repository persists one entity type addressed by its business key.
type Repository[T any] interface {
	FindByKey(ctx context.Context, key string) (*T, error)
	FindAll(ctx context.Context) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, key string) error
}

type Repositories struct {
	Warehouses Repository[orm.Warehouse]
	Addresses  Repository[orm.Address]
	Products   Repository[orm.Product]
	Tags       Repository[orm.Tag]
	StockItems Repository[orm.StockItem]
}

// FromDB returns the gorm backed repositories of db.
func FromDB(db *orm.DB) Repositories {
	return Repositories{
		Warehouses: db.Warehouses(),
		Addresses:  db.Addresses(),
		Products:   db.Products(),
		Tags:       db.Tags(),
		StockItems: db.StockItems(),
	}
}

// Stateful is implemented by every entity.
type Stateful interface {
	State() orm.State
}

type Service struct {
	repos Repositories
}

func NewService(repos Repositories) *Service {
	return &Service{repos: repos}
}

// State reports whether entity is unsaved, persisted or deleted.
func (s *Service) State(entity Stateful) orm.State {
	return entity.State()
}

// Warehouses

// CreateWarehouse persists a new warehouse together with its address. Field
// errors of both are reported in one ValidationError.
func (s *Service) CreateWarehouse(
	ctx context.Context,
	w *orm.Warehouse,
	a *orm.Address,
) (*orm.Warehouse, error) {
	if err := checkUnsaved(w, "warehouse"); err != nil {
		return nil, err
	}
	if a != nil {
		LinkAddress(w, a)
	}

	fields := Validate(w)
	if a != nil {
		fields = append(fields, Validate(a)...)
	}
	if err := orm.NewValidationError(fields); err != nil {
		log.Debug().Err(err).Str("warehouse", w.Key).Msg("Warehouse rejected")

		return nil, err
	}

	if err := s.repos.Warehouses.Save(ctx, w); err != nil {
		return nil, err
	}

	log.Info().Str("warehouse", w.Key).Msg("Warehouse created")

	return w, nil
}

// SaveWarehouse inserts or updates w and its address.
func (s *Service) SaveWarehouse(ctx context.Context, w *orm.Warehouse) error {
	if err := checkWritable(w, "warehouse"); err != nil {
		return err
	}

	fields := Validate(w)
	if w.Address != nil {
		fields = append(fields, Validate(w.Address)...)
	}
	if err := orm.NewValidationError(fields); err != nil {
		return err
	}

	return s.repos.Warehouses.Save(ctx, w)
}

func (s *Service) GetWarehouse(ctx context.Context, key string) (*orm.Warehouse, error) {
	return s.repos.Warehouses.FindByKey(ctx, key)
}

func (s *Service) ListWarehouses(ctx context.Context) ([]*orm.Warehouse, error) {
	return s.repos.Warehouses.FindAll(ctx)
}

// DeleteWarehouse removes the warehouse, its address and its stock items.
// Deleting an unknown key succeeds.
func (s *Service) DeleteWarehouse(ctx context.Context, key string) error {
	w, err := s.repos.Warehouses.FindByKey(ctx, key)
	if err != nil {
		return ignoreNotFound(err, "warehouse", key)
	}

	if err := s.repos.Warehouses.Delete(ctx, key); err != nil {
		return err
	}

	DetachWarehouse(w)
	w.MarkDeleted()
	log.Info().Str("warehouse", key).Msg("Warehouse deleted")

	return nil
}

// Addresses

func (s *Service) GetAddress(ctx context.Context, warehouseKey string) (*orm.Address, error) {
	return s.repos.Addresses.FindByKey(ctx, warehouseKey)
}

func (s *Service) ListAddresses(ctx context.Context) ([]*orm.Address, error) {
	return s.repos.Addresses.FindAll(ctx)
}

// SaveAddress persists a, creating its warehouse first when that is unsaved.
func (s *Service) SaveAddress(ctx context.Context, a *orm.Address) error {
	if err := checkWritable(a, "address"); err != nil {
		return err
	}

	fields := Validate(a)
	if a.Warehouse != nil && a.Warehouse.State() == orm.Unsaved {
		fields = append(fields, Validate(a.Warehouse)...)
	}
	if err := orm.NewValidationError(fields); err != nil {
		return err
	}

	return s.repos.Addresses.Save(ctx, a)
}

// Products

// CreateProduct persists a new product tagged with tagKeys. Tags that do not
// exist yet are created with the product.
func (s *Service) CreateProduct(
	ctx context.Context,
	p *orm.Product,
	tagKeys ...string,
) (*orm.Product, error) {
	if err := checkUnsaved(p, "product"); err != nil {
		return nil, err
	}

	for _, key := range tagKeys {
		t, err := s.tagOrNew(ctx, key)
		if err != nil {
			return nil, err
		}
		AddTag(p, t)
	}

	if err := s.SaveProduct(ctx, p); err != nil {
		return nil, err
	}

	log.Info().Str("product", p.Key).Int("tags", len(p.Tags)).Msg("Product created")

	return p, nil
}

// SaveProduct inserts or updates p and makes its stored tags equal p.Tags.
func (s *Service) SaveProduct(ctx context.Context, p *orm.Product) error {
	if err := checkWritable(p, "product"); err != nil {
		return err
	}

	fields := Validate(p)
	for _, t := range p.Tags {
		fields = append(fields, Validate(t)...)
	}
	if err := orm.NewValidationError(fields); err != nil {
		log.Debug().Err(err).Str("product", p.Key).Msg("Product rejected")

		return err
	}

	return s.repos.Products.Save(ctx, p)
}

func (s *Service) GetProduct(ctx context.Context, key string) (*orm.Product, error) {
	return s.repos.Products.FindByKey(ctx, key)
}

func (s *Service) ListProducts(ctx context.Context) ([]*orm.Product, error) {
	return s.repos.Products.FindAll(ctx)
}

// DeleteProduct removes the product, its stock items and its tag
// associations. Deleting an unknown key succeeds.
func (s *Service) DeleteProduct(ctx context.Context, key string) error {
	p, err := s.repos.Products.FindByKey(ctx, key)
	if err != nil {
		return ignoreNotFound(err, "product", key)
	}

	if err := s.repos.Products.Delete(ctx, key); err != nil {
		return err
	}

	DetachProduct(p)
	p.MarkDeleted()
	log.Info().Str("product", key).Msg("Product deleted")

	return nil
}

// AddProductTag tags a stored product, creating the tag when it is new.
func (s *Service) AddProductTag(
	ctx context.Context,
	productKey, tagKey string,
) (*orm.Product, error) {
	p, err := s.repos.Products.FindByKey(ctx, productKey)
	if err != nil {
		return nil, err
	}

	t, err := s.tagOrNew(ctx, tagKey)
	if err != nil {
		return nil, err
	}

	AddTag(p, t)
	if err := s.SaveProduct(ctx, p); err != nil {
		return nil, err
	}

	log.Info().Str("product", productKey).Str("tag", tagKey).Msg("Tag added to product")

	return p, nil
}

// RemoveProductTag removes one tag from a stored product. Removing a tag the
// product does not carry succeeds.
func (s *Service) RemoveProductTag(
	ctx context.Context,
	productKey, tagKey string,
) (*orm.Product, error) {
	p, err := s.repos.Products.FindByKey(ctx, productKey)
	if err != nil {
		return nil, err
	}

	var held *orm.Tag
	for _, t := range p.Tags {
		if t != nil && t.Key == tagKey {
			held = t
		}
	}
	if held == nil {
		return p, nil
	}

	RemoveTag(p, held)
	if err := s.SaveProduct(ctx, p); err != nil {
		return nil, err
	}

	log.Info().Str("product", productKey).Str("tag", tagKey).Msg("Tag removed from product")

	return p, nil
}

func (s *Service) ClearProductTags(ctx context.Context, productKey string) (*orm.Product, error) {
	p, err := s.repos.Products.FindByKey(ctx, productKey)
	if err != nil {
		return nil, err
	}

	ClearTags(p)
	if err := s.SaveProduct(ctx, p); err != nil {
		return nil, err
	}

	log.Info().Str("product", productKey).Msg("Product tags cleared")

	return p, nil
}

// Tags

func (s *Service) CreateTag(ctx context.Context, t *orm.Tag) (*orm.Tag, error) {
	if err := checkUnsaved(t, "tag"); err != nil {
		return nil, err
	}
	if err := s.SaveTag(ctx, t); err != nil {
		return nil, err
	}

	log.Info().Str("tag", t.Key).Msg("Tag created")

	return t, nil
}

// SaveTag writes the tag row. Product associations are stored with products.
func (s *Service) SaveTag(ctx context.Context, t *orm.Tag) error {
	if err := checkWritable(t, "tag"); err != nil {
		return err
	}
	if err := orm.NewValidationError(Validate(t)); err != nil {
		return err
	}

	return s.repos.Tags.Save(ctx, t)
}

func (s *Service) GetTag(ctx context.Context, key string) (*orm.Tag, error) {
	return s.repos.Tags.FindByKey(ctx, key)
}

func (s *Service) ListTags(ctx context.Context) ([]*orm.Tag, error) {
	return s.repos.Tags.FindAll(ctx)
}

// DeleteTag removes the tag from every product and then the tag itself.
// Deleting an unknown key succeeds.
func (s *Service) DeleteTag(ctx context.Context, key string) error {
	t, err := s.repos.Tags.FindByKey(ctx, key)
	if err != nil {
		return ignoreNotFound(err, "tag", key)
	}

	if err := s.repos.Tags.Delete(ctx, key); err != nil {
		return err
	}

	DetachTag(t)
	t.MarkDeleted()
	log.Info().Str("tag", key).Msg("Tag deleted")

	return nil
}

// Stock items

// CreateStockItem stores quantity units of a product at a warehouse, both
// given by business key. Unknown references are reported together.
func (s *Service) CreateStockItem(
	ctx context.Context,
	key, warehouseKey, productKey string,
	quantity int64,
) (*orm.StockItem, error) {
	w, err := findOptional(ctx, s.repos.Warehouses, warehouseKey)
	if err != nil {
		return nil, err
	}
	p, err := findOptional(ctx, s.repos.Products, productKey)
	if err != nil {
		return nil, err
	}

	item := NewStockItem(key, w, p, quantity)
	if err := s.SaveStockItem(ctx, item); err != nil {
		DetachStockItem(item)

		return nil, err
	}

	log.Info().
		Str("stockItem", key).
		Str("warehouse", warehouseKey).
		Str("product", productKey).
		Int64("quantity", quantity).
		Msg("Stock item created")

	return item, nil
}

func (s *Service) SaveStockItem(ctx context.Context, item *orm.StockItem) error {
	if err := checkWritable(item, "stock item"); err != nil {
		return err
	}
	if err := orm.NewValidationError(Validate(item)); err != nil {
		log.Debug().Err(err).Str("stockItem", item.Key).Msg("Stock item rejected")

		return err
	}

	return s.repos.StockItems.Save(ctx, item)
}

func (s *Service) GetStockItem(ctx context.Context, key string) (*orm.StockItem, error) {
	return s.repos.StockItems.FindByKey(ctx, key)
}

func (s *Service) ListStockItems(ctx context.Context) ([]*orm.StockItem, error) {
	return s.repos.StockItems.FindAll(ctx)
}

// DeleteStockItem removes the stock item from both parents. Deleting an
// unknown key succeeds.
func (s *Service) DeleteStockItem(ctx context.Context, key string) error {
	item, err := s.repos.StockItems.FindByKey(ctx, key)
	if err != nil {
		return ignoreNotFound(err, "stock item", key)
	}

	if err := s.repos.StockItems.Delete(ctx, key); err != nil {
		return err
	}

	DetachStockItem(item)
	item.MarkDeleted()
	log.Info().Str("stockItem", key).Msg("Stock item deleted")

	return nil
}

func (s *Service) tagOrNew(ctx context.Context, key string) (*orm.Tag, error) {
	t, err := findOptional(ctx, s.repos.Tags, key)
	if err != nil || t != nil {
		return t, err
	}

	return orm.NewTag(key), nil
}

// findOptional returns nil without error for an empty or unknown key.
func findOptional[T any](ctx context.Context, repo Repository[T], key string) (*T, error) {
	if key == "" {
		return nil, nil
	}

	e, err := repo.FindByKey(ctx, key)
	if orm.IsNotFound(err) {
		return nil, nil
	}

	return e, err
}

func ignoreNotFound(err error, entity, key string) error {
	if orm.IsNotFound(err) {
		log.Debug().Str(entity, key).Msg("Nothing to delete")

		return nil
	}

	return err
}

func checkUnsaved[T any, P interface {
	*T
	Stateful
}](e P, entity string) error {
	if e == nil {
		return &orm.BadInputError{Reason: "nil " + entity}
	}
	if e.State() != orm.Unsaved {
		return &orm.BadInputError{Reason: entity + " is already " + e.State().String()}
	}

	return nil
}

func checkWritable[T any, P interface {
	*T
	Stateful
}](e P, entity string) error {
	if e == nil {
		return &orm.BadInputError{Reason: "nil " + entity}
	}
	if e.State() == orm.Deleted {
		return &orm.BadInputError{Reason: "deleted " + entity + " cannot be saved"}
	}

	return nil
}
