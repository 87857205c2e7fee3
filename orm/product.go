package orm

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type ProductStore struct {
	store[Product]
}

// FindByKey returns the product with its tags and stock items. Stock items
// point back at the returned instance.
func (s *ProductStore) FindByKey(ctx context.Context, key string) (*Product, error) {
	p, err := s.store.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	for _, item := range p.StockItems {
		item.Product = p
	}

	return p, nil
}

func (s *ProductStore) FindAll(ctx context.Context) ([]*Product, error) {
	products, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		for _, item := range p.StockItems {
			item.Product = p
		}
	}

	return products, nil
}

// Save persists the product and makes its product_tags rows equal p.Tags.
// Unsaved tags are matched to existing tags by key or created.
func (s *ProductStore) Save(ctx context.Context, p *Product) error {
	if p == nil {
		return &BadInputError{Reason: "nil product"}
	}

	ptrs := []*uint{&p.ID}
	for _, t := range p.Tags {
		if t != nil {
			ptrs = append(ptrs, &t.ID)
		}
	}
	ids := snapshotIDs(ptrs...)

	err := s.db.dbGorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := writeRow(ctx, tx, p, p.ID == 0, "productId", p.Key); err != nil {
			return err
		}

		return replaceProductTags(ctx, tx, p)
	})
	if err != nil {
		ids.restore()

		return wrapErrorWithDetails(
			err,
			"save product",
			fmt.Sprintf("product_key=%q", p.Key),
		)
	}

	return nil
}

// Delete removes the product, its stock items and its tag associations.
// A missing key is not an error.
func (s *ProductStore) Delete(ctx context.Context, key string) error {
	err := s.db.dbGorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := lookupID[Product](ctx, tx, "product_key", key)
		if err != nil || id == 0 {
			return err
		}

		if _, err := gorm.G[StockItem](tx).Where("product_id = ?", id).Delete(ctx); err != nil {
			return err
		}
		if _, err := gorm.G[ProductTag](tx).Where("product_id = ?", id).Delete(ctx); err != nil {
			return err
		}
		_, err = gorm.G[Product](tx).Where("id = ?", id).Delete(ctx)

		return err
	})

	return wrapErrorWithDetails(
		err,
		"delete product",
		fmt.Sprintf("product_key=%q", key),
	)
}

func replaceProductTags(ctx context.Context, tx *gorm.DB, p *Product) error {
	rows := make([]ProductTag, 0, len(p.Tags))
	seen := make(map[uint]bool, len(p.Tags))

	for _, t := range p.Tags {
		if t == nil {
			continue
		}

		if t.ID == 0 {
			id, err := lookupID[Tag](ctx, tx, "tag_key", t.Key)
			if err != nil {
				return err
			}
			t.ID = id
		}
		if t.ID == 0 {
			if err := writeRow(ctx, tx, t, true, "tagId", t.Key); err != nil {
				return err
			}
		}

		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		rows = append(rows, ProductTag{ProductID: p.ID, TagID: t.ID})
	}

	if _, err := gorm.G[ProductTag](tx).Where("product_id = ?", p.ID).Delete(ctx); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	return tx.WithContext(ctx).Create(&rows).Error
}
