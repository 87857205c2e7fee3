package orm

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// TagStore writes tag rows only; associations are owned by ProductStore.
type TagStore struct {
	store[Tag]
}

func (s *TagStore) Save(ctx context.Context, t *Tag) error {
	if t == nil {
		return &BadInputError{Reason: "nil tag"}
	}

	ids := snapshotIDs(&t.ID)
	err := writeRow(ctx, s.db.dbGorm, t, t.ID == 0, "tagId", t.Key)
	if err != nil {
		ids.restore()

		return wrapErrorWithDetails(err, "save tag", fmt.Sprintf("tag_key=%q", t.Key))
	}

	return nil
}

// Delete removes the tag and detaches it from every product. A missing key
// is not an error.
func (s *TagStore) Delete(ctx context.Context, key string) error {
	err := s.db.dbGorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := lookupID[Tag](ctx, tx, "tag_key", key)
		if err != nil || id == 0 {
			return err
		}

		if _, err := gorm.G[ProductTag](tx).Where("tag_id = ?", id).Delete(ctx); err != nil {
			return err
		}
		_, err = gorm.G[Tag](tx).Where("id = ?", id).Delete(ctx)

		return err
	})

	return wrapErrorWithDetails(err, "delete tag", fmt.Sprintf("tag_key=%q", key))
}
