package orm

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// store implements the read side shared by every entity keyed by a business
// key column.
type store[T any] struct {
	db        *DB
	entity    string
	keyColumn string
	preloads  []string
}

func (s *store[T]) query(ctx context.Context) *gorm.DB {
	q := s.db.dbGorm.WithContext(ctx)
	for _, p := range s.preloads {
		q = q.Preload(p)
	}

	return q
}

// FindByKey returns the entity with the given business key, or a
// NotFoundError.
func (s *store[T]) FindByKey(ctx context.Context, key string) (*T, error) {
	if key == "" {
		return nil, &BadInputError{Reason: s.entity + " key must be provided"}
	}

	var entity T
	err := s.query(ctx).Where(s.keyColumn+" = ?", key).First(&entity).Error
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"get "+s.entity,
			fmt.Sprintf("%s=%q", s.keyColumn, key),
		)
	}

	return &entity, nil
}

// FindAll returns every entity ordered by insertion.
func (s *store[T]) FindAll(ctx context.Context) ([]*T, error) {
	var entities []*T
	err := s.query(ctx).Order("id").Find(&entities).Error
	if err != nil {
		return nil, wrapErrorWithDetails(err, "list "+s.entity, "all")
	}

	return entities, nil
}

// lookupID resolves a business key to the surrogate primary key inside tx.
// A missing row yields (0, nil).
func lookupID[T any](
	ctx context.Context,
	tx *gorm.DB,
	keyColumn, key string,
) (uint, error) {
	var ids []uint
	err := tx.WithContext(ctx).
		Model(new(T)).
		Where(keyColumn+" = ?", key).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	return ids[0], nil
}

// writeRow inserts an unsaved row or updates a persisted one, never touching
// associations. A business key collision becomes a DuplicateKey validation
// error on keyField.
func writeRow[T any](
	ctx context.Context,
	tx *gorm.DB,
	row *T,
	unsaved bool,
	keyField, key string,
) error {
	q := tx.WithContext(ctx).Omit(clause.Associations)

	var err error
	if unsaved {
		err = q.Create(row).Error
	} else {
		err = q.Save(row).Error
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return duplicateKeyError(keyField, key)
	}

	return err
}

// idSnapshot remembers surrogate keys so a rolled back transaction does not
// leave instances looking persisted.
type idSnapshot struct {
	ptrs []*uint
	vals []uint
}

func snapshotIDs(ptrs ...*uint) idSnapshot {
	s := idSnapshot{ptrs: ptrs, vals: make([]uint, len(ptrs))}
	for i, p := range ptrs {
		s.vals[i] = *p
	}

	return s
}

func (s idSnapshot) restore() {
	for i, p := range s.ptrs {
		*p = s.vals[i]
	}
}
