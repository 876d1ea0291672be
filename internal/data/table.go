package data

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Table is the gorm-backed Store for one record type. Insert, Update and
// Delete each run in their own transaction.
type Table[T Record] struct {
	DB *gorm.DB
}

// GetAll returns every row matching all filters, ordered by id.
func (t Table[T]) GetAll(filters ...Filter) ([]T, error) {
	// context 3-second timeout deadline
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	query := t.DB.WithContext(ctx).Model(new(T))
	for _, f := range filters {
		query = query.Where(clause.Eq{Column: clause.Column{Name: f.Column}, Value: f.Value})
	}

	var records []T
	if err := query.Order("id").Find(&records).Error; err != nil {
		return nil, classifyError(err)
	}

	return records, nil
}

func (t Table[T]) Get(id int64) (*T, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	// context 3-second timeout deadline
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var record T
	if err := t.DB.WithContext(ctx).First(&record, id).Error; err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, classifyError(err)
		}
	}

	return &record, nil
}

// Insert stores record and writes the generated id back into it. A
// client-supplied id is ignored.
func (t Table[T]) Insert(record *T) error {
	return t.transaction(func(tx *gorm.DB) error {
		return tx.Omit("id").Create(record).Error
	})
}

// Update assigns fields (column -> value) to an existing row. A nil value
// stores NULL.
func (t Table[T]) Update(id int64, fields map[string]any) error {
	return t.transaction(func(tx *gorm.DB) error {
		if err := t.lock(tx, id); err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}
		return tx.Model(new(T)).Where("id = ?", id).Updates(fields).Error
	})
}

func (t Table[T]) Delete(id int64) error {
	return t.transaction(func(tx *gorm.DB) error {
		if err := t.lock(tx, id); err != nil {
			return err
		}
		return tx.Delete(new(T), id).Error
	})
}

// lock confirms the row exists and holds it until the transaction ends.
func (t Table[T]) lock(tx *gorm.DB, id int64) error {
	if id < 1 {
		return ErrRecordNotFound
	}

	var record T
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&record, id).Error
}

func (t Table[T]) transaction(fn func(tx *gorm.DB) error) error {
	// context 3-second timeout deadline
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := t.DB.WithContext(ctx).Transaction(fn)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrRecordNotFound
	default:
		return classifyError(err)
	}
}
