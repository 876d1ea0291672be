package data

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrInvalidData    = errors.New("invalid data")
)

// Record is a row of one of the API's tables. Fields returns every mutable
// column keyed by its name, which is also its JSON key.
type Record interface {
	TableName() string
	RecordID() int64
	Fields() map[string]any
}

// Filter restricts a listing to rows whose Column equals Value.
type Filter struct {
	Column string
	Value  any
}

// Store is the storage gateway for one record type.
type Store[T Record] interface {
	GetAll(filters ...Filter) ([]T, error)
	Get(id int64) (*T, error)
	Insert(record *T) error
	Update(id int64, fields map[string]any) error
	Delete(id int64) error
}

type Models struct {
	Movies    Store[Movie]
	Directors Store[Director]
	Genres    Store[Genre]
}

func NewModels(db *gorm.DB) Models {
	return Models{
		Movies: Table[Movie]{
			DB: db,
		},
		Directors: Table[Director]{
			DB: db,
		},
		Genres: Table[Genre]{
			DB: db,
		},
	}
}

// AutoMigrate creates the movie, director and genre tables if missing.
// Movie carries no foreign key constraints: genre_id and director_id are stored as given.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Genre{}, &Director{}, &Movie{})
}

// classifyError turns PostgreSQL data exceptions (SQLSTATE class 22) from
// either driver into ErrInvalidData and leaves every other error untouched.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "22") {
		return fmt.Errorf("%w: %s", ErrInvalidData, pgErr.Message)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "22" {
		return fmt.Errorf("%w: %s", ErrInvalidData, pqErr.Message)
	}

	return err
}
