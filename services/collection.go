package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is anything stored in a Collection.
type Record interface {
	RecordID() string
}

// Filter matches records whose columns equal the given values.
type Filter map[string]any

// Fields holds column values for a partial update.
type Fields map[string]any

type Sort struct {
	Column string
	Desc   bool
}

// NewestFirst is the default list order.
var NewestFirst = Sort{Column: "created_at", Desc: true}

// Collection gives typed access to one named set of records. Every call is
// atomic for a single record; nothing spans records.
type Collection[T Record] interface {
	List(ctx context.Context, filter Filter, sort Sort) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	FindOne(ctx context.Context, filter Filter) (T, error)
	Create(ctx context.Context, rec *T) error
	Update(ctx context.Context, id string, fields Fields) (T, error)
	Delete(ctx context.Context, id string) (T, error)
}

// GormCollection stores records of type T in the table gorm derives for T.
type GormCollection[T Record] struct {
	DB *gorm.DB
}

func NewGormCollection[T Record](db *gorm.DB) *GormCollection[T] {
	return &GormCollection[T]{DB: db}
}

func (s *GormCollection[T]) List(ctx context.Context, filter Filter, sort Sort) ([]T, error) {
	q := s.DB.WithContext(ctx)
	if len(filter) > 0 {
		q = q.Where(map[string]interface{}(filter))
	}
	if sort.Column != "" {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: sort.Column}, Desc: sort.Desc})
	}

	recs := make([]T, 0)
	if err := q.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return recs, nil
}

func (s *GormCollection[T]) Get(ctx context.Context, id string) (T, error) {
	var rec T
	if id == "" {
		return rec, ErrNotFound
	}
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		return rec, translate(err)
	}
	return rec, nil
}

func (s *GormCollection[T]) FindOne(ctx context.Context, filter Filter) (T, error) {
	var rec T
	err := s.DB.WithContext(ctx).Where(map[string]interface{}(filter)).Take(&rec).Error
	if err != nil {
		return rec, translate(err)
	}
	return rec, nil
}

func (s *GormCollection[T]) Create(ctx context.Context, rec *T) error {
	if err := s.DB.WithContext(ctx).Create(rec).Error; err != nil {
		return translate(err)
	}
	return nil
}

// Update writes only the given columns and returns the record as stored afterwards.
func (s *GormCollection[T]) Update(ctx context.Context, id string, fields Fields) (T, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return rec, err
	}
	if len(fields) == 0 {
		return rec, nil
	}

	if err := s.DB.WithContext(ctx).Model(&rec).Updates(map[string]interface{}(fields)).Error; err != nil {
		return rec, translate(err)
	}
	return s.Get(ctx, id)
}

// Delete removes the record and hands back what was stored.
func (s *GormCollection[T]) Delete(ctx context.Context, id string) (T, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return rec, err
	}

	result := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&rec)
	if result.Error != nil {
		return rec, translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return rec, ErrNotFound
	}
	return rec, nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if isDuplicate(err) {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return fmt.Errorf("store: %w", err)
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == 1062 {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
