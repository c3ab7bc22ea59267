package services

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm/schema"
)

// MemoryCollection keeps records in process. Columns are resolved through the
// same gorm schema the SQL store uses, so filters, sorts and partial updates
// name the same columns. Unique indexes are not enforced.
type MemoryCollection[T Record] struct {
	mu     sync.RWMutex
	schema *schema.Schema
	recs   map[string]T
	seq    map[string]int
	next   int
}

func NewMemoryCollection[T Record]() (*MemoryCollection[T], error) {
	var zero T
	sch, err := schema.Parse(&zero, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	return &MemoryCollection[T]{
		schema: sch,
		recs:   make(map[string]T),
		seq:    make(map[string]int),
	}, nil
}

func (m *MemoryCollection[T]) List(ctx context.Context, filter Filter, sortBy Sort) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]T, 0, len(m.recs))
	for _, rec := range m.recs {
		ok, err := m.matches(ctx, rec, filter)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, rec)
		}
	}

	var field *schema.Field
	if sortBy.Column != "" {
		if field = m.schema.LookUpField(sortBy.Column); field == nil {
			return nil, fmt.Errorf("list: unknown column %q", sortBy.Column)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		c := 0
		if field != nil {
			a, _ := field.ValueOf(ctx, reflect.ValueOf(out[i]))
			b, _ := field.ValueOf(ctx, reflect.ValueOf(out[j]))
			c = compareValues(a, b)
		}
		if c == 0 {
			c = m.seq[out[i].RecordID()] - m.seq[out[j].RecordID()]
		}
		if sortBy.Desc {
			return c > 0
		}
		return c < 0
	})
	return out, nil
}

func (m *MemoryCollection[T]) Get(ctx context.Context, id string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.recs[id]
	if !ok {
		return rec, ErrNotFound
	}
	return rec, nil
}

func (m *MemoryCollection[T]) FindOne(ctx context.Context, filter Filter) (T, error) {
	recs, err := m.List(ctx, filter, Sort{})
	if err != nil {
		var zero T
		return zero, err
	}
	if len(recs) == 0 {
		var zero T
		return zero, ErrNotFound
	}
	return recs[0], nil
}

func (m *MemoryCollection[T]) Create(ctx context.Context, rec *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d, ok := any(rec).(interface{ EnsureID() }); ok {
		d.EnsureID()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := (*rec).RecordID()
	if id == "" {
		return fmt.Errorf("create: record has no id")
	}
	if _, exists := m.recs[id]; exists {
		return fmt.Errorf("%w: id %s", ErrConflict, id)
	}
	m.next++
	m.seq[id] = m.next
	m.recs[id] = *rec
	return nil
}

func (m *MemoryCollection[T]) Update(ctx context.Context, id string, fields Fields) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.recs[id]
	if !ok {
		return rec, ErrNotFound
	}
	if len(fields) == 0 {
		return rec, nil
	}

	rv := reflect.ValueOf(&rec).Elem()
	for column, value := range fields {
		field := m.schema.LookUpField(column)
		if field == nil {
			return rec, fmt.Errorf("update: unknown column %q", column)
		}
		if err := field.Set(ctx, rv, value); err != nil {
			return rec, fmt.Errorf("update %s: %w", column, err)
		}
	}
	if field := m.schema.LookUpField("updated_at"); field != nil {
		if err := field.Set(ctx, rv, time.Now()); err != nil {
			return rec, fmt.Errorf("update updated_at: %w", err)
		}
	}

	m.recs[id] = rec
	return rec, nil
}

func (m *MemoryCollection[T]) Delete(ctx context.Context, id string) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.recs[id]
	if !ok {
		return rec, ErrNotFound
	}
	delete(m.recs, id)
	delete(m.seq, id)
	return rec, nil
}

func (m *MemoryCollection[T]) matches(ctx context.Context, rec T, filter Filter) (bool, error) {
	rv := reflect.ValueOf(rec)
	for column, want := range filter {
		field := m.schema.LookUpField(column)
		if field == nil {
			return false, fmt.Errorf("filter: unknown column %q", column)
		}
		got, _ := field.ValueOf(ctx, rv)
		if compareValues(got, want) != 0 {
			return false, nil
		}
	}
	return true, nil
}

// compareValues orders the scalar kinds records use: times, strings and numbers.
func compareValues(a, b any) int {
	switch x := a.(type) {
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y)
		}
	}

	if x, ok := toFloat(a); ok {
		if y, ok := toFloat(b); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			default:
				return 0
			}
		}
	}

	if reflect.DeepEqual(a, b) {
		return 0
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
