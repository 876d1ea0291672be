package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/nhan10132020/moviedb/internal/data"
	"go.uber.org/zap"
)

// memStore is an in-memory data.Store. Rows round-trip through their JSON
// form so fields can be read and assigned by column name.
type memStore[T data.Record] struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]T
}

func newMemStore[T data.Record]() *memStore[T] {
	return &memStore[T]{rows: make(map[int64]T)}
}

func toMap(v any) (map[string]any, error) {
	js, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	err = json.Unmarshal(js, &m)
	return m, err
}

func fromMap(m map[string]any, dst any) error {
	js, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(js, dst)
}

func (s *memStore[T]) GetAll(filters ...data.Filter) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0, len(s.rows))
	for id := range s.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var records []T
	for _, id := range ids {
		row, err := toMap(s.rows[id])
		if err != nil {
			return nil, err
		}

		match := true
		for _, f := range filters {
			if row[f.Column] == nil || fmt.Sprint(row[f.Column]) != fmt.Sprint(f.Value) {
				match = false
			}
		}
		if match {
			records = append(records, s.rows[id])
		}
	}

	return records, nil
}

func (s *memStore[T]) Get(id int64) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[id]
	if !ok {
		return nil, data.ErrRecordNotFound
	}
	return &row, nil
}

func (s *memStore[T]) Insert(record *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := toMap(*record)
	if err != nil {
		return err
	}

	s.nextID++
	m["id"] = s.nextID

	var stored T
	if err := fromMap(m, &stored); err != nil {
		return err
	}
	*record = stored
	s.rows[s.nextID] = stored

	return nil
}

func (s *memStore[T]) Update(id int64, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[id]
	if !ok {
		return data.ErrRecordNotFound
	}

	m, err := toMap(row)
	if err != nil {
		return err
	}
	for column, value := range fields {
		m[column] = value
	}

	var updated T
	if err := fromMap(m, &updated); err != nil {
		return err
	}
	s.rows[id] = updated

	return nil
}

func (s *memStore[T]) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return data.ErrRecordNotFound
	}
	delete(s.rows, id)

	return nil
}

// failingStore returns err from every call.
type failingStore[T data.Record] struct {
	err error
}

func (s failingStore[T]) GetAll(...data.Filter) ([]T, error) { return nil, s.err }
func (s failingStore[T]) Get(int64) (*T, error)              { return nil, s.err }
func (s failingStore[T]) Insert(*T) error                    { return s.err }
func (s failingStore[T]) Update(int64, map[string]any) error { return s.err }
func (s failingStore[T]) Delete(int64) error                 { return s.err }

func newTestApplication(t *testing.T) *application {
	t.Helper()

	var cfg config
	cfg.env = "development"

	return &application{
		config: cfg,
		logger: zap.NewNop(),
		models: data.Models{
			Movies:    newMemStore[data.Movie](),
			Directors: newMemStore[data.Director](),
			Genres:    newMemStore[data.Genre](),
		},
	}
}

// do sends one request through h. An empty body sends no body at all.
func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	return rr
}
