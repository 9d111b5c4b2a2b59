// service/book/book_service_test.go
package booksvc_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"bookstore/model"
	booksvc "bookstore/service/book"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type repoMock struct {
	createFn   func(ctx context.Context, b *model.Book) error
	listFn     func(ctx context.Context) ([]model.Book, error)
	searchFn   func(ctx context.Context, q string) ([]model.Book, error)
	filteredFn func(ctx context.Context, f booksvc.Filter) ([]model.Book, error)
	detailFn   func(ctx context.Context, id int64) (*model.Book, error)
	updateFn   func(ctx context.Context, b *model.Book) (bool, error)
	deleteFn   func(ctx context.Context, id int64) (bool, error)
}

func (m *repoMock) Create(ctx context.Context, b *model.Book) error { return m.createFn(ctx, b) }
func (m *repoMock) List(ctx context.Context) ([]model.Book, error)  { return m.listFn(ctx) }
func (m *repoMock) Search(ctx context.Context, q string) ([]model.Book, error) {
	return m.searchFn(ctx, q)
}
func (m *repoMock) Filtered(ctx context.Context, f booksvc.Filter) ([]model.Book, error) {
	return m.filteredFn(ctx, f)
}
func (m *repoMock) Detail(ctx context.Context, id int64) (*model.Book, error) {
	return m.detailFn(ctx, id)
}
func (m *repoMock) Update(ctx context.Context, b *model.Book) (bool, error) {
	return m.updateFn(ctx, b)
}
func (m *repoMock) Delete(ctx context.Context, id int64) (bool, error) { return m.deleteFn(ctx, id) }

func TestCreate_Validation(t *testing.T) {
	s := booksvc.New(&repoMock{})
	if _, err := s.Create(context.Background(), &model.Book{Author: "a", Price: 10}); err == nil {
		t.Fatal("expected error for empty title")
	}
	if _, err := s.Create(context.Background(), &model.Book{Title: "t", Price: 10}); err == nil {
		t.Fatal("expected error for empty author")
	}
	if _, err := s.Create(context.Background(), &model.Book{Title: "t", Author: "a", Price: -1}); err == nil {
		t.Fatal("expected error for negative price")
	}
}

func TestCreate_Defaults(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, b *model.Book) error {
			b.ID = 42
			return nil
		},
	}
	s := booksvc.New(m)
	b, err := s.Create(context.Background(), &model.Book{Title: "Dune", Author: "Herbert", Price: 25})
	if err != nil || b.ID != 42 {
		t.Fatalf("got id=%v err=%v; want 42 nil", b.ID, err)
	}
	if b.Genre != model.GenreOther || b.Status != model.BookAvailable {
		t.Fatalf("defaults not applied: genre=%q status=%q", b.Genre, b.Status)
	}
}

func TestCreate_TitleConflict(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, b *model.Book) error {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "books_title_key"}
		},
	}
	s := booksvc.New(m)
	_, err := s.Create(context.Background(), &model.Book{Title: "Dune", Author: "Herbert", Price: 25})
	if booksvc.Code(err) != booksvc.ErrTitleTaken {
		t.Fatalf("got %v; want ErrTitleTaken", err)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	m := &repoMock{
		searchFn: func(ctx context.Context, q string) ([]model.Book, error) {
			return nil, errors.New("repo must not be hit for empty q")
		},
	}
	s := booksvc.New(m)
	books, err := s.Search(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(books) != 0 {
		t.Fatalf("got %d books; want 0", len(books))
	}
}

func TestDetail_NotFound(t *testing.T) {
	m := &repoMock{
		detailFn: func(ctx context.Context, id int64) (*model.Book, error) { return nil, sql.ErrNoRows },
	}
	s := booksvc.New(m)
	_, err := s.Detail(context.Background(), 99)
	if booksvc.Code(err) != booksvc.ErrNotFound {
		t.Fatalf("got %v; want ErrNotFound", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	m := &repoMock{
		updateFn: func(ctx context.Context, b *model.Book) (bool, error) { return false, nil },
	}
	s := booksvc.New(m)
	err := s.Update(context.Background(), &model.Book{ID: 99, Title: "t", Author: "a", Price: 1})
	if booksvc.Code(err) != booksvc.ErrNotFound {
		t.Fatalf("got %v; want ErrNotFound", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	m := &repoMock{
		deleteFn: func(ctx context.Context, id int64) (bool, error) { return false, nil },
	}
	s := booksvc.New(m)
	if err := s.Delete(context.Background(), 99); booksvc.Code(err) != booksvc.ErrNotFound {
		t.Fatalf("got %v; want ErrNotFound", err)
	}
}
