package cartsvc

import (
	"context"
	"database/sql"
	"testing"

	"bookstore/model"

	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	byIDFn       func(ctx context.Context, cartID int64) (*model.Cart, error)
	booksFn      func(ctx context.Context, cartID int64) ([]model.Book, error)
	bookByIDFn   func(ctx context.Context, bookID int64) (*model.Book, error)
	addBookFn    func(ctx context.Context, cartID, bookID int64) error
	removeBookFn func(ctx context.Context, cartID, bookID int64) error
	listAllFn    func(ctx context.Context) ([]model.Cart, error)
}

var _ Repo = (*mockRepo)(nil)

func (m *mockRepo) ByID(ctx context.Context, cartID int64) (*model.Cart, error) {
	if m.byIDFn == nil {
		return nil, sql.ErrNoRows
	}
	return m.byIDFn(ctx, cartID)
}
func (m *mockRepo) Books(ctx context.Context, cartID int64) ([]model.Book, error) {
	if m.booksFn == nil {
		return nil, nil
	}
	return m.booksFn(ctx, cartID)
}
func (m *mockRepo) BookByID(ctx context.Context, bookID int64) (*model.Book, error) {
	if m.bookByIDFn == nil {
		return nil, sql.ErrNoRows
	}
	return m.bookByIDFn(ctx, bookID)
}
func (m *mockRepo) AddBook(ctx context.Context, cartID, bookID int64) error {
	if m.addBookFn == nil {
		return nil
	}
	return m.addBookFn(ctx, cartID, bookID)
}
func (m *mockRepo) RemoveBook(ctx context.Context, cartID, bookID int64) error {
	if m.removeBookFn == nil {
		return nil
	}
	return m.removeBookFn(ctx, cartID, bookID)
}
func (m *mockRepo) ListAll(ctx context.Context) ([]model.Cart, error) {
	if m.listAllFn == nil {
		return nil, nil
	}
	return m.listAllFn(ctx)
}

func ownedCart(id, userID int64) func(ctx context.Context, cartID int64) (*model.Cart, error) {
	return func(ctx context.Context, cartID int64) (*model.Cart, error) {
		if cartID != id {
			return nil, sql.ErrNoRows
		}
		return &model.Cart{ID: id, UserID: userID}, nil
	}
}

// --- tests ---

func TestAddBook_Available(t *testing.T) {
	ctx := context.Background()
	added := false
	m := &mockRepo{
		byIDFn: ownedCart(1, 10),
		bookByIDFn: func(ctx context.Context, bookID int64) (*model.Book, error) {
			return &model.Book{ID: bookID, Status: model.BookAvailable}, nil
		},
		addBookFn: func(ctx context.Context, cartID, bookID int64) error {
			added = true
			return nil
		},
	}
	svc := New(m)

	require.NoError(t, svc.AddBook(ctx, 1, 5, 10))
	require.True(t, added)
}

func TestAddBook_NotAvailable(t *testing.T) {
	ctx := context.Background()

	for _, status := range []model.BookStatus{model.BookBorrowed, model.BookOutOfStock} {
		m := &mockRepo{
			byIDFn: ownedCart(1, 10),
			bookByIDFn: func(ctx context.Context, bookID int64) (*model.Book, error) {
				return &model.Book{ID: bookID, Status: status}, nil
			},
			addBookFn: func(ctx context.Context, cartID, bookID int64) error {
				t.Fatalf("AddBook must not be called for %s", status)
				return nil
			},
		}
		svc := New(m)

		err := svc.AddBook(ctx, 1, 5, 10)
		require.Error(t, err)
		require.Equal(t, ErrUnavailable, Code(err))
	}
}

func TestAddBook_ForeignCart(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byIDFn: ownedCart(1, 10),
	}
	svc := New(m)

	// Caller 99 does not own cart 1; existence must not leak.
	err := svc.AddBook(ctx, 1, 5, 99)
	require.Error(t, err)
	require.Equal(t, ErrCartNotFound, Code(err))
}

func TestAddBook_MissingBook(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byIDFn: ownedCart(1, 10),
		bookByIDFn: func(ctx context.Context, bookID int64) (*model.Book, error) {
			return nil, sql.ErrNoRows
		},
	}
	svc := New(m)

	err := svc.AddBook(ctx, 1, 5, 10)
	require.Error(t, err)
	require.Equal(t, ErrBookNotFound, Code(err))
}

func TestRemoveBook_AbsentIsSilent(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byIDFn: ownedCart(1, 10),
		removeBookFn: func(ctx context.Context, cartID, bookID int64) error {
			// zero rows deleted is still success
			return nil
		},
	}
	svc := New(m)

	require.NoError(t, svc.RemoveBook(ctx, 1, 12345, 10))
}

func TestRemoveBook_MissingCart(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{})

	err := svc.RemoveBook(ctx, 404, 1, 10)
	require.Error(t, err)
	require.Equal(t, ErrCartNotFound, Code(err))
}

func TestBooks_OwnerScoped(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byIDFn: ownedCart(1, 10),
		booksFn: func(ctx context.Context, cartID int64) ([]model.Book, error) {
			return []model.Book{{ID: 5}}, nil
		},
	}
	svc := New(m)

	books, err := svc.Books(ctx, 1, 10, model.RoleUser)
	require.NoError(t, err)
	require.Len(t, books, 1)

	_, err = svc.Books(ctx, 1, 99, model.RoleUser)
	require.Error(t, err)
	require.Equal(t, ErrCartNotFound, Code(err))
}

func TestBooks_AdminBypassesOwnership(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byIDFn: ownedCart(1, 10),
		booksFn: func(ctx context.Context, cartID int64) ([]model.Book, error) {
			return []model.Book{{ID: 5}, {ID: 6}}, nil
		},
	}
	svc := New(m)

	books, err := svc.Books(ctx, 1, 99, model.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, books, 2)
}
