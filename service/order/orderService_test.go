package ordersvc

import (
	"context"
	"database/sql"
	"testing"

	"bookstore/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

// mockRepo tracks which mutations ran so the atomicity tests can
// assert what happened before a rollback.
type mockRepo struct {
	cartID    int64
	cartErr   error
	cartBooks []model.Book

	// fail MarkBorrowed for this book id (0 = never)
	failBorrowID int64

	insertedOrder *model.Order
	borrowed      []int64
	attached      []int64
	cleared       bool

	order    *model.Order
	orderIDs []int64
	released []int64
	deleted  bool
}

var _ Repo = (*mockRepo)(nil)

func (m *mockRepo) CartForUpdate(ctx context.Context, tx *sql.Tx, userID int64) (int64, error) {
	if m.cartErr != nil {
		return 0, m.cartErr
	}
	return m.cartID, nil
}

func (m *mockRepo) CartBooksForUpdate(ctx context.Context, tx *sql.Tx, cartID int64) ([]model.Book, error) {
	return m.cartBooks, nil
}

func (m *mockRepo) ClearCart(ctx context.Context, tx *sql.Tx, cartID int64) error {
	m.cleared = true
	return nil
}

func (m *mockRepo) InsertOrder(ctx context.Context, tx *sql.Tx, o *model.Order) error {
	o.ID = 77
	m.insertedOrder = o
	return nil
}

func (m *mockRepo) AttachBook(ctx context.Context, tx *sql.Tx, orderID, bookID int64) error {
	m.attached = append(m.attached, bookID)
	return nil
}

func (m *mockRepo) MarkBorrowed(ctx context.Context, tx *sql.Tx, bookID int64) (bool, error) {
	if bookID == m.failBorrowID {
		return false, nil
	}
	m.borrowed = append(m.borrowed, bookID)
	return true, nil
}

func (m *mockRepo) OrderForUpdate(ctx context.Context, tx *sql.Tx, orderID int64) (*model.Order, error) {
	if m.order == nil {
		return nil, sql.ErrNoRows
	}
	return m.order, nil
}

func (m *mockRepo) OrderBookIDs(ctx context.Context, tx *sql.Tx, orderID int64) ([]int64, error) {
	return m.orderIDs, nil
}

func (m *mockRepo) ReleaseBook(ctx context.Context, tx *sql.Tx, bookID int64) error {
	m.released = append(m.released, bookID)
	return nil
}

func (m *mockRepo) DeleteOrder(ctx context.Context, tx *sql.Tx, orderID int64) error {
	m.deleted = true
	return nil
}

func (m *mockRepo) Detail(ctx context.Context, orderID int64) (*model.Order, error) {
	if m.order == nil {
		return nil, sql.ErrNoRows
	}
	return m.order, nil
}

func (m *mockRepo) BooksOf(ctx context.Context, orderID int64) ([]model.Book, error) {
	return m.cartBooks, nil
}

func (m *mockRepo) ListAll(ctx context.Context) ([]model.Order, error) { return nil, nil }

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var shipping = Shipping{Name: "Layth", Address: "1 Main St", Phone: "+123456789"}

// --- tests ---

func TestCheckout_Success(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	r := &mockRepo{
		cartID: 1,
		cartBooks: []model.Book{
			{ID: 5, Price: 10, Status: model.BookAvailable},
			{ID: 6, Price: 15, Status: model.BookAvailable},
		},
	}
	svc := New(db, r)

	o, err := svc.Checkout(context.Background(), 10, shipping)
	require.NoError(t, err)
	require.Equal(t, int64(77), o.ID)
	require.Equal(t, int64(25), o.TotalAmount)
	require.Equal(t, []int64{5, 6}, r.borrowed)
	require.Equal(t, []int64{5, 6}, r.attached)
	require.True(t, r.cleared)
	require.Len(t, o.Books, 2)
	for _, b := range o.Books {
		require.Equal(t, model.BookBorrowed, b.Status)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckout_EmptyCart(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	r := &mockRepo{cartID: 1}
	svc := New(db, r)

	_, err := svc.Checkout(context.Background(), 10, shipping)
	require.Error(t, err)
	require.Equal(t, ErrNothingToCheckout, Code(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckout_NoCart(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	r := &mockRepo{cartErr: sql.ErrNoRows}
	svc := New(db, r)

	_, err := svc.Checkout(context.Background(), 10, shipping)
	require.Error(t, err)
	require.Equal(t, ErrNothingToCheckout, Code(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckout_SecondBookUnavailable_RollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	r := &mockRepo{
		cartID: 1,
		cartBooks: []model.Book{
			{ID: 5, Price: 10, Status: model.BookAvailable},
			{ID: 6, Price: 15, Status: model.BookAvailable},
		},
		failBorrowID: 6,
	}
	svc := New(db, r)

	_, err := svc.Checkout(context.Background(), 10, shipping)
	require.Error(t, err)
	require.Equal(t, ErrUnavailable, Code(err))

	// The cart is never cleared on a failed checkout and the tx was
	// rolled back, so the inserted order does not survive.
	require.False(t, r.cleared)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckout_TotalFrozenFromSnapshot(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	books := []model.Book{{ID: 5, Price: 100, Status: model.BookAvailable}}
	r := &mockRepo{cartID: 1, cartBooks: books}
	svc := New(db, r)

	o, err := svc.Checkout(context.Background(), 10, shipping)
	require.NoError(t, err)
	require.Equal(t, int64(100), o.TotalAmount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_Success(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	r := &mockRepo{
		order:    &model.Order{ID: 77, UserID: 10},
		orderIDs: []int64{5, 6},
	}
	svc := New(db, r)

	err := svc.Delete(context.Background(), 77, 10, model.RoleUser)
	require.NoError(t, err)
	require.Equal(t, []int64{5, 6}, r.released)
	require.True(t, r.deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_ForeignOrder(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	r := &mockRepo{order: &model.Order{ID: 77, UserID: 10}}
	svc := New(db, r)

	err := svc.Delete(context.Background(), 77, 99, model.RoleUser)
	require.Error(t, err)
	require.Equal(t, ErrNotFound, Code(err))
	require.False(t, r.deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_AdminCanDeleteAnyOrder(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	r := &mockRepo{
		order:    &model.Order{ID: 77, UserID: 10},
		orderIDs: []int64{5},
	}
	svc := New(db, r)

	err := svc.Delete(context.Background(), 77, 99, model.RoleAdmin)
	require.NoError(t, err)
	require.True(t, r.deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_Missing(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	svc := New(db, &mockRepo{})

	err := svc.Delete(context.Background(), 404, 10, model.RoleUser)
	require.Error(t, err)
	require.Equal(t, ErrNotFound, Code(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDetail_OwnerScoped(t *testing.T) {
	db, _ := newMockDB(t)
	r := &mockRepo{
		order:     &model.Order{ID: 77, UserID: 10},
		cartBooks: []model.Book{{ID: 5, Status: model.BookBorrowed}},
	}
	svc := New(db, r)

	o, err := svc.Detail(context.Background(), 77, 10, model.RoleUser)
	require.NoError(t, err)
	require.Len(t, o.Books, 1)

	_, err = svc.Detail(context.Background(), 77, 99, model.RoleUser)
	require.Error(t, err)
	require.Equal(t, ErrNotFound, Code(err))

	_, err = svc.Detail(context.Background(), 77, 99, model.RoleAdmin)
	require.NoError(t, err)
}
