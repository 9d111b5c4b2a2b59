package ordersvc

import (
	"context"
	"database/sql"
	"errors"

	"bookstore/model"
)

// errors used by controllers

type ErrCode string

const (
	ErrNothingToCheckout ErrCode = "NOTHING_TO_CHECKOUT"
	ErrUnavailable       ErrCode = "BOOK_UNAVAILABLE"
	ErrNotFound          ErrCode = "NOT_FOUND"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Shipping carries the checkout form fields.
type Shipping struct {
	Name         string
	Address      string
	Phone        string
	Instructions *string
}

type Repo interface {
	CartForUpdate(ctx context.Context, tx *sql.Tx, userID int64) (int64, error)
	CartBooksForUpdate(ctx context.Context, tx *sql.Tx, cartID int64) ([]model.Book, error)
	ClearCart(ctx context.Context, tx *sql.Tx, cartID int64) error

	InsertOrder(ctx context.Context, tx *sql.Tx, o *model.Order) error
	AttachBook(ctx context.Context, tx *sql.Tx, orderID, bookID int64) error
	MarkBorrowed(ctx context.Context, tx *sql.Tx, bookID int64) (bool, error)

	OrderForUpdate(ctx context.Context, tx *sql.Tx, orderID int64) (*model.Order, error)
	OrderBookIDs(ctx context.Context, tx *sql.Tx, orderID int64) ([]int64, error)
	ReleaseBook(ctx context.Context, tx *sql.Tx, bookID int64) error
	DeleteOrder(ctx context.Context, tx *sql.Tx, orderID int64) error

	Detail(ctx context.Context, orderID int64) (*model.Order, error)
	BooksOf(ctx context.Context, orderID int64) ([]model.Book, error)
	ListAll(ctx context.Context) ([]model.Order, error)
}

type Service interface {
	// Checkout: convert the caller's cart into an order, mark its books
	// Borrowed and empty the cart, all in one transaction.
	Checkout(ctx context.Context, userID int64, sh Shipping) (*model.Order, error)

	// Delete: revert every book of the order to Available and remove
	// the order, all in one transaction.
	Delete(ctx context.Context, orderID, userID int64, role model.Role) error

	// Detail: one order with its books, owner-scoped unless admin.
	Detail(ctx context.Context, orderID, userID int64, role model.Role) (*model.Order, error)

	// ListAll: every order with its books (admin listing).
	ListAll(ctx context.Context) ([]model.Order, error)
}

// ----- Service implementation -----

type service struct {
	db *sql.DB
	r  Repo
}

func New(db *sql.DB, r Repo) Service {
	return &service{db: db, r: r}
}

func (s *service) Checkout(ctx context.Context, userID int64, sh Shipping) (o *model.Order, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	cartID, err := s.r.CartForUpdate(ctx, tx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNothingToCheckout)
		}
		return nil, err
	}

	books, err := s.r.CartBooksForUpdate(ctx, tx, cartID)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, makeErr(ErrNothingToCheckout)
	}

	// Total is frozen from the locked snapshot; later price changes
	// never touch it.
	var total int64
	for _, b := range books {
		total += b.Price
	}

	o = &model.Order{
		UserID:       userID,
		TotalAmount:  total,
		Name:         sh.Name,
		Address:      sh.Address,
		Phone:        sh.Phone,
		Instructions: sh.Instructions,
	}
	if err = s.r.InsertOrder(ctx, tx, o); err != nil {
		return nil, err
	}

	for i := range books {
		var ok bool
		ok, err = s.r.MarkBorrowed(ctx, tx, books[i].ID)
		if err != nil {
			return nil, err
		}
		if !ok {
			// Lost the race for this book; the whole checkout unwinds.
			err = makeErr(ErrUnavailable)
			return nil, err
		}
		if err = s.r.AttachBook(ctx, tx, o.ID, books[i].ID); err != nil {
			return nil, err
		}
		books[i].Status = model.BookBorrowed
	}

	if err = s.r.ClearCart(ctx, tx, cartID); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}

	o.Books = books
	return o, nil
}

func (s *service) Delete(ctx context.Context, orderID, userID int64, role model.Role) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	o, err := s.r.OrderForUpdate(ctx, tx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrNotFound)
		}
		return err
	}
	if role != model.RoleAdmin && o.UserID != userID {
		return makeErr(ErrNotFound)
	}

	bookIDs, err := s.r.OrderBookIDs(ctx, tx, orderID)
	if err != nil {
		return err
	}
	for _, id := range bookIDs {
		if err = s.r.ReleaseBook(ctx, tx, id); err != nil {
			return err
		}
	}
	if err = s.r.DeleteOrder(ctx, tx, orderID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) Detail(ctx context.Context, orderID, userID int64, role model.Role) (*model.Order, error) {
	o, err := s.r.Detail(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	if role != model.RoleAdmin && o.UserID != userID {
		return nil, makeErr(ErrNotFound)
	}

	books, err := s.r.BooksOf(ctx, orderID)
	if err != nil {
		return nil, err
	}
	o.Books = books
	return o, nil
}

func (s *service) ListAll(ctx context.Context) ([]model.Order, error) {
	return s.r.ListAll(ctx)
}
