package cartsvc

import (
	"context"
	"database/sql"
	"errors"

	"bookstore/model"
)

// errors used by controllers

type ErrCode string

const (
	ErrCartNotFound ErrCode = "CART_NOT_FOUND"
	ErrBookNotFound ErrCode = "BOOK_NOT_FOUND"
	ErrUnavailable  ErrCode = "BOOK_UNAVAILABLE"
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

type Repo interface {
	ByID(ctx context.Context, cartID int64) (*model.Cart, error)
	Books(ctx context.Context, cartID int64) ([]model.Book, error)
	BookByID(ctx context.Context, bookID int64) (*model.Book, error)
	AddBook(ctx context.Context, cartID, bookID int64) error
	RemoveBook(ctx context.Context, cartID, bookID int64) error
	ListAll(ctx context.Context) ([]model.Cart, error)
}

type Service interface {
	// AddBook: put an Available book into the caller's cart. Re-adding
	// is a no-op.
	AddBook(ctx context.Context, cartID, bookID, userID int64) error

	// RemoveBook: take a book out of the caller's cart. Removing an
	// absent book succeeds silently.
	RemoveBook(ctx context.Context, cartID, bookID, userID int64) error

	// Books: the cart's contents, owner-scoped. Admin may read any cart.
	Books(ctx context.Context, cartID, userID int64, role model.Role) ([]model.Book, error)

	// ListAll: every cart with its books (admin listing).
	ListAll(ctx context.Context) ([]model.Cart, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

// ownCart loads the cart and hides foreign carts behind not-found so
// existence never leaks across users.
func (s *service) ownCart(ctx context.Context, cartID, userID int64) (*model.Cart, error) {
	c, err := s.r.ByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrCartNotFound)
		}
		return nil, err
	}
	if c.UserID != userID {
		return nil, makeErr(ErrCartNotFound)
	}
	return c, nil
}

func (s *service) AddBook(ctx context.Context, cartID, bookID, userID int64) error {
	if _, err := s.ownCart(ctx, cartID, userID); err != nil {
		return err
	}

	b, err := s.r.BookByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrBookNotFound)
		}
		return err
	}
	if b.Status != model.BookAvailable {
		return makeErr(ErrUnavailable)
	}

	return s.r.AddBook(ctx, cartID, bookID)
}

func (s *service) RemoveBook(ctx context.Context, cartID, bookID, userID int64) error {
	if _, err := s.ownCart(ctx, cartID, userID); err != nil {
		return err
	}
	return s.r.RemoveBook(ctx, cartID, bookID)
}

func (s *service) Books(ctx context.Context, cartID, userID int64, role model.Role) ([]model.Book, error) {
	if role == model.RoleAdmin {
		if _, err := s.r.ByID(ctx, cartID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, makeErr(ErrCartNotFound)
			}
			return nil, err
		}
	} else if _, err := s.ownCart(ctx, cartID, userID); err != nil {
		return nil, err
	}
	return s.r.Books(ctx, cartID)
}

func (s *service) ListAll(ctx context.Context) ([]model.Cart, error) {
	return s.r.ListAll(ctx)
}
