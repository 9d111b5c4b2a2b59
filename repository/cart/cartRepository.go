package cartrepo

import (
	"context"
	"database/sql"

	"bookstore/model"
)

type Repo interface {
	ByID(ctx context.Context, cartID int64) (*model.Cart, error)
	Books(ctx context.Context, cartID int64) ([]model.Book, error)
	BookByID(ctx context.Context, bookID int64) (*model.Book, error)
	AddBook(ctx context.Context, cartID, bookID int64) error
	RemoveBook(ctx context.Context, cartID, bookID int64) error
	ListAll(ctx context.Context) ([]model.Cart, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) ByID(ctx context.Context, cartID int64) (*model.Cart, error) {
	c := &model.Cart{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id FROM carts WHERE id=$1`, cartID,
	).Scan(&c.ID, &c.UserID)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *repo) Books(ctx context.Context, cartID int64) ([]model.Book, error) {
	const q = `
	SELECT b.id, b.title, b.author, b.genre, b.price, b.status
	FROM cart_books cb
	JOIN books b ON b.id = cb.book_id
	WHERE cb.cart_id = $1
	ORDER BY b.id`
	rows, err := r.db.QueryContext(ctx, q, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.Price, &b.Status); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) BookByID(ctx context.Context, bookID int64) (*model.Book, error) {
	var b model.Book
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, author, genre, price, status FROM books WHERE id=$1`, bookID,
	).Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.Price, &b.Status)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// AddBook is idempotent: re-adding a book already in the cart is a
// no-op at the join table.
func (r *repo) AddBook(ctx context.Context, cartID, bookID int64) error {
	const q = `
	INSERT INTO cart_books (cart_id, book_id)
	VALUES ($1,$2)
	ON CONFLICT (cart_id, book_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, q, cartID, bookID)
	return err
}

func (r *repo) RemoveBook(ctx context.Context, cartID, bookID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_books WHERE cart_id=$1 AND book_id=$2`, cartID, bookID)
	return err
}

func (r *repo) ListAll(ctx context.Context) ([]model.Cart, error) {
	const q = `
	SELECT c.id, c.user_id, b.id, b.title, b.author, b.genre, b.price, b.status
	FROM carts c
	LEFT JOIN cart_books cb ON cb.cart_id = c.id
	LEFT JOIN books b ON b.id = cb.book_id
	ORDER BY c.id, b.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Cart
	for rows.Next() {
		var (
			cartID, userID int64
			bookID         sql.NullInt64
			title, author  sql.NullString
			genre, status  sql.NullString
			price          sql.NullInt64
		)
		if err := rows.Scan(&cartID, &userID, &bookID, &title, &author, &genre, &price, &status); err != nil {
			return nil, err
		}
		if len(out) == 0 || out[len(out)-1].ID != cartID {
			out = append(out, model.Cart{ID: cartID, UserID: userID})
		}
		if bookID.Valid {
			c := &out[len(out)-1]
			c.Books = append(c.Books, model.Book{
				ID:     bookID.Int64,
				Title:  title.String,
				Author: author.String,
				Genre:  model.Genre(genre.String),
				Price:  price.Int64,
				Status: model.BookStatus(status.String),
			})
		}
	}
	return out, rows.Err()
}
