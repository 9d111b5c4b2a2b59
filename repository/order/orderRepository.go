// repository/order/repo.go
package orderrepo

import (
	"context"
	"database/sql"

	"bookstore/model"
)

type Repo interface {
	// Cart snapshot
	CartForUpdate(ctx context.Context, tx *sql.Tx, userID int64) (cartID int64, err error)
	CartBooksForUpdate(ctx context.Context, tx *sql.Tx, cartID int64) ([]model.Book, error)
	ClearCart(ctx context.Context, tx *sql.Tx, cartID int64) error

	// Orders
	InsertOrder(ctx context.Context, tx *sql.Tx, o *model.Order) error
	AttachBook(ctx context.Context, tx *sql.Tx, orderID, bookID int64) error
	MarkBorrowed(ctx context.Context, tx *sql.Tx, bookID int64) (bool, error)

	// Reversal
	OrderForUpdate(ctx context.Context, tx *sql.Tx, orderID int64) (*model.Order, error)
	OrderBookIDs(ctx context.Context, tx *sql.Tx, orderID int64) ([]int64, error)
	ReleaseBook(ctx context.Context, tx *sql.Tx, bookID int64) error
	DeleteOrder(ctx context.Context, tx *sql.Tx, orderID int64) error

	// Reads
	Detail(ctx context.Context, orderID int64) (*model.Order, error)
	BooksOf(ctx context.Context, orderID int64) ([]model.Book, error)
	ListAll(ctx context.Context) ([]model.Order, error)
}

type repo struct {
	db *sql.DB
}

func New(db *sql.DB) Repo { return &repo{db: db} }

// Cart snapshot

func (r *repo) CartForUpdate(ctx context.Context, tx *sql.Tx, userID int64) (int64, error) {
	const q = `
				SELECT id
				FROM carts
				WHERE user_id = $1
				FOR UPDATE`
	var cartID int64
	err := tx.QueryRowContext(ctx, q, userID).Scan(&cartID)
	return cartID, err
}

// CartBooksForUpdate locks the cart's book rows so a concurrent
// checkout of the same book blocks behind this one, then fails its
// availability guard.
func (r *repo) CartBooksForUpdate(ctx context.Context, tx *sql.Tx, cartID int64) ([]model.Book, error) {
	const q = `
			SELECT b.id, b.title, b.author, b.genre, b.price, b.status
			FROM cart_books cb
			JOIN books b ON b.id = cb.book_id
			WHERE cb.cart_id = $1
			ORDER BY b.id
			FOR UPDATE OF b`
	rows, err := tx.QueryContext(ctx, q, cartID)
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

func (r *repo) ClearCart(ctx context.Context, tx *sql.Tx, cartID int64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM cart_books WHERE cart_id = $1`, cartID)
	return err
}

// Orders

func (r *repo) InsertOrder(ctx context.Context, tx *sql.Tx, o *model.Order) error {
	const q = `
		INSERT INTO orders (user_id, total_amount, name, address, phone, instructions)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	return tx.QueryRowContext(ctx, q,
		o.UserID, o.TotalAmount, o.Name, o.Address, o.Phone, o.Instructions,
	).Scan(&o.ID, &o.CreatedAt)
}

func (r *repo) AttachBook(ctx context.Context, tx *sql.Tx, orderID, bookID int64) error {
	const q = `INSERT INTO order_books (order_id, book_id) VALUES ($1, $2)`
	_, err := tx.ExecContext(ctx, q, orderID, bookID)
	return err
}

// MarkBorrowed flips Available to Borrowed. Guard: zero rows affected
// means the book was taken between snapshot and update.
func (r *repo) MarkBorrowed(ctx context.Context, tx *sql.Tx, bookID int64) (bool, error) {
	const q = `
		UPDATE books
		SET status = 'Borrowed'
		WHERE id = $1
		AND status = 'Available'`
	res, err := tx.ExecContext(ctx, q, bookID)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

// Reversal

func (r *repo) OrderForUpdate(ctx context.Context, tx *sql.Tx, orderID int64) (*model.Order, error) {
	const q = `
		SELECT id, user_id, total_amount, name, address, phone, instructions, created_at
		FROM orders
		WHERE id = $1
		FOR UPDATE`
	o := &model.Order{}
	err := tx.QueryRowContext(ctx, q, orderID).Scan(
		&o.ID, &o.UserID, &o.TotalAmount, &o.Name, &o.Address, &o.Phone, &o.Instructions, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repo) OrderBookIDs(ctx context.Context, tx *sql.Tx, orderID int64) ([]int64, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT book_id FROM order_books WHERE order_id = $1 ORDER BY book_id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// ReleaseBook unconditionally resets the status; reversal wins over
// any later mutation.
func (r *repo) ReleaseBook(ctx context.Context, tx *sql.Tx, bookID int64) error {
	const q = `
		UPDATE books
		SET status = 'Available'
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, bookID)
	return err
}

func (r *repo) DeleteOrder(ctx context.Context, tx *sql.Tx, orderID int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM order_books WHERE order_id = $1`, orderID); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, orderID)
	return err
}

// Reads

func (r *repo) Detail(ctx context.Context, orderID int64) (*model.Order, error) {
	const q = `
		SELECT id, user_id, total_amount, name, address, phone, instructions, created_at
		FROM orders
		WHERE id = $1`
	o := &model.Order{}
	err := r.db.QueryRowContext(ctx, q, orderID).Scan(
		&o.ID, &o.UserID, &o.TotalAmount, &o.Name, &o.Address, &o.Phone, &o.Instructions, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repo) BooksOf(ctx context.Context, orderID int64) ([]model.Book, error) {
	const q = `
		SELECT b.id, b.title, b.author, b.genre, b.price, b.status
		FROM order_books ob
		JOIN books b ON b.id = ob.book_id
		WHERE ob.order_id = $1
		ORDER BY b.id`
	rows, err := r.db.QueryContext(ctx, q, orderID)
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

func (r *repo) ListAll(ctx context.Context) ([]model.Order, error) {
	const q = `
		SELECT o.id, o.user_id, o.total_amount, o.name, o.address, o.phone, o.instructions, o.created_at,
		       b.id, b.title, b.author, b.genre, b.price, b.status
		FROM orders o
		LEFT JOIN order_books ob ON ob.order_id = o.id
		LEFT JOIN books b ON b.id = ob.book_id
		ORDER BY o.created_at DESC, o.id DESC, b.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Order
	for rows.Next() {
		var (
			o             model.Order
			bookID, price sql.NullInt64
			title, author sql.NullString
			genre, status sql.NullString
		)
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.TotalAmount, &o.Name, &o.Address, &o.Phone, &o.Instructions, &o.CreatedAt,
			&bookID, &title, &author, &genre, &price, &status,
		); err != nil {
			return nil, err
		}
		if len(out) == 0 || out[len(out)-1].ID != o.ID {
			out = append(out, o)
		}
		if bookID.Valid {
			last := &out[len(out)-1]
			last.Books = append(last.Books, model.Book{
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
