// model/cart.go
package model

type Cart struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Books  []Book `json:"books,omitempty"`
}
