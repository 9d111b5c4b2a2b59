// model/order.go
package model

import "time"

type Order struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	TotalAmount  int64     `json:"total_amount"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	Instructions *string   `json:"instructions,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	Books        []Book    `json:"books,omitempty"`
}
