package echoServer

import (
	"bookstore/app/echoServer/controller/auth"
	"bookstore/app/echoServer/controller/book"
	"bookstore/app/echoServer/controller/cart"
	"bookstore/app/echoServer/controller/order"
	"bookstore/app/echoServer/controller/user"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth         *auth.Controller
	Book         *book.Controller
	Cart         *cart.Controller
	Order        *order.Controller
	User         *user.Controller
	AccessSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	e.POST("/auth/signup", c.Auth.SignUp)
	e.POST("/auth/signin", c.Auth.SignIn)
	e.POST("/auth/refresh", c.Auth.Refresh)

	// Authenticated
	g := e.Group("")
	g.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.AccessSecret),

		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	g.Use(Identity())

	// Books
	g.GET("/books", c.Book.List)
	g.GET("/books/search", c.Book.Search)
	g.GET("/books/filter", c.Book.Filter)
	g.GET("/books/:bookId", c.Book.Detail)
	// Admin endpoints
	g.POST("/books", c.Book.Create)
	g.PUT("/books/:bookId", c.Book.Update)
	g.DELETE("/books/:bookId", c.Book.Delete)

	// Carts
	g.GET("/carts", c.Cart.ListAll)
	g.GET("/carts/:cartId", c.Cart.Detail)
	g.POST("/carts/:cartId/:bookId", c.Cart.AddBook)
	g.DELETE("/carts/:cartId/:bookId", c.Cart.RemoveBook)

	// Orders
	g.GET("/orders", c.Order.ListAll)
	g.GET("/orders/:orderId", c.Order.Detail)
	g.POST("/orders", c.Order.Checkout)
	g.DELETE("/orders/:orderId", c.Order.Delete)

	// Users
	g.GET("/users", c.User.List)
	g.GET("/users/:userId", c.User.Detail)
	g.PUT("/users/:userId", c.User.Update)
	g.DELETE("/users/:userId", c.User.Delete)
}
