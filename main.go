// Package main bookstore API.
//
// @title           Online Bookstore API
// @version         1.0
// @description     bookstore service (auth, catalog, carts, orders).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"bookstore/app/echoServer"
	authctrl "bookstore/app/echoServer/controller/auth"
	bookctrl "bookstore/app/echoServer/controller/book"
	cartctrl "bookstore/app/echoServer/controller/cart"
	orderctrl "bookstore/app/echoServer/controller/order"
	userctrl "bookstore/app/echoServer/controller/user"
	"bookstore/app/echoServer/validation"
	"bookstore/config"
	bookrepo "bookstore/repository/book"
	cartrepo "bookstore/repository/cart"
	orderrepo "bookstore/repository/order"
	userrepo "bookstore/repository/user"
	authsvc "bookstore/service/auth"
	booksvc "bookstore/service/book"
	cartsvc "bookstore/service/cart"
	ordersvc "bookstore/service/order"
	usersvc "bookstore/service/user"
	"bookstore/util/database"
	"context"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: *sql.DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := userrepo.New(db)
	br := bookrepo.New(db)
	cr := cartrepo.New(db)
	or := orderrepo.New(db)

	// services
	as := authsvc.New(ur, cfg.AccessSecret, cfg.RefreshSecret)
	bs := booksvc.New(br)
	cs := cartsvc.New(cr)
	osvc := ordersvc.New(db, or)
	us := usersvc.New(ur)

	// controllers
	v := validation.NewValidate()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	cartC := &cartctrl.Controller{Svc: cs, Log: log}
	orderC := &orderctrl.Controller{Svc: osvc, V: v, Log: log}
	userC := &userctrl.Controller{Svc: us, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:  authC,
		Book:  bookC,
		Cart:  cartC,
		Order: orderC,
		User:  userC,

		AccessSecret: cfg.AccessSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "PORT_env", os.Getenv("PORT"), "chosen_port", port)

	e.Logger.Fatal(e.Start(":" + port))
}
