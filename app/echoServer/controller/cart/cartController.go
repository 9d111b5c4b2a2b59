package cart

import (
	"log/slog"
	"net/http"
	"strconv"

	"bookstore/model"
	cartsvc "bookstore/service/cart"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc cartsvc.Service
	Log *slog.Logger
}

func caller(c echo.Context) (int64, model.Role) {
	uid, _ := c.Get("user_id").(int64)
	role, _ := c.Get("role").(string)
	return uid, model.Role(role)
}

func pathID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

// GET /carts  (admin)
func (h *Controller) ListAll(c echo.Context) error {
	if _, role := caller(c); role != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	carts, err := h.Svc.ListAll(c.Request().Context())
	if err != nil {
		h.Log.Error("cart list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"carts": carts})
}

// GET /carts/:cartId
func (h *Controller) Detail(c echo.Context) error {
	cartID, ok := pathID(c, "cartId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, role := caller(c)

	books, err := h.Svc.Books(c.Request().Context(), cartID, uid, role)
	if err != nil {
		if cartsvc.Code(err) == cartsvc.ErrCartNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Cart not found"})
		}
		h.Log.Error("cart detail error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"cart": books})
}

// POST /carts/:cartId/:bookId
func (h *Controller) AddBook(c echo.Context) error {
	cartID, ok := pathID(c, "cartId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid cart id"})
	}
	bookID, ok := pathID(c, "bookId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid book id"})
	}
	uid, _ := caller(c)

	if err := h.Svc.AddBook(c.Request().Context(), cartID, bookID, uid); err != nil {
		switch cartsvc.Code(err) {
		case cartsvc.ErrCartNotFound, cartsvc.ErrBookNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Cart or book not found"})
		case cartsvc.ErrUnavailable:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Book is not available"})
		default:
			h.Log.Error("cart add book error", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Book added to cart successfully"})
}

// DELETE /carts/:cartId/:bookId
func (h *Controller) RemoveBook(c echo.Context) error {
	cartID, ok := pathID(c, "cartId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid cart id"})
	}
	bookID, ok := pathID(c, "bookId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid book id"})
	}
	uid, _ := caller(c)

	if err := h.Svc.RemoveBook(c.Request().Context(), cartID, bookID, uid); err != nil {
		if cartsvc.Code(err) == cartsvc.ErrCartNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Cart not found"})
		}
		h.Log.Error("cart remove book error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Book removed from cart successfully"})
}
