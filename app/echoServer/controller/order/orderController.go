package order

import (
	"log/slog"
	"net/http"
	"strconv"

	"bookstore/app/echoServer/validation"
	"bookstore/model"
	ordersvc "bookstore/service/order"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc ordersvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func caller(c echo.Context) (int64, model.Role) {
	uid, _ := c.Get("user_id").(int64)
	role, _ := c.Get("role").(string)
	return uid, model.Role(role)
}

// POST /orders
func (h *Controller) Checkout(c echo.Context) error {
	var req CheckoutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"message": "Invalid input",
			"errors":  validation.Errors(err),
		})
	}
	uid, _ := caller(c)

	o, err := h.Svc.Checkout(c.Request().Context(), uid, ordersvc.Shipping{
		Name:         req.Name,
		Address:      req.Address,
		Phone:        req.Phone,
		Instructions: req.Instructions,
	})
	if err != nil {
		switch ordersvc.Code(err) {
		case ordersvc.ErrNothingToCheckout:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Nothing to check out"})
		case ordersvc.ErrUnavailable:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "A book in the cart is no longer available"})
		default:
			h.Log.Error("checkout error", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Checked out successfully",
		"order":   o,
	})
}

// GET /orders  (admin)
func (h *Controller) ListAll(c echo.Context) error {
	if _, role := caller(c); role != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	orders, err := h.Svc.ListAll(c.Request().Context())
	if err != nil {
		h.Log.Error("order list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": orders})
}

// GET /orders/:orderId
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, role := caller(c)

	o, err := h.Svc.Detail(c.Request().Context(), id, uid, role)
	if err != nil {
		if ordersvc.Code(err) == ordersvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Order not found"})
		}
		h.Log.Error("order detail error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"order": o})
}

// DELETE /orders/:orderId
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, role := caller(c)

	if err := h.Svc.Delete(c.Request().Context(), id, uid, role); err != nil {
		if ordersvc.Code(err) == ordersvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Order not found"})
		}
		h.Log.Error("order delete error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Order removed successfully"})
}
