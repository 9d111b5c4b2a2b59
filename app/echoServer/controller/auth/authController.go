// app/echoServer/controller/auth/authController.go
package auth

import (
	"log/slog"
	"net/http"

	"bookstore/app/echoServer/validation"
	"bookstore/model"
	authsvc "bookstore/service/auth"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc authsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// SignUp a new user
// @Summary      Sign up
// @Description  Create an account (and its cart) with username/email uniqueness
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  model.SignUpReq  true  "Sign up payload"
// @Success      200  {object}  map[string]any
// @Failure      409  {object}  map[string]any "email/username already taken"
// @Failure      422  {object}  map[string]any "validation failure"
// @Router       /auth/signup [post]
func (ct *Controller) SignUp(c echo.Context) error {
	var req model.SignUpReq

	if err := c.Bind(&req); err != nil {
		ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := ct.V.Struct(req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"message": "Invalid input",
			"errors":  validation.Errors(err),
		})
	}

	u, err := ct.Svc.SignUp(c.Request().Context(), req)
	if err != nil {
		switch authsvc.Code(err) {
		case authsvc.ErrEmailTaken:
			return echo.NewHTTPError(http.StatusConflict, "email already registered")
		case authsvc.ErrUsernameTaken:
			return echo.NewHTTPError(http.StatusConflict, "username already taken")
		case authsvc.ErrBadInput:
			return echo.NewHTTPError(http.StatusBadRequest, "bad input")
		default:
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			ct.Log.Error("signup failed",
				"err", err,
				"req_id", rid,
				"path", c.Path(),
				"method", c.Request().Method,
			)
			return echo.NewHTTPError(http.StatusInternalServerError, "signup failed")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"user": u})
}

// SignIn
// @Summary      Sign in
// @Description  Sign in with username + password, returns access and refresh JWTs
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  model.SignInReq  true  "Sign in payload"
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /auth/signin [post]
func (ct *Controller) SignIn(c echo.Context) error {
	var req model.SignInReq

	if err := c.Bind(&req); err != nil {
		ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := ct.V.Struct(req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"message": "Invalid input",
			"errors":  validation.Errors(err),
		})
	}

	u, access, refresh, err := ct.Svc.SignIn(c.Request().Context(), req)
	if err != nil {
		switch authsvc.Code(err) {
		case authsvc.ErrInvalidCreds:
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
		case authsvc.ErrBadInput:
			ct.Log.Warn("bad input", "path", c.Path(), "err", err)
			return echo.NewHTTPError(http.StatusBadRequest, "bad input")
		default:
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			ct.Log.Error("signin failed",
				"err", err,
				"req_id", rid,
				"path", c.Path(),
				"method", c.Request().Method,
			)
			return echo.NewHTTPError(http.StatusInternalServerError, "signin failed")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"accessToken":  access,
		"refreshToken": refresh,
		"user":         u,
	})
}

// Refresh
// @Summary      Refresh access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  model.RefreshReq  true  "Refresh payload"
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /auth/refresh [post]
func (ct *Controller) Refresh(c echo.Context) error {
	var req model.RefreshReq

	if err := c.Bind(&req); err != nil {
		ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := ct.V.Struct(req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"message": "Invalid input",
			"errors":  validation.Errors(err),
		})
	}

	access, err := ct.Svc.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		switch authsvc.Code(err) {
		case authsvc.ErrInvalidRefresh:
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		default:
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			ct.Log.Error("refresh failed", "err", err, "req_id", rid, "path", c.Path())
			return echo.NewHTTPError(http.StatusInternalServerError, "refresh failed")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"accessToken": access})
}
