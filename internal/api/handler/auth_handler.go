package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gamevault/catalog-api/internal/api/metrics"
	"github.com/gamevault/catalog-api/internal/api/middleware"
	"github.com/gamevault/catalog-api/internal/core/domain"
	"github.com/gamevault/catalog-api/internal/core/ports"
)

// CookieSettings describes the auth cookie the login endpoint issues.
type CookieSettings struct {
	Name     string
	Path     string
	HTTPOnly bool
	Secure   bool
	SameSite http.SameSite
	// TTL is the token lifetime; the cookie max-age mirrors it in seconds.
	TTL time.Duration
}

type AuthHandler struct {
	authService ports.AuthService
	cookie      CookieSettings
}

func NewAuthHandler(authService ports.AuthService, cookie CookieSettings) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

// Register creates a new USER account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password, req.Email)
	if err != nil {
		return err
	}

	metrics.AccountsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, user)
}

// Login verifies credentials and issues the auth cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      429   {object}  map[string]any
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, _, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBadCredentials):
			metrics.LoginsTotal.WithLabelValues("bad_credentials").Inc()
		case errors.Is(err, domain.ErrTooManyAttempts):
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	c.SetCookie(h.authCookie(token, int(h.cookie.TTL.Seconds())))
	return c.JSON(http.StatusOK, loginResponse{Message: "Login successful", Token: token})
}

// Logout clears the auth cookie. The token itself stays valid until expiry;
// sessions are stateless so there is nothing server-side to revoke.
//
// @Summary      Logout
// @Tags         auth
// @Success      204  "cookie cleared"
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.authCookie("", -1))
	return c.NoContent(http.StatusNoContent)
}

// Edit updates an existing account.
//
// @Summary      Edit a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      editUserRequest  true  "Fields to apply"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /auth/edit [put]
func (h *AuthHandler) Edit(c echo.Context) error {
	var req editUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authService.Edit(c.Request().Context(), ports.EditUserInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete removes an account by id or username. Deleting your own account is
// rejected whatever your role.
//
// @Summary      Delete a user
// @Tags         auth
// @Accept       json
// @Param        body  body  deleteUserRequest  true  "Target selector"
// @Success      204   "account deleted"
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /auth/delete [delete]
func (h *AuthHandler) Delete(c echo.Context) error {
	var req deleteUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "missing authentication identity")
	}

	err := h.authService.Delete(c.Request().Context(), identity, ports.DeleteUserInput{
		ID:       req.ID,
		Username: req.Username,
	})
	if err != nil {
		return err
	}

	metrics.AccountsDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) authCookie(token string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     h.cookie.Path,
		HttpOnly: h.cookie.HTTPOnly,
		Secure:   h.cookie.Secure,
		SameSite: h.cookie.SameSite,
		MaxAge:   maxAge,
	}
}
