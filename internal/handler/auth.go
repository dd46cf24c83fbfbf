package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sweetdelights/storefront/internal/config"
	"github.com/sweetdelights/storefront/internal/model"
	"github.com/sweetdelights/storefront/internal/service"
	"github.com/sweetdelights/storefront/internal/utils"
)

// AuthHandler bundles dependencies for the account endpoints.
type AuthHandler struct {
	Cfg      config.Config
	Accounts *service.Accounts
}

func NewAuthHandler(cfg config.Config, a *service.Accounts) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Accounts: a}
}

// ----- DTOs -----

type registerReq struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type authResp struct {
	User   model.SessionUser `json:"user"`
	Access tokenPart         `json:"access"`
}

// Register creates an account, establishes the session and returns an
// access token. Signup validation stops at the first failing rule, so the
// response always names exactly one problem.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx := c.Request().Context()
	user, err := h.Accounts.SignUp(ctx, req.Name, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		case errors.Is(err, service.ErrNameTooShort),
			errors.Is(err, service.ErrInvalidEmail),
			errors.Is(err, service.ErrPasswordTooShort),
			errors.Is(err, service.ErrPasswordMismatch):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create account failed"})
	}
	return h.respondWithToken(c, http.StatusCreated, user)
}

// Login verifies credentials and establishes the session. Unknown email and
// wrong password answer identically.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	user, err := h.Accounts.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "sign in failed"})
	}
	return h.respondWithToken(c, http.StatusOK, user)
}

// Logout clears the session flag and projection. Tokens are short-lived and
// simply expire; there is nothing to revoke.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.Accounts.SignOut(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "sign out failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the active session's user projection.
func (h *AuthHandler) Me(c echo.Context) error {
	su, ok := h.Accounts.CurrentUser(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not signed in"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"user":     su,
		"is_admin": su.Role == model.RoleAdmin,
	})
}

func (h *AuthHandler) respondWithToken(c echo.Context, status int, user model.User) error {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, user.ID, user.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	return c.JSON(status, authResp{
		User:   user.Session(),
		Access: tokenPart{Token: access.Token, Expires: access.Exp},
	})
}
