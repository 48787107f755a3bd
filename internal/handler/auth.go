package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kingola1/brinkett-booking/internal/config"
	"github.com/kingola1/brinkett-booking/internal/repository"
	"github.com/kingola1/brinkett-booking/internal/utils"
)

// AuthHandler implements admin login.  Admins authenticate with a
// username/password pair and receive a signed access token; the token
// is the explicit capability that gates every back-office route.
type AuthHandler struct {
	Cfg    config.Config
	Admins *repository.AdminRepo
}

func NewAuthHandler(cfg config.Config, admins *repository.AdminRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Admins: admins}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies credentials against the admins table and issues an
// HS256 access token with role ADMIN.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Username and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	admin, err := h.Admins.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
		}
		c.Logger().Errorf("login: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	if !utils.VerifyPassword(admin.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, admin.ID, admin.Username, "ADMIN", h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"username": admin.Username,
		"token":    access.Token,
		"expires":  access.Exp,
	})
}

// Me returns the authenticated admin's identity, used by the back
// office to restore a session on reload.
func (h *AuthHandler) Me(c echo.Context) error {
	username, _ := c.Get("username").(string)
	return c.JSON(http.StatusOK, echo.Map{"authenticated": true, "username": username})
}
