package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kingola1/brinkett-booking/internal/repository"
)

// PublicHandler exposes the unauthenticated apartment catalog and the
// public settings read.  These routes carry no guest state and are
// safe to cache.
type PublicHandler struct {
	Apartments *repository.ApartmentRepo
	Settings   *repository.SettingRepo
}

func NewPublicHandler(apartments *repository.ApartmentRepo, settings *repository.SettingRepo) *PublicHandler {
	if apartments == nil || settings == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{Apartments: apartments, Settings: settings}
}

// ListApartments handles GET /v1/apartments.  Each entry includes the
// cover photo: the one flagged primary, or the first photo when none
// is flagged.
func (h *PublicHandler) ListApartments(c echo.Context) error {
	items, err := h.Apartments.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list apartments: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch apartments"})
	}
	return c.JSON(http.StatusOK, items)
}

// GetApartment handles GET /v1/apartments/:id with the full photo list.
func (h *PublicHandler) GetApartment(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid apartment id"})
	}
	detail, err := h.Apartments.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Apartment not found"})
		}
		c.Logger().Errorf("get apartment: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch apartment details"})
	}
	return c.JSON(http.StatusOK, detail)
}

// GetSettings handles GET /v1/settings and returns the public
// key/value settings map (policies, check-in/check-out times).
func (h *PublicHandler) GetSettings(c echo.Context) error {
	settings, err := h.Settings.All(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("get settings: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch settings"})
	}
	return c.JSON(http.StatusOK, settings)
}
