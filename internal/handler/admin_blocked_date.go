package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kingola1/brinkett-booking/internal/repository"
	"github.com/kingola1/brinkett-booking/internal/utils"
)

type addBlockedDateReq struct {
	ApartmentID uint64 `json:"apartmentId"`
	Date        string `json:"date"`
	Reason      string `json:"reason"`
}

// AddBlockedDate handles POST /v1/admin/blocked-dates.  The date must
// be a calendar day; the reason defaults to "Maintenance".
func (h *AdminHandler) AddBlockedDate(c echo.Context) error {
	var req addBlockedDateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Date is required"})
	}
	if req.ApartmentID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Apartment is required"})
	}
	if _, err := utils.ParseDate(req.Date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Date must be YYYY-MM-DD"})
	}
	id, err := h.Blocked.Create(c.Request().Context(), req.ApartmentID, req.Date, req.Reason)
	if err != nil {
		if errors.Is(err, repository.ErrDateAlreadyBlocked) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Date is already blocked"})
		}
		c.Logger().Errorf("add blocked date: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to add blocked date"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "id": id})
}

// ListBlockedDates handles GET /v1/admin/apartments/:id/blocked-dates
// ordered by day.
func (h *AdminHandler) ListBlockedDates(c echo.Context) error {
	apartmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || apartmentID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid apartment id"})
	}
	items, err := h.Blocked.List(c.Request().Context(), apartmentID)
	if err != nil {
		c.Logger().Errorf("list blocked dates: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch blocked dates"})
	}
	type blockedJSON struct {
		ID          uint64 `json:"id"`
		ApartmentID uint64 `json:"apartmentId"`
		Date        string `json:"date"`
		Reason      string `json:"reason"`
	}
	out := make([]blockedJSON, 0, len(items))
	for _, b := range items {
		out = append(out, blockedJSON{ID: b.ID, ApartmentID: b.ApartmentID, Date: b.Date, Reason: b.Reason})
	}
	return c.JSON(http.StatusOK, out)
}

// RemoveBlockedDate handles DELETE /v1/admin/blocked-dates/:id.
func (h *AdminHandler) RemoveBlockedDate(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid blocked date id"})
	}
	if err := h.Blocked.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Blocked date not found"})
		}
		c.Logger().Errorf("remove blocked date: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to remove blocked date"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
