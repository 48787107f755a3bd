package handler

import (
	"database/sql"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kingola1/brinkett-booking/internal/repository"
)

// AdminHandler groups the repositories behind the back office:
// booking management, blocked dates, dashboard stats and settings.
// Routes using it are gated by JWT + role middleware; the handlers
// themselves contain no authorization logic.
type AdminHandler struct {
	Bookings *repository.BookingRepo
	Blocked  *repository.BlockedDateRepo
	Stats    *repository.StatsRepo
	Settings *repository.SettingRepo
}

func NewAdminHandler(bookings *repository.BookingRepo, blocked *repository.BlockedDateRepo, stats *repository.StatsRepo, settings *repository.SettingRepo) *AdminHandler {
	if bookings == nil || blocked == nil || stats == nil || settings == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Bookings: bookings, Blocked: blocked, Stats: stats, Settings: settings}
}

// ListBookings handles GET /v1/admin/bookings with optional
// ?status= filter and ?page=/&limit= pagination.  limit=all returns
// everything in one page.
func (h *AdminHandler) ListBookings(c echo.Context) error {
	status := c.QueryParam("status")
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limitParam := c.QueryParam("limit")
	limit := 10
	if limitParam == "all" {
		limit = math.MaxInt32
		page = 1
	} else if n, err := strconv.Atoi(limitParam); err == nil && n > 0 {
		limit = n
	}

	bookings, total, err := h.Bookings.List(c.Request().Context(), status, page, limit)
	if err != nil {
		c.Logger().Errorf("list bookings: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch bookings"})
	}
	items := make([]bookingJSON, 0, len(bookings))
	for i := range bookings {
		items = append(items, bookingView(&bookings[i]))
	}
	totalPages := 1
	if limitParam != "all" && limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return c.JSON(http.StatusOK, echo.Map{
		"bookings":    items,
		"totalCount":  total,
		"currentPage": page,
		"totalPages":  totalPages,
	})
}

type updateStatusReq struct {
	Status string `json:"status"`
}

// UpdateBookingStatus handles PUT /v1/admin/bookings/:id.  Only the
// confirmed → cancelled and confirmed → completed transitions exist;
// both targets are terminal and nothing returns to confirmed.
func (h *AdminHandler) UpdateBookingStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req updateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	err = h.Bookings.UpdateStatus(c.Request().Context(), id, req.Status)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	case errors.Is(err, repository.ErrInvalidStatus):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid status"})
	case errors.Is(err, sql.ErrNoRows):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Booking not found"})
	case errors.Is(err, repository.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, echo.Map{"error": "Booking is no longer confirmed"})
	default:
		c.Logger().Errorf("update booking status: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update booking"})
	}
}

// DeleteBooking handles DELETE /v1/admin/bookings/:id.  Hard delete,
// no audit trail.
func (h *AdminHandler) DeleteBooking(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	if err := h.Bookings.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Booking not found"})
		}
		c.Logger().Errorf("delete booking: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete booking"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Dashboard handles GET /v1/admin/dashboard: the stat tiles of the
// back office landing page.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	stats, err := h.Stats.Dashboard(c.Request().Context(), time.Now().UTC())
	if err != nil {
		c.Logger().Errorf("dashboard: %v", err)
		// The dashboard always renders; zeroed tiles beat a failed page.
		return c.JSON(http.StatusOK, repository.DashboardStats{})
	}
	return c.JSON(http.StatusOK, stats)
}

type updateSettingReq struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// UpdateSetting handles PUT /v1/admin/settings.
func (h *AdminHandler) UpdateSetting(c echo.Context) error {
	var req updateSettingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Key == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Key is required"})
	}
	if err := h.Settings.Set(c.Request().Context(), req.Key, req.Value); err != nil {
		c.Logger().Errorf("update setting: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update setting"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
