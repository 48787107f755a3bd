package handler

import (
	"database/sql"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/kingola1/brinkett-booking/internal/model"
	"github.com/kingola1/brinkett-booking/internal/repository"
)

// ApartmentAdminHandler covers the admin side of the catalog:
// apartment CRUD, photo management and image upload.
type ApartmentAdminHandler struct {
	Apartments *repository.ApartmentRepo
	UploadDir  string
}

func NewApartmentAdminHandler(apartments *repository.ApartmentRepo, uploadDir string) *ApartmentAdminHandler {
	if apartments == nil {
		panic("nil repository passed to NewApartmentAdminHandler")
	}
	return &ApartmentAdminHandler{Apartments: apartments, UploadDir: uploadDir}
}

type apartmentReq struct {
	Name          string   `json:"name"`
	Description   *string  `json:"description"`
	Location      string   `json:"location"`
	PricePerNight float64  `json:"price_per_night"`
	MaxGuests     uint32   `json:"max_guests"`
	Amenities     []string `json:"amenities"`
}

// Create handles POST /v1/admin/apartments.
func (h *ApartmentAdminHandler) Create(c echo.Context) error {
	var req apartmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Location) == "" ||
		req.PricePerNight <= 0 || req.MaxGuests == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Name, location, price and max guests are required"})
	}
	id, err := h.Apartments.Create(c.Request().Context(), &model.Apartment{
		Name:          req.Name,
		Description:   req.Description,
		Location:      req.Location,
		PricePerNight: req.PricePerNight,
		MaxGuests:     req.MaxGuests,
		Amenities:     req.Amenities,
	})
	if err != nil {
		c.Logger().Errorf("create apartment: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create apartment"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "apartmentId": id})
}

// Update handles PUT /v1/admin/apartments/:id.  The nightly price may
// change here; existing bookings keep their frozen totals.
func (h *ApartmentAdminHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid apartment id"})
	}
	var req apartmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	err = h.Apartments.Update(c.Request().Context(), &model.Apartment{
		ID:            id,
		Name:          req.Name,
		Description:   req.Description,
		Location:      req.Location,
		PricePerNight: req.PricePerNight,
		MaxGuests:     req.MaxGuests,
		Amenities:     req.Amenities,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Apartment not found"})
		}
		c.Logger().Errorf("update apartment: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update apartment details"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Delete handles DELETE /v1/admin/apartments/:id.  Photos, bookings
// and blocked dates go with the apartment.
func (h *ApartmentAdminHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid apartment id"})
	}
	if err := h.Apartments.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Apartment not found"})
		}
		c.Logger().Errorf("delete apartment: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete apartment"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

type addPhotoReq struct {
	URL       string `json:"photo_url"`
	IsPrimary bool   `json:"is_primary"`
}

// AddPhoto handles POST /v1/admin/apartments/:id/photos.  Setting
// is_primary demotes any current primary photo so at most one photo
// per apartment carries the flag.
func (h *ApartmentAdminHandler) AddPhoto(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid apartment id"})
	}
	var req addPhotoReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.URL == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "photo_url is required"})
	}
	photoID, err := h.Apartments.AddPhoto(c.Request().Context(), id, req.URL, req.IsPrimary)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Apartment not found"})
		}
		c.Logger().Errorf("add photo: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to add photo"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "photoId": photoID})
}

// DeletePhoto handles DELETE /v1/admin/apartments/:apartmentId/photos/:photoId.
func (h *ApartmentAdminHandler) DeletePhoto(c echo.Context) error {
	apartmentID, err := strconv.ParseUint(c.Param("apartmentId"), 10, 64)
	if err != nil || apartmentID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid apartment id"})
	}
	photoID, err := strconv.ParseUint(c.Param("photoId"), 10, 64)
	if err != nil || photoID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid photo id"})
	}
	if err := h.Apartments.DeletePhoto(c.Request().Context(), apartmentID, photoID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Photo not found"})
		}
		c.Logger().Errorf("delete photo: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete photo"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Upload handles POST /v1/admin/uploads.  The multipart "image" file
// is stored under the upload directory with a random UUID name and the
// public /uploads URL is returned for use in AddPhoto.
func (h *ApartmentAdminHandler) Upload(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No file uploaded"})
	}
	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No file uploaded"})
	}
	defer src.Close()

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		c.Logger().Errorf("upload: mkdir: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to store file"})
	}
	name := uuid.NewString() + filepath.Ext(file.Filename)
	dst, err := os.Create(filepath.Join(h.UploadDir, name))
	if err != nil {
		c.Logger().Errorf("upload: create: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to store file"})
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		c.Logger().Errorf("upload: write: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to store file"})
	}
	return c.JSON(http.StatusOK, echo.Map{"url": "/uploads/" + name})
}
