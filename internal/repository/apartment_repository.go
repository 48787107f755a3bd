package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/kingola1/brinkett-booking/internal/model"
)

// ApartmentRepo provides CRUD operations for apartments and their
// photos.  Amenities are stored as a JSON array string in a TEXT
// column and decoded on read.
type ApartmentRepo struct {
	db *sql.DB
}

// NewApartmentRepo returns a new ApartmentRepo bound to the given database.
func NewApartmentRepo(db *sql.DB) *ApartmentRepo { return &ApartmentRepo{db: db} }

// DB exposes the underlying handle for transaction-scoped callers.
func (r *ApartmentRepo) DB() *sql.DB { return r.db }

// PhotoView is the JSON shape of one photo in apartment details.
type PhotoView struct {
	ID        uint64 `json:"id"`
	URL       string `json:"url"`
	IsPrimary bool   `json:"is_primary"`
}

// Summary is the listing shape of an apartment: the row itself plus a
// single cover photo.  The cover is the primary photo when one is
// flagged, otherwise the first photo by insertion order.
type Summary struct {
	ID            uint64   `json:"id"`
	Name          string   `json:"name"`
	Description   *string  `json:"description"`
	Location      string   `json:"location"`
	PricePerNight float64  `json:"price_per_night"`
	MaxGuests     uint32   `json:"max_guests"`
	Amenities     []string `json:"amenities"`
	PrimaryPhoto  *string  `json:"primary_photo"`
}

// Detail is the full apartment view with every photo.
type Detail struct {
	ID            uint64      `json:"id"`
	Name          string      `json:"name"`
	Description   *string     `json:"description"`
	Location      string      `json:"location"`
	PricePerNight float64     `json:"price_per_night"`
	MaxGuests     uint32      `json:"max_guests"`
	Amenities     []string    `json:"amenities"`
	Photos        []PhotoView `json:"photos"`
}

// Create inserts a new apartment and returns its generated ID.
func (r *ApartmentRepo) Create(ctx context.Context, a *model.Apartment) (uint64, error) {
	amenities, err := json.Marshal(a.Amenities)
	if err != nil {
		return 0, err
	}
	const q = `INSERT INTO apartments (name, description, location, price_per_night, max_guests, amenities)
	           VALUES (?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q,
		a.Name, a.Description, a.Location, a.PricePerNight, a.MaxGuests, string(amenities))
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update replaces the mutable fields of an apartment.  Returns
// sql.ErrNoRows when no apartment matches.
func (r *ApartmentRepo) Update(ctx context.Context, a *model.Apartment) error {
	amenities, err := json.Marshal(a.Amenities)
	if err != nil {
		return err
	}
	const q = `UPDATE apartments
	           SET name = ?, description = ?, location = ?, price_per_night = ?, max_guests = ?, amenities = ?
	           WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q,
		a.Name, a.Description, a.Location, a.PricePerNight, a.MaxGuests, string(amenities), a.ID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an apartment.  Photos, bookings and blocked dates
// cascade at the database level.  Returns sql.ErrNoRows when no
// apartment matches.
func (r *ApartmentRepo) Delete(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM apartments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetPriceTx returns the current nightly price of an apartment inside
// a transaction.  Booking admission uses it both as the existence
// check and as the price source for the frozen total, so the read
// shares the transaction with the conflict check and insert.
func (r *ApartmentRepo) GetPriceTx(ctx context.Context, tx *sql.Tx, id uint64) (float64, error) {
	var price float64
	err := tx.QueryRowContext(ctx, `SELECT price_per_night FROM apartments WHERE id = ?`, id).Scan(&price)
	return price, err
}

// GetByID returns the full apartment detail with its photos or
// sql.ErrNoRows when the apartment does not exist.
func (r *ApartmentRepo) GetByID(ctx context.Context, id uint64) (*Detail, error) {
	const q = `SELECT id, name, description, location, price_per_night, max_guests, amenities
	           FROM apartments WHERE id = ?`
	var d Detail
	var amenities sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID, &d.Name, &d.Description, &d.Location, &d.PricePerNight, &d.MaxGuests, &amenities,
	)
	if err != nil {
		return nil, err
	}
	d.Amenities = decodeAmenities(amenities)

	const photoQ = `SELECT id, photo_url, is_primary FROM apartment_photos
	                WHERE apartment_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, photoQ, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	d.Photos = []PhotoView{}
	for rows.Next() {
		var p PhotoView
		if err := rows.Scan(&p.ID, &p.URL, &p.IsPrimary); err != nil {
			return nil, err
		}
		d.Photos = append(d.Photos, p)
	}
	return &d, rows.Err()
}

// List returns all apartments with their cover photo.
func (r *ApartmentRepo) List(ctx context.Context) ([]Summary, error) {
	const q = `SELECT id, name, description, location, price_per_night, max_guests, amenities
	           FROM apartments ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	summaries := make([]Summary, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var s Summary
		var amenities sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Location, &s.PricePerNight, &s.MaxGuests, &amenities); err != nil {
			return nil, err
		}
		s.Amenities = decodeAmenities(amenities)
		index[s.ID] = len(summaries)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return summaries, nil
	}

	// One pass over all photos: a primary photo wins, otherwise the
	// first photo seen for the apartment is kept.
	const photoQ = `SELECT apartment_id, photo_url, is_primary FROM apartment_photos ORDER BY id`
	prows, err := r.db.QueryContext(ctx, photoQ)
	if err != nil {
		return nil, err
	}
	defer prows.Close()
	primarySet := make(map[uint64]bool)
	for prows.Next() {
		var aptID uint64
		var url string
		var isPrimary bool
		if err := prows.Scan(&aptID, &url, &isPrimary); err != nil {
			return nil, err
		}
		i, ok := index[aptID]
		if !ok || primarySet[aptID] {
			continue
		}
		if isPrimary || summaries[i].PrimaryPhoto == nil {
			u := url
			summaries[i].PrimaryPhoto = &u
		}
		if isPrimary {
			primarySet[aptID] = true
		}
	}
	return summaries, prows.Err()
}

// AddPhoto attaches a photo to an apartment.  When isPrimary is set,
// any existing primary flag is cleared first; both writes share a
// transaction so the one-primary rule holds.  Returns the new photo ID
// or sql.ErrNoRows when the apartment does not exist.
func (r *ApartmentRepo) AddPhoto(ctx context.Context, apartmentID uint64, url string, isPrimary bool) (uint64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM apartments WHERE id = ?`, apartmentID).Scan(&exists); err != nil {
		return 0, err
	}
	if exists == 0 {
		return 0, sql.ErrNoRows
	}
	if isPrimary {
		if _, err := tx.ExecContext(ctx,
			`UPDATE apartment_photos SET is_primary = 0 WHERE apartment_id = ?`, apartmentID); err != nil {
			return 0, err
		}
	}
	result, err := tx.ExecContext(ctx,
		`INSERT INTO apartment_photos (apartment_id, photo_url, is_primary) VALUES (?, ?, ?)`,
		apartmentID, url, isPrimary)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return uint64(id), nil
}

// DeletePhoto removes one photo of an apartment.  Returns
// sql.ErrNoRows when the photo does not exist under that apartment.
func (r *ApartmentRepo) DeletePhoto(ctx context.Context, apartmentID, photoID uint64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM apartment_photos WHERE id = ? AND apartment_id = ?`, photoID, apartmentID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// decodeAmenities turns the stored JSON array string into a slice,
// treating NULL, empty and malformed values as no amenities.
func decodeAmenities(raw sql.NullString) []string {
	if !raw.Valid || raw.String == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(raw.String), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}
