package model

import "time"

// Apartment is a bookable unit listed on the public site.  Each
// apartment carries its own nightly price and guest capacity and owns
// its photos, bookings and blocked dates.  This struct corresponds to
// a row in the `apartments` table.
//
// Fields:
//  ID            – primary key identifier.
//  Name          – display name of the apartment.
//  Description   – optional long-form description.
//  Location      – human-readable address or area.
//  PricePerNight – nightly rate in the site currency.
//  MaxGuests     – maximum number of guests allowed.
//  Amenities     – ordered list of amenity labels (stored as JSON).
//  CreatedAt     – timestamp when the apartment was created.
type Apartment struct {
	ID            uint64    // apartments.id
	Name          string    // apartments.name
	Description   *string   // apartments.description (nullable)
	Location      string    // apartments.location
	PricePerNight float64   // apartments.price_per_night
	MaxGuests     uint32    // apartments.max_guests
	Amenities     []string  // apartments.amenities (JSON array string)
	CreatedAt     time.Time // apartments.created_at
}

// ApartmentPhoto is one photo attached to an apartment.  At most one
// photo per apartment is flagged primary; listings fall back to the
// first photo when none is flagged.
type ApartmentPhoto struct {
	ID          uint64    // apartment_photos.id
	ApartmentID uint64    // apartment_photos.apartment_id
	URL         string    // apartment_photos.photo_url
	IsPrimary   bool      // apartment_photos.is_primary
	CreatedAt   time.Time // apartment_photos.created_at
}
