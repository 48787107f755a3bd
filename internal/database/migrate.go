package database

import (
	"context"
	"database/sql"
	"fmt"
)

// statements creates the schema when tables are missing.  Dates are
// stored as DATE columns (calendar days, no time-of-day).  Photos,
// bookings and blocked dates cascade-delete with their apartment.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS apartments (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		location VARCHAR(255) NOT NULL,
		price_per_night DECIMAL(10,2) NOT NULL,
		max_guests INT UNSIGNED NOT NULL,
		amenities TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS apartment_photos (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		apartment_id BIGINT UNSIGNED NOT NULL,
		photo_url VARCHAR(512) NOT NULL,
		is_primary TINYINT(1) NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_photos_apartment FOREIGN KEY (apartment_id)
			REFERENCES apartments(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		apartment_id BIGINT UNSIGNED NOT NULL,
		guest_name VARCHAR(255) NOT NULL,
		guest_email VARCHAR(255) NOT NULL,
		guest_phone VARCHAR(64) NOT NULL,
		check_in DATE NOT NULL,
		check_out DATE NOT NULL,
		num_guests INT UNSIGNED NOT NULL,
		total_amount DECIMAL(10,2) NOT NULL,
		status ENUM('confirmed','cancelled','completed') NOT NULL DEFAULT 'confirmed',
		special_requests TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_bookings_apartment FOREIGN KEY (apartment_id)
			REFERENCES apartments(id) ON DELETE CASCADE,
		INDEX idx_bookings_conflict (apartment_id, status, check_in, check_out)
	)`,
	`CREATE TABLE IF NOT EXISTS blocked_dates (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		apartment_id BIGINT UNSIGNED NOT NULL,
		date DATE NOT NULL,
		reason VARCHAR(255),
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_blocked_apartment FOREIGN KEY (apartment_id)
			REFERENCES apartments(id) ON DELETE CASCADE,
		UNIQUE KEY uq_blocked (apartment_id, date)
	)`,
	`CREATE TABLE IF NOT EXISTS admins (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(64) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		` + "`key`" + ` VARCHAR(128) NOT NULL UNIQUE,
		value TEXT,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`,
}

// defaultSettings are inserted once when the settings table is empty.
var defaultSettings = map[string]string{
	"terms_and_conditions": "By booking this luxury apartment, you agree to our terms and conditions including check-in/check-out times, cancellation policy, and property rules.",
	"cancellation_policy":  "Free cancellation up to 48 hours before check-in. Cancellations within 48 hours are subject to a 50% fee.",
	"check_in_time":        "14:00",
	"check_out_time":       "12:00",
}

// Migrate creates missing tables and seeds the default admin account
// and settings.  It is idempotent and safe to run on every startup.
// adminHash must already be a bcrypt hash; Migrate never sees the
// plain-text password.
func Migrate(ctx context.Context, db *sql.DB, adminUser, adminHash string) error {
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	var admins int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&admins); err != nil {
		return fmt.Errorf("migrate: count admins: %w", err)
	}
	if admins == 0 {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO admins (username, password_hash) VALUES (?, ?)`,
			adminUser, adminHash); err != nil {
			return fmt.Errorf("migrate: seed admin: %w", err)
		}
	}

	var settings int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM settings").Scan(&settings); err != nil {
		return fmt.Errorf("migrate: count settings: %w", err)
	}
	if settings == 0 {
		for k, v := range defaultSettings {
			if _, err := db.ExecContext(ctx,
				"INSERT INTO settings (`key`, value) VALUES (?, ?)", k, v); err != nil {
				return fmt.Errorf("migrate: seed setting %s: %w", k, err)
			}
		}
	}
	return nil
}
