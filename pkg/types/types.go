package types

import (
	"time"

	"github.com/google/uuid"
)

// Role represents user permission levels.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// MediaType distinguishes movies from TV series across the catalog.
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// Valid reports whether the media type is one of the supported values.
func (m MediaType) Valid() bool {
	return m == MediaTypeMovie || m == MediaTypeTV
}

// LicenseStatus represents the lifecycle state of a license key.
type LicenseStatus string

const (
	LicenseStatusAvailable LicenseStatus = "available"
	LicenseStatusClaimed   LicenseStatus = "claimed"
)

// LicenseState is the user-facing license validity classification shown on
// the account page.
type LicenseState string

const (
	LicenseStateActive          LicenseState = "active"
	LicenseStateActiveUnlimited LicenseState = "active_unlimited"
	LicenseStateExpired         LicenseState = "expired"
	LicenseStateInactive        LicenseState = "inactive"
)

// LicenseActive reports whether a claimed key is valid at the given instant.
// A key with no expiry never expires; an expiry with no key counts for nothing.
func LicenseActive(key *string, expiresAt *time.Time, now time.Time) bool {
	if key == nil || *key == "" {
		return false
	}
	if expiresAt == nil {
		return true
	}
	return now.Before(*expiresAt)
}

// ClassifyLicense maps a key and expiry onto the display state.
func ClassifyLicense(key *string, expiresAt *time.Time, now time.Time) LicenseState {
	if key == nil || *key == "" {
		return LicenseStateInactive
	}
	if expiresAt == nil {
		return LicenseStateActiveUnlimited
	}
	if now.Before(*expiresAt) {
		return LicenseStateActive
	}
	return LicenseStateExpired
}

// BaseModel contains common fields for models with generated UUID keys.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// TimestampModel contains only timestamp fields (for models with custom IDs).
type TimestampModel struct {
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// MediaSummary is the denormalized catalog snapshot stored alongside
// favorites and watch progress so lists render without extra API round trips.
type MediaSummary struct {
	MediaID      int64     `gorm:"type:bigint;not null;column:media_id;index:idx_user_media,priority:3" json:"mediaId"`
	MediaType    MediaType `gorm:"type:varchar(10);not null;column:media_type;index:idx_user_media,priority:2" json:"mediaType"`
	Title        string    `gorm:"type:varchar(255);not null" json:"title"`
	PosterPath   *string   `gorm:"type:varchar(255);column:poster_path" json:"posterPath,omitempty"`
	BackdropPath *string   `gorm:"type:varchar(255);column:backdrop_path" json:"backdropPath,omitempty"`
	Overview     string    `gorm:"type:text" json:"overview"`
	ReleaseDate  *string   `gorm:"type:varchar(20);column:release_date" json:"releaseDate,omitempty"`
	VoteAverage  float64   `gorm:"type:numeric(4,2);column:vote_average" json:"voteAverage"`
}
