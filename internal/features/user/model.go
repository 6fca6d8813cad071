package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jdverbeke/cinevault-server-go/pkg/pagination"
	"github.com/jdverbeke/cinevault-server-go/pkg/types"
)

// User represents an account. Password is nullable because Google sign-in
// accounts never set one.
type User struct {
	types.BaseModel

	Email             string             `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Password          *string            `gorm:"type:varchar(255)" json:"-"`
	Role              types.Role         `gorm:"type:varchar(20);not null;default:'user';index" json:"role"`
	ProfilePictureURL *string            `gorm:"type:varchar(512);column:profile_picture_url" json:"profilePictureUrl,omitempty"`
	GoogleID          *string            `gorm:"type:varchar(255);column:google_id;uniqueIndex" json:"-"`
	LicenseKey        *string            `gorm:"type:varchar(29);column:license_key" json:"licenseKey"`
	LicenseExpiresAt  *time.Time         `gorm:"column:license_expires_at" json:"licenseExpiresAt,omitempty"`
	RefreshToken      *string            `gorm:"type:text;column:refresh_token" json:"-"`
}

// TableName overrides the default table name.
func (User) TableName() string { return "users" }

// HasActiveLicense reports whether the user may start playback at the given
// instant.
func (u *User) HasActiveLicense(now time.Time) bool {
	return types.LicenseActive(u.LicenseKey, u.LicenseExpiresAt, now)
}

// LicenseState classifies the account's license for display purposes.
func (u *User) LicenseState(now time.Time) types.LicenseState {
	return types.ClassifyLicense(u.LicenseKey, u.LicenseExpiresAt, now)
}

// ComparePassword checks a plaintext password against the stored hash.
func (u *User) ComparePassword(password string) bool {
	if u.Password == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(*u.Password), []byte(password)) == nil
}

// ListFilters defines user query filters.
type ListFilters struct {
	Keyword   string
	Role      types.Role
	Licensed  *bool
	ExcludeID *uuid.UUID
}

// CreateInput carries data for creating a new user.
type CreateInput struct {
	Email             string
	Password          string
	Role              types.Role
	ProfilePictureURL *string
	GoogleID          *string
}

// UpdateInput captures mutable user fields.
type UpdateInput struct {
	Email             *string
	Password          *string
	Role              *types.Role
	ProfilePictureURL *string
	PictureProvided   bool
}

// List queries users with filters and pagination.
func List(db *gorm.DB, filters ListFilters, params pagination.Params) ([]User, int64, error) {
	query := db.Model(&User{})

	if filters.Keyword != "" {
		keyword := "%" + strings.ToLower(filters.Keyword) + "%"
		query = query.Where("LOWER(email) LIKE ?", keyword)
	}

	if filters.Role != "" {
		query = query.Where("role = ?", filters.Role)
	}

	if filters.Licensed != nil {
		if *filters.Licensed {
			query = query.Where("license_key IS NOT NULL")
		} else {
			query = query.Where("license_key IS NULL")
		}
	}

	if filters.ExcludeID != nil {
		query = query.Where("id != ?", *filters.ExcludeID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []User
	if err := query.Order("created_at DESC").Offset(params.Skip).Limit(params.Limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Get retrieves a user by ID.
func Get(db *gorm.DB, id uuid.UUID) (User, error) {
	var usr User
	if err := db.First(&usr, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return usr, ErrUserNotFound
		}
		return usr, err
	}
	return usr, nil
}

// GetByEmail retrieves a user by email, case-insensitively.
func GetByEmail(db *gorm.DB, email string) (User, error) {
	var usr User
	if err := db.First(&usr, "LOWER(email) = ?", normalizeEmail(email)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return usr, ErrUserNotFound
		}
		return usr, err
	}
	return usr, nil
}

// Create inserts a new user. Password may be empty for external identities.
func Create(db *gorm.DB, input CreateInput) (User, error) {
	usr := User{
		Email:             normalizeEmail(input.Email),
		Role:              input.Role,
		ProfilePictureURL: input.ProfilePictureURL,
		GoogleID:          input.GoogleID,
	}

	if usr.Role == "" {
		usr.Role = types.RoleUser
	}

	if input.Password != "" {
		if len(input.Password) < 8 {
			return User{}, ErrInvalidPassword
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), 10)
		if err != nil {
			return User{}, err
		}
		hashedStr := string(hashed)
		usr.Password = &hashedStr
	}

	if err := db.Create(&usr).Error; err != nil {
		if isUniqueEmailViolation(err) {
			return usr, ErrEmailTaken
		}
		return usr, err
	}

	return usr, nil
}

// EnsureProfile returns the account for the given email, creating one with
// the default role if it does not exist yet. Used by Google sign-in, which
// has no separate registration step.
func EnsureProfile(db *gorm.DB, email string, pictureURL, googleID *string) (User, error) {
	usr, err := GetByEmail(db, email)
	if err == nil {
		updates := map[string]interface{}{}
		if googleID != nil && usr.GoogleID == nil {
			updates["google_id"] = *googleID
		}
		if pictureURL != nil && usr.ProfilePictureURL == nil {
			updates["profile_picture_url"] = *pictureURL
		}
		if len(updates) > 0 {
			if err := db.Model(&User{}).Where("id = ?", usr.ID).Updates(updates).Error; err != nil {
				return usr, err
			}
			return Get(db, usr.ID)
		}
		return usr, nil
	}
	if err != ErrUserNotFound {
		return User{}, err
	}

	return Create(db, CreateInput{
		Email:             email,
		Role:              types.RoleUser,
		ProfilePictureURL: pictureURL,
		GoogleID:          googleID,
	})
}

// Update modifies an existing user.
func Update(db *gorm.DB, id uuid.UUID, input UpdateInput) (User, error) {
	usr, err := Get(db, id)
	if err != nil {
		return usr, err
	}

	updates := map[string]interface{}{}

	if input.Email != nil {
		trimmed := normalizeEmail(*input.Email)
		if trimmed == "" {
			return usr, ErrInvalidCredentials
		}
		updates["email"] = trimmed
	}

	if input.Password != nil {
		if len(*input.Password) < 8 {
			return usr, ErrInvalidPassword
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), 10)
		if err != nil {
			return usr, err
		}
		updates["password"] = string(hashed)
	}

	if input.Role != nil {
		updates["role"] = *input.Role
	}

	if input.PictureProvided {
		if input.ProfilePictureURL == nil {
			updates["profile_picture_url"] = nil
		} else {
			updates["profile_picture_url"] = strings.TrimSpace(*input.ProfilePictureURL)
		}
	}

	if len(updates) > 0 {
		if err := db.Model(&User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			if isUniqueEmailViolation(err) {
				return usr, ErrEmailTaken
			}
			return usr, err
		}
	}

	return Get(db, id)
}

// Delete removes a user.
func Delete(db *gorm.DB, id uuid.UUID) error {
	result := db.Delete(&User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetRefreshToken stores the current refresh token for rotation checks.
func SetRefreshToken(db *gorm.DB, id uuid.UUID, token *string) error {
	return db.Model(&User{}).Where("id = ?", id).Update("refresh_token", token).Error
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isUniqueEmailViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "users_email_key") ||
		strings.Contains(err.Error(), "idx_users_email")
}
