package license

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jdverbeke/cinevault-server-go/pkg/pagination"
	"github.com/jdverbeke/cinevault-server-go/pkg/types"
	"github.com/jdverbeke/cinevault-server-go/pkg/validation"
)

// License represents a claimable access key. Status is the canonical claimed
// marker; ClaimedBy and ClaimedAt are always written in the same transaction
// that flips the status, so the three can never disagree.
type License struct {
	types.BaseModel

	Key          string              `gorm:"type:varchar(29);not null;uniqueIndex" json:"key"`
	Status       types.LicenseStatus `gorm:"type:varchar(20);not null;default:'available';index" json:"status"`
	DurationDays *int                `gorm:"column:duration_days" json:"durationDays,omitempty"`
	Note         *string             `gorm:"type:varchar(255)" json:"note,omitempty"`
	ClaimedBy    *uuid.UUID          `gorm:"type:uuid;column:claimed_by;uniqueIndex" json:"claimedBy,omitempty"`
	ClaimedAt    *time.Time          `gorm:"column:claimed_at" json:"claimedAt,omitempty"`
}

// TableName overrides the default table name.
func (License) TableName() string { return "licenses" }

// GenerateInput controls batch license creation.
type GenerateInput struct {
	Count        int
	DurationDays *int
	Note         *string
}

// ListFilters defines license query filters.
type ListFilters struct {
	Status       types.LicenseStatus
	Keyword      string
	ClaimedAfter *time.Time
}

// Generate creates a batch of fresh licenses with random keys.
func Generate(db *gorm.DB, input GenerateInput) ([]License, error) {
	if input.Count < 1 || input.Count > 100 {
		return nil, errors.New("count must be between 1 and 100")
	}
	if input.DurationDays != nil && *input.DurationDays < 1 {
		return nil, errors.New("durationDays must be positive")
	}

	licenses := make([]License, 0, input.Count)
	for i := 0; i < input.Count; i++ {
		key, err := GenerateKey()
		if err != nil {
			return nil, err
		}
		licenses = append(licenses, License{
			Key:          key,
			Status:       types.LicenseStatusAvailable,
			DurationDays: input.DurationDays,
			Note:         input.Note,
		})
	}

	if err := db.Create(&licenses).Error; err != nil {
		return nil, wrapStoreError(err, "insert", "licenses")
	}

	return licenses, nil
}

// List queries licenses with filters and pagination.
func List(db *gorm.DB, filters ListFilters, params pagination.Params) ([]License, int64, error) {
	query := db.Model(&License{})

	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	if filters.Keyword != "" {
		query = query.Where("key LIKE ?", "%"+strings.ToUpper(filters.Keyword)+"%")
	}

	if filters.ClaimedAfter != nil {
		query = query.Where("claimed_at >= ?", *filters.ClaimedAfter)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrapStoreError(err, "count", "licenses")
	}

	var licenses []License
	if err := query.Order("created_at DESC").Offset(params.Skip).Limit(params.Limit).Find(&licenses).Error; err != nil {
		return nil, 0, wrapStoreError(err, "select", "licenses")
	}

	return licenses, total, nil
}

// Get retrieves a license by its key.
func Get(db *gorm.DB, rawKey string) (License, error) {
	key, err := validation.NormalizeLicenseKey(rawKey)
	if err != nil {
		return License{}, ErrInvalidKey
	}

	var lic License
	if err := db.First(&lic, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return lic, ErrLicenseNotFound
		}
		return lic, wrapStoreError(err, "select", "licenses")
	}
	return lic, nil
}

// Delete removes an unclaimed license. Claimed licenses are immutable.
func Delete(db *gorm.DB, rawKey string) error {
	key, err := validation.NormalizeLicenseKey(rawKey)
	if err != nil {
		return ErrInvalidKey
	}

	result := db.Delete(&License{}, "key = ? AND status = ?", key, types.LicenseStatusAvailable)
	if result.Error != nil {
		return wrapStoreError(result.Error, "delete", "licenses")
	}
	if result.RowsAffected == 0 {
		var lic License
		if err := db.First(&lic, "key = ?", key).Error; err == nil {
			return ErrLicenseNotIdle
		}
		return ErrLicenseNotFound
	}
	return nil
}

// Claim atomically assigns an available license to the user. The status flip
// is a conditional update keyed on the previous status, so when two sessions
// race for the same key exactly one update reports an affected row and the
// loser observes the key as already claimed.
func Claim(db *gorm.DB, userID uuid.UUID, rawKey string, now time.Time) (License, error) {
	key, err := validation.NormalizeLicenseKey(rawKey)
	if err != nil {
		return License{}, ErrInvalidKey
	}

	var claimed License

	txErr := db.Transaction(func(tx *gorm.DB) error {
		usr, err := fetchUser(tx, userID)
		if err != nil {
			return err
		}
		if usr.LicenseKey != nil && *usr.LicenseKey != "" {
			return ErrAlreadyLicensed
		}

		var lic License
		if err := tx.First(&lic, "key = ?", key).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLicenseNotFound
			}
			return wrapStoreError(err, "select", "licenses")
		}

		if lic.Status == types.LicenseStatusClaimed {
			return ErrLicenseClaimed
		}

		result := tx.Model(&License{}).
			Where("key = ? AND status = ?", key, types.LicenseStatusAvailable).
			Updates(map[string]interface{}{
				"status":     types.LicenseStatusClaimed,
				"claimed_by": userID,
				"claimed_at": now,
			})
		if result.Error != nil {
			return wrapStoreError(result.Error, "update", "licenses")
		}
		if result.RowsAffected == 0 {
			// Lost the race: someone else flipped the status between our
			// read and the conditional write.
			return ErrLicenseClaimed
		}

		var expiresAt *time.Time
		if lic.DurationDays != nil {
			t := now.AddDate(0, 0, *lic.DurationDays)
			expiresAt = &t
		}

		if err := setUserLicense(tx, userID, key, expiresAt); err != nil {
			return err
		}

		if err := tx.First(&claimed, "key = ?", key).Error; err != nil {
			return wrapStoreError(err, "select", "licenses")
		}
		return nil
	})
	if txErr != nil {
		return License{}, txErr
	}

	return claimed, nil
}

// Release detaches a claimed license from its user and returns the key to the
// pool. Admin remediation path.
func Release(db *gorm.DB, rawKey string) error {
	key, err := validation.NormalizeLicenseKey(rawKey)
	if err != nil {
		return ErrInvalidKey
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var lic License
		if err := tx.First(&lic, "key = ?", key).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLicenseNotFound
			}
			return wrapStoreError(err, "select", "licenses")
		}

		if lic.Status != types.LicenseStatusClaimed || lic.ClaimedBy == nil {
			return ErrLicenseNotFound
		}

		holder := *lic.ClaimedBy

		result := tx.Model(&License{}).
			Where("key = ? AND status = ?", key, types.LicenseStatusClaimed).
			Updates(map[string]interface{}{
				"status":     types.LicenseStatusAvailable,
				"claimed_by": nil,
				"claimed_at": nil,
			})
		if result.Error != nil {
			return wrapStoreError(result.Error, "update", "licenses")
		}
		if result.RowsAffected == 0 {
			return ErrLicenseNotFound
		}

		return setUserLicense(tx, holder, "", nil)
	})
}

// userRow is a narrow projection of the users table so this package does not
// import the user feature.
type userRow struct {
	ID               uuid.UUID  `gorm:"column:id;primaryKey"`
	LicenseKey       *string    `gorm:"column:license_key"`
	LicenseExpiresAt *time.Time `gorm:"column:license_expires_at"`
}

func (userRow) TableName() string { return "users" }

func fetchUser(db *gorm.DB, id uuid.UUID) (userRow, error) {
	var usr userRow
	if err := db.First(&usr, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usr, ErrUserNotFound
		}
		return usr, wrapStoreError(err, "select", "users")
	}
	return usr, nil
}

func setUserLicense(db *gorm.DB, userID uuid.UUID, key string, expiresAt *time.Time) error {
	updates := map[string]interface{}{
		"license_key":        nil,
		"license_expires_at": nil,
	}
	if key != "" {
		updates["license_key"] = key
		updates["license_expires_at"] = expiresAt
	}

	if err := db.Model(&userRow{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		return wrapStoreError(err, "update", "users")
	}
	return nil
}
