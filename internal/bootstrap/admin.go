package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jdverbeke/cinevault-server-go/internal/features/user"
	"github.com/jdverbeke/cinevault-server-go/pkg/config"
	"github.com/jdverbeke/cinevault-server-go/pkg/types"
)

// EnsureDefaultAdmin creates or synchronizes the configured admin account.
// Skipped entirely when no admin credentials are configured.
func EnsureDefaultAdmin(db *gorm.DB, cfg config.AdminConfig, logger *slog.Logger) error {
	if cfg.Email == "" || cfg.Password == "" {
		logger.Info("default admin skipped - CINEVAULT_ADMIN_EMAIL/CINEVAULT_ADMIN_PASSWORD not set")
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(cfg.Email))

	var existing user.User
	err := db.Where("LOWER(email) = ?", email).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		_, createErr := user.Create(db, user.CreateInput{
			Email:    email,
			Password: cfg.Password,
			Role:     types.RoleAdmin,
		})
		if createErr != nil {
			if isUndefinedTableError(createErr) {
				logger.Warn("default admin skipped - users table missing", slog.String("email", email))
				return nil
			}
			return fmt.Errorf("create admin: %w", createErr)
		}

		logger.Info("default admin created", slog.String("email", email))
		return nil

	case err != nil:
		if isUndefinedTableError(err) {
			logger.Warn("default admin skipped - users table missing", slog.String("email", email))
			return nil
		}
		return fmt.Errorf("get admin: %w", err)
	}

	updates := map[string]interface{}{}

	if needsPasswordReset(existing.Password, cfg.Password) {
		hashed, hashErr := bcrypt.GenerateFromPassword([]byte(cfg.Password), 10)
		if hashErr != nil {
			return fmt.Errorf("hash admin password: %w", hashErr)
		}
		updates["password"] = string(hashed)
	}

	if existing.Role != types.RoleAdmin {
		updates["role"] = types.RoleAdmin
	}

	if len(updates) == 0 {
		logger.Info("default admin already up to date", slog.String("email", email))
		return nil
	}

	if err := db.Model(&existing).Updates(updates).Error; err != nil {
		return fmt.Errorf("update admin: %w", err)
	}

	logger.Info("default admin synchronized", slog.String("email", email))
	return nil
}

func needsPasswordReset(hashedPassword *string, plaintext string) bool {
	if hashedPassword == nil || *hashedPassword == "" {
		return true
	}
	return bcrypt.CompareHashAndPassword([]byte(*hashedPassword), []byte(plaintext)) != nil
}

func isUndefinedTableError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "does not exist")
}
