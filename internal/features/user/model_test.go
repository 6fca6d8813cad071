package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jdverbeke/cinevault-server-go/pkg/types"
)

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func TestHasActiveLicense(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	key := strPtr("AAAAA-BBBBB-CCCCC-DDDDD-EEEEE")

	tests := []struct {
		name      string
		key       *string
		expiresAt *time.Time
		want      bool
	}{
		{"no key", nil, nil, false},
		{"empty key", strPtr(""), nil, false},
		{"key without expiry", key, nil, true},
		{"key expiring later", key, timePtr(now.Add(time.Hour)), true},
		{"key expired", key, timePtr(now.Add(-time.Hour)), false},
		{"key expiring exactly now", key, timePtr(now), false},
		{"expiry without key", nil, timePtr(now.Add(time.Hour)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := User{LicenseKey: tt.key, LicenseExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, u.HasActiveLicense(now))
		})
	}
}

func TestLicenseState(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	key := strPtr("AAAAA-BBBBB-CCCCC-DDDDD-EEEEE")

	tests := []struct {
		name      string
		key       *string
		expiresAt *time.Time
		want      types.LicenseState
	}{
		{"no key", nil, nil, types.LicenseStateInactive},
		{"key without expiry", key, nil, types.LicenseStateActiveUnlimited},
		{"key expiring later", key, timePtr(now.Add(24 * time.Hour)), types.LicenseStateActive},
		{"key expired", key, timePtr(now.Add(-24 * time.Hour)), types.LicenseStateExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := User{LicenseKey: tt.key, LicenseExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, u.LicenseState(now))
		})
	}
}

func TestComparePasswordWithoutPassword(t *testing.T) {
	u := User{}
	assert.False(t, u.ComparePassword("anything"))
}
