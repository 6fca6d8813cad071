package license

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassifyPostgresErrors(t *testing.T) {
	tests := []struct {
		name string
		code pq.ErrorCode
		want StoreKind
	}{
		{"insufficient privilege", "42501", StoreKindPermissionDenied},
		{"connection exception", "08000", StoreKindTransient},
		{"connection does not exist", "08003", StoreKindTransient},
		{"connection failure", "08006", StoreKindTransient},
		{"serialization failure", "40001", StoreKindTransient},
		{"deadlock detected", "40P01", StoreKindTransient},
		{"unique violation", "23505", StoreKindInternal},
		{"syntax error", "42601", StoreKindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &pq.Error{Code: tt.code}
			assert.Equal(t, tt.want, classify(err))
		})
	}
}

func TestClassifyNonPostgresError(t *testing.T) {
	assert.Equal(t, StoreKindInternal, classify(errors.New("something else")))
}

func TestClassifyWrappedPostgresError(t *testing.T) {
	inner := &pq.Error{Code: "40001"}
	wrapped := fmt.Errorf("query failed: %w", inner)
	assert.Equal(t, StoreKindTransient, classify(wrapped))
}

func TestStoreErrorRetryable(t *testing.T) {
	transient := wrapStoreError(&pq.Error{Code: "08006"}, "update", "licenses")
	assert.True(t, transient.Retryable())

	denied := wrapStoreError(&pq.Error{Code: "42501"}, "update", "licenses")
	assert.False(t, denied.Retryable())
}

func TestStoreErrorUnwrap(t *testing.T) {
	inner := &pq.Error{Code: "42501"}
	wrapped := wrapStoreError(inner, "update", "users")

	var pqErr *pq.Error
	assert.True(t, errors.As(wrapped, &pqErr))
	assert.Equal(t, inner.Code, pqErr.Code)
}
