package license

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

var (
	ErrLicenseNotFound = errors.New("license key not found")
	ErrLicenseClaimed  = errors.New("license key already claimed")
	ErrInvalidKey      = errors.New("license key format is invalid")
	ErrAlreadyLicensed = errors.New("account already holds a license")
	ErrLicenseNotIdle  = errors.New("only unclaimed licenses can be deleted")
	ErrUserNotFound    = errors.New("user not found")
)

// StoreKind classifies database failures so callers can distinguish
// retryable conditions from misconfiguration.
type StoreKind string

const (
	StoreKindInternal         StoreKind = "internal"
	StoreKindPermissionDenied StoreKind = "permission_denied"
	StoreKindTransient        StoreKind = "transient"
)

// StoreError wraps a database failure with the operation that produced it.
type StoreError struct {
	Op    string
	Table string
	Kind  StoreKind
	Err   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Table, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is worth retrying.
func (e *StoreError) Retryable() bool {
	return e.Kind == StoreKindTransient
}

// wrapStoreError classifies a raw database error. Postgres error codes drive
// the classification: 42501 means the role lacks privileges, class 08 and the
// serialization/deadlock codes are transient.
func wrapStoreError(err error, op, table string) *StoreError {
	return &StoreError{
		Op:    op,
		Table: table,
		Kind:  classify(err),
		Err:   err,
	}
}

func classify(err error) StoreKind {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return StoreKindInternal
	}

	code := string(pqErr.Code)
	switch {
	case code == "42501":
		return StoreKindPermissionDenied
	case strings.HasPrefix(code, "08"):
		return StoreKindTransient
	case code == "40001", code == "40P01":
		return StoreKindTransient
	}

	return StoreKindInternal
}
