package service

import (
	"errors"
	"fmt"

	"github.com/vibast-solutions/ms-go-memberships/app/repository"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidState       = errors.New("invalid state")
	ErrEligibility        = errors.New("not eligible")
	ErrCapacity           = errors.New("capacity reached")
	ErrInactive           = errors.New("benefit is inactive")
	ErrExpired            = errors.New("benefit is outside its validity window")
	ErrQuotaExceeded      = errors.New("benefit quota exceeded")
	ErrAlreadyRedeemed    = errors.New("benefit already redeemed")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRateLimited        = errors.New("too many attempts")
)

// storeError keeps the underlying failure in the chain next to ErrStoreUnavailable.
func storeError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}

func translateCreateError(err error, conflictDetail string) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return fmt.Errorf("%w: %s", ErrConflict, conflictDetail)
	}
	return storeError(err)
}
