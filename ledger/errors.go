package ledger

import (
	"errors"
	"fmt"
)

// Validation and ledger errors surfaced to callers. Handlers map these
// to HTTP statuses; anything else coming out of the store is wrapped in
// ErrStoreUnavailable.
var (
	ErrInvalidCustomer     = errors.New("customer does not exist")
	ErrInvalidStaff        = errors.New("staff member does not exist")
	ErrInvalidTransaction  = errors.New("transaction not found or wrong type")
	ErrInvalidProduct      = errors.New("product does not exist")
	ErrInvalidPrescription = errors.New("prescription does not exist")
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
	ErrInvalidAmount       = errors.New("payment amount must be greater than zero")
	ErrInvalidCost         = errors.New("repair cost must be greater than zero")
	ErrInvalidPaymentType  = errors.New("payment type and payload do not match")
	ErrInvalidStatus       = errors.New("unknown repair status")
	ErrOverpayment         = errors.New("payment exceeds remaining balance")
	ErrInsufficientStock   = errors.New("not enough stock for product")

	// ErrConcurrentModification: the guarded balance update kept losing
	// against concurrent writers. The whole operation rolled back and is
	// safe to retry from scratch.
	ErrConcurrentModification = errors.New("transaction was modified concurrently")

	// ErrStoreUnavailable: the store could not be reached or failed to
	// commit for infrastructure reasons. Nothing was written.
	ErrStoreUnavailable = errors.New("persistent store unavailable")
)

var domainErrors = []error{
	ErrInvalidCustomer,
	ErrInvalidStaff,
	ErrInvalidTransaction,
	ErrInvalidProduct,
	ErrInvalidPrescription,
	ErrInvalidQuantity,
	ErrInvalidAmount,
	ErrInvalidCost,
	ErrInvalidPaymentType,
	ErrInvalidStatus,
	ErrOverpayment,
	ErrInsufficientStock,
	ErrConcurrentModification,
}

// IsDomainError reports whether err is one of the ledger's own error
// kinds, as opposed to an infrastructure failure.
func IsDomainError(err error) bool {
	for _, d := range domainErrors {
		if errors.Is(err, d) {
			return true
		}
	}
	return false
}

// wrapStore passes domain errors through untouched and folds everything
// else into ErrStoreUnavailable so callers never see driver internals.
func wrapStore(err error) error {
	if err == nil || IsDomainError(err) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
