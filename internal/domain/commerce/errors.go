package commerce

import "errors"

var (
	// ErrPlatformUnavailable indicates the commerce platform could not be reached
	ErrPlatformUnavailable = errors.New("commerce platform unavailable")

	// ErrInvalidResponse indicates the platform returned an unparseable or
	// unexpectedly shaped response
	ErrInvalidResponse = errors.New("invalid response from commerce platform")

	// ErrCartMissing indicates a cart mutation succeeded at the transport level
	// but the response carried no cart object. This is an integration fault,
	// not a user-recoverable condition.
	ErrCartMissing = errors.New("commerce platform response missing cart")

	// ErrReservationFailed indicates the platform rejected a cart mutation
	// because inventory could not be reserved for one of the lines
	ErrReservationFailed = errors.New("inventory reservation failed")
)
