package errs

import "errors"

// Sentinel errors shared across usecase layers.
var (
	// Room type / hotel errors
	ErrHotelNotFound    = errors.New("hotel not found")
	ErrRoomTypeNotFound = errors.New("room type not found")

	// Booking errors
	ErrBookingNotFound         = errors.New("booking not found")
	ErrBookingConflict         = errors.New("booking conflict")
	ErrNoRoomsAvailable        = errors.New("not enough rooms available")
	ErrInvalidStayPeriod       = errors.New("invalid stay period")
	ErrInvalidStatusTransition = errors.New("invalid booking status transition")
	ErrNotBookingOwner         = errors.New("not the booking owner")

	// Allocation errors
	ErrCapacityExceeded = errors.New("requested guests exceed room capacity")
	ErrNotEnoughAdults  = errors.New("at least one adult is required per room")

	// Promotion errors
	ErrPromotionNotFound      = errors.New("promotion not found")
	ErrPromotionOverlap       = errors.New("promotion window overlaps an existing promotion")
	ErrDuplicatePromotionCode = errors.New("promotion code already exists for room type")
	ErrInvalidDiscount        = errors.New("invalid discount")

	// Idempotency errors
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrIdempotencyInProgress  = errors.New("idempotency in progress")
	ErrIdempotencyCheckFailed = errors.New("idempotency check failed")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
