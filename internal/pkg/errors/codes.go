package errors

import "net/http"

var (
	ErrVendorNotFound = New(
		"VENDOR_NOT_FOUND",
		"Vendor not found",
		http.StatusNotFound,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrValidation = New(
		"VALIDATION_ERROR",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrDuplicateVendor = New(
		"DUPLICATE_VENDOR",
		"A vendor with a similar name already exists nearby",
		http.StatusBadRequest,
	)

	ErrSubmissionLimit = New(
		"SUBMISSION_LIMIT_REACHED",
		"Daily submission limit reached. Please try again tomorrow.",
		http.StatusTooManyRequests,
	)

	ErrUnauthorized = New(
		"UNAUTHORIZED",
		"Authentication required",
		http.StatusUnauthorized,
	)

	ErrForbidden = New(
		"FORBIDDEN",
		"Admin access required",
		http.StatusForbidden,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
