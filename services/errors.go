package services

import "errors"

var (
	// ErrMissingFields is returned when a required field is empty.
	ErrMissingFields = errors.New("all fields are required")

	// ErrBadDateTime is returned when date/time input does not parse as
	// YYYY-MM-DD / HH:MM.
	ErrBadDateTime = errors.New("invalid date or time format, use YYYY-MM-DD for date and HH:MM for time")

	// ErrBadGuestCount is returned when the guest count is not positive.
	ErrBadGuestCount = errors.New("guest count must be a positive number")

	// ErrNotFound is returned when a reservation id does not resolve.
	ErrNotFound = errors.New("reservation not found")
)
