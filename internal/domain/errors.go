package domain

import "errors"

var (
	ErrListingNotFound    = errors.New("listing not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidListingData = errors.New("invalid listing data")
	ErrDuplicateEmail     = errors.New("email already exists")
)
