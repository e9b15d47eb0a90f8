package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrAlreadyExists   = errors.New("entity already exists")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrAlreadyUsed     = errors.New("gifticon already marked used")
	ErrNotOwner        = errors.New("gifticon belongs to another user")
	ErrScanUnavailable = errors.New("gifticon scan unavailable")
	ErrRateLimited     = errors.New("too many requests")
)
