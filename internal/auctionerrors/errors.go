package auctionerrors

import "errors"

// Storage-level errors
var (
	// ErrVersionConflict is returned by a store when a conditional write
	// loses the compare-and-swap; the ledger reloads and re-validates.
	ErrVersionConflict = errors.New("auction state version conflict")
)

// business logic errors
var (
	ErrValidation       = errors.New("invalid request")
	ErrInvalidCloseTime = errors.New("invalid close time")
	ErrAuctionClosed    = errors.New("auction closed")
	ErrBidTooLow        = errors.New("bid amount too low")
	ErrAlreadyNotified  = errors.New("winner already notified")
	ErrNoWinner         = errors.New("auction has no winner")
)
