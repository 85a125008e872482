// Package common defines shared constants and sentinel errors used across
// client and server layers of MochaMagic. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Service-level errors.
	ErrorInternal = errors.New("internal error")

	// Signup / login validation errors. The messages are shown to the user.
	ErrMissingFields     = errors.New("please fill in all fields")
	ErrInvalidEmail      = errors.New("please enter a valid email address")
	ErrPasswordTooShort  = errors.New("password must be at least 6 characters long")
	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrEmailTaken        = errors.New("an account with this email already exists")
	ErrAccountNotFound   = errors.New("account not found")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrNotLoggedIn       = errors.New("please login to continue")

	// Rewards errors.
	ErrInsufficientPoints  = errors.New("you need at least 100 points to redeem rewards")
	ErrInvalidTier         = errors.New("invalid choice or insufficient points")
	ErrRedemptionCancelled = errors.New("redemption cancelled")

	// Checkout errors.
	ErrEmptyCart            = errors.New("order must contain at least one item")
	ErrInvalidPaymentMethod = errors.New("unsupported payment method")
	ErrMinimumRedemption    = errors.New("minimum 100 points required to redeem rewards")
	ErrNotEnoughPoints      = errors.New("insufficient points")
	ErrInvalidDeliveryFee   = errors.New("delivery fee cannot be negative")

	// Order errors.
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderNotCancellable = errors.New("only pending orders can be cancelled")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
