package web

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/mochamagic/internal/common"
)

var (
	errItemName        = errors.New("item name is required")
	errItemPrice       = errors.New("item price cannot be negative")
	errBadQuantity     = errors.New("quantity must be a number")
	errMissingQuantity = errors.New("quantity is required")
	errMalformedBody   = errors.New("malformed request body")
)

var badRequest = []error{
	common.ErrMissingFields,
	common.ErrInvalidEmail,
	common.ErrPasswordTooShort,
	common.ErrPasswordMismatch,
	common.ErrEmailTaken,
	common.ErrInsufficientPoints,
	common.ErrInvalidTier,
	common.ErrEmptyCart,
	common.ErrInvalidPaymentMethod,
	common.ErrMinimumRedemption,
	common.ErrNotEnoughPoints,
	common.ErrInvalidDeliveryFee,
	common.ErrOrderNotCancellable,
	errItemName,
	errItemPrice,
	errBadQuantity,
	errMissingQuantity,
	errMalformedBody,
}

// statusFor maps a workflow error to an HTTP status and the message safe to
// show the caller.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrNotLoggedIn):
		return http.StatusUnauthorized, common.ErrNotLoggedIn.Error()
	case errors.Is(err, common.ErrAccountNotFound), errors.Is(err, common.ErrIncorrectPassword):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, common.ErrOrderNotFound):
		return http.StatusNotFound, common.ErrOrderNotFound.Error()
	}
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return http.StatusBadRequest, err.Error()
		}
	}
	return http.StatusInternalServerError, common.ErrorInternal.Error()
}
