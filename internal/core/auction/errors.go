package auction

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized            = errors.New("unauthorized")
	ErrInvalidPrice            = errors.New("invalid price")
	ErrIncorrectBidPayment     = errors.New("incorrect bid payment")
	ErrInvalidReservePrice     = errors.New("invalid reserve price")
	ErrInvalidStartEndTime     = errors.New("invalid start/end time")
	ErrInvalidConfig           = errors.New("invalid config")
	ErrAlreadyExists           = errors.New("auction already exists")
	ErrNotFound                = errors.New("auction not found")
	ErrInvalidStatus           = errors.New("invalid auction status")
	ErrBidTooLow               = errors.New("bid too low")
	ErrReservePriceRestriction = errors.New("reserve price restriction")
	ErrPayment                 = errors.New("payment error")
)

// StatusError reports an operation attempted in the wrong lifecycle phase.
func StatusError(actual Status, op string) error {
	return fmt.Errorf("%w: %s not allowed while %s", ErrInvalidStatus, op, actual)
}

// BidPaymentError reports a bid whose attached funds do not match its price.
func BidPaymentError(expected Coin, got []Coin) error {
	return fmt.Errorf("%w: expected %s, got %v", ErrIncorrectBidPayment, expected, got)
}
