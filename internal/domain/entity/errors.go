package entity

import "errors"

var (
	// ErrBillNotFound is returned when no bill has the requested ID
	ErrBillNotFound = errors.New("bill not found")

	// ErrForbidden is returned when the user may not touch the bill
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidReceipt is returned for receipts that are not jpeg or png images
	ErrInvalidReceipt = errors.New("receipt must be a jpeg, jpg or png image")

	// ErrInvalidBill is returned when submitted form fields are unusable
	ErrInvalidBill = errors.New("invalid bill")

	// ErrAlreadySubmitted is returned when submitting a bill twice
	ErrAlreadySubmitted = errors.New("bill already submitted")
)
