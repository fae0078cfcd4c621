package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrDuplicate      = errors.New("already exists")
	ErrAlreadyArrived = errors.New("shipment already arrived")
	ErrNotArrived     = errors.New("shipment has not arrived")
)
