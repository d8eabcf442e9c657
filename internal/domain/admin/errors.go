package admin

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrNegativeAmount = errors.New("amount must not be negative")
)
