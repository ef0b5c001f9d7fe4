package domain

import "errors"

var (
	ErrInvalidGrid   = errors.New("grid dimensions must be positive")
	ErrInvalidPolicy = errors.New("invalid routing policy")
	ErrInvalidCenter = errors.New("invalid center")
	ErrPlanNotFound  = errors.New("plan not found")
)
