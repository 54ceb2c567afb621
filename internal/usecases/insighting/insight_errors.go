package insighting

import "errors"

var (
	// ErrInsufficientData indica uma série com menos de duas semanas
	ErrInsufficientData = errors.New("insufficient data: at least two cohort weeks are required")
	// ErrMissingValue indica um canal ou horizonte ausente em uma semana
	ErrMissingValue = errors.New("missing cohort value")
)
