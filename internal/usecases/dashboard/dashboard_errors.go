package dashboard

import (
	"errors"
	"fmt"
)

var (
	ErrEmptySession   = errors.New("session is required")
	ErrMissingMetrics = errors.New("channel metrics not found")
)

// ViewError é um erro com o código da API associado
type ViewError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

func (e *ViewError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ViewError) Unwrap() error {
	return e.Err
}

func NewViewError(err error, code string, details string) *ViewError {
	return &ViewError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
