package sessioning

import (
	"errors"
	"fmt"
)

var (
	ErrGenerateID       = errors.New("error generating session ID")
	ErrComputeMetrics   = errors.New("error computing channel metrics")
	ErrStoreSession     = errors.New("error accessing session store")
	ErrSnapshotDisabled = errors.New("snapshot archive is disabled")
	ErrSnapshotEmpty    = errors.New("no snapshot archived for session")
	ErrFetchSnapshot    = errors.New("error fetching snapshot from database")
)

// SessionError é um erro com contexto adicional para sessões
type SessionError struct {
	Err       error  // Erro base
	Code      string // Código de erro para API
	SessionID string // ID da sessão envolvida (quando aplicável)
	Details   string // Detalhes adicionais
}

func (e *SessionError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *SessionError) Unwrap() error {
	return e.Err
}

func NewSessionError(err error, code string, sessionID string, details string) *SessionError {
	return &SessionError{
		Err:       err,
		Code:      code,
		SessionID: sessionID,
		Details:   details,
	}
}
