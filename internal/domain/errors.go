package domain

import "errors"

// Erros de entrada inválida
var (
	ErrUnknownHorizon = errors.New("unknown horizon label")
	ErrUnknownChannel = errors.New("unknown channel")
	ErrUnknownCountry = errors.New("unknown country")
	ErrUnknownDevice  = errors.New("unknown device")
)

// Erros de sessão
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)
