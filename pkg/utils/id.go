package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	characters      = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	sessionIDLength = 12
)

// GenerateSessionID gera um identificador curto para sessões do dashboard
func GenerateSessionID() (string, error) {
	return gonanoid.Generate(characters, sessionIDLength)
}
