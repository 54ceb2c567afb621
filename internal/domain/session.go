package domain

import "time"

// Session guarda a série gerada uma única vez e as métricas derivadas dela
type Session struct {
	ID         string           `json:"id"`
	Series     CohortSeries     `json:"series"`
	Metrics    MetricsByChannel `json:"metrics"`
	CreatedAt  time.Time        `json:"created_at"`
	LastAccess time.Time        `json:"last_access"`
}

// SessionResponse é o corpo retornado na criação de uma sessão
type SessionResponse struct {
	ID        string    `json:"id"`
	Weeks     int       `json:"weeks"`
	CreatedAt time.Time `json:"created_at"`
}

// SnapshotEntry é uma linha arquivada: um valor por sessão, semana, canal e horizonte
type SnapshotEntry struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	WeekIndex int       `json:"week_index"`
	WeekDate  time.Time `json:"week_date"`
	Channel   Channel   `json:"channel"`
	D7        float64   `json:"d7"`
	D30       float64   `json:"d30"`
	D90       float64   `json:"d90"`
	D180      float64   `json:"d180"`
	CreatedAt time.Time `json:"created_at"`
}
