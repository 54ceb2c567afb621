package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/cohort-roas-api/infrastructure/database/postgres"
	"github.com/vfg2006/cohort-roas-api/internal/domain"
)

const snapshotTable = "cohort_snapshot"

var snapshotColumns = []string{"session_id", "week_index", "week_date", "channel", "d7", "d30", "d90", "d180"}

const createSnapshotTable = `
	CREATE TABLE IF NOT EXISTS cohort_snapshot (
		id          BIGSERIAL PRIMARY KEY,
		session_id  VARCHAR(32) NOT NULL,
		week_index  INTEGER NOT NULL,
		week_date   DATE NOT NULL,
		channel     VARCHAR(64) NOT NULL,
		d7          NUMERIC(10, 4) NOT NULL,
		d30         NUMERIC(10, 4) NOT NULL,
		d90         NUMERIC(10, 4) NOT NULL,
		d180        NUMERIC(10, 4) NOT NULL,
		created_at  TIMESTAMP NOT NULL DEFAULT NOW(),
		UNIQUE (session_id, week_index, channel)
	)`

type SnapshotRepository interface {
	EnsureSchema(ctx context.Context) error
	Save(ctx context.Context, sessionID string, series domain.CohortSeries) error
	GetBySession(ctx context.Context, sessionID string) ([]*domain.SnapshotEntry, error)
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}

type snapshotRepository struct {
	conn postgres.Conn
}

func NewSnapshotRepository(conn postgres.Conn) SnapshotRepository {
	return &snapshotRepository{
		conn: conn,
	}
}

func (r *snapshotRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.conn.ExecContext(ctx, createSnapshotTable); err != nil {
		return errors.Wrap(err, "erro ao criar tabela cohort_snapshot")
	}
	return nil
}

// Save grava uma linha por semana e canal dentro de uma transação
func (r *snapshotRepository) Save(ctx context.Context, sessionID string, series domain.CohortSeries) error {
	if len(series) == 0 {
		return nil
	}

	sqlQuery, args, err := buildSnapshotUpsert(sessionID, series)
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			if pqErr, ok := err.(*pq.Error); ok {
				return errors.Wrapf(pqErr, "erro no banco de dados (código: %s)", pqErr.Code)
			}
			return errors.Wrap(err, "erro ao executar a query")
		}
		return nil
	})
}

func buildSnapshotUpsert(sessionID string, series domain.CohortSeries) (string, []any, error) {
	query := squirrel.
		Insert(snapshotTable).
		Columns(snapshotColumns...).
		PlaceholderFormat(squirrel.Dollar)

	for _, week := range series {
		for _, channel := range domain.Channels() {
			values, ok := week.Values[channel]
			if !ok {
				continue
			}
			query = query.Values(
				sessionID,
				week.Index,
				week.Date,
				string(channel),
				values[domain.Day7],
				values[domain.Day30],
				values[domain.Day90],
				values[domain.Day180],
			)
		}
	}

	query = query.Suffix(`
		ON CONFLICT (session_id, week_index, channel) DO UPDATE SET
			week_date = EXCLUDED.week_date,
			d7 = EXCLUDED.d7,
			d30 = EXCLUDED.d30,
			d90 = EXCLUDED.d90,
			d180 = EXCLUDED.d180
	`)

	return query.ToSql()
}

func buildSnapshotSelect(sessionID string) (string, []any, error) {
	return squirrel.
		Select("id, session_id, week_index, week_date, channel, d7, d30, d90, d180, created_at").
		From(snapshotTable).
		Where(squirrel.Eq{"session_id": sessionID}).
		OrderBy("week_index ASC", "channel ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *snapshotRepository) GetBySession(ctx context.Context, sessionID string) ([]*domain.SnapshotEntry, error) {
	sqlQuery, args, err := buildSnapshotSelect(sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query")
	}
	defer rows.Close()

	entries := make([]*domain.SnapshotEntry, 0)
	for rows.Next() {
		entry := &domain.SnapshotEntry{}
		var channel string

		if err := rows.Scan(
			&entry.ID,
			&entry.SessionID,
			&entry.WeekIndex,
			&entry.WeekDate,
			&channel,
			&entry.D7,
			&entry.D30,
			&entry.D90,
			&entry.D180,
			&entry.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "erro ao ler snapshot")
		}

		entry.Channel = domain.Channel(channel)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro ao iterar snapshots")
	}

	return entries, nil
}

func (r *snapshotRepository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	query, args, err := squirrel.
		Delete(snapshotTable).
		Where(squirrel.Lt{"created_at": cutoff}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "erro ao construir a query")
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrap(err, "erro ao executar a query")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "erro ao obter número de linhas afetadas")
	}

	return rowsAffected, nil
}
