package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/bnema/studypomo/internal/domain"
)

func (q *Queue) Put(ctx context.Context, session domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", session.ID, err)
	}

	_, err = q.db.ExecContext(ctx, `
		INSERT INTO sessions (id, date, data) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET date = excluded.date, data = excluded.data`,
		session.ID, session.Date, string(data),
	)
	if err != nil {
		return fmt.Errorf("back up session %s: %w", session.ID, err)
	}

	return nil
}

func (q *Queue) ByDate(ctx context.Context, date string) ([]domain.Session, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT data FROM sessions WHERE date = ? ORDER BY id`, date)
	if err != nil {
		return nil, fmt.Errorf("list backup for %s: %w", date, err)
	}
	return scanSessions(rows)
}

func (q *Queue) All(ctx context.Context) ([]domain.Session, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT data FROM sessions ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("list backup: %w", err)
	}
	return scanSessions(rows)
}

func scanSessions(rows *sql.Rows) ([]domain.Session, error) {
	defer rows.Close()

	sessions := make([]domain.Session, 0)
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan backup row: %w", err)
		}
		var session domain.Session
		if err := json.Unmarshal([]byte(data), &session); err != nil {
			return nil, fmt.Errorf("decode backup row: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate backup: %w", err)
	}

	return sessions, nil
}
