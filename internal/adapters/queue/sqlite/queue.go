package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/studypomo/internal/domain"
	"github.com/bnema/studypomo/internal/ports"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS queue (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	action TEXT NOT NULL,
	collection TEXT NOT NULL,
	data TEXT NOT NULL,
	timestamp INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	date TEXT NOT NULL,
	data TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_date ON sessions(date);
`

// Queue is the durable offline queue. The same database carries the
// session backup table.
type Queue struct {
	db   *sql.DB
	path string
}

var (
	_ ports.OfflineQueue  = (*Queue)(nil)
	_ ports.SessionBackup = (*Queue)(nil)
)

func Open(ctx context.Context, path string) (*Queue, error) {
	if path == "" {
		return nil, errors.New("queue path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create queue directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open queue database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	q := &Queue{db: db, path: path}
	if err := q.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return q, nil
}

func (q *Queue) Path() string {
	return q.path
}

func (q *Queue) Close() error {
	return q.db.Close()
}

func (q *Queue) ensureSchema(ctx context.Context) error {
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA synchronous=FULL;",
	} {
		if _, err := q.db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("configure queue database: %w", err)
		}
	}

	if _, err := q.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create queue schema: %w", err)
	}

	return nil
}

func (q *Queue) Enqueue(ctx context.Context, item domain.QueueItem) (int64, error) {
	if _, err := domain.ParseCollection(string(item.Collection)); err != nil {
		return 0, err
	}
	if item.Action == "" {
		item.Action = domain.QueueActionAdd
	}
	if !json.Valid(item.Payload) {
		return 0, fmt.Errorf("enqueue %s: payload is not valid JSON", item.Collection)
	}
	if item.EnqueuedAt.IsZero() {
		item.EnqueuedAt = time.Now()
	}

	res, err := q.db.ExecContext(ctx,
		`INSERT INTO queue (action, collection, data, timestamp) VALUES (?, ?, ?, ?)`,
		string(item.Action), string(item.Collection), string(item.Payload), item.EnqueuedAt.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("enqueue %s: %w", item.Collection, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read queue id: %w", err)
	}

	return id, nil
}

func (q *Queue) List(ctx context.Context) ([]domain.QueueItem, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, action, collection, data, timestamp FROM queue ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list queue: %w", err)
	}
	defer rows.Close()

	items := make([]domain.QueueItem, 0)
	for rows.Next() {
		var (
			item       domain.QueueItem
			action     string
			collection string
			data       string
			timestamp  int64
		)
		if err := rows.Scan(&item.ID, &action, &collection, &data, &timestamp); err != nil {
			return nil, fmt.Errorf("scan queue item: %w", err)
		}
		item.Action = domain.QueueAction(action)
		item.Collection = domain.Collection(collection)
		item.Payload = json.RawMessage(data)
		item.EnqueuedAt = time.UnixMilli(timestamp)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate queue: %w", err)
	}

	return items, nil
}

// Remove deletes an item. Removing an unknown id is not an error so a
// redelivered item can be dequeued twice.
func (q *Queue) Remove(ctx context.Context, id int64) error {
	if _, err := q.db.ExecContext(ctx, `DELETE FROM queue WHERE id = ?`, id); err != nil {
		return fmt.Errorf("remove queue item %d: %w", id, err)
	}
	return nil
}

func (q *Queue) Len(ctx context.Context) (int, error) {
	var n int
	if err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM queue`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count queue: %w", err)
	}
	return n, nil
}
