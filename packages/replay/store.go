// Package replay records completed exchanges into a local SQLite database
// and serves them back through a transport that never touches the network.
package replay

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/abdul-hamid-achik/fetchkit/packages/transport"
)

// ErrNotFound is returned when no recording matches a request.
var ErrNotFound = errors.New("replay: no recording found")

// Exchange is one recorded request/response pair.
type Exchange struct {
	ID        string
	CreatedAt time.Time

	Method        string
	URL           string
	RequestHeader []transport.Field
	RequestBody   string
	ContentType   string

	StatusCode     int
	Status         string
	ResponseHeader []transport.Field
	ResponseBody   string
}

const schema = `
CREATE TABLE IF NOT EXISTS exchanges (
	id               TEXT PRIMARY KEY,
	created_at       TIMESTAMP NOT NULL,
	method           TEXT NOT NULL,
	url              TEXT NOT NULL,
	request_headers  TEXT NOT NULL,
	request_body     TEXT NOT NULL,
	content_type     TEXT NOT NULL,
	status_code      INTEGER NOT NULL,
	status           TEXT NOT NULL,
	response_headers TEXT NOT NULL,
	response_body    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_exchanges_lookup ON exchanges (method, url, created_at);
`

// Store persists exchanges in a SQLite database file. Use ":memory:" for an
// ephemeral store.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed initializes) a store at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	// An in-memory database exists per connection; pin the pool to one so
	// every statement sees the same database.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save persists an exchange, assigning an id and timestamp when unset.
func (s *Store) Save(ctx context.Context, ex *Exchange) error {
	if ex.ID == "" {
		ex.ID = uuid.NewString()
	}
	if ex.CreatedAt.IsZero() {
		ex.CreatedAt = time.Now().UTC()
	}

	reqHeaders, err := json.Marshal(ex.RequestHeader)
	if err != nil {
		return fmt.Errorf("failed to encode request headers: %w", err)
	}
	respHeaders, err := json.Marshal(ex.ResponseHeader)
	if err != nil {
		return fmt.Errorf("failed to encode response headers: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO exchanges (id, created_at, method, url, request_headers, request_body,
			content_type, status_code, status, response_headers, response_body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ex.ID, ex.CreatedAt, ex.Method, ex.URL, string(reqHeaders), ex.RequestBody,
		ex.ContentType, ex.StatusCode, ex.Status, string(respHeaders), ex.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("failed to save exchange: %w", err)
	}
	return nil
}

// Find returns the most recently recorded exchange for method and url.
func (s *Store) Find(ctx context.Context, method, url string) (*Exchange, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, method, url, request_headers, request_body,
			content_type, status_code, status, response_headers, response_body
		FROM exchanges
		WHERE method = ? AND url = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1`, method, url)

	ex, err := scanExchange(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return ex, err
}

// List returns every recorded exchange, oldest first.
func (s *Store) List(ctx context.Context) ([]*Exchange, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, method, url, request_headers, request_body,
			content_type, status_code, status, response_headers, response_body
		FROM exchanges
		ORDER BY created_at ASC, rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchanges: %w", err)
	}
	defer rows.Close()

	var exchanges []*Exchange
	for rows.Next() {
		ex, err := scanExchange(rows)
		if err != nil {
			return nil, err
		}
		exchanges = append(exchanges, ex)
	}
	return exchanges, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExchange(row scanner) (*Exchange, error) {
	var ex Exchange
	var reqHeaders, respHeaders string

	err := row.Scan(&ex.ID, &ex.CreatedAt, &ex.Method, &ex.URL, &reqHeaders, &ex.RequestBody,
		&ex.ContentType, &ex.StatusCode, &ex.Status, &respHeaders, &ex.ResponseBody)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(reqHeaders), &ex.RequestHeader); err != nil {
		return nil, fmt.Errorf("failed to decode request headers: %w", err)
	}
	if err := json.Unmarshal([]byte(respHeaders), &ex.ResponseHeader); err != nil {
		return nil, fmt.Errorf("failed to decode response headers: %w", err)
	}
	return &ex, nil
}
