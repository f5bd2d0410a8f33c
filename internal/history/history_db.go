package history

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/studiowebux/resto/internal/log"
	"github.com/studiowebux/resto/internal/migrations"
	"github.com/studiowebux/resto/internal/types"
)

// ErrNotFound is returned by Get when no entry has the given id.
var ErrNotFound = errors.New("history entry not found")

const timestampLayout = "2006-01-02 15:04:05.000"

type Manager struct {
	db *sql.DB
}

func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Debug(log.CatDB, "history database ready", "path", dbPath)
	return &Manager{db: db}, nil
}

// Save records a request and its result. It returns the new entry id.
func (m *Manager) Save(req *types.HttpRequest, result *types.RequestResult) (int64, error) {
	if result == nil {
		result = &types.RequestResult{}
	}

	headersJSON, err := json.Marshal(orEmpty(req.Headers))
	if err != nil {
		return 0, fmt.Errorf("failed to marshal headers: %w", err)
	}
	queryJSON, err := json.Marshal(orEmpty(req.Query))
	if err != nil {
		return 0, fmt.Errorf("failed to marshal query: %w", err)
	}
	responseHeadersJSON, err := json.Marshal(orEmpty(result.Headers))
	if err != nil {
		return 0, fmt.Errorf("failed to marshal response headers: %w", err)
	}
	cookies := result.Cookies
	if cookies == nil {
		cookies = []string{}
	}
	cookiesJSON, err := json.Marshal(cookies)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal cookies: %w", err)
	}

	query := `
		INSERT INTO history (
			timestamp, request_id, method, url, headers, query, body,
			response_status, response_status_text, response_headers, response_body,
			response_cookies, duration_ms, request_size, response_size, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := m.db.Exec(query,
		time.Now().Local().Format(timestampLayout),
		req.ID,
		string(req.Method),
		req.URL,
		string(headersJSON),
		string(queryJSON),
		req.Body,
		result.Status,
		result.StatusText,
		string(responseHeadersJSON),
		result.Body,
		string(cookiesJSON),
		result.Duration,
		result.RequestSize,
		result.ResponseSize,
		result.Error,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save history entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read history entry id: %w", err)
	}
	log.Debug(log.CatDB, "history entry saved", "id", id, "method", req.Method, "url", req.URL)
	return id, nil
}

const selectColumns = `
	SELECT id, timestamp, request_id, method, url, headers, query, body,
	       response_status, response_status_text, response_headers, response_body,
	       response_cookies, duration_ms, request_size, response_size, error
	FROM history
`

// Load returns up to limit entries, newest first. A non-positive limit
// returns everything.
func (m *Manager) Load(limit int) ([]types.HistoryEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := m.db.Query(selectColumns+" ORDER BY timestamp DESC, id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	return m.scanEntries(rows)
}

// Get returns a single entry.
func (m *Manager) Get(id int64) (types.HistoryEntry, error) {
	rows, err := m.db.Query(selectColumns+" WHERE id = ?", id)
	if err != nil {
		return types.HistoryEntry{}, fmt.Errorf("failed to load history entry: %w", err)
	}
	defer rows.Close()

	entries, err := m.scanEntries(rows)
	if err != nil {
		return types.HistoryEntry{}, err
	}
	if len(entries) == 0 {
		return types.HistoryEntry{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return entries[0], nil
}

func (m *Manager) scanEntries(rows *sql.Rows) ([]types.HistoryEntry, error) {
	entries := []types.HistoryEntry{}

	for rows.Next() {
		var id int64
		var timestamp string
		var requestID string
		var method string
		var url string
		var headersJSON string
		var queryJSON string
		var body sql.NullString
		var responseStatus int
		var responseStatusText string
		var responseHeadersJSON string
		var responseBody string
		var cookiesJSON string
		var durationMs int64
		var requestSize sql.NullInt64
		var responseSize sql.NullInt64
		var errorMsg sql.NullString

		err := rows.Scan(
			&id,
			&timestamp,
			&requestID,
			&method,
			&url,
			&headersJSON,
			&queryJSON,
			&body,
			&responseStatus,
			&responseStatusText,
			&responseHeadersJSON,
			&responseBody,
			&cookiesJSON,
			&durationMs,
			&requestSize,
			&responseSize,
			&errorMsg,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}

		created := parseTimestamp(timestamp)

		entry := types.HistoryEntry{
			ID: id,
			Request: types.HttpRequest{
				ID:        requestID,
				Method:    types.HttpMethod(method),
				URL:       url,
				Headers:   decodeMap(headersJSON),
				Query:     decodeMap(queryJSON),
				Body:      body.String,
				CreatedAt: created,
			},
			Result: &types.RequestResult{
				RequestID:    requestID,
				Status:       responseStatus,
				StatusText:   responseStatusText,
				Headers:      decodeMap(responseHeadersJSON),
				Body:         responseBody,
				Cookies:      decodeList(cookiesJSON),
				Duration:     durationMs,
				RequestSize:  int(requestSize.Int64),
				ResponseSize: int(responseSize.Int64),
				Error:        errorMsg.String,
				CreatedAt:    created,
			},
			Timestamp: created,
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (m *Manager) Clear() error {
	_, err := m.db.Exec("DELETE FROM history")
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	log.Info(log.CatDB, "history cleared")
	return nil
}

func (m *Manager) Delete(id int64) error {
	_, err := m.db.Exec("DELETE FROM history WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}
	return nil
}

// Trim keeps the newest keep entries and deletes the rest.
func (m *Manager) Trim(keep int) error {
	if keep <= 0 {
		return nil
	}
	_, err := m.db.Exec(`
		DELETE FROM history WHERE id NOT IN (
			SELECT id FROM history ORDER BY timestamp DESC, id DESC LIMIT ?
		)`, keep)
	if err != nil {
		return fmt.Errorf("failed to trim history: %w", err)
	}
	return nil
}

func (m *Manager) Count() (int, error) {
	var count int
	err := m.db.QueryRow("SELECT COUNT(*) FROM history").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get history count: %w", err)
	}
	return count, nil
}

func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

// parseTimestamp reads a stored timestamp as local time.
func parseTimestamp(s string) time.Time {
	if t, err := time.ParseInLocation(timestampLayout, s, time.Local); err == nil {
		return t
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04:05", s, time.Local); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

func decodeMap(s string) map[string]string {
	m := map[string]string{}
	if err := json.Unmarshal([]byte(s), &m); err != nil || m == nil {
		return map[string]string{}
	}
	return m
}

func decodeList(s string) []string {
	var l []string
	if err := json.Unmarshal([]byte(s), &l); err != nil {
		return nil
	}
	return l
}

func orEmpty(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
