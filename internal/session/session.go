// Package session keeps the draft request and view state between runs.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/studiowebux/resto/internal/config"
	"github.com/studiowebux/resto/internal/log"
	"github.com/studiowebux/resto/internal/types"
)

// Session is the persisted state.
type Session struct {
	Draft           *types.HttpRequest `json:"draft,omitempty"`
	RequestSection  int                `json:"requestSection"`
	ResponseSection int                `json:"responseSection"`
	Filter          string             `json:"filter,omitempty"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// Manager handles session persistence
type Manager struct {
	path    string
	session *Session
}

// NewManager creates a session manager backed by path. An empty path uses
// config.SessionFile.
func NewManager(path string) *Manager {
	if path == "" {
		path = config.SessionFile
	}
	return &Manager{path: path, session: &Session{}}
}

// Path returns the session file location.
func (m *Manager) Path() string { return m.path }

// Load loads the session file
func (m *Manager) Load() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			m.session = &Session{}
			return nil
		}
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return fmt.Errorf("failed to parse session file: %w", err)
	}

	if d := session.Draft; d != nil {
		if d.Headers == nil {
			d.Headers = make(map[string]string)
		}
		if d.Query == nil {
			d.Query = make(map[string]string)
		}
		if _, err := types.ParseMethod(string(d.Method)); err != nil {
			d.Method = types.MethodGet
		}
	}

	m.session = &session
	log.Debug(log.CatConfig, "session loaded", "path", m.path, "draft", session.Draft != nil)
	return nil
}

// Save saves the session to disk
func (m *Manager) Save() error {
	m.session.UpdatedAt = time.Now()

	data, err := json.MarshalIndent(m.session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.path), config.DirPermissions); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(m.path, data, config.FilePermissions); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// GetSession returns the current session
func (m *Manager) GetSession() *Session {
	return m.session
}

// Draft returns a copy of the saved draft, or a fresh request.
func (m *Manager) Draft() *types.HttpRequest {
	if m.session.Draft == nil {
		return types.NewRequest()
	}
	return m.session.Draft.Clone()
}

// SetDraft stores a copy of req.
func (m *Manager) SetDraft(req *types.HttpRequest) {
	if req == nil {
		m.session.Draft = nil
		return
	}
	m.session.Draft = req.Clone()
}

// SetView records the focused request and response sections.
func (m *Manager) SetView(requestSection, responseSection int) {
	m.session.RequestSection = requestSection
	m.session.ResponseSection = responseSection
}

// SetFilter records the last response filter expression.
func (m *Manager) SetFilter(expr string) {
	m.session.Filter = expr
}

// Clear deletes the session file and resets the in-memory state.
func (m *Manager) Clear() error {
	m.session = &Session{}
	if err := os.Remove(m.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
