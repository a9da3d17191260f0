package service

import (
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-greeter/models"
)

// SessionPicker holds the launchable sessions and the current selection.
type SessionPicker struct {
	entries []models.SessionEntry
	index   int
}

// NewSessionPicker returns a picker over entries. With no entries it offers
// fallbackCommand as the single session, or fails with [ErrNoSessions] when
// that is empty too.
func NewSessionPicker(entries []models.SessionEntry, fallbackCommand string) (*SessionPicker, error) {
	if len(entries) == 0 {
		if strings.TrimSpace(fallbackCommand) == "" {
			return nil, ErrNoSessions
		}
		entries = []models.SessionEntry{fallbackEntry(fallbackCommand)}
	}

	return &SessionPicker{entries: append([]models.SessionEntry(nil), entries...)}, nil
}

func fallbackEntry(command string) models.SessionEntry {
	name := command
	if fields := strings.Fields(command); len(fields) > 0 {
		name = filepath.Base(fields[0])
	}
	return models.SessionEntry{Name: name, Exec: command}
}

// Current returns the selected session.
func (p *SessionPicker) Current() models.SessionEntry {
	return p.entries[p.index]
}

// Index returns the position of the selected session.
func (p *SessionPicker) Index() int { return p.index }

// Len returns the number of sessions.
func (p *SessionPicker) Len() int { return len(p.entries) }

// Entries returns a copy of all sessions in display order.
func (p *SessionPicker) Entries() []models.SessionEntry {
	return append([]models.SessionEntry(nil), p.entries...)
}

// Next selects the following session, wrapping to the first.
func (p *SessionPicker) Next() models.SessionEntry {
	p.index = (p.index + 1) % len(p.entries)
	return p.Current()
}

// Prev selects the preceding session, wrapping to the last.
func (p *SessionPicker) Prev() models.SessionEntry {
	p.index = (p.index - 1 + len(p.entries)) % len(p.entries)
	return p.Current()
}

// Select picks the session called name (case-insensitive). Unknown names
// select the first session and return false.
func (p *SessionPicker) Select(name string) bool {
	for i, e := range p.entries {
		if strings.EqualFold(e.Name, name) {
			p.index = i
			return true
		}
	}
	p.index = 0
	return false
}
