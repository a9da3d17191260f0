package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-greeter/internal/service"
)

type keyMap struct {
	submit      key.Binding
	nextField   key.Binding
	backspace   key.Binding
	nextSession key.Binding
	prevSession key.Binding
	quit        key.Binding
}

var keys = keyMap{
	submit:      key.NewBinding(key.WithKeys("enter")),
	nextField:   key.NewBinding(key.WithKeys("tab", "shift+tab", "up", "down")),
	backspace:   key.NewBinding(key.WithKeys("backspace", "ctrl+h")),
	nextSession: key.NewBinding(key.WithKeys("f3", "ctrl+right")),
	prevSession: key.NewBinding(key.WithKeys("f2", "ctrl+left")),
	quit:        key.NewBinding(key.WithKeys("ctrl+c")),
}

// conversationKeys translates a terminal key event into the keystrokes the
// conversation understands. Pasted text yields one keystroke per rune; keys
// with no meaning for the login form yield none.
func conversationKeys(msg tea.KeyMsg) []service.Key {
	switch {
	case key.Matches(msg, keys.submit):
		return []service.Key{service.SubmitKey}
	case key.Matches(msg, keys.nextField):
		return []service.Key{service.NextFieldKey}
	case key.Matches(msg, keys.backspace):
		return []service.Key{service.BackspaceKey}
	}

	if msg.Alt {
		return nil
	}
	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace:
		out := make([]service.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			out = append(out, service.RuneKey(r))
		}
		return out
	}
	return nil
}
