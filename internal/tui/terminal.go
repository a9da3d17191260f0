package tui

import (
	"os"

	"golang.org/x/term"
)

// TerminalGuard remembers the terminal mode at startup so it can be put back
// after the program exits, including on fatal errors.
type TerminalGuard struct {
	fd    int
	state *term.State
}

// NewTerminalGuard snapshots the mode of f. It fails with [ErrNotATerminal]
// when f is not a terminal.
func NewTerminalGuard(f *os.File) (*TerminalGuard, error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotATerminal
	}

	state, err := term.GetState(fd)
	if err != nil {
		return nil, err
	}
	return &TerminalGuard{fd: fd, state: state}, nil
}

// Restore puts the terminal back into the saved mode. A nil guard does
// nothing.
func (g *TerminalGuard) Restore() error {
	if g == nil {
		return nil
	}
	return term.Restore(g.fd, g.state)
}
