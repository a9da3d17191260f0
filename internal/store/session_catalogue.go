package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/MKhiriev/go-greeter/internal/logger"
	"github.com/MKhiriev/go-greeter/models"
)

const desktopEntryGroup = "Desktop Entry"

// desktopCatalogue implements [SessionCatalogue] over directories of
// freedesktop .desktop files.
type desktopCatalogue struct {
	dirs   []string
	logger *logger.Logger
}

// NewSessionCatalogue returns a [SessionCatalogue] that scans dirs in order.
// Directories that do not exist are skipped.
func NewSessionCatalogue(dirs []string, logger *logger.Logger) SessionCatalogue {
	return &desktopCatalogue{dirs: dirs, logger: logger}
}

func (c *desktopCatalogue) List(ctx context.Context) ([]models.SessionEntry, error) {
	var entries []models.SessionEntry
	seen := make(map[string]struct{})

	for _, dir := range c.dirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		files, err := os.ReadDir(dir)
		if errors.Is(err, fs.ErrNotExist) {
			c.logger.Debug().Str("dir", dir).Msg("session directory does not exist")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read session directory %s: %w", dir, err)
		}

		names := make([]string, 0, len(files))
		for _, f := range files {
			if f.IsDir() || filepath.Ext(f.Name()) != ".desktop" {
				continue
			}
			names = append(names, f.Name())
		}
		sort.Strings(names)

		kind := kindForDir(dir)
		for _, name := range names {
			path := filepath.Join(dir, name)
			entry, ok, err := ParseDesktopEntry(path, kind)
			if err != nil {
				c.logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable desktop entry")
				continue
			}
			if !ok {
				continue
			}
			if _, dup := seen[entry.Name]; dup {
				c.logger.Debug().Str("path", path).Str("name", entry.Name).Msg("duplicate session name")
				continue
			}
			seen[entry.Name] = struct{}{}
			entries = append(entries, entry)
		}
	}

	c.logger.Debug().Int("count", len(entries)).Msg("session catalogue loaded")
	return entries, nil
}

// ParseDesktopEntry reads one .desktop file. ok is false for entries that are
// hidden, marked NoDisplay, or lack a Name or Exec.
func ParseDesktopEntry(path string, kind models.SessionKind) (entry models.SessionEntry, ok bool, err error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		KeyValueDelimiters:      "=",
		SkipUnrecognizableLines: true,
	}, path)
	if err != nil {
		return models.SessionEntry{}, false, fmt.Errorf("parse %s: %w", path, err)
	}

	section, err := file.GetSection(desktopEntryGroup)
	if err != nil {
		return models.SessionEntry{}, false, fmt.Errorf("%w: %s: %w", ErrInvalidDesktopEntry, path, err)
	}

	if section.Key("Hidden").MustBool(false) || section.Key("NoDisplay").MustBool(false) {
		return models.SessionEntry{}, false, nil
	}

	name := strings.TrimSpace(section.Key("Name").String())
	exec := stripFieldCodes(section.Key("Exec").String())
	if name == "" || exec == "" {
		return models.SessionEntry{}, false, nil
	}

	return models.SessionEntry{
		Name: name,
		Exec: exec,
		Kind: kind,
		Path: path,
	}, true, nil
}

func kindForDir(dir string) models.SessionKind {
	if strings.Contains(strings.ToLower(filepath.Base(filepath.Clean(dir))), "wayland") {
		return models.SessionKindWayland
	}
	return models.SessionKindX11
}

// stripFieldCodes removes desktop-entry field codes (%f, %U, ...) from an
// Exec value and unescapes %%.
func stripFieldCodes(exec string) string {
	var b strings.Builder
	for i := 0; i < len(exec); i++ {
		if exec[i] != '%' || i+1 >= len(exec) {
			b.WriteByte(exec[i])
			continue
		}
		i++
		if exec[i] == '%' {
			b.WriteByte('%')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
