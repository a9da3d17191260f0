package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-greeter/internal/logger"
	"github.com/MKhiriev/go-greeter/models"
)

func writeDesktopFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestSessionCatalogue_List(t *testing.T) {
	root := t.TempDir()
	wayland := filepath.Join(root, "wayland-sessions")
	xsessions := filepath.Join(root, "xsessions")

	swayPath := writeDesktopFile(t, wayland, "sway.desktop", `[Desktop Entry]
Name=Sway
Comment=An i3-compatible Wayland compositor
Exec=sway
Type=Application
`)
	hyprPath := writeDesktopFile(t, wayland, "hyprland.desktop", `[Desktop Entry]
Name=Hyprland
Exec=Hyprland %U
`)
	writeDesktopFile(t, wayland, "hidden.desktop", `[Desktop Entry]
Name=Hidden One
Exec=hidden
Hidden=true
`)
	writeDesktopFile(t, wayland, "README", "not a desktop file")
	i3Path := writeDesktopFile(t, xsessions, "i3.desktop", `# comment line
[Desktop Entry]
Name=i3
Name[de]=i3 Fenster
Exec=i3 --shmlog-size=0
`)
	writeDesktopFile(t, xsessions, "sway-x.desktop", `[Desktop Entry]
Name=Sway
Exec=sway-on-x
`)
	writeDesktopFile(t, xsessions, "nodisplay.desktop", `[Desktop Entry]
Name=Ghost
Exec=ghost
NoDisplay=true
`)

	c := NewSessionCatalogue([]string{wayland, filepath.Join(root, "missing"), xsessions}, logger.Nop())

	got, err := c.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []models.SessionEntry{
		{Name: "Hyprland", Exec: "Hyprland", Kind: models.SessionKindWayland, Path: hyprPath},
		{Name: "Sway", Exec: "sway", Kind: models.SessionKindWayland, Path: swayPath},
		{Name: "i3", Exec: "i3 --shmlog-size=0", Kind: models.SessionKindX11, Path: i3Path},
	}, got)
}

func TestSessionCatalogue_NoDirectories(t *testing.T) {
	c := NewSessionCatalogue([]string{filepath.Join(t.TempDir(), "nope")}, logger.Nop())

	got, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSessionCatalogue_SkipsBrokenEntries(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "xsessions")
	writeDesktopFile(t, dir, "a.desktop", "Name=No group\nExec=x\n")
	writeDesktopFile(t, dir, "b.desktop", "[Desktop Entry]\nName=\nExec=empty-name\n")
	writeDesktopFile(t, dir, "c.desktop", "[Desktop Entry]\nName=Only name\n")
	okPath := writeDesktopFile(t, dir, "d.desktop", "[Desktop Entry]\nName=Openbox\nExec=openbox-session\n")

	got, err := NewSessionCatalogue([]string{dir}, logger.Nop()).List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, okPath, got[0].Path)
}

func TestSessionCatalogue_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSessionCatalogue([]string{t.TempDir()}, logger.Nop()).List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseDesktopEntry_MissingGroup(t *testing.T) {
	path := writeDesktopFile(t, t.TempDir(), "x.desktop", "[Other]\nName=x\n")

	_, ok, err := ParseDesktopEntry(path, models.SessionKindX11)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrInvalidDesktopEntry)
}

func TestParseDesktopEntry_ValueWithColonAndHash(t *testing.T) {
	path := writeDesktopFile(t, t.TempDir(), "x.desktop",
		"[Desktop Entry]\nName=Plasma: Wayland\nExec=env FOO=#bar startplasma-wayland\n")

	entry, ok, err := ParseDesktopEntry(path, models.SessionKindWayland)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Plasma: Wayland", entry.Name)
	assert.Equal(t, "env FOO=#bar startplasma-wayland", entry.Exec)
}

func Test_stripFieldCodes(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"sway", "sway"},
		{"Hyprland %U", "Hyprland"},
		{"app %f --flag %F", "app --flag"},
		{"printf 100%%", "printf 100%"},
		{"trailing %", "trailing %"},
		{"  spaced   out  ", "spaced out"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, stripFieldCodes(tt.in))
		})
	}
}

func Test_kindForDir(t *testing.T) {
	assert.Equal(t, models.SessionKindWayland, kindForDir("/usr/share/wayland-sessions"))
	assert.Equal(t, models.SessionKindWayland, kindForDir("/usr/share/wayland-sessions/"))
	assert.Equal(t, models.SessionKindX11, kindForDir("/usr/share/xsessions"))
}
