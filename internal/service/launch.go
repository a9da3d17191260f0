package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-greeter/internal/adapter"
	"github.com/MKhiriev/go-greeter/internal/config"
	"github.com/MKhiriev/go-greeter/internal/logger"
	"github.com/MKhiriev/go-greeter/models"
)

type launchDispatcher struct {
	wrapper           string
	exportSessionType bool

	logger *logger.Logger
}

// NewLaunchDispatcher returns a [LaunchDispatcher] configured by cfg.
func NewLaunchDispatcher(cfg config.GreeterLaunch, log *logger.Logger) LaunchDispatcher {
	return &launchDispatcher{
		wrapper:           cfg.Wrapper,
		exportSessionType: cfg.ExportSessionType,
		logger:            log,
	}
}

func (d *launchDispatcher) Command(entry models.SessionEntry) []string {
	if d.wrapper == "" {
		return []string{entry.Exec}
	}
	return []string{d.wrapper, entry.Exec}
}

func (d *launchDispatcher) Request(entry models.SessionEntry) models.StartSession {
	req := models.StartSession{Cmd: d.Command(entry)}
	if !d.exportSessionType {
		return req
	}

	if entry.Kind != "" {
		req.Env = append(req.Env, "XDG_SESSION_TYPE="+string(entry.Kind))
	}
	if desktop := desktopName(entry); desktop != "" {
		req.Env = append(req.Env, "XDG_SESSION_DESKTOP="+desktop)
	}
	return req
}

// desktopName is the .desktop file stem, or the lower-cased entry name for
// entries that did not come from a file.
func desktopName(entry models.SessionEntry) string {
	if entry.Path != "" {
		return strings.TrimSuffix(filepath.Base(entry.Path), filepath.Ext(entry.Path))
	}
	return strings.ToLower(entry.Name)
}

func (d *launchDispatcher) Launch(ctx context.Context, rt adapter.RoundTripper, conv *Conversation, entry models.SessionEntry) error {
	req, err := conv.BeginLaunch(d.Request(entry))
	if err != nil {
		return err
	}

	d.logger.Info().
		Str("session", entry.Name).
		Strs("cmd", d.Command(entry)).
		Msg("starting session")

	resp, err := rt.RoundTrip(ctx, req)
	if err != nil {
		return fmt.Errorf("start session %q: %w", entry.Name, err)
	}

	if _, err = conv.HandleResponse(resp); err != nil {
		d.logger.Err(err).Str("session", entry.Name).Msg("session launch rejected")
		return err
	}

	d.logger.Info().Str("session", entry.Name).Msg("session handed off")
	return nil
}
