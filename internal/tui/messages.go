package tui

import (
	"time"

	"github.com/MKhiriev/go-greeter/internal/adapter"
	"github.com/MKhiriev/go-greeter/models"
)

// startMsg kicks off the conversation once the program is running.
type startMsg struct{}

// responseMsg carries the outcome of one round trip. transport is the
// connection the request went out on; it is set even when err is not nil so
// the caller can close it.
type responseMsg struct {
	transport adapter.Transport
	resp      models.Response
	err       error
}

// clockMsg refreshes the clock.
type clockMsg time.Time
