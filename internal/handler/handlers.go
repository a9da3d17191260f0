package handler

import (
	"context"
	"errors"
	"net"

	"github.com/MKhiriev/go-greeter/internal/adapter"
	"github.com/MKhiriev/go-greeter/internal/crypto"
	"github.com/MKhiriev/go-greeter/internal/logger"
	"github.com/MKhiriev/go-greeter/internal/utils"
	"github.com/MKhiriev/go-greeter/internal/validators"
)

// ConnHandler serves the session daemon protocol on accepted connections.
type ConnHandler struct {
	users     *UserDirectory
	verifier  crypto.PasswordVerifier
	validator validators.Validator
	ids       *utils.UUIDGenerator
	logger    *logger.Logger
}

func NewConnHandler(users *UserDirectory, verifier crypto.PasswordVerifier, validator validators.Validator, logger *logger.Logger) *ConnHandler {
	logger.Info().Int("users", users.Len()).Msg("creating connection handler...")
	return &ConnHandler{
		users:     users,
		verifier:  verifier,
		validator: validator,
		ids:       utils.NewUUIDGenerator(),
		logger:    logger,
	}
}

// Serve answers requests on conn until the peer disconnects, a frame cannot
// be read, or ctx is done. It closes conn before returning. The connection id
// is taken from ctx when the listener set one.
func (h *ConnHandler) Serve(ctx context.Context, conn net.Conn) {
	connID, ok := utils.GetConnIDFromContext(ctx)
	if !ok {
		connID = h.ids.Generate()
		ctx = utils.WithConnID(ctx, connID)
	}
	connLogger := h.logger.WithConversation(connID)
	ctx = connLogger.WithContext(ctx)
	session := newSession(h.users, h.verifier, h.validator)

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()
	defer conn.Close()

	connLogger.Debug().Msg("serving connection")
	for {
		req, err := adapter.ReadRequest(conn)
		if errors.Is(err, adapter.ErrMalformedMessage) {
			connLogger.Warn().Err(err).Msg("malformed request")
			if err = adapter.WriteResponse(conn, genericError(descMalformedRequest)); err != nil {
				return
			}
			continue
		}
		if err != nil {
			if !errors.Is(err, adapter.ErrPeerDisconnected) && ctx.Err() == nil {
				connLogger.Err(err).Msg("read request")
			}
			connLogger.Debug().Msg("connection closed")
			return
		}

		resp := session.Handle(ctx, req)
		connLogger.Debug().
			Str("request", req.RequestType()).
			Str("response", resp.ResponseType()).
			Msg("request handled")

		if err = adapter.WriteResponse(conn, resp); err != nil {
			if ctx.Err() == nil {
				connLogger.Err(err).Msg("write response")
			}
			return
		}
	}
}
