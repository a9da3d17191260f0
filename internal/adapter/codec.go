package adapter

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"github.com/MKhiriev/go-greeter/models"
)

// lengthPrefixSize is the size of the frame header. The header holds the body
// length in native byte order and does not count itself.
const lengthPrefixSize = 4

// maxFrameLength bounds a single body. Daemon messages are a few hundred
// bytes; anything near this limit is a corrupt stream.
const maxFrameLength = 1 << 20

// WriteFrame writes body preceded by its length prefix in a single write.
func WriteFrame(w io.Writer, body []byte) error {
	if len(body) > maxFrameLength {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, len(body))
	}

	frame := make([]byte, lengthPrefixSize+len(body))
	binary.NativeEndian.PutUint32(frame[:lengthPrefixSize], uint32(len(body)))
	copy(frame[lengthPrefixSize:], body)

	if _, err := w.Write(frame); err != nil {
		return mapWriteError("write frame", err)
	}
	return nil
}

// ReadFrame reads exactly one frame and returns its body. A stream that ends
// before the frame is complete fails with [ErrPeerDisconnected].
func ReadFrame(r io.Reader) ([]byte, error) {
	var header [lengthPrefixSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, mapReadError("read frame header", err)
	}

	length := binary.NativeEndian.Uint32(header[:])
	if length > maxFrameLength {
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, length)
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, mapReadError("read frame body", err)
	}
	return body, nil
}

// ── requests ────────────────────────────────────────────────────────────────

type typedCreateSession struct {
	Type string `json:"type"`
	models.CreateSession
}

type typedPostAuthMessageResponse struct {
	Type string `json:"type"`
	models.PostAuthMessageResponse
}

type typedStartSession struct {
	Type string `json:"type"`
	models.StartSession
}

type typedCancelSession struct {
	Type string `json:"type"`
}

// EncodeRequest serialises req into a frame body.
func EncodeRequest(req models.Request) ([]byte, error) {
	var v any
	switch r := req.(type) {
	case models.CreateSession:
		v = typedCreateSession{Type: r.RequestType(), CreateSession: r}
	case *models.CreateSession:
		return encodePointer(r, req)
	case models.PostAuthMessageResponse:
		v = typedPostAuthMessageResponse{Type: r.RequestType(), PostAuthMessageResponse: r}
	case *models.PostAuthMessageResponse:
		return encodePointer(r, req)
	case models.StartSession:
		if r.Cmd == nil {
			r.Cmd = []string{}
		}
		v = typedStartSession{Type: r.RequestType(), StartSession: r}
	case *models.StartSession:
		return encodePointer(r, req)
	case models.CancelSession:
		v = typedCancelSession{Type: r.RequestType()}
	case *models.CancelSession:
		return encodePointer(r, req)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownRequest, req)
	}

	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", req.RequestType(), err)
	}
	return body, nil
}

func encodePointer[T any](p *T, req models.Request) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil %T", ErrUnknownRequest, req)
	}
	r, ok := any(*p).(models.Request)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnknownRequest, req)
	}
	return EncodeRequest(r)
}

type requestEnvelope struct {
	Type     string   `json:"type"`
	Username *string  `json:"username"`
	Response *string  `json:"response"`
	Cmd      []string `json:"cmd"`
	Env      []string `json:"env"`
}

// DecodeRequest parses a frame body into a request. It is the daemon-side
// mirror of [EncodeRequest].
func DecodeRequest(body []byte) (models.Request, error) {
	var env requestEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}

	switch env.Type {
	case models.RequestTypeCreateSession:
		if env.Username == nil {
			return nil, fmt.Errorf("%w: create_session without username", ErrMalformedMessage)
		}
		return models.CreateSession{Username: *env.Username}, nil
	case models.RequestTypePostAuthMessageResponse:
		return models.PostAuthMessageResponse{Response: env.Response}, nil
	case models.RequestTypeStartSession:
		if env.Cmd == nil {
			return nil, fmt.Errorf("%w: start_session without cmd", ErrMalformedMessage)
		}
		return models.StartSession{Cmd: env.Cmd, Env: env.Env}, nil
	case models.RequestTypeCancelSession:
		return models.CancelSession{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown request type %q", ErrMalformedMessage, env.Type)
	}
}

// WriteRequest encodes req and writes it as one frame.
func WriteRequest(w io.Writer, req models.Request) error {
	body, err := EncodeRequest(req)
	if err != nil {
		return err
	}
	return WriteFrame(w, body)
}

// ReadRequest reads one frame and decodes it as a request.
func ReadRequest(r io.Reader) (models.Request, error) {
	body, err := ReadFrame(r)
	if err != nil {
		return nil, err
	}
	return DecodeRequest(body)
}

// ── responses ───────────────────────────────────────────────────────────────

type typedAuthMessage struct {
	Type string `json:"type"`
	models.AuthMessage
}

type typedSuccess struct {
	Type string `json:"type"`
}

type typedErrorResponse struct {
	Type string `json:"type"`
	models.ErrorResponse
}

// EncodeResponse serialises resp into a frame body.
func EncodeResponse(resp models.Response) ([]byte, error) {
	var v any
	switch r := resp.(type) {
	case models.AuthMessage:
		v = typedAuthMessage{Type: r.ResponseType(), AuthMessage: r}
	case models.Success:
		v = typedSuccess{Type: r.ResponseType()}
	case models.ErrorResponse:
		v = typedErrorResponse{Type: r.ResponseType(), ErrorResponse: r}
	default:
		return nil, fmt.Errorf("%w: unknown response variant %T", ErrProtocolViolation, resp)
	}

	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", resp.ResponseType(), err)
	}
	return body, nil
}

type responseEnvelope struct {
	Type            string                  `json:"type"`
	AuthMessageType *models.AuthMessageKind `json:"auth_message_type"`
	AuthMessage     *string                 `json:"auth_message"`
	ErrorType       *models.ErrorKind       `json:"error_type"`
	Description     *string                 `json:"description"`
}

// DecodeResponse parses a frame body into a response. Unknown types, unknown
// kinds, and missing fields fail with [ErrMalformedMessage].
func DecodeResponse(body []byte) (models.Response, error) {
	var env responseEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}

	switch env.Type {
	case models.ResponseTypeAuthMessage:
		if env.AuthMessageType == nil || !env.AuthMessageType.Valid() {
			return nil, fmt.Errorf("%w: auth_message with invalid auth_message_type", ErrMalformedMessage)
		}
		if env.AuthMessage == nil {
			return nil, fmt.Errorf("%w: auth_message without text", ErrMalformedMessage)
		}
		return models.AuthMessage{Kind: *env.AuthMessageType, Text: *env.AuthMessage}, nil
	case models.ResponseTypeSuccess:
		return models.Success{}, nil
	case models.ResponseTypeError:
		if env.ErrorType == nil || !env.ErrorType.Valid() {
			return nil, fmt.Errorf("%w: error with invalid error_type", ErrMalformedMessage)
		}
		resp := models.ErrorResponse{Kind: *env.ErrorType}
		if env.Description != nil {
			resp.Description = *env.Description
		}
		return resp, nil
	default:
		return nil, fmt.Errorf("%w: unknown response type %q", ErrMalformedMessage, env.Type)
	}
}

// WriteResponse encodes resp and writes it as one frame.
func WriteResponse(w io.Writer, resp models.Response) error {
	body, err := EncodeResponse(resp)
	if err != nil {
		return err
	}
	return WriteFrame(w, body)
}

// ReadResponse reads one frame and decodes it as a response.
func ReadResponse(r io.Reader) (models.Response, error) {
	body, err := ReadFrame(r)
	if err != nil {
		return nil, err
	}
	return DecodeResponse(body)
}
