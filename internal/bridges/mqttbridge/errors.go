package mqttbridge

import "errors"

var (
	// ErrInvalidCommand is returned for command payloads that do not parse
	// or lack room, device or on.
	ErrInvalidCommand = errors.New("mqttbridge: invalid command")

	// ErrStopped is returned by Start on a bridge that was already stopped.
	ErrStopped = errors.New("mqttbridge: bridge stopped")
)

// Ack error codes, carried in AckMessage.Code.
const (
	CodeInvalidCommand = "invalid_command"
	CodeNotFound       = "not_found"
	CodeNotSmartPlug   = "not_smart_plug"
	CodeInternal       = "internal_error"
)
