package mqttbridge

import (
	"encoding/json"
	"fmt"
	"time"
)

// ReportMessage is the retained payload on the home report topic.
type ReportMessage struct {
	Home        string    `json:"home"`
	Rooms       int       `json:"rooms"`
	Lines       []string  `json:"lines"`
	GeneratedAt time.Time `json:"generated_at"`
}

// PlugCommand asks the bridge to switch a smart plug.
// On is a pointer so a missing field is distinguishable from false.
type PlugCommand struct {
	ID     string `json:"id,omitempty"`
	Room   string `json:"room"`
	Device string `json:"device"`
	On     *bool  `json:"on"`
}

// AckStatus is the outcome of a command.
type AckStatus string

const (
	AckAccepted AckStatus = "accepted"
	AckFailed   AckStatus = "failed"
)

// AckMessage reports the outcome of a PlugCommand.
type AckMessage struct {
	CommandID string    `json:"command_id,omitempty"`
	Room      string    `json:"room"`
	Device    string    `json:"device"`
	Status    AckStatus `json:"status"`
	Code      string    `json:"code,omitempty"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ParsePlugCommand decodes and validates a command payload.
func ParsePlugCommand(payload []byte) (PlugCommand, error) {
	var cmd PlugCommand
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return PlugCommand{}, fmt.Errorf("%w: %w", ErrInvalidCommand, err)
	}

	switch {
	case cmd.Room == "":
		return cmd, fmt.Errorf("%w: room is required", ErrInvalidCommand)
	case cmd.Device == "":
		return cmd, fmt.Errorf("%w: device is required", ErrInvalidCommand)
	case cmd.On == nil:
		return cmd, fmt.Errorf("%w: on is required", ErrInvalidCommand)
	}
	return cmd, nil
}
